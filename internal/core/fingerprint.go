package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Fingerprint computes the cache key for a (tool, capability, symbol,
// params) tuple: lower-cased tool, colon, lower-cased capability,
// colon, upper-cased symbol if present, colon, first 8 hex chars of a
// stable hash of the JSON-serialized params with sorted keys.
//
// Grounded in the original's CacheManager.build_cache_key: Go's
// encoding/json already serializes map[string]interface{} keys in
// sorted order, so canonicalization falls out of the standard
// marshaler rather than needing a bespoke sorter.
func Fingerprint(tool, capability, symbol string, params map[string]interface{}) string {
	canonical := canonicalParams(params)
	blob, _ := json.Marshal(canonical)
	sum := sha256.Sum256(blob)
	hash := hex.EncodeToString(sum[:])[:8]

	parts := []string{strings.ToLower(tool), strings.ToLower(capability)}
	if symbol != "" {
		parts = append(parts, strings.ToUpper(symbol))
	}
	parts = append(parts, hash)
	return strings.Join(parts, ":")
}

// canonicalParams stringifies non-primitive values (lists get sorted
// when their elements are comparable strings) so that semantically
// equal parameter sets always fingerprint identically.
func canonicalParams(params map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		out[k] = canonicalValue(v)
	}
	return out
}

func canonicalValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []string:
		sorted := append([]string(nil), val...)
		sort.Strings(sorted)
		return sorted
	case []interface{}:
		strs := make([]string, len(val))
		allStrings := true
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				allStrings = false
				break
			}
			strs[i] = s
		}
		if allStrings {
			sort.Strings(strs)
			out := make([]interface{}, len(strs))
			for i, s := range strs {
				out[i] = s
			}
			return out
		}
		return val
	case map[string]interface{}:
		return canonicalParams(val)
	case nil, string, bool, float64, int, int64:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
