package persistence

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/dataforge/gateway/internal/core"
)

// bundleHash fingerprints the envelope content contributing to a
// bundle so two bundles over identical inputs are verifiably
// identical, independent of bundle_id/watermark.
func bundleHash(tool, asset string, envelope *core.Envelope) string {
	material, _ := json.Marshal(struct {
		Tool  string                 `json:"tool"`
		Asset string                 `json:"asset"`
		Data  map[string]interface{} `json:"data"`
	}{Tool: tool, Asset: asset, Data: envelope.Data})

	sum := sha256.Sum256(material)
	return hex.EncodeToString(sum[:])
}
