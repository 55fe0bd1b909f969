package core

import (
	"encoding/json"
	"math"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Resolver compares equivalent numeric fields across two sources and
// applies the configured resolution policy, returning a rewritten copy
// of the primary payload when the policy calls for it (the payload
// passed in is never modified).
type Resolver struct {
	// Thresholds maps a field name to its percent-divergence threshold
	// (e.g. "price" -> 0.5).
	Thresholds map[string]float64
	Default    float64
}

// NewResolver builds a Resolver with the given per-field thresholds and
// a fallback default (spec default: 0.5%).
func NewResolver(thresholds map[string]float64) *Resolver {
	return &Resolver{Thresholds: thresholds, Default: 0.5}
}

func (r *Resolver) threshold(field string) float64 {
	if t, ok := r.Thresholds[field]; ok {
		return t
	}
	return r.Default
}

// Resolve compares field on primaryPayload (source sPrimary, value x)
// against secondaryPayload (source sSecondary, value y), both addressed
// by a dotted JSON path. Missing values on either side abort resolution
// for that field and return ok=false with no mutation and no Conflict.
//
// primaryPayload is read and, on the average path, rewritten via
// sjson.SetBytes so final_value always equals what is actually
// propagated into data, matching the invariant in spec §3.
func (r *Resolver) Resolve(primaryPayload interface{}, field, sPrimary, sSecondary string, secondaryPayload interface{}) (interface{}, Conflict, bool) {
	primaryBlob, err := json.Marshal(primaryPayload)
	if err != nil {
		return primaryPayload, Conflict{}, false
	}
	secondaryBlob, err := json.Marshal(secondaryPayload)
	if err != nil {
		return primaryPayload, Conflict{}, false
	}

	xRes := gjson.GetBytes(primaryBlob, field)
	yRes := gjson.GetBytes(secondaryBlob, field)
	if !xRes.Exists() || !yRes.Exists() {
		return primaryPayload, Conflict{}, false
	}

	x, y := xRes.Float(), yRes.Float()
	diffAbs := math.Abs(x - y)
	var diffPct float64
	if x != 0 {
		diffPct = diffAbs / x * 100
	}

	values := map[string]float64{sPrimary: x, sSecondary: y}
	conflict := Conflict{
		Field:        field,
		Values:       values,
		DiffAbsolute: &diffAbs,
		DiffPercent:  &diffPct,
	}

	threshold := r.threshold(field)
	if diffPct <= threshold {
		conflict.Resolution = ResolutionAverage
		conflict.FinalValue = (x + y) / 2

		updated, serr := sjson.SetBytes(primaryBlob, field, conflict.FinalValue)
		if serr != nil {
			return primaryPayload, Conflict{}, false
		}
		var out interface{}
		if err := json.Unmarshal(updated, &out); err != nil {
			return primaryPayload, Conflict{}, false
		}
		return out, conflict, true
	}

	conflict.Resolution = ResolutionPrimarySource
	conflict.FinalValue = x
	return primaryPayload, conflict, true
}

// ResolveLatestTimestamp picks the value whose source reported the more
// recent as_of_utc. Declared per §4.7 but, per §9, not exercised by any
// shipped tool façade today.
func (r *Resolver) ResolveLatestTimestamp(field, sPrimary string, xAt string, x float64, sSecondary string, yAt string, y float64) Conflict {
	values := map[string]float64{sPrimary: x, sSecondary: y}
	final, winner := x, sPrimary
	if yAt > xAt {
		final, winner = y, sSecondary
	}
	_ = winner
	return Conflict{
		Field:      field,
		Values:     values,
		Resolution: ResolutionLatestTimestamp,
		FinalValue: final,
	}
}

// ResolveManual records all observed values without mutating the
// primary payload. Declared per §4.7 but not exercised by a shipped
// tool façade today.
func (r *Resolver) ResolveManual(field, sPrimary string, x float64, sSecondary string, y float64) Conflict {
	return Conflict{
		Field:      field,
		Values:     map[string]float64{sPrimary: x, sSecondary: y},
		Resolution: ResolutionManual,
		FinalValue: x,
	}
}
