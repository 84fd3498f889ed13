package odds

import "github.com/mbarrett/pickslip/internal/domain"

// Reconcile merges the primary lookup with the fallback lookup. Per key in the
// fallback: the fallback entry wins outright when the primary has no entry or
// its spread is exactly zero (zero carries no directional signal); otherwise
// the fallback may only patch a missing total, with every other field and the
// provider attribution kept from the primary. Keys present only in the
// primary pass through unchanged. Neither input map is mutated.
func Reconcile(primary, fallback Lookup) Lookup {
	merged := make(Lookup, len(primary)+len(fallback))
	for key, entry := range primary {
		merged[key] = entry
	}

	for key, fb := range fallback {
		prim, ok := merged[key]
		if !ok || prim.Spread == 0 {
			merged[key] = fb
			continue
		}
		if prim.Total == nil && fb.Total != nil {
			patched := prim
			total := *fb.Total
			patched.Total = &total
			merged[key] = patched
		}
	}

	return merged
}

// Resolve finds the entry for an event in the merged lookup, trying the
// swapped orientation when the direct key is absent. A swapped hit returns
// the entry with its favorite side inverted so it is expressed relative to
// the schedule's orientation. Reports ok=false when neither orientation is
// present.
func Resolve(lookup Lookup, key domain.EventKey) (domain.OddsEntry, bool) {
	if entry, ok := lookup[key]; ok {
		return entry, true
	}
	if entry, ok := lookup[key.Swapped()]; ok {
		entry.Favorite = entry.Favorite.Opposite()
		return entry, true
	}
	return domain.OddsEntry{}, false
}
