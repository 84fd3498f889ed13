// Package match correlates schedule events with candidate records from a
// second source using alias-set intersection. There is no similarity scoring:
// candidates are tried in pool order and the first acceptable hit wins, which
// keeps matching reproducible and makes pool ordering an explicit policy
// lever.
package match

import (
	"github.com/mbarrett/pickslip/internal/domain"
	"github.com/mbarrett/pickslip/internal/names"
)

// Sides carries the precomputed home/away alias sets for one record. Both the
// schedule side and the candidate side of a match are expressed this way.
type Sides struct {
	Home map[string]struct{}
	Away map[string]struct{}
}

// EventSides builds the alias sets for a schedule event. The team-derived
// aliases are widened with the display name's free-text aliases so structured
// and scraped spellings can meet in the middle.
func EventSides(e domain.Event) Sides {
	return Sides{
		Home: TeamAliases(e.Home),
		Away: TeamAliases(e.Away),
	}
}

// TeamAliases returns the combined structured + free-text alias set for one
// team.
func TeamAliases(t domain.Team) map[string]struct{} {
	structured := names.ToSet(names.TeamAliases(names.TeamSource{
		Location:     t.Location,
		DisplayName:  t.DisplayName,
		Name:         t.Name,
		ShortName:    t.ShortName,
		Abbreviation: t.Abbreviation,
	}))
	return names.Union(structured, names.LabelAliases(t.DisplayName))
}

// Key builds the canonical lookup key for an event. Every reconciled odds map
// in the pipeline is keyed through this function.
func Key(e domain.Event) domain.EventKey {
	return domain.EventKey{
		Home: names.Canonical(e.Home.DisplayName),
		Away: names.Canonical(e.Away.DisplayName),
	}
}

// Result is the tagged outcome of a match attempt.
type Result struct {
	// Index is the position of the matched candidate in the pool; -1 when
	// no candidate matched.
	Index int
	// Swapped reports that the candidate lists the matchup in the opposite
	// home/away orientation, so callers must invert any home/away-relative
	// fields they extract from it.
	Swapped bool
}

// NoMatch is the Result returned when nothing in the pool matched.
var NoMatch = Result{Index: -1}

// Found reports whether the result identifies a candidate.
func (r Result) Found() bool {
	return r.Index >= 0
}

// Find locates the first candidate whose alias sets intersect the target's on
// both sides. The direct orientation is checked before the crossed one for
// each candidate in turn; a crossed hit is reported with Swapped=true. A
// failed match is not an error, it means "no odds available for this event
// from this source".
func Find(target Sides, pool []Sides) Result {
	for i, cand := range pool {
		if names.Intersects(target.Home, cand.Home) && names.Intersects(target.Away, cand.Away) {
			return Result{Index: i}
		}
		if names.Intersects(target.Home, cand.Away) && names.Intersects(target.Away, cand.Home) {
			return Result{Index: i, Swapped: true}
		}
	}
	return NoMatch
}

// FindLoose matches on the home side alone, ignoring the away team. It is a
// degraded policy for when Find failed across the whole pool (typically a
// relocated or renamed away club) and its results must be surfaced as such.
func FindLoose(target Sides, pool []Sides) Result {
	for i, cand := range pool {
		if names.Intersects(target.Home, cand.Home) {
			return Result{Index: i}
		}
	}
	return NoMatch
}
