// Package picks turns a slate of events with reconciled odds into a
// confidence-point assignment and the week's tie-breaker value.
package picks

import (
	"math/rand"
	"sort"

	"github.com/mbarrett/pickslip/internal/domain"
)

// Assign orders the events by spread strength and hands out confidence
// points from maxPoints downward, one pick per event, stopping when the
// point value would reach zero. Every pick backs the favorite; manual
// selection changes happen in the interactive layer.
//
// The seeded shuffle before the stable sort is what breaks ties: events with
// equal spread magnitude and the same home/away favorite keep the shuffled
// order, so the same seed always yields the same slate and different seeds
// vary only the tied groups.
func Assign(events []domain.Event, maxPoints int, seed int64) []domain.Pick {
	if len(events) == 0 || maxPoints <= 0 {
		return nil
	}

	shuffled := make([]domain.Event, len(events))
	copy(shuffled, events)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	sort.SliceStable(shuffled, func(i, j int) bool {
		a, b := shuffled[i], shuffled[j]
		if a.Odds.Spread != b.Odds.Spread {
			return a.Odds.Spread > b.Odds.Spread
		}
		// Home favorites rank above road favorites at equal spreads.
		return a.FavoriteIsHome() && !b.FavoriteIsHome()
	})

	picks := make([]domain.Pick, 0, len(shuffled))
	for i, event := range shuffled {
		points := maxPoints - i
		if points <= 0 {
			break
		}
		picks = append(picks, domain.Pick{
			Event:     event,
			Points:    points,
			Selection: domain.SelectFavorite,
		})
	}
	return picks
}

// SortByPoints re-sorts picks by descending point value, the invariant the
// interactive layer restores after manual edits.
func SortByPoints(picks []domain.Pick) {
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].Points > picks[j].Points
	})
}

// DefaultSeed derives the deterministic per-week seed used when no explicit
// seed is configured.
func DefaultSeed(season, week int) int64 {
	return int64(season)*100 + int64(week)
}
