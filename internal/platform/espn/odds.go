package espn

import (
	"strings"

	"github.com/mbarrett/pickslip/internal/domain"
)

// ExtractOdds turns a competition's odds listing into one resolved entry.
// Provider selection prefers the named provider when it lists a spread, then
// falls back to the first item with any spread. The sign convention is the
// ESPN one: negative spread means home favorite, positive means away. A zero
// spread defers to the explicit per-side favorite flags and defaults to home
// when those disagree or are absent. Items with no spread at all are ignored;
// an empty or spreadless listing yields domain.ErrNotFound.
func ExtractOdds(items []OddsItem, preferredProvider string) (domain.OddsEntry, error) {
	selected := pickItem(items, preferredProvider)
	if selected == nil {
		return domain.OddsEntry{}, domain.ErrNotFound
	}

	spread := *selected.Spread
	favorite := domain.SideHome
	switch {
	case spread > 0:
		favorite = domain.SideAway
	case spread < 0:
		favorite = domain.SideHome
	default:
		homeFlag := selected.HomeTeamOdds.Favorite
		awayFlag := selected.AwayTeamOdds.Favorite
		if awayFlag && !homeFlag {
			favorite = domain.SideAway
		}
	}

	provider := selected.Provider.Name
	if provider == "" {
		provider = "Unknown"
	}

	entry := domain.OddsEntry{
		Spread:   abs(spread),
		Provider: provider + " via ESPN",
		Favorite: favorite,
		Origin:   domain.OriginPrimary,
	}
	if selected.OverUnder != nil {
		total := *selected.OverUnder
		entry.Total = &total
	}
	if !entry.Favorite.Valid() {
		return domain.OddsEntry{}, domain.ErrInvalidOdds
	}
	return entry, nil
}

// pickItem applies the provider preference.
func pickItem(items []OddsItem, preferred string) *OddsItem {
	for i := range items {
		item := &items[i]
		if item.Spread == nil {
			continue
		}
		if strings.EqualFold(item.Provider.Name, preferred) {
			return item
		}
	}
	for i := range items {
		if items[i].Spread != nil {
			return &items[i]
		}
	}
	return nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
