// Package odds builds per-source odds lookups keyed by canonical team pairs
// and reconciles them into the single merged view the pick engine consumes.
package odds

import (
	"log/slog"
	"strings"

	"github.com/mbarrett/pickslip/internal/domain"
	"github.com/mbarrett/pickslip/internal/match"
	"github.com/mbarrett/pickslip/internal/names"
	"github.com/mbarrett/pickslip/internal/platform/oddsapi"
)

// Lookup maps a canonical (home, away) pair to the resolved entry for that
// event from one source. Lookups are built once per run and read-only
// afterwards.
type Lookup map[domain.EventKey]domain.OddsEntry

// BuildLookup correlates The Odds API's plain-text events with the schedule
// and extracts one entry per matched event. Candidates are tried in listing
// order and consumed on use so two schedule events can never claim the same
// API event. Events that only match on the home side are taken through the
// loose path and tagged degraded. Events with no usable spread market are
// skipped entirely; absence here is what later triggers the fallback chain.
func BuildLookup(events []domain.Event, apiEvents []oddsapi.APIEvent, bookmakers []string, logger *slog.Logger) Lookup {
	type candidate struct {
		raw   oddsapi.APIEvent
		sides match.Sides
	}

	pool := make([]candidate, 0, len(apiEvents))
	for _, ae := range apiEvents {
		if ae.HomeTeam == "" || ae.AwayTeam == "" {
			continue
		}
		pool = append(pool, candidate{
			raw: ae,
			sides: match.Sides{
				Home: names.LabelAliases(ae.HomeTeam),
				Away: names.LabelAliases(ae.AwayTeam),
			},
		})
	}

	lookup := make(Lookup, len(events))

	for _, event := range events {
		target := match.EventSides(event)

		poolSides := make([]match.Sides, len(pool))
		for i := range pool {
			poolSides[i] = pool[i].sides
		}

		origin := domain.OriginPrimary
		res := match.Find(target, poolSides)
		if !res.Found() {
			res = match.FindLoose(target, poolSides)
			if !res.Found() {
				continue
			}
			origin = domain.OriginDegraded
			logger.Warn("degraded odds match on home team only",
				slog.String("matchup", event.Matchup()),
				slog.String("candidate_home", pool[res.Index].raw.HomeTeam),
			)
		}

		matched := pool[res.Index]
		pool = append(pool[:res.Index], pool[res.Index+1:]...)

		// With a swapped candidate the home/away-relative outcome labels
		// refer to the opposite schedule sides.
		homeAliases, awayAliases := target.Home, target.Away
		if res.Swapped {
			homeAliases, awayAliases = awayAliases, homeAliases
		}

		entry, ok := extractEntry(matched.raw, bookmakers, homeAliases, awayAliases)
		if !ok {
			continue
		}
		if res.Swapped {
			entry.Favorite = entry.Favorite.Opposite()
		}
		if origin == domain.OriginDegraded {
			entry.Origin = origin
		}

		lookup[match.Key(event)] = entry
	}

	return lookup
}

// extractEntry pulls spread and total out of one API event using the
// bookmaker preference order. Reports ok=false when no bookmaker listed a
// directional spread, which excludes the record rather than defaulting it.
func extractEntry(raw oddsapi.APIEvent, bookmakers []string, homeAliases, awayAliases map[string]struct{}) (domain.OddsEntry, bool) {
	book := selectBookmaker(raw.Bookmakers, bookmakers)
	if book == nil {
		return domain.OddsEntry{}, false
	}

	var spreads, totals *oddsapi.Market
	for i := range book.Markets {
		switch book.Markets[i].Key {
		case "spreads":
			spreads = &book.Markets[i]
		case "totals":
			totals = &book.Markets[i]
		}
	}
	if spreads == nil {
		return domain.OddsEntry{}, false
	}

	var favorite domain.Side
	var magnitude float64
	for _, outcome := range spreads.Outcomes {
		if outcome.Point == nil || outcome.Name == "" {
			continue
		}
		point := *outcome.Point
		outAliases := names.LabelAliases(outcome.Name)
		switch {
		case names.Intersects(outAliases, homeAliases):
			if point < 0 {
				favorite, magnitude = domain.SideHome, -point
			} else if point > 0 && favorite == "" {
				favorite, magnitude = domain.SideAway, point
			}
		case names.Intersects(outAliases, awayAliases):
			if point < 0 {
				favorite, magnitude = domain.SideAway, -point
			} else if point > 0 && favorite == "" {
				favorite, magnitude = domain.SideHome, point
			}
		}
	}
	if !favorite.Valid() {
		return domain.OddsEntry{}, false
	}

	entry := domain.OddsEntry{
		Spread:   magnitude,
		Provider: bookTitle(book) + " via The Odds API",
		Favorite: favorite,
		Origin:   domain.OriginPrimary,
	}

	if totals != nil {
		for _, outcome := range totals.Outcomes {
			if strings.EqualFold(outcome.Name, "over") && outcome.Point != nil {
				total := *outcome.Point
				entry.Total = &total
				break
			}
		}
	}

	return entry, true
}

// selectBookmaker returns the first preferred bookmaker present, else the
// first listed, else nil.
func selectBookmaker(books []oddsapi.Bookmaker, preferred []string) *oddsapi.Bookmaker {
	for _, want := range preferred {
		for i := range books {
			if strings.EqualFold(books[i].Key, want) {
				return &books[i]
			}
		}
	}
	if len(books) > 0 {
		return &books[0]
	}
	return nil
}

func bookTitle(b *oddsapi.Bookmaker) string {
	if b.Title != "" {
		return b.Title
	}
	if b.Key != "" {
		return b.Key
	}
	return "The Odds API"
}

// AssumedEntry is the last-resort entry for an event no source covered: the
// home team is assumed favorite at a zero spread, and the entry is tagged so
// downstream display flags it as a guess rather than data.
func AssumedEntry(home domain.Team) domain.OddsEntry {
	label := home.DisplayName
	if label == "" {
		label = home.Name
	}
	if label == "" {
		label = "Home"
	}
	return domain.OddsEntry{
		Spread:   0,
		Provider: label + " (assumed favourite due to missing odds)",
		Favorite: domain.SideHome,
		Origin:   domain.OriginAssumed,
		Note:     "no source listed odds for this event; home team assumed favorite",
	}
}
