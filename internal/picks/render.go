package picks

import (
	"fmt"
	"strings"

	"github.com/mbarrett/pickslip/internal/domain"
)

const kickoffFormat = "Mon 01/02 03:04 PM"

// RenderTable formats the slate as a fixed-width console table, one row per
// pick in points order. Assumed and degraded odds rows are marked with a
// trailing asterisk on the provider and explained in a footnote.
func RenderTable(picks []domain.Pick) string {
	if len(picks) == 0 {
		return "No games available after filtering."
	}

	header := fmt.Sprintf("%3s  %3s  %-40s  %-30s  %-18s  %5s  %s",
		"Idx", "Pts", "Pick (spread)", "Opponent", "Kickoff", "O/U", "Provider")
	lines := []string{header, strings.Repeat("-", len(header))}

	flagged := false
	for i, pick := range picks {
		event := pick.Event
		chosen := pick.SelectedTeam()
		opponent := pick.OpponentTeam()

		verb := "@"
		if pick.SelectedIsHome() {
			verb = "vs"
		}

		ou := "--"
		if event.Odds.HasTotal() {
			ou = fmt.Sprintf("%g", *event.Odds.Total)
		}

		provider := event.Odds.Provider
		if event.Odds.Origin == domain.OriginAssumed || event.Odds.Origin == domain.OriginDegraded {
			provider += " *"
			flagged = true
		}

		selection := fmt.Sprintf("%s (%s) %s", chosen.DisplayName, chosen.Abbreviation, pick.SpreadLabel())
		opposition := fmt.Sprintf("%s %s (%s)", verb, opponent.DisplayName, opponent.Abbreviation)

		lines = append(lines, fmt.Sprintf("%3d  %3d  %-40s  %-30s  %-18s  %5s  %s",
			i+1, pick.Points, selection, opposition,
			event.StartLocal.Format(kickoffFormat), ou, provider))
	}

	if flagged {
		lines = append(lines, "", "* odds matched loosely or assumed; verify before submitting")
	}

	return strings.Join(lines, "\n")
}

// RenderTieBreaker formats the tie-breaker line shown under the table. An
// override value, when set, replaces the computed pick in the display.
func RenderTieBreaker(tb domain.TieBreaker, day string, override *int) string {
	switch tb.State {
	case domain.TieBreakerNone:
		return fmt.Sprintf("No %s game found for tie-breaker.", day)
	case domain.TieBreakerIndeterminate:
		return fmt.Sprintf("Tie-breaker: at least one %s game is missing a listed total; please check manually.", day)
	}

	details := make([]string, 0, len(tb.Events))
	for _, event := range tb.Events {
		detail := fmt.Sprintf("%s (O/U %g, %s)",
			event.Matchup(), *event.Odds.Total, event.StartLocal.Format(kickoffFormat))
		details = append(details, detail)
	}

	value := tb.Value
	if override != nil {
		value = *override
	}

	return fmt.Sprintf("Tie-breaker (%s): %s | Combined O/U %g | Total pick %d",
		day, strings.Join(details, " | "), tb.CombinedTotal, value)
}
