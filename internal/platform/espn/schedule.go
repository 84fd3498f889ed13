package espn

import (
	"fmt"
	"time"

	"github.com/mbarrett/pickslip/internal/domain"
)

// ESPN emits kickoff instants both with and without seconds.
var kickoffLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// parseKickoff parses an ESPN date string into UTC.
func parseKickoff(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range kickoffLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("espn: parse kickoff %q: %w", s, lastErr)
}

// statusFor maps the scoreboard status block onto the domain status.
func statusFor(st Status) domain.EventStatus {
	switch st.Type.State {
	case "in":
		return domain.EventStatusInProgress
	case "post":
		return domain.EventStatusFinal
	default:
		return domain.EventStatusScheduled
	}
}

// teamFor converts a scoreboard team record into the domain team.
func teamFor(t Team) domain.Team {
	return domain.Team{
		Location:     t.Location,
		DisplayName:  t.DisplayName,
		Name:         t.Name,
		ShortName:    t.ShortDisplayName,
		Abbreviation: t.Abbreviation,
	}
}

// ParseSchedule converts a scoreboard payload into domain events, projecting
// kickoffs into loc for day-of-week rules. Events missing a kickoff or either
// competitor are skipped rather than failing the whole schedule; an entirely
// empty result is the caller's ErrNoSchedule condition.
func ParseSchedule(sb *Scoreboard, loc *time.Location) []domain.Event {
	events := make([]domain.Event, 0, len(sb.Events))
	for _, ev := range sb.Events {
		if len(ev.Competitions) == 0 {
			continue
		}
		comp := ev.Competitions[0]

		dateStr := comp.Date
		if dateStr == "" {
			dateStr = ev.Date
		}
		if dateStr == "" {
			continue
		}
		startUTC, err := parseKickoff(dateStr)
		if err != nil {
			continue
		}

		var home, away *Competitor
		for i := range comp.Competitors {
			switch comp.Competitors[i].HomeAway {
			case "home":
				home = &comp.Competitors[i]
			case "away":
				away = &comp.Competitors[i]
			}
		}
		if home == nil || away == nil {
			continue
		}

		events = append(events, domain.Event{
			ID:            ev.ID,
			CompetitionID: comp.ID,
			StartUTC:      startUTC,
			StartLocal:    startUTC.In(loc),
			Home:          teamFor(home.Team),
			Away:          teamFor(away.Team),
			Status:        statusFor(comp.Status),
		})
	}
	return events
}
