package domain

import "time"

// EventStatus is the schedule source's lifecycle marker for an event.
type EventStatus string

const (
	EventStatusScheduled  EventStatus = "scheduled"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusFinal      EventStatus = "final"
)

// Event is one scheduled game. Events are created once per schedule fetch and
// are immutable for the rest of the run; odds are attached by the pipeline
// after reconciliation.
type Event struct {
	ID            string // schedule source event id
	CompetitionID string // sub-competition id used by the odds endpoint
	StartUTC      time.Time
	StartLocal    time.Time // local-zone projection, used only for day-of-week and display
	Home          Team
	Away          Team
	Status        EventStatus
	Odds          OddsEntry
}

// Favorite returns the team the attached odds mark as the favorite.
func (e Event) Favorite() Team {
	if e.Odds.Favorite == SideAway {
		return e.Away
	}
	return e.Home
}

// Underdog returns the team opposite the favorite.
func (e Event) Underdog() Team {
	if e.Odds.Favorite == SideAway {
		return e.Home
	}
	return e.Away
}

// FavoriteIsHome reports whether the favorite is the home team.
func (e Event) FavoriteIsHome() bool {
	return e.Odds.Favorite == SideHome
}

// Weekday returns the local-zone day of week, the projection used by the
// schedule filters and the tie-breaker selection.
func (e Event) Weekday() time.Weekday {
	return e.StartLocal.Weekday()
}

// Matchup renders "Away @ Home" for logs and summaries.
func (e Event) Matchup() string {
	return e.Away.DisplayName + " @ " + e.Home.DisplayName
}
