package espn

import (
	"testing"
	"time"

	"github.com/mbarrett/pickslip/internal/domain"
)

func TestParseSchedule(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	sb := &Scoreboard{Events: []ScoreboardEvent{
		{
			ID: "401547401",
			Competitions: []Competition{{
				ID:   "401547401",
				Date: "2025-09-08T00:20Z",
				Competitors: []Competitor{
					{HomeAway: "home", Team: Team{DisplayName: "Buffalo Bills", Location: "Buffalo", Name: "Bills", Abbreviation: "BUF"}},
					{HomeAway: "away", Team: Team{DisplayName: "New York Jets", Location: "New York", Name: "Jets", Abbreviation: "NYJ"}},
				},
				Status: Status{Type: StatusType{State: "pre"}},
			}},
		},
		// Missing competitors: skipped, not fatal.
		{ID: "bad", Competitions: []Competition{{ID: "bad", Date: "2025-09-08T00:20Z"}}},
		// Missing date: skipped.
		{ID: "nodate", Competitions: []Competition{{ID: "nodate", Competitors: []Competitor{
			{HomeAway: "home"}, {HomeAway: "away"},
		}}}},
	}}

	events := ParseSchedule(sb, loc)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	e := events[0]
	if e.Home.DisplayName != "Buffalo Bills" || e.Away.DisplayName != "New York Jets" {
		t.Errorf("unexpected teams: %s vs %s", e.Home.DisplayName, e.Away.DisplayName)
	}
	if e.Status != domain.EventStatusScheduled {
		t.Errorf("status = %q, want scheduled", e.Status)
	}
	// 00:20 UTC on Monday Sep 8 is 20:20 Sunday in New York.
	if e.Weekday() != time.Sunday {
		t.Errorf("local weekday = %v, want Sunday", e.Weekday())
	}
	if !e.StartUTC.Equal(time.Date(2025, 9, 8, 0, 20, 0, 0, time.UTC)) {
		t.Errorf("unexpected kickoff %v", e.StartUTC)
	}
}

func TestParseKickoffLayouts(t *testing.T) {
	for _, s := range []string{"2025-09-08T00:20Z", "2025-09-08T00:20:00Z"} {
		if _, err := parseKickoff(s); err != nil {
			t.Errorf("parseKickoff(%q): %v", s, err)
		}
	}
	if _, err := parseKickoff("not-a-date"); err == nil {
		t.Error("expected error for malformed kickoff")
	}
}
