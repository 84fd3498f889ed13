package picks

import (
	"testing"
	"time"

	"github.com/mbarrett/pickslip/internal/domain"
)

func dayEvent(id string, start time.Time, total *float64) domain.Event {
	return domain.Event{
		ID:         id,
		StartUTC:   start,
		StartLocal: start,
		Home:       domain.Team{DisplayName: "Home " + id},
		Away:       domain.Team{DisplayName: "Away " + id},
		Odds:       domain.OddsEntry{Spread: 3, Favorite: domain.SideHome, Total: total},
	}
}

func total(v float64) *float64 { return &v }

// 2025-09-08 is a Monday.
var monday = time.Date(2025, 9, 8, 20, 15, 0, 0, time.UTC)

func TestTieBreakerSingleGame(t *testing.T) {
	events := []domain.Event{
		dayEvent("sun", monday.AddDate(0, 0, -1), total(50)),
		dayEvent("mon", monday, total(44.5)),
	}

	tb := TieBreaker(events, time.Monday)
	if !tb.Resolved() {
		t.Fatalf("state: %q", tb.State)
	}
	if len(tb.Events) != 1 || tb.Events[0].ID != "mon" {
		t.Fatalf("selected events: %+v", tb.Events)
	}
	if tb.CombinedTotal != 44.5 {
		t.Errorf("combined: %g", tb.CombinedTotal)
	}
	if tb.Value != 45 {
		t.Errorf("44.5 must round up to 45, got %d", tb.Value)
	}
}

func TestTieBreakerDoubleHeader(t *testing.T) {
	events := []domain.Event{
		dayEvent("late", monday.Add(3*time.Hour), total(40.0)),
		dayEvent("early", monday, total(43.5)),
	}

	tb := TieBreaker(events, time.Monday)
	if !tb.Resolved() {
		t.Fatalf("state: %q", tb.State)
	}
	if tb.Events[0].ID != "early" || tb.Events[1].ID != "late" {
		t.Errorf("events must come back in kickoff order: %s, %s", tb.Events[0].ID, tb.Events[1].ID)
	}
	if tb.CombinedTotal != 83.5 || tb.Value != 84 {
		t.Errorf("combined %g rounds to %d, want 83.5 -> 84", tb.CombinedTotal, tb.Value)
	}
}

func TestTieBreakerMissingTotal(t *testing.T) {
	events := []domain.Event{
		dayEvent("a", monday, total(44.5)),
		dayEvent("b", monday.Add(3*time.Hour), nil),
	}

	tb := TieBreaker(events, time.Monday)
	if tb.State != domain.TieBreakerIndeterminate {
		t.Fatalf("state: %q", tb.State)
	}
	if len(tb.Events) != 2 {
		t.Errorf("indeterminate result still lists the day's events, got %d", len(tb.Events))
	}
	if tb.Resolved() {
		t.Error("indeterminate must not report resolved")
	}
}

func TestTieBreakerNoGames(t *testing.T) {
	events := []domain.Event{
		dayEvent("sun", monday.AddDate(0, 0, -1), total(50)),
	}

	tb := TieBreaker(events, time.Monday)
	if tb.State != domain.TieBreakerNone {
		t.Fatalf("state: %q", tb.State)
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{44.5, 45},
		{83.5, 84},
		{44.4, 44},
		{44.6, 45},
		{41.0, 41},
		{0.5, 1},
	}
	for _, tc := range cases {
		if got := roundHalfUp(tc.in); got != tc.want {
			t.Errorf("roundHalfUp(%g) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
