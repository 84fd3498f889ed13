package scrape

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mbarrett/pickslip/internal/domain"
	"github.com/mbarrett/pickslip/internal/match"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func team(location, name string) domain.Team {
	return domain.Team{
		Location:    location,
		Name:        name,
		DisplayName: location + " " + name,
	}
}

var weekEvents = []domain.Event{
	{ID: "1", Home: team("Kansas City", "Chiefs"), Away: team("Buffalo", "Bills")},
	{ID: "2", Home: team("Denver", "Broncos"), Away: team("Las Vegas", "Raiders")},
	{ID: "3", Home: team("Green Bay", "Packers"), Away: team("Chicago", "Bears")},
}

const weekPage = `<html><body>
<table>
  <thead><tr><th>Team</th><th>Record</th></tr></thead>
  <tbody><tr><td>Chiefs</td><td>3-0</td></tr></tbody>
</table>
<table>
  <thead><tr><th>Game</th><th>Spread</th><th>Moneyline</th><th>Total</th></tr></thead>
  <tbody>
    <tr>
      <td>Bills vs. Chiefs (CBS, 4:25 PM)</td>
      <td>Chiefs -3½</td>
      <td>-170</td>
      <td>O 47½</td>
    </tr>
    <tr>
      <td>Broncos vs Raiders</td>
      <td>Broncos +2.5</td>
      <td>+120</td>
      <td>O 41</td>
    </tr>
    <tr>
      <td>Bears vs. Packers</td>
      <td>Packers PK</td>
      <td>-110</td>
      <td>check back</td>
    </tr>
    <tr>
      <td>Dolphins vs. Jets</td>
      <td>Jets -1</td>
      <td>-105</td>
      <td>O 38</td>
    </tr>
    <tr><td>malformed row</td><td></td></tr>
  </tbody>
</table>
</body></html>`

func TestParseFallback(t *testing.T) {
	lookup, err := ParseFallback(strings.NewReader(weekPage), weekEvents, discard)
	if err != nil {
		t.Fatalf("ParseFallback: %v", err)
	}
	if len(lookup) != 3 {
		t.Fatalf("want 3 parsed rows, got %d: %v", len(lookup), lookup)
	}

	entry, ok := lookup[match.Key(weekEvents[0])]
	if !ok {
		t.Fatal("chiefs/bills row missing")
	}
	if entry.Spread != 3.5 || entry.Favorite != domain.SideHome {
		t.Errorf("chiefs row: %+v", entry)
	}
	if entry.Total == nil || *entry.Total != 47.5 {
		t.Errorf("chiefs total: %v", entry.Total)
	}
	if entry.Provider != "bet365 via SportsbookReview" {
		t.Errorf("provider: %q", entry.Provider)
	}
	if entry.Origin != domain.OriginFallback {
		t.Errorf("origin: %q", entry.Origin)
	}
}

func TestParseFallbackSwappedRow(t *testing.T) {
	lookup, err := ParseFallback(strings.NewReader(weekPage), weekEvents, discard)
	if err != nil {
		t.Fatalf("ParseFallback: %v", err)
	}

	// The broncos row lists them as the away side while the schedule has
	// them at home, so the record is keyed in the row's orientation.
	key := match.Key(weekEvents[1]).Swapped()
	entry, ok := lookup[key]
	if !ok {
		t.Fatalf("expected swapped key for broncos row, have %v", lookup)
	}
	// Broncos +2.5 makes the raiders the favorite, the row's home side.
	if entry.Favorite != domain.SideHome || entry.Spread != 2.5 {
		t.Errorf("broncos row: %+v", entry)
	}
	if entry.Total == nil || *entry.Total != 41 {
		t.Errorf("broncos total: %v", entry.Total)
	}
}

func TestParseFallbackPickEm(t *testing.T) {
	lookup, err := ParseFallback(strings.NewReader(weekPage), weekEvents, discard)
	if err != nil {
		t.Fatalf("ParseFallback: %v", err)
	}

	entry, ok := lookup[match.Key(weekEvents[2])]
	if !ok {
		t.Fatal("packers/bears row missing")
	}
	if entry.Spread != 0 || entry.Favorite != domain.SideHome {
		t.Errorf("PK row must favor the named team at zero: %+v", entry)
	}
	if entry.Total != nil {
		t.Errorf("non-numeric total cell must stay nil, got %v", *entry.Total)
	}
}

func TestParseFallbackNoTable(t *testing.T) {
	lookup, err := ParseFallback(strings.NewReader("<html><body><p>maintenance</p></body></html>"), weekEvents, discard)
	if err != nil {
		t.Fatalf("ParseFallback: %v", err)
	}
	if len(lookup) != 0 {
		t.Errorf("want empty lookup, got %v", lookup)
	}
}
