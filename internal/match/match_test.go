package match

import (
	"testing"

	"github.com/mbarrett/pickslip/internal/domain"
	"github.com/mbarrett/pickslip/internal/names"
)

var (
	chiefs = domain.Team{
		Location: "Kansas City", DisplayName: "Kansas City Chiefs",
		Name: "Chiefs", ShortName: "Chiefs", Abbreviation: "KC",
	}
	bills = domain.Team{
		Location: "Buffalo", DisplayName: "Buffalo Bills",
		Name: "Bills", ShortName: "Bills", Abbreviation: "BUF",
	}
	broncos = domain.Team{
		Location: "Denver", DisplayName: "Denver Broncos",
		Name: "Broncos", ShortName: "Broncos", Abbreviation: "DEN",
	}
)

func sidesFromLabels(home, away string) Sides {
	return Sides{
		Home: names.LabelAliases(home),
		Away: names.LabelAliases(away),
	}
}

func TestFindDirect(t *testing.T) {
	target := EventSides(domain.Event{Home: chiefs, Away: bills})
	pool := []Sides{
		sidesFromLabels("Denver Broncos", "Las Vegas Raiders"),
		sidesFromLabels("Kansas City Chiefs", "Buffalo Bills"),
	}

	res := Find(target, pool)
	if !res.Found() || res.Index != 1 {
		t.Fatalf("expected match at index 1, got %+v", res)
	}
	if res.Swapped {
		t.Error("direct orientation should not be swapped")
	}
}

func TestFindSwapped(t *testing.T) {
	// Candidate lists the matchup in the opposite orientation.
	target := EventSides(domain.Event{Home: chiefs, Away: bills})
	pool := []Sides{sidesFromLabels("Buffalo Bills", "Kansas City Chiefs")}

	res := Find(target, pool)
	if !res.Found() {
		t.Fatal("expected swapped match")
	}
	if !res.Swapped {
		t.Error("expected Swapped=true for crossed orientation")
	}
}

func TestFindShortLabels(t *testing.T) {
	// A source that uses bare nicknames must still match.
	target := EventSides(domain.Event{Home: chiefs, Away: bills})
	pool := []Sides{sidesFromLabels("Chiefs", "Bills")}

	if res := Find(target, pool); !res.Found() || res.Swapped {
		t.Fatalf("expected direct nickname match, got %+v", res)
	}
}

func TestFindNoMatch(t *testing.T) {
	target := EventSides(domain.Event{Home: chiefs, Away: bills})
	pool := []Sides{sidesFromLabels("Dallas Cowboys", "Philadelphia Eagles")}

	if res := Find(target, pool); res.Found() {
		t.Fatalf("expected no match, got %+v", res)
	}
}

func TestFindFirstHitWins(t *testing.T) {
	target := EventSides(domain.Event{Home: chiefs, Away: bills})
	pool := []Sides{
		sidesFromLabels("Kansas City Chiefs", "Buffalo Bills"),
		sidesFromLabels("Kansas City Chiefs", "Buffalo Bills"),
	}

	if res := Find(target, pool); res.Index != 0 {
		t.Fatalf("expected first candidate to win, got index %d", res.Index)
	}
}

func TestFindLoose(t *testing.T) {
	target := EventSides(domain.Event{Home: chiefs, Away: bills})
	// Away side is unrecognizable; only the home side lines up.
	pool := []Sides{sidesFromLabels("Kansas City Chiefs", "Somewhere FC")}

	if res := Find(target, pool); res.Found() {
		t.Fatalf("full match should fail, got %+v", res)
	}
	if res := FindLoose(target, pool); !res.Found() {
		t.Fatal("loose match should succeed on the home side")
	}
}

func TestKeyStable(t *testing.T) {
	e := domain.Event{Home: chiefs, Away: broncos}
	k := Key(e)
	if k.Home != "kansascitychiefs" || k.Away != "denverbroncos" {
		t.Fatalf("unexpected key %+v", k)
	}
	if k.Swapped().Home != k.Away || k.Swapped().Away != k.Home {
		t.Error("Swapped must exchange home and away")
	}
}
