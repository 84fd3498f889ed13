package names

import (
	"sort"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kansas City Chiefs", "kansascitychiefs"},
		{"kansas-city CHIEFS", "kansascitychiefs"},
		{"St. Louis", "stlouis"},
		{"49ers", "49ers"},
		{"  ", ""},
		{"", ""},
		{"L.A. Chargers!", "lachargers"},
	}
	for _, tt := range tests {
		if got := Canonical(tt.in); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	inputs := []string{"New England Patriots", "TB Buccaneers", "washington", "½ pk"}
	for _, in := range inputs {
		once := Canonical(in)
		if twice := Canonical(once); twice != once {
			t.Errorf("Canonical not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestTeamAliases(t *testing.T) {
	team := TeamSource{
		Location:     "Kansas City",
		DisplayName:  "Kansas City Chiefs",
		Name:         "Chiefs",
		ShortName:    "Chiefs",
		Abbreviation: "KC",
	}

	got := TeamAliases(team)
	want := map[string]bool{
		"kansascity":       true,
		"kansascitychiefs": true,
		"chiefs":           true,
		"kc":               true,
		"kcchiefs":         true,
	}
	gotSet := map[string]bool{}
	for _, a := range got {
		gotSet[a] = true
	}
	for alias := range want {
		if !gotSet[alias] {
			t.Errorf("TeamAliases missing %q, got %v", alias, got)
		}
	}

	// Every alias must already be canonical.
	for _, a := range got {
		if Canonical(a) != a {
			t.Errorf("alias %q is not in canonical form", a)
		}
	}

	// No duplicates.
	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			t.Errorf("duplicate alias %q", sorted[i])
		}
	}
}

func TestTeamAliasesOrderAndNonEmpty(t *testing.T) {
	team := TeamSource{Location: "Buffalo", DisplayName: "Buffalo Bills", Name: "Bills", Abbreviation: "BUF"}
	got := TeamAliases(team)
	if len(got) == 0 {
		t.Fatal("expected non-empty alias set for team with name fields")
	}
	if got[0] != "buffalo" {
		t.Errorf("expected location alias first, got %q", got[0])
	}
}

func TestTeamAliasesEmptyTeam(t *testing.T) {
	if got := TeamAliases(TeamSource{}); len(got) != 0 {
		t.Errorf("expected no aliases for empty team, got %v", got)
	}
}

func TestTeamAliasesShortAbbreviation(t *testing.T) {
	// A two-letter abbreviation must not panic the first-two-letters rule.
	team := TeamSource{Name: "Rams", Abbreviation: "LA"}
	got := ToSet(TeamAliases(team))
	if _, ok := got["larams"]; !ok {
		t.Errorf("expected larams alias, got %v", got)
	}
}

func TestLabelAliases(t *testing.T) {
	got := LabelAliases("New England Patriots")
	for _, want := range []string{"newenglandpatriots", "new", "england", "patriots", "englandpatriots"} {
		if _, ok := got[want]; !ok {
			t.Errorf("LabelAliases missing %q, got %v", want, got)
		}
	}
}

func TestLabelAliasesSlash(t *testing.T) {
	got := LabelAliases("LA/Los Angeles Chargers")
	for _, want := range []string{"la", "chargers", "angeleschargers"} {
		if _, ok := got[want]; !ok {
			t.Errorf("LabelAliases missing %q, got %v", want, got)
		}
	}
}

func TestLabelAliasesEmpty(t *testing.T) {
	if got := LabelAliases("  "); len(got) != 0 {
		t.Errorf("expected empty set, got %v", got)
	}
}

func TestIntersects(t *testing.T) {
	a := ToSet([]string{"chiefs", "kansascity"})
	b := LabelAliases("Kansas City")
	if !Intersects(a, b) {
		t.Error("expected intersection between team aliases and label aliases")
	}
	c := LabelAliases("Denver Broncos")
	if Intersects(a, c) {
		t.Error("unexpected intersection with unrelated team")
	}
}
