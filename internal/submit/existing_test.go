package submit

import (
	"strings"
	"testing"

	"github.com/mbarrett/pickslip/internal/domain"
)

const savedPicksPage = `<html><body><form>
<table>
  <tr>
    <td><input type="radio" name="g1" value="v" checked></td>
    <td class="lineitem">Buffalo Bills</td>
    <td>17</td>
    <td><input type="radio" name="g1" value="h"></td>
    <td class="lineitem">Kansas City Chiefs</td>
    <td><input type="text" name="g1_pts" value="16"></td>
  </tr>
  <tr>
    <td><input type="radio" name="g2" value="v"></td>
    <td class="lineitem">Chicago Bears</td>
    <td>12</td>
    <td><input type="radio" name="g2" value="h" checked></td>
    <td class="lineitem">Green Bay Packers</td>
    <td><input type="text" name="g2_pts" value="15"></td>
  </tr>
  <tr>
    <td><input type="radio" name="g3" value="v"></td>
    <td class="lineitem">Miami Dolphins</td>
    <td>3</td>
    <td><input type="radio" name="g3" value="h"></td>
    <td class="lineitem">New York Jets</td>
    <td><input type="text" name="g3_pts" value=""></td>
  </tr>
  <tr>
    <td>Monday total</td>
    <td><input type="text" name="tb_total" value="45"></td>
  </tr>
</table>
</form></body></html>`

func TestParseExisting(t *testing.T) {
	sub, err := ParseExisting(strings.NewReader(savedPicksPage))
	if err != nil {
		t.Fatalf("ParseExisting: %v", err)
	}

	// The unchecked dolphins/jets row carries no selection and is dropped.
	if len(sub.Picks) != 2 {
		t.Fatalf("want 2 saved picks, got %d: %+v", len(sub.Picks), sub.Picks)
	}

	first := sub.Picks[0]
	if first.Visitor != "Buffalo Bills" || first.Home != "Kansas City Chiefs" {
		t.Errorf("first row teams: %+v", first)
	}
	if first.Selected != "Buffalo Bills" {
		t.Errorf("checked visitor radio means the visitor is selected: %q", first.Selected)
	}
	if first.Points == nil || *first.Points != 16 {
		t.Errorf("first row points: %v", first.Points)
	}

	second := sub.Picks[1]
	if second.Selected != "Green Bay Packers" {
		t.Errorf("checked home radio means the home side is selected: %q", second.Selected)
	}

	if sub.TieBreaker == nil || *sub.TieBreaker != 45 {
		t.Errorf("tie-breaker: %v", sub.TieBreaker)
	}
}

func TestParseExistingNoPicks(t *testing.T) {
	sub, err := ParseExisting(strings.NewReader("<html><body><p>week not open</p></body></html>"))
	if err != nil {
		t.Fatalf("ParseExisting: %v", err)
	}
	if len(sub.Picks) != 0 || sub.TieBreaker != nil {
		t.Errorf("empty page must yield an empty submission: %+v", sub)
	}
}

func slatePick(home, away domain.Team, points int, selection domain.Selection, favorite domain.Side) domain.Pick {
	return domain.Pick{
		Event: domain.Event{
			Home: home,
			Away: away,
			Odds: domain.OddsEntry{Spread: 3, Favorite: favorite},
		},
		Points:    points,
		Selection: selection,
	}
}

func namedTeam(location, name, abbr string) domain.Team {
	return domain.Team{
		Location:     location,
		Name:         name,
		DisplayName:  location + " " + name,
		Abbreviation: abbr,
	}
}

func TestCompareMatchingSlate(t *testing.T) {
	chiefs := namedTeam("Kansas City", "Chiefs", "KC")
	bills := namedTeam("Buffalo", "Bills", "BUF")

	picks := []domain.Pick{
		// Favorite is away, so the slate backs the bills, matching the site.
		slatePick(chiefs, bills, 16, domain.SelectFavorite, domain.SideAway),
	}
	existing := Submission{Picks: []GamePick{{
		Visitor: "Buffalo Bills", Home: "Kansas City Chiefs", Selected: "Buffalo Bills", Points: intPtr(16),
	}}}

	out := Compare(picks, existing, nil)
	if out != "Existing comparison: site picks already match the computed selections." {
		t.Errorf("matching slate: %q", out)
	}
}

func TestCompareDifferences(t *testing.T) {
	chiefs := namedTeam("Kansas City", "Chiefs", "KC")
	bills := namedTeam("Buffalo", "Bills", "BUF")
	packers := namedTeam("Green Bay", "Packers", "GB")
	bears := namedTeam("Chicago", "Bears", "CHI")

	picks := []domain.Pick{
		slatePick(chiefs, bills, 16, domain.SelectFavorite, domain.SideHome),
		slatePick(packers, bears, 15, domain.SelectFavorite, domain.SideHome),
	}
	site := Submission{
		Picks: []GamePick{
			// Site backs the bills; the slate backs the chiefs.
			{Visitor: "Buffalo Bills", Home: "Kansas City Chiefs", Selected: "Buffalo Bills", Points: intPtr(16)},
			// Same winner, different points.
			{Visitor: "Chicago Bears", Home: "Green Bay Packers", Selected: "Green Bay Packers", Points: intPtr(10)},
		},
		TieBreaker: intPtr(41),
	}

	tie := 45
	out := Compare(picks, site, &tie)

	if !strings.Contains(out, "site has Buffalo Bills") || !strings.Contains(out, "prefers Kansas City Chiefs") {
		t.Errorf("winner diff missing:\n%s", out)
	}
	if !strings.Contains(out, "same winner Green Bay Packers") || !strings.Contains(out, "site points 10 vs computed 15") {
		t.Errorf("points diff missing:\n%s", out)
	}
	if !strings.Contains(out, "site total 41, computed total 45") {
		t.Errorf("tie-breaker diff missing:\n%s", out)
	}
}

func TestCompareUnmatchedRows(t *testing.T) {
	chiefs := namedTeam("Kansas City", "Chiefs", "KC")
	bills := namedTeam("Buffalo", "Bills", "BUF")

	picks := []domain.Pick{
		slatePick(chiefs, bills, 16, domain.SelectFavorite, domain.SideHome),
	}
	site := Submission{Picks: []GamePick{
		{Visitor: "Miami Dolphins", Home: "New York Jets", Selected: "New York Jets", Points: intPtr(5)},
	}}

	out := Compare(picks, site, nil)
	if !strings.Contains(out, "not found in computed slate") {
		t.Errorf("site-only row missing:\n%s", out)
	}
	if !strings.Contains(out, "no site pick detected") {
		t.Errorf("slate-only row missing:\n%s", out)
	}
}

func TestCompareEmptySite(t *testing.T) {
	out := Compare(nil, Submission{TieBreaker: intPtr(44)}, nil)
	if out != "Existing comparison: no current picks found on the site (tie-breaker total 44)." {
		t.Errorf("empty site: %q", out)
	}
}

func TestParseWeekForm(t *testing.T) {
	games, tieSelector, err := parseWeekForm(savedPicksPage)
	if err != nil {
		t.Fatalf("parseWeekForm: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("want 3 form rows, got %d", len(games))
	}
	if games[0].radios[0].team != "Buffalo Bills" || games[0].radios[1].team != "Kansas City Chiefs" {
		t.Errorf("row teams: %+v", games[0].radios)
	}
	if games[0].radios[0].selector != `input[type="radio"][name="g1"][value="v"]` {
		t.Errorf("radio selector: %q", games[0].radios[0].selector)
	}
	if games[0].pointsName != "g1_pts" {
		t.Errorf("points input: %q", games[0].pointsName)
	}
	if tieSelector != `input[name="tb_total"]` {
		t.Errorf("tie-breaker selector: %q", tieSelector)
	}
}

func intPtr(v int) *int { return &v }
