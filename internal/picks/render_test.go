package picks

import (
	"strings"
	"testing"
	"time"

	"github.com/mbarrett/pickslip/internal/domain"
)

func TestRenderTable(t *testing.T) {
	kickoff := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	picks := []domain.Pick{
		{
			Event: domain.Event{
				Home:       domain.Team{DisplayName: "Kansas City Chiefs", Abbreviation: "KC"},
				Away:       domain.Team{DisplayName: "Buffalo Bills", Abbreviation: "BUF"},
				StartLocal: kickoff,
				Odds: domain.OddsEntry{
					Spread:   3.5,
					Total:    total(47.5),
					Provider: "FanDuel via The Odds API",
					Favorite: domain.SideHome,
					Origin:   domain.OriginPrimary,
				},
			},
			Points:    16,
			Selection: domain.SelectFavorite,
		},
		{
			Event: domain.Event{
				Home:       domain.Team{DisplayName: "Green Bay Packers", Abbreviation: "GB"},
				Away:       domain.Team{DisplayName: "Chicago Bears", Abbreviation: "CHI"},
				StartLocal: kickoff,
				Odds: domain.OddsEntry{
					Spread:   0,
					Provider: "Green Bay Packers (assumed favourite due to missing odds)",
					Favorite: domain.SideHome,
					Origin:   domain.OriginAssumed,
				},
			},
			Points:    15,
			Selection: domain.SelectUnderdog,
		},
	}

	out := RenderTable(picks)

	if !strings.Contains(out, "Kansas City Chiefs (KC) -3.5") {
		t.Errorf("favorite row missing:\n%s", out)
	}
	if !strings.Contains(out, "vs Buffalo Bills (BUF)") {
		t.Errorf("home selection must read vs opponent:\n%s", out)
	}
	if !strings.Contains(out, "Chicago Bears (CHI) +0") {
		t.Errorf("underdog row must carry a plus label:\n%s", out)
	}
	if !strings.Contains(out, "47.5") {
		t.Errorf("total column missing:\n%s", out)
	}
	if !strings.Contains(out, "--") {
		t.Errorf("missing total must render as --:\n%s", out)
	}
	if !strings.Contains(out, "*") || !strings.Contains(out, "verify before submitting") {
		t.Errorf("assumed rows need the footnote marker:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(nil); got != "No games available after filtering." {
		t.Errorf("empty table: %q", got)
	}
}

func TestRenderTieBreaker(t *testing.T) {
	kickoff := time.Date(2025, 9, 8, 20, 15, 0, 0, time.UTC)
	tb := domain.TieBreaker{
		State: domain.TieBreakerResolved,
		Events: []domain.Event{{
			Home:       domain.Team{DisplayName: "Kansas City Chiefs"},
			Away:       domain.Team{DisplayName: "Buffalo Bills"},
			StartLocal: kickoff,
			Odds:       domain.OddsEntry{Total: total(44.5)},
		}},
		CombinedTotal: 44.5,
		Value:         45,
	}

	out := RenderTieBreaker(tb, "Monday", nil)
	if !strings.Contains(out, "Buffalo Bills @ Kansas City Chiefs") ||
		!strings.Contains(out, "Combined O/U 44.5") ||
		!strings.Contains(out, "Total pick 45") {
		t.Errorf("resolved line: %q", out)
	}

	override := 48
	if out := RenderTieBreaker(tb, "Monday", &override); !strings.Contains(out, "Total pick 48") {
		t.Errorf("override must replace the computed value: %q", out)
	}

	none := RenderTieBreaker(domain.TieBreaker{State: domain.TieBreakerNone}, "Monday", nil)
	if none != "No Monday game found for tie-breaker." {
		t.Errorf("none state: %q", none)
	}

	indet := RenderTieBreaker(domain.TieBreaker{State: domain.TieBreakerIndeterminate}, "Monday", nil)
	if !strings.Contains(indet, "missing a listed total") {
		t.Errorf("indeterminate state: %q", indet)
	}
}
