package espn

import (
	"errors"
	"testing"

	"github.com/mbarrett/pickslip/internal/domain"
)

func fp(f float64) *float64 { return &f }

func TestExtractOddsHomeFavorite(t *testing.T) {
	items := []OddsItem{
		{Provider: Provider{Name: "ESPN BET"}, Spread: fp(-3.5), OverUnder: fp(47.5)},
	}

	entry, err := ExtractOdds(items, "ESPN BET")
	if err != nil {
		t.Fatalf("ExtractOdds: %v", err)
	}
	if entry.Favorite != domain.SideHome {
		t.Errorf("favorite = %q, want home", entry.Favorite)
	}
	if entry.Spread != 3.5 {
		t.Errorf("spread = %g, want 3.5", entry.Spread)
	}
	if entry.Total == nil || *entry.Total != 47.5 {
		t.Errorf("total = %v, want 47.5", entry.Total)
	}
	if entry.Provider != "ESPN BET via ESPN" {
		t.Errorf("provider = %q", entry.Provider)
	}
}

func TestExtractOddsAwayFavorite(t *testing.T) {
	items := []OddsItem{{Provider: Provider{Name: "DraftKings"}, Spread: fp(6.5)}}

	entry, err := ExtractOdds(items, "ESPN BET")
	if err != nil {
		t.Fatalf("ExtractOdds: %v", err)
	}
	if entry.Favorite != domain.SideAway {
		t.Errorf("favorite = %q, want away", entry.Favorite)
	}
	if entry.Spread != 6.5 {
		t.Errorf("spread = %g, want 6.5", entry.Spread)
	}
	if entry.Total != nil {
		t.Errorf("expected nil total, got %v", *entry.Total)
	}
}

func TestExtractOddsPreferredProviderWins(t *testing.T) {
	items := []OddsItem{
		{Provider: Provider{Name: "DraftKings"}, Spread: fp(-1)},
		{Provider: Provider{Name: "ESPN BET"}, Spread: fp(-2)},
	}

	entry, err := ExtractOdds(items, "espn bet")
	if err != nil {
		t.Fatalf("ExtractOdds: %v", err)
	}
	if entry.Spread != 2 {
		t.Errorf("expected preferred provider's spread 2, got %g", entry.Spread)
	}
}

func TestExtractOddsZeroSpreadFlags(t *testing.T) {
	tests := []struct {
		name string
		item OddsItem
		want domain.Side
	}{
		{
			name: "away flag set",
			item: OddsItem{Spread: fp(0), AwayTeamOdds: SideOdds{Favorite: true}},
			want: domain.SideAway,
		},
		{
			name: "home flag set",
			item: OddsItem{Spread: fp(0), HomeTeamOdds: SideOdds{Favorite: true}},
			want: domain.SideHome,
		},
		{
			name: "no flags defaults home",
			item: OddsItem{Spread: fp(0)},
			want: domain.SideHome,
		},
		{
			name: "both flags defaults home",
			item: OddsItem{Spread: fp(0), HomeTeamOdds: SideOdds{Favorite: true}, AwayTeamOdds: SideOdds{Favorite: true}},
			want: domain.SideHome,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ExtractOdds([]OddsItem{tt.item}, "")
			if err != nil {
				t.Fatalf("ExtractOdds: %v", err)
			}
			if entry.Favorite != tt.want {
				t.Errorf("favorite = %q, want %q", entry.Favorite, tt.want)
			}
		})
	}
}

func TestExtractOddsNoDirectionalSignal(t *testing.T) {
	// Items without spreads carry no signal and must not be defaulted.
	items := []OddsItem{{Provider: Provider{Name: "ESPN BET"}}}
	if _, err := ExtractOdds(items, "ESPN BET"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := ExtractOdds(nil, "ESPN BET"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty listing, got %v", err)
	}
}
