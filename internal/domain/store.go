package domain

import (
	"context"
	"time"
)

// SlatePick is the flattened, persisted form of one pick within a slate.
type SlatePick struct {
	EventID   string
	Matchup   string
	Team      string
	Selection Selection
	Points    int
	Spread    float64
	Total     *float64
	Provider  string
	Origin    OddsOrigin
}

// Slate is one generated pick set for a season/week, kept for history and
// auditing of what the reconciler produced on each run.
type Slate struct {
	ID         string // uuid assigned at generation time
	Season     int
	Week       int
	Seed       int64
	MaxPoints  int
	TieBreaker *int
	Picks      []SlatePick
	CreatedAt  time.Time
}

// SlateStore persists generated slates.
type SlateStore interface {
	Save(ctx context.Context, s Slate) error
	Latest(ctx context.Context, season, week int) (Slate, error)
	ListWeek(ctx context.Context, season, week int) ([]Slate, error)
}
