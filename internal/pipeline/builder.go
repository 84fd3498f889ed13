// Package pipeline assembles the weekly slate: schedule fetch, odds
// collection from the configured sources, reconciliation against the HTML
// fallback, and confidence point assignment.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mbarrett/pickslip/internal/domain"
	"github.com/mbarrett/pickslip/internal/match"
	"github.com/mbarrett/pickslip/internal/odds"
	"github.com/mbarrett/pickslip/internal/picks"
	"github.com/mbarrett/pickslip/internal/platform/espn"
	"github.com/mbarrett/pickslip/internal/platform/oddsapi"
	"github.com/mbarrett/pickslip/internal/scrape"
)

// espnOddsConcurrency bounds the per-event odds fetches against ESPN's core
// API.
const espnOddsConcurrency = 4

// Options carries the per-run policy knobs for slate building.
type Options struct {
	Season            int
	OddsSource        string // "the-odds-api" or "espn"
	PreferredProvider string // ESPN odds item provider preference
	Bookmakers        []string
	FallbackDir       string
	SkipThursday      bool
	MaxPoints         int
	TieBreakerDay     time.Weekday
	Location          *time.Location
}

// Builder turns a week number into a fully assigned slate.
type Builder struct {
	espn     *espn.Client
	oddsAPI  *oddsapi.Client // nil when no API key is configured
	cache    domain.ResponseCache
	cacheTTL time.Duration
	opts     Options
	logger   *slog.Logger
}

func NewBuilder(espnClient *espn.Client, oddsAPIClient *oddsapi.Client, cache domain.ResponseCache, cacheTTL time.Duration, opts Options, logger *slog.Logger) *Builder {
	return &Builder{
		espn:     espnClient,
		oddsAPI:  oddsAPIClient,
		cache:    cache,
		cacheTTL: cacheTTL,
		opts:     opts,
		logger:   logger.With(slog.String("component", "pipeline")),
	}
}

// Slate is a fully built week: the playable events with their reconciled
// odds attached, the assigned picks and the tie-breaker.
type Slate struct {
	Season     int
	Week       int
	Seed       int64
	MaxPoints  int
	Events     []domain.Event
	Picks      []domain.Pick
	TieBreaker domain.TieBreaker
}

// Build fetches and assembles the slate for one week. Odds failures on
// individual events reduce coverage rather than aborting; only a completely
// unusable schedule is fatal.
func (b *Builder) Build(ctx context.Context, week int, seed int64) (*Slate, error) {
	events, err := b.schedule(ctx, week)
	if err != nil {
		return nil, err
	}

	primary := b.primaryOdds(ctx, week, events)
	fallback, err := scrape.LoadFallback(b.opts.FallbackDir, week, events, b.logger)
	if err != nil {
		b.logger.Warn("fallback odds unavailable", slog.String("error", err.Error()))
		fallback = odds.Lookup{}
	}
	merged := odds.Reconcile(primary, fallback)

	playable := b.attachOdds(events, merged, week)
	if len(playable) == 0 {
		return nil, fmt.Errorf("pipeline: week %d: %w", week, domain.ErrNoSchedule)
	}

	slate := &Slate{
		Season:     b.opts.Season,
		Week:       week,
		Seed:       seed,
		MaxPoints:  b.opts.MaxPoints,
		Events:     playable,
		Picks:      picks.Assign(playable, b.opts.MaxPoints, seed),
		TieBreaker: picks.TieBreaker(playable, b.opts.TieBreakerDay),
	}

	b.logger.Info("slate built",
		slog.Int("week", week),
		slog.Int("events", len(playable)),
		slog.Int("picks", len(slate.Picks)),
		slog.Int64("seed", seed),
	)
	return slate, nil
}

// schedule fetches and filters the week's events. Thursday games are dropped
// when configured because their kickoff usually precedes the run.
func (b *Builder) schedule(ctx context.Context, week int) ([]domain.Event, error) {
	sb, err := b.scoreboard(ctx, week)
	if err != nil {
		return nil, err
	}

	all := espn.ParseSchedule(sb, b.opts.Location)
	events := make([]domain.Event, 0, len(all))
	for _, event := range all {
		if b.opts.SkipThursday && event.Weekday() == time.Thursday {
			b.logger.Debug("skipping thursday game", slog.String("matchup", event.Matchup()))
			continue
		}
		events = append(events, event)
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("pipeline: week %d: %w", week, domain.ErrNoSchedule)
	}
	return events, nil
}

// scoreboard loads the raw schedule, via the response cache when one is
// wired.
func (b *Builder) scoreboard(ctx context.Context, week int) (*espn.Scoreboard, error) {
	const source = "espn_scoreboard"

	if data, ok := b.cacheGet(ctx, source, week); ok {
		var sb espn.Scoreboard
		if err := json.Unmarshal(data, &sb); err == nil {
			return &sb, nil
		}
	}

	sb, err := b.espn.Scoreboard(ctx, b.opts.Season, week)
	if err != nil {
		return nil, err
	}

	b.cachePut(ctx, source, week, sb)
	return sb, nil
}

// primaryOdds builds the primary odds lookup from the configured source. An
// empty lookup is a legitimate outcome; the fallback chain picks up from
// there.
func (b *Builder) primaryOdds(ctx context.Context, week int, events []domain.Event) odds.Lookup {
	if b.opts.OddsSource == "the-odds-api" && b.oddsAPI != nil {
		return b.oddsAPILookup(ctx, week, events)
	}
	return b.espnLookup(ctx, events)
}

func (b *Builder) oddsAPILookup(ctx context.Context, week int, events []domain.Event) odds.Lookup {
	const source = "the_odds_api"

	var apiEvents []oddsapi.APIEvent
	if data, ok := b.cacheGet(ctx, source, week); ok {
		if err := json.Unmarshal(data, &apiEvents); err != nil {
			apiEvents = nil
		}
	}

	if apiEvents == nil {
		window := commenceWindow(events)
		fetched, err := b.oddsAPI.Odds(ctx, window, b.opts.Bookmakers)
		if err != nil {
			b.logger.Warn("the odds api request failed",
				slog.String("error", err.Error()),
			)
			return odds.Lookup{}
		}
		apiEvents = fetched
		b.cachePut(ctx, source, week, apiEvents)
	}

	return odds.BuildLookup(events, apiEvents, b.opts.Bookmakers, b.logger)
}

// espnLookup fetches per-event odds concurrently from the ESPN core API.
// Each event's failure is local: the event is simply absent from the lookup.
func (b *Builder) espnLookup(ctx context.Context, events []domain.Event) odds.Lookup {
	lookup := odds.Lookup{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(espnOddsConcurrency)

	for _, event := range events {
		event := event
		g.Go(func() error {
			items, err := b.espn.CompetitionOdds(gctx, event.ID, event.CompetitionID)
			if err != nil {
				b.logger.Warn("event odds fetch failed",
					slog.String("matchup", event.Matchup()),
					slog.String("error", err.Error()),
				)
				return nil
			}

			entry, err := espn.ExtractOdds(items, b.opts.PreferredProvider)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					b.logger.Warn("event odds unusable",
						slog.String("matchup", event.Matchup()),
						slog.String("error", err.Error()),
					)
				}
				return nil
			}

			mu.Lock()
			lookup[match.Key(event)] = entry
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return lookup
}

// attachOdds resolves the merged lookup onto each event. With The Odds API
// as primary, an uncovered event gets the assumed home-favorite entry; with
// ESPN as primary it is dropped, matching how much trust each source
// arrangement deserves.
func (b *Builder) attachOdds(events []domain.Event, merged odds.Lookup, week int) []domain.Event {
	playable := make([]domain.Event, 0, len(events))
	for _, event := range events {
		entry, ok := odds.Resolve(merged, match.Key(event))
		if !ok {
			if b.opts.OddsSource != "the-odds-api" {
				b.logger.Warn("skipping event with no odds", slog.String("matchup", event.Matchup()))
				continue
			}
			b.logger.Warn("no odds from any source, assuming home favorite",
				slog.String("matchup", event.Matchup()),
				slog.Int("week", week),
			)
			entry = odds.AssumedEntry(event.Home)
		}
		event.Odds = entry
		playable = append(playable, event)
	}
	return playable
}

// commenceWindow bounds The Odds API query to the schedule's kickoff span,
// padded an hour each way for clock drift between sources.
func commenceWindow(events []domain.Event) oddsapi.Window {
	window := oddsapi.Window{From: events[0].StartUTC, To: events[0].StartUTC}
	for _, event := range events[1:] {
		if event.StartUTC.Before(window.From) {
			window.From = event.StartUTC
		}
		if event.StartUTC.After(window.To) {
			window.To = event.StartUTC
		}
	}
	window.From = window.From.Add(-time.Hour)
	window.To = window.To.Add(time.Hour)
	return window
}

func (b *Builder) cacheGet(ctx context.Context, source string, week int) ([]byte, bool) {
	if b.cache == nil {
		return nil, false
	}
	data, err := b.cache.Get(ctx, source, b.opts.Season, week)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			b.logger.Warn("response cache read failed",
				slog.String("source", source),
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}
	return data, true
}

func (b *Builder) cachePut(ctx context.Context, source string, week int, payload any) {
	if b.cache == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := b.cache.Set(ctx, source, b.opts.Season, week, data, b.cacheTTL); err != nil {
		b.logger.Warn("response cache write failed",
			slog.String("source", source),
			slog.String("error", err.Error()),
		)
	}
}
