package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mbarrett/pickslip/internal/domain"
	"github.com/mbarrett/pickslip/internal/picks"
	"github.com/mbarrett/pickslip/internal/pipeline"
	"github.com/mbarrett/pickslip/internal/submit"
)

// GenerateMode builds the slate for the requested week, lets the user adjust
// it unless running non-interactively, persists it when a store is
// configured, and optionally pushes it to the pool site.
func (a *App) GenerateMode(ctx context.Context, deps *Dependencies, opts RunOptions) error {
	slate, err := a.buildSlate(ctx, deps, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, picks.RenderTable(slate.Picks))

	var tieBreakerOverride *int
	if !opts.NonInteractive {
		slate.Picks, tieBreakerOverride = Adjust(slate.Picks, slate.TieBreaker, a.in, a.out)
	}

	tieLine := picks.RenderTieBreaker(slate.TieBreaker, a.cfg.Picks.TieBreakerDay, tieBreakerOverride)
	fmt.Fprintln(a.out, tieLine)

	if deps.SlateStore != nil {
		stored := toStoredSlate(slate, tieBreakerValue(slate, tieBreakerOverride))
		if err := deps.SlateStore.Save(ctx, stored); err != nil {
			a.logger.WarnContext(ctx, "slate save failed", slog.String("error", err.Error()))
		} else {
			a.logger.InfoContext(ctx, "slate saved", slog.String("slate_id", stored.ID))
		}
	}

	if err := deps.Notifier.SlateGenerated(ctx, slate.Season, slate.Week, picks.RenderTable(slate.Picks), tieLine); err != nil {
		a.logger.WarnContext(ctx, "notify failed", slog.String("error", err.Error()))
	}

	if !opts.AutoSubmit {
		return nil
	}
	if !opts.NonInteractive && !confirm(a.in, a.out, "Submit these picks to the site?") {
		fmt.Fprintln(a.out, "Not submitted.")
		return nil
	}
	return a.submitSlate(ctx, deps, opts.Week, slate, tieBreakerOverride)
}

// CompareMode builds the slate and diffs it against whatever the pool site
// currently has saved for the week, without changing anything.
func (a *App) CompareMode(ctx context.Context, deps *Dependencies, opts RunOptions) error {
	slate, err := a.buildSlate(ctx, deps, opts)
	if err != nil {
		return err
	}

	existing, err := submit.FetchExisting(ctx, deps.HTTPClient, a.cfg.Site.MakeWeekURL, opts.Week, a.cfg.Site.LoginID, a.cfg.Site.LoginKey)
	if err != nil {
		return fmt.Errorf("app: fetch existing picks: %w", err)
	}

	var computedTie *int
	if slate.TieBreaker.Resolved() {
		v := slate.TieBreaker.Value
		computedTie = &v
	}
	fmt.Fprintln(a.out, submit.Compare(slate.Picks, existing, computedTie))
	return nil
}

// SubmitMode builds the slate and pushes it straight to the pool site,
// pausing for confirmation unless running non-interactively.
func (a *App) SubmitMode(ctx context.Context, deps *Dependencies, opts RunOptions) error {
	slate, err := a.buildSlate(ctx, deps, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, picks.RenderTable(slate.Picks))

	var tieBreakerOverride *int
	if !opts.NonInteractive {
		slate.Picks, tieBreakerOverride = Adjust(slate.Picks, slate.TieBreaker, a.in, a.out)
		if !confirm(a.in, a.out, "Submit these picks to the site?") {
			fmt.Fprintln(a.out, "Not submitted.")
			return nil
		}
	}
	return a.submitSlate(ctx, deps, opts.Week, slate, tieBreakerOverride)
}

// HistoryMode lists previously saved slates for the week.
func (a *App) HistoryMode(ctx context.Context, deps *Dependencies, opts RunOptions) error {
	if deps.SlateStore == nil {
		return errors.New("app: history requires a configured database")
	}

	slates, err := deps.SlateStore.ListWeek(ctx, a.cfg.Picks.Season, opts.Week)
	if err != nil {
		return fmt.Errorf("app: list slates: %w", err)
	}
	if len(slates) == 0 {
		fmt.Fprintf(a.out, "No saved slates for season %d week %d.\n", a.cfg.Picks.Season, opts.Week)
		return nil
	}

	for _, s := range slates {
		tie := "none"
		if s.TieBreaker != nil {
			tie = fmt.Sprintf("%d", *s.TieBreaker)
		}
		fmt.Fprintf(a.out, "%s  seed=%d  picks=%d  tie-breaker=%s  %s\n",
			s.CreatedAt.Format(time.RFC3339), s.Seed, len(s.Picks), tie, s.ID)
		for _, p := range s.Picks {
			fmt.Fprintf(a.out, "  %2d  %s (%s)\n", p.Points, p.Team, p.Matchup)
		}
	}
	return nil
}

func (a *App) buildSlate(ctx context.Context, deps *Dependencies, opts RunOptions) (*pipeline.Slate, error) {
	seed := a.resolveSeed(opts)
	slate, err := deps.Builder.Build(ctx, opts.Week, seed)
	if err != nil {
		return nil, fmt.Errorf("app: build slate: %w", err)
	}
	if opts.MaxPoints > 0 && opts.MaxPoints != slate.MaxPoints {
		slate.MaxPoints = opts.MaxPoints
		slate.Picks = picks.Assign(slate.Events, opts.MaxPoints, seed)
	}
	return slate, nil
}

func (a *App) submitSlate(ctx context.Context, deps *Dependencies, week int, slate *pipeline.Slate, tieBreakerOverride *int) error {
	tieBreaker := tieBreakerValue(slate, tieBreakerOverride)
	if err := deps.Browser.Submit(ctx, week, slate.Picks, tieBreaker); err != nil {
		return fmt.Errorf("app: submit slate: %w", err)
	}
	if err := deps.Notifier.SlateSubmitted(ctx, slate.Season, slate.Week, len(slate.Picks), tieBreaker); err != nil {
		a.logger.WarnContext(ctx, "notify failed", slog.String("error", err.Error()))
	}
	return nil
}

// resolveSeed picks the shuffle seed: command line first, then config, then
// the season/week derivation so reruns within a week stay reproducible.
func (a *App) resolveSeed(opts RunOptions) int64 {
	if opts.Seed != 0 {
		return opts.Seed
	}
	if a.cfg.Picks.Seed != 0 {
		return a.cfg.Picks.Seed
	}
	return picks.DefaultSeed(a.cfg.Picks.Season, opts.Week)
}

// tieBreakerValue resolves the integer sent to the site: an explicit override
// wins, otherwise the computed value when the calculation resolved.
func tieBreakerValue(slate *pipeline.Slate, override *int) *int {
	if override != nil {
		return override
	}
	if slate.TieBreaker.Resolved() {
		v := slate.TieBreaker.Value
		return &v
	}
	return nil
}

// toStoredSlate flattens a built slate into its persisted form.
func toStoredSlate(slate *pipeline.Slate, tieBreaker *int) domain.Slate {
	stored := domain.Slate{
		ID:         uuid.NewString(),
		Season:     slate.Season,
		Week:       slate.Week,
		Seed:       slate.Seed,
		MaxPoints:  slate.MaxPoints,
		TieBreaker: tieBreaker,
		CreatedAt:  time.Now().UTC(),
	}
	for _, p := range slate.Picks {
		stored.Picks = append(stored.Picks, domain.SlatePick{
			EventID:   p.Event.ID,
			Matchup:   p.Event.Matchup(),
			Team:      p.SelectedTeam().DisplayName,
			Selection: p.Selection,
			Points:    p.Points,
			Spread:    p.Event.Odds.Spread,
			Total:     p.Event.Odds.Total,
			Provider:  p.Event.Odds.Provider,
			Origin:    p.Event.Odds.Origin,
		})
	}
	return stored
}
