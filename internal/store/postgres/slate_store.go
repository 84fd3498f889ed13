package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbarrett/pickslip/internal/domain"
)

// SlateStore implements domain.SlateStore using PostgreSQL.
type SlateStore struct {
	pool *pgxpool.Pool
}

// NewSlateStore creates a SlateStore backed by the given connection pool.
func NewSlateStore(pool *pgxpool.Pool) *SlateStore {
	return &SlateStore{pool: pool}
}

// Save writes the slate header and every pick in one transaction.
func (s *SlateStore) Save(ctx context.Context, slate domain.Slate) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin slate tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO slates (id, season, week, seed, max_points, tie_breaker, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		slate.ID, slate.Season, slate.Week, slate.Seed,
		slate.MaxPoints, slate.TieBreaker, slate.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert slate: %w", err)
	}

	batch := &pgx.Batch{}
	const pickInsert = `
		INSERT INTO slate_picks (
			slate_id, event_id, matchup, team, selection,
			points, spread, total, provider, origin
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, p := range slate.Picks {
		batch.Queue(pickInsert,
			slate.ID, p.EventID, p.Matchup, p.Team, string(p.Selection),
			p.Points, p.Spread, p.Total, p.Provider, string(p.Origin),
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range slate.Picks {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("postgres: insert slate pick %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("postgres: close pick batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit slate: %w", err)
	}
	return nil
}

// Latest returns the most recently generated slate for the season/week.
func (s *SlateStore) Latest(ctx context.Context, season, week int) (domain.Slate, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, season, week, seed, max_points, tie_breaker, created_at
		FROM slates
		WHERE season = $1 AND week = $2
		ORDER BY created_at DESC
		LIMIT 1`, season, week)

	slate, err := scanSlate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Slate{}, domain.ErrNotFound
		}
		return domain.Slate{}, fmt.Errorf("postgres: query latest slate: %w", err)
	}

	if err := s.loadPicks(ctx, &slate); err != nil {
		return domain.Slate{}, err
	}
	return slate, nil
}

// ListWeek returns every slate generated for the season/week, newest first,
// picks included.
func (s *SlateStore) ListWeek(ctx context.Context, season, week int) ([]domain.Slate, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, season, week, seed, max_points, tie_breaker, created_at
		FROM slates
		WHERE season = $1 AND week = $2
		ORDER BY created_at DESC`, season, week)
	if err != nil {
		return nil, fmt.Errorf("postgres: query week slates: %w", err)
	}
	defer rows.Close()

	var slates []domain.Slate
	for rows.Next() {
		slate, err := scanSlate(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan slate: %w", err)
		}
		slates = append(slates, slate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate slates: %w", err)
	}

	for i := range slates {
		if err := s.loadPicks(ctx, &slates[i]); err != nil {
			return nil, err
		}
	}
	return slates, nil
}

func scanSlate(row pgx.Row) (domain.Slate, error) {
	var slate domain.Slate
	err := row.Scan(
		&slate.ID, &slate.Season, &slate.Week, &slate.Seed,
		&slate.MaxPoints, &slate.TieBreaker, &slate.CreatedAt,
	)
	return slate, err
}

func (s *SlateStore) loadPicks(ctx context.Context, slate *domain.Slate) error {
	rows, err := s.pool.Query(ctx, `
		SELECT event_id, matchup, team, selection, points, spread, total, provider, origin
		FROM slate_picks
		WHERE slate_id = $1
		ORDER BY points DESC`, slate.ID)
	if err != nil {
		return fmt.Errorf("postgres: query slate picks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.SlatePick
		var selection, origin string
		if err := rows.Scan(
			&p.EventID, &p.Matchup, &p.Team, &selection,
			&p.Points, &p.Spread, &p.Total, &p.Provider, &origin,
		); err != nil {
			return fmt.Errorf("postgres: scan slate pick: %w", err)
		}
		p.Selection = domain.Selection(selection)
		p.Origin = domain.OddsOrigin(origin)
		slate.Picks = append(slate.Picks, p)
	}
	return rows.Err()
}
