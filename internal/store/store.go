// Package store provides optional Postgres persistence: per-round price
// snapshots (feeding price-change history) and dispatched-alert history.
// The service runs memory-only when no DATABASE_URL is configured.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aflcoach/aflcoach-data/internal/alerts"
	"github.com/aflcoach/aflcoach-data/internal/config"
	"github.com/aflcoach/aflcoach-data/internal/model"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	p := &Pool{Pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "SELECT 1").Scan(&n)
}

// ensureSchema creates the two tables this service owns.
func (p *Pool) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_snapshots (
			player_id     TEXT NOT NULL,
			player_name   TEXT NOT NULL,
			round         INT  NOT NULL,
			price         INT  NOT NULL,
			breakeven     INT  NOT NULL,
			average_score DOUBLE PRECISION NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (player_id, round)
		)`,
		`CREATE TABLE IF NOT EXISTS alert_history (
			id          TEXT PRIMARY KEY,
			alert_type  TEXT NOT NULL,
			priority    TEXT NOT NULL,
			title       TEXT NOT NULL,
			body        TEXT NOT NULL,
			player_id   TEXT,
			created_at  TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, sql := range stmts {
		if _, err := p.Exec(ctx, sql); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Price snapshots
// --------------------------------------------------------------------------

// PricePoint is one round of a player's price history.
type PricePoint struct {
	Round     int     `json:"round"`
	Price     int     `json:"price"`
	Breakeven int     `json:"breakeven"`
	Average   float64 `json:"average_score"`
}

// SaveSnapshots upserts one price snapshot per player for a round.
func (p *Pool) SaveSnapshots(ctx context.Context, round int, players []model.Player) (int, error) {
	saved := 0
	for _, pl := range players {
		_, err := p.Exec(ctx, `
			INSERT INTO price_snapshots (player_id, player_name, round, price, breakeven, average_score)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (player_id, round) DO UPDATE
			SET price = EXCLUDED.price,
			    breakeven = EXCLUDED.breakeven,
			    average_score = EXCLUDED.average_score`,
			pl.ID, pl.Name, round, pl.Price, pl.Breakeven, pl.AverageScore,
		)
		if err != nil {
			return saved, fmt.Errorf("insert snapshot %s: %w", pl.ID, err)
		}
		saved++
	}
	return saved, nil
}

// PriceHistory returns a player's snapshots ordered by round.
func (p *Pool) PriceHistory(ctx context.Context, playerID string) ([]PricePoint, error) {
	rows, err := p.Query(ctx, `
		SELECT round, price, breakeven, average_score
		FROM price_snapshots
		WHERE player_id = $1
		ORDER BY round`, playerID)
	if err != nil {
		return nil, fmt.Errorf("price history: %w", err)
	}
	defer rows.Close()

	var points []PricePoint
	for rows.Next() {
		var pt PricePoint
		if err := rows.Scan(&pt.Round, &pt.Price, &pt.Breakeven, &pt.Average); err != nil {
			return nil, fmt.Errorf("scan price point: %w", err)
		}
		points = append(points, pt)
	}
	return points, rows.Err()
}

// PurgeSnapshots deletes snapshots older than the retention window.
func (p *Pool) PurgeSnapshots(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := p.Exec(ctx,
		`DELETE FROM price_snapshots WHERE created_at < NOW() - make_interval(hours => $1)`,
		int(olderThan.Hours()),
	)
	if err != nil {
		return 0, fmt.Errorf("purge snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// --------------------------------------------------------------------------
// Alert history
// --------------------------------------------------------------------------

// RecordAlert appends one alert to the durable history.
func (p *Pool) RecordAlert(ctx context.Context, a alerts.Alert) error {
	_, err := p.Exec(ctx, `
		INSERT INTO alert_history (id, alert_type, priority, title, body, player_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		ON CONFLICT (id) DO NOTHING`,
		a.ID, string(a.Type), string(a.Priority), a.Title, a.Body, a.PlayerID, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record alert: %w", err)
	}
	return nil
}

// PurgeAlertHistory deletes alert rows older than the retention window.
func (p *Pool) PurgeAlertHistory(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := p.Exec(ctx,
		`DELETE FROM alert_history WHERE created_at < NOW() - make_interval(hours => $1)`,
		int(olderThan.Hours()),
	)
	if err != nil {
		return 0, fmt.Errorf("purge alert history: %w", err)
	}
	return tag.RowsAffected(), nil
}
