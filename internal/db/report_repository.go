package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/herobattle/internal/game/battle"
)

// ErrReportNotFound is returned by Get for an unknown battle id.
var ErrReportNotFound = errors.New("battle report not found")

// BattleSummary is one row of the battles table.
type BattleSummary struct {
	ID         uuid.UUID
	Biome      string
	Level      int
	Boss       bool
	Won        bool
	DurationMs float64
	CreatedAt  time.Time
}

// ReportRepository archives combat reports.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save writes a result with its hero stats and kill counts in one transaction.
func (r *ReportRepository) Save(ctx context.Context, res battle.Result) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	if _, err := tx.Exec(ctx,
		`INSERT INTO battles (id, biome, level, boss, won, duration_ms) VALUES ($1, $2, $3, $4, $5, $6)`,
		res.BattleID, res.Biome, res.Level, res.Boss, res.Won, res.DurationMs,
	); err != nil {
		return fmt.Errorf("inserting battle %s: %w", res.BattleID, err)
	}

	batch := &pgx.Batch{}
	for name, hs := range res.Report.HeroStats {
		batch.Queue(
			`INSERT INTO battle_heroes (battle_id, hero_name, is_dead, damage_dealt, healing_done, shielding_granted, damage_taken)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			res.BattleID, name, hs.IsDead, hs.DamageDealt, hs.HealingDone, hs.ShieldingGranted, hs.DamageTaken,
		)
	}
	for name, k := range res.Report.EnemiesKilled {
		batch.Queue(
			`INSERT INTO battle_kills (battle_id, enemy_name, emoji, count) VALUES ($1, $2, $3, $4)`,
			res.BattleID, name, k.Emoji, k.Count,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting report rows for %s: %w", res.BattleID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing battle %s: %w", res.BattleID, err)
	}
	return nil
}

// Get rebuilds the result of a battle.
func (r *ReportRepository) Get(ctx context.Context, id uuid.UUID) (battle.Result, error) {
	res := battle.Result{
		BattleID: id,
		Report: battle.Report{
			HeroStats:     make(map[string]battle.HeroStats),
			EnemiesKilled: make(map[string]battle.Kill),
		},
	}

	err := r.db.QueryRow(ctx,
		`SELECT biome, level, boss, won, duration_ms FROM battles WHERE id = $1`, id,
	).Scan(&res.Biome, &res.Level, &res.Boss, &res.Won, &res.DurationMs)
	if errors.Is(err, pgx.ErrNoRows) {
		return battle.Result{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	if err != nil {
		return battle.Result{}, fmt.Errorf("querying battle %s: %w", id, err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT hero_name, is_dead, damage_dealt, healing_done, shielding_granted, damage_taken
		 FROM battle_heroes WHERE battle_id = $1`, id)
	if err != nil {
		return battle.Result{}, fmt.Errorf("querying heroes of %s: %w", id, err)
	}
	for rows.Next() {
		var name string
		var hs battle.HeroStats
		if err := rows.Scan(&name, &hs.IsDead, &hs.DamageDealt, &hs.HealingDone, &hs.ShieldingGranted, &hs.DamageTaken); err != nil {
			rows.Close()
			return battle.Result{}, fmt.Errorf("scanning hero row: %w", err)
		}
		res.Report.HeroStats[name] = hs
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return battle.Result{}, fmt.Errorf("iterating hero rows: %w", err)
	}

	rows, err = r.db.Query(ctx,
		`SELECT enemy_name, emoji, count FROM battle_kills WHERE battle_id = $1`, id)
	if err != nil {
		return battle.Result{}, fmt.Errorf("querying kills of %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var k battle.Kill
		if err := rows.Scan(&name, &k.Emoji, &k.Count); err != nil {
			return battle.Result{}, fmt.Errorf("scanning kill row: %w", err)
		}
		res.Report.EnemiesKilled[name] = k
	}
	if err := rows.Err(); err != nil {
		return battle.Result{}, fmt.Errorf("iterating kill rows: %w", err)
	}
	return res, nil
}

// Recent lists the latest battles, newest first.
func (r *ReportRepository) Recent(ctx context.Context, limit int) ([]BattleSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, biome, level, boss, won, duration_ms, created_at
		 FROM battles ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent battles: %w", err)
	}
	defer rows.Close()

	out := make([]BattleSummary, 0, limit)
	for rows.Next() {
		var s BattleSummary
		if err := rows.Scan(&s.ID, &s.Biome, &s.Level, &s.Boss, &s.Won, &s.DurationMs, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning battle row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battle rows: %w", err)
	}
	return out, nil
}
