package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/elemental/internal/game/status"
	"github.com/udisondev/elemental/internal/model"
)

// Cooldown kinds as stored in combatant_cooldowns.kind.
const (
	cooldownScorched   = "scorched"
	cooldownSelfDrying = "self_drying"
	cooldownWildfire   = "wildfire"
	cooldownParasitic  = "parasitic"
	cooldownScald      = "scald"
)

// StatusRow is one entity's status to persist.
type StatusRow struct {
	Key    string
	Status status.Combatant
}

// StatusRepository persists combatant status snapshots for entities that
// leave the world, keyed by a host-stable entity key. Absolute cooldown
// stamps are saved relative to now and rebased on load.
type StatusRepository struct {
	db *pgxpool.Pool
}

// NewStatusRepository creates a new StatusRepository.
func NewStatusRepository(db *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{db: db}
}

// Save upserts a single status using a standalone transaction.
func (r *StatusRepository) Save(ctx context.Context, key string, c status.Combatant, now status.Tick) error {
	return r.SaveAll(ctx, []StatusRow{{Key: key, Status: c}}, now)
}

// SaveAll upserts every row in one transaction.
func (r *StatusRepository) SaveAll(ctx context.Context, rows []StatusRow, now status.Tick) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("status rollback failed", "rows", len(rows), "error", err)
		}
	}()

	if err := r.SaveAllTx(ctx, tx, rows, now); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing status save: %w", err)
	}
	return nil
}

// SaveAllTx saves rows within an existing transaction (full replace per key).
func (r *StatusRepository) SaveAllTx(ctx context.Context, tx pgx.Tx, rows []StatusRow, now status.Tick) error {
	batch := &pgx.Batch{}
	for _, row := range rows {
		c := row.Status
		batch.Queue(`
			INSERT INTO combatant_status (
				entity_key, wetness_level, wetness_rain_timer, wetness_decay_timer,
				wetness_display_ticks, scorched_ticks, scorched_strength,
				condensation_ticks, infected, infection_source, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
			ON CONFLICT (entity_key) DO UPDATE SET
				wetness_level = EXCLUDED.wetness_level,
				wetness_rain_timer = EXCLUDED.wetness_rain_timer,
				wetness_decay_timer = EXCLUDED.wetness_decay_timer,
				wetness_display_ticks = EXCLUDED.wetness_display_ticks,
				scorched_ticks = EXCLUDED.scorched_ticks,
				scorched_strength = EXCLUDED.scorched_strength,
				condensation_ticks = EXCLUDED.condensation_ticks,
				infected = EXCLUDED.infected,
				infection_source = EXCLUDED.infection_source,
				updated_at = NOW()`,
			row.Key, c.WetnessLevel, c.WetnessRainTimer, c.WetnessDecayTimer,
			c.WetnessDisplayTicks, c.ScorchedTicksRemaining, c.ScorchedStrength,
			c.CondensationTicks, c.Infected, int64(c.InfectionSource),
		)
		batch.Queue(`DELETE FROM combatant_cooldowns WHERE entity_key = $1`, row.Key)

		for kind, until := range cooldowns(&c) {
			remaining := int64(*until - now)
			if remaining <= 0 {
				continue
			}
			batch.Queue(
				`INSERT INTO combatant_cooldowns (entity_key, kind, ticks_remaining) VALUES ($1, $2, $3)`,
				row.Key, kind, remaining,
			)
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving %d statuses: %w", len(rows), err)
	}
	return nil
}

// Load returns the saved status for key with cooldowns rebased onto now.
// Returns nil, nil if nothing was saved.
func (r *StatusRepository) Load(ctx context.Context, key string, now status.Tick) (*status.Combatant, error) {
	var (
		c      status.Combatant
		source int64
	)
	err := r.db.QueryRow(ctx, `
		SELECT wetness_level, wetness_rain_timer, wetness_decay_timer,
		       wetness_display_ticks, scorched_ticks, scorched_strength,
		       condensation_ticks, infected, infection_source
		FROM combatant_status WHERE entity_key = $1`, key,
	).Scan(
		&c.WetnessLevel, &c.WetnessRainTimer, &c.WetnessDecayTimer,
		&c.WetnessDisplayTicks, &c.ScorchedTicksRemaining, &c.ScorchedStrength,
		&c.CondensationTicks, &c.Infected, &source,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying status %q: %w", key, err)
	}
	c.InfectionSource = model.ObjectID(source)

	rows, err := r.db.Query(ctx,
		`SELECT kind, ticks_remaining FROM combatant_cooldowns WHERE entity_key = $1`, key)
	if err != nil {
		return nil, fmt.Errorf("querying cooldowns for %q: %w", key, err)
	}
	defer rows.Close()

	stamps := cooldowns(&c)
	for rows.Next() {
		var (
			kind      string
			remaining int64
		)
		if err := rows.Scan(&kind, &remaining); err != nil {
			return nil, fmt.Errorf("scanning cooldown row: %w", err)
		}
		if stamp, ok := stamps[kind]; ok {
			*stamp = now + status.Tick(remaining)
		} else {
			slog.Warn("unknown cooldown kind", "key", key, "kind", kind)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cooldown rows: %w", err)
	}

	return &c, nil
}

// Delete removes the saved status for key.
func (r *StatusRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM combatant_status WHERE entity_key = $1`, key); err != nil {
		return fmt.Errorf("deleting status %q: %w", key, err)
	}
	return nil
}

// Count returns the number of saved statuses.
func (r *StatusRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM combatant_status`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting statuses: %w", err)
	}
	return n, nil
}

func cooldowns(c *status.Combatant) map[string]*status.Tick {
	return map[string]*status.Tick{
		cooldownScorched:   &c.ScorchedCooldownUntil,
		cooldownSelfDrying: &c.SelfDryingCooldownUntil,
		cooldownWildfire:   &c.WildfireCooldownUntil,
		cooldownParasitic:  &c.ParasiticCooldownUntil,
		cooldownScald:      &c.ScaldCooldownUntil,
	}
}
