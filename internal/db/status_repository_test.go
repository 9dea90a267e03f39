package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elemental/internal/game/status"
	"github.com/udisondev/elemental/internal/testutil"
)

func TestStatusRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewStatusRepository(pool)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	t.Run("load missing returns nil", func(t *testing.T) {
		testutil.TruncateStatus(t, pool)

		got, err := repo.Load(ctx, "nobody", 0)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("round trip rebases cooldowns", func(t *testing.T) {
		testutil.TruncateStatus(t, pool)

		saved := status.Combatant{
			WetnessLevel:            3,
			WetnessRainTimer:        12,
			WetnessDecayTimer:       40,
			WetnessDisplayTicks:     560,
			ScorchedTicksRemaining:  30,
			ScorchedStrength:        80,
			ScorchedCooldownUntil:   1_150,
			SelfDryingCooldownUntil: 1_020,
			WildfireCooldownUntil:   900, // already expired at save time
			ScaldCooldownUntil:      1_000,
			CondensationTicks:       7,
			Infected:                true,
			InfectionSource:         42,
		}
		require.NoError(t, repo.Save(ctx, "player:alice", saved, 1_000))

		got, err := repo.Load(ctx, "player:alice", 50)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, 3, got.WetnessLevel)
		assert.Equal(t, 12, got.WetnessRainTimer)
		assert.Equal(t, 40, got.WetnessDecayTimer)
		assert.Equal(t, 560, got.WetnessDisplayTicks)
		assert.Equal(t, 30, got.ScorchedTicksRemaining)
		assert.Equal(t, 80, got.ScorchedStrength)
		assert.Equal(t, 7, got.CondensationTicks)
		assert.True(t, got.Infected)
		assert.EqualValues(t, 42, got.InfectionSource)

		assert.Equal(t, status.Tick(200), got.ScorchedCooldownUntil)
		assert.Equal(t, status.Tick(70), got.SelfDryingCooldownUntil)
		assert.Zero(t, got.WildfireCooldownUntil)
		assert.Zero(t, got.ScaldCooldownUntil)
		assert.Zero(t, got.ParasiticCooldownUntil)
	})

	t.Run("save replaces cooldowns", func(t *testing.T) {
		testutil.TruncateStatus(t, pool)

		require.NoError(t, repo.Save(ctx, "mob:7", status.Combatant{ParasiticCooldownUntil: 100}, 0))
		require.NoError(t, repo.Save(ctx, "mob:7", status.Combatant{WetnessLevel: 1}, 0))

		got, err := repo.Load(ctx, "mob:7", 0)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 1, got.WetnessLevel)
		assert.Zero(t, got.ParasiticCooldownUntil)
	})

	t.Run("save all and delete", func(t *testing.T) {
		testutil.TruncateStatus(t, pool)

		rows := []StatusRow{
			{Key: "a", Status: status.Combatant{WetnessLevel: 1}},
			{Key: "b", Status: status.Combatant{WetnessLevel: 2, ScaldCooldownUntil: 30}},
			{Key: "c", Status: status.Combatant{ScorchedTicksRemaining: 5}},
		}
		require.NoError(t, repo.SaveAll(ctx, rows, 10))

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		require.NoError(t, repo.Delete(ctx, "b"))
		got, err := repo.Load(ctx, "b", 0)
		require.NoError(t, err)
		assert.Nil(t, got)

		n, err = repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("save all empty is noop", func(t *testing.T) {
		assert.NoError(t, repo.SaveAll(ctx, nil, 0))
	})
}
