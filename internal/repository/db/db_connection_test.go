package db_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"blynk_bridge/internal/models"
	"blynk_bridge/internal/repository"
	"blynk_bridge/internal/repository/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_JournalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	conn, err := db.InitDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repo := repository.NewRepository(conn).EventRepo
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, models.CommandEvent{
		EventID: "a", OccurredAt: base, Type: models.EventTriggerDoorbell, Pin: "V1", Value: 1, Success: true,
		Description: "Doorbell triggered", Metadata: map[string]any{"reset_after_ms": 3000},
	}))
	require.NoError(t, repo.Append(ctx, models.CommandEvent{
		EventID: "b", OccurredAt: base.Add(3 * time.Second), Type: models.EventResetDoorbell, Pin: "V1", Success: true,
		Description: "Doorbell auto-reset",
	}))
	require.NoError(t, repo.Append(ctx, models.CommandEvent{
		EventID: "c", OccurredAt: base.Add(time.Hour), Type: models.EventTriggerSmoke, Pin: "V0", Value: 1,
		Description: "Failed to trigger smoke alarm",
	}))

	all, err := repo.List(ctx, time.Time{}, time.Time{}, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].EventID, all[1].EventID, all[2].EventID})
	assert.Equal(t, map[string]any{"reset_after_ms": float64(3000)}, all[0].Metadata)
	assert.False(t, all[2].Success)

	doorbell, err := repo.List(ctx, base, base.Add(time.Minute), "")
	require.NoError(t, err)
	assert.Len(t, doorbell, 2)

	resets, err := repo.List(ctx, time.Time{}, time.Time{}, "reset_doorbell")
	require.NoError(t, err)
	require.Len(t, resets, 1)
	assert.Equal(t, "b", resets[0].EventID)
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	first, err := db.InitDB(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := db.InitDB(path)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}
