package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DrikC/bulls-and-cows/internal/migrate"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()

	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, migrate.Up(s.DB(), migrate.DialectSQLite, nil))
	return s
}

func result(id, player string, won bool, attempts int, finished time.Time) Result {
	return Result{
		ID:          id,
		PlayerID:    player,
		Won:         won,
		Attempts:    attempts,
		MaxAttempts: 12,
		CodeLength:  5,
		Secret:      "ABCDE",
		StartedAt:   finished.Add(-time.Minute),
		FinishedAt:  finished,
	}
}

func TestSQLStore_StatsEmpty(t *testing.T) {
	s := newSQLiteStore(t)

	st, err := s.Stats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, PlayerStats{PlayerID: "nobody"}, st)

	recent, err := s.Recent(context.Background(), "nobody", 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestSQLStore_RecordAndAggregate(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, result("g1", "alice", false, 12, base)))
	require.NoError(t, s.Record(ctx, result("g2", "alice", true, 7, base.Add(time.Hour))))
	require.NoError(t, s.Record(ctx, result("g3", "alice", true, 4, base.Add(2*time.Hour))))
	require.NoError(t, s.Record(ctx, result("g4", "bob", true, 2, base)))

	st, err := s.Stats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, PlayerStats{PlayerID: "alice", Games: 3, Wins: 2, Losses: 1, BestAttempts: 4}, st)

	recent, err := s.Recent(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "g3", recent[0].ID)
	assert.Equal(t, "g2", recent[1].ID)
	assert.True(t, recent[0].Won)
	assert.Equal(t, 4, recent[0].Attempts)
	assert.True(t, base.Add(2*time.Hour).Equal(recent[0].FinishedAt), "finished_at=%s", recent[0].FinishedAt)
}

func TestSQLStore_DuplicateID(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	now := time.Now()

	require.NoError(t, s.Record(ctx, result("same", "alice", true, 3, now)))
	require.Error(t, s.Record(ctx, result("same", "alice", true, 3, now)))
}

func TestSQLStore_MigrationsIdempotent(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, migrate.Up(s.DB(), migrate.DialectSQLite, nil))
}

func TestNopRecorder(t *testing.T) {
	var r Recorder = NopRecorder{}
	require.NoError(t, r.Record(context.Background(), Result{ID: "x"}))

	st, err := r.Stats(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "p", st.PlayerID)
	assert.Zero(t, st.Games)
	require.NoError(t, r.Close())
}
