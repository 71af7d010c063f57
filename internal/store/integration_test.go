//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DrikC/bulls-and-cows/internal/migrate"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, rdb.Ping(ctx).Err(), "redis is not reachable")
	return rdb
}

func TestRedisStore_RecordStatsRecent(t *testing.T) {
	ctx := context.Background()
	rdb := newRedisClient(t)
	require.NoError(t, rdb.FlushDB(ctx).Err())

	s := NewRedisStore(rdb, time.Hour)
	defer s.Close()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.Record(ctx, result("r1", "alice", true, 6, base)))
	require.NoError(t, s.Record(ctx, result("r2", "alice", false, 12, base.Add(time.Second))))
	require.NoError(t, s.Record(ctx, result("r3", "alice", true, 3, base.Add(2*time.Second))))
	require.NoError(t, s.Record(ctx, result("r4", "alice", true, 9, base.Add(3*time.Second))))

	st, err := s.Stats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, PlayerStats{PlayerID: "alice", Games: 4, Wins: 3, Losses: 1, BestAttempts: 3}, st)

	recent, err := s.Recent(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "r4", recent[0].ID)
	assert.Equal(t, "r3", recent[1].ID)

	ttl, err := rdb.TTL(ctx, s.statsKey("alice")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisStore_RecentIsCapped(t *testing.T) {
	ctx := context.Background()
	rdb := newRedisClient(t)
	require.NoError(t, rdb.FlushDB(ctx).Err())

	s := NewRedisStore(rdb, 0)
	for i := 0; i < recentKept+5; i++ {
		require.NoError(t, s.Record(ctx, result(uuid.NewString(), "bob", false, 12, time.Now())))
	}

	n, err := rdb.LLen(ctx, s.recentKey("bob")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(recentKept), n)
}

func TestPGStore_RecordStatsRecent(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://bc:bc@localhost:5432/bc?sslmode=disable"
	}
	ctx := context.Background()

	require.NoError(t, migrate.UpPostgres(url, nil))

	s, err := OpenPostgres(ctx, url)
	require.NoError(t, err)
	defer s.Close()

	player := "it-" + uuid.NewString()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Record(ctx, result(uuid.NewString(), player, true, 5, base)))
	require.NoError(t, s.Record(ctx, result(uuid.NewString(), player, false, 12, base.Add(time.Minute))))

	st, err := s.Stats(ctx, player)
	require.NoError(t, err)
	assert.Equal(t, PlayerStats{PlayerID: player, Games: 2, Wins: 1, Losses: 1, BestAttempts: 5}, st)

	recent, err := s.Recent(ctx, player, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.False(t, recent[0].Won)
	assert.True(t, base.Add(time.Minute).Equal(recent[0].FinishedAt))
}
