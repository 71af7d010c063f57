package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const recentKept = 20

// keepBest stores ARGV[1] in the "best" field unless a lower value is there.
var keepBest = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'best')
if not cur or tonumber(ARGV[1]) < tonumber(cur) then
	redis.call('HSET', KEYS[1], 'best', ARGV[1])
end
return 1
`)

// RedisStore keeps per-player counters and the last results in Redis. Keys
// expire ttl after the player's last recorded game.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// OpenRedis connects and pings the server.
func OpenRedis(ctx context.Context, addr string, db int, ttl time.Duration) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping (%s db=%d): %w", addr, db, err)
	}
	return NewRedisStore(rdb, ttl), nil
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) statsKey(playerID string) string {
	return fmt.Sprintf("player:%s:stats", playerID)
}

func (s *RedisStore) recentKey(playerID string) string {
	return fmt.Sprintf("player:%s:recent", playerID)
}

func (s *RedisStore) Record(ctx context.Context, r Result) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}

	statsKey, recentKey := s.statsKey(r.PlayerID), s.recentKey(r.PlayerID)
	outcome := "losses"
	if r.Won {
		outcome = "wins"
	}

	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HIncrBy(ctx, statsKey, "games", 1)
		p.HIncrBy(ctx, statsKey, outcome, 1)
		p.LPush(ctx, recentKey, b)
		p.LTrim(ctx, recentKey, 0, recentKept-1)
		if s.ttl > 0 {
			p.Expire(ctx, statsKey, s.ttl)
			p.Expire(ctx, recentKey, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record result %s: %w", r.ID, err)
	}

	if r.Won {
		if err := keepBest.Run(ctx, s.rdb, []string{statsKey}, r.Attempts).Err(); err != nil {
			return fmt.Errorf("update best: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) Stats(ctx context.Context, playerID string) (PlayerStats, error) {
	st := PlayerStats{PlayerID: playerID}

	fields, err := s.rdb.HGetAll(ctx, s.statsKey(playerID)).Result()
	if err != nil {
		return PlayerStats{}, fmt.Errorf("read stats: %w", err)
	}

	for name, dst := range map[string]*int{
		"games":  &st.Games,
		"wins":   &st.Wins,
		"losses": &st.Losses,
		"best":   &st.BestAttempts,
	} {
		v, ok := fields[name]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return PlayerStats{}, fmt.Errorf("stats field %s=%q: %w", name, v, err)
		}
		*dst = n
	}
	return st, nil
}

func (s *RedisStore) Recent(ctx context.Context, playerID string, limit int) ([]Result, error) {
	if limit <= 0 {
		return nil, nil
	}
	vals, err := s.rdb.LRange(ctx, s.recentKey(playerID), 0, int64(limit-1)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read recent: %w", err)
	}

	out := make([]Result, 0, len(vals))
	for _, v := range vals {
		var r Result
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
