package store

import (
	"context"
	"errors"
	"time"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// Result is the outcome of one finished game.
type Result struct {
	ID          string    `json:"id"`
	PlayerID    string    `json:"playerId"`
	Won         bool      `json:"won"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"maxAttempts"`
	CodeLength  int       `json:"codeLength"`
	Secret      string    `json:"secret"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// PlayerStats aggregates the results of one player.
// BestAttempts is the fewest attempts in a won game, 0 when nothing was won.
type PlayerStats struct {
	PlayerID     string `json:"playerId"`
	Games        int    `json:"games"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	BestAttempts int    `json:"bestAttempts"`
}

// Recorder keeps finished game results.
type Recorder interface {
	Record(ctx context.Context, r Result) error
	Stats(ctx context.Context, playerID string) (PlayerStats, error)
	// Recent returns up to limit results of the player, newest first.
	Recent(ctx context.Context, playerID string, limit int) ([]Result, error)
	Close() error
}

// NopRecorder records nothing and always reports empty stats.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Result) error { return nil }

func (NopRecorder) Stats(_ context.Context, playerID string) (PlayerStats, error) {
	return PlayerStats{PlayerID: playerID}, nil
}

func (NopRecorder) Recent(context.Context, string, int) ([]Result, error) { return nil, nil }

func (NopRecorder) Close() error { return nil }
