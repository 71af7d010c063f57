package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps results in Postgres.
type PGStore struct {
	db *pgxpool.Pool
}

// OpenPostgres connects and pings the database.
func OpenPostgres(ctx context.Context, url string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return NewPGStore(pool), nil
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Record(ctx context.Context, r Result) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO game_results
			(id, player_id, won, attempts, max_attempts, code_length, secret, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.ID, r.PlayerID, r.Won, r.Attempts, r.MaxAttempts, r.CodeLength, r.Secret,
		r.StartedAt.UTC(), r.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert result %s: %w", r.ID, err)
	}
	return nil
}

func (s *PGStore) Stats(ctx context.Context, playerID string) (PlayerStats, error) {
	st := PlayerStats{PlayerID: playerID}
	var games, wins, best int64
	err := s.db.QueryRow(ctx, statsQuery("$1"), playerID).Scan(&games, &wins, &best)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("query stats: %w", err)
	}
	st.Games, st.Wins, st.BestAttempts = int(games), int(wins), int(best)
	st.Losses = st.Games - st.Wins
	return st, nil
}

func (s *PGStore) Recent(ctx context.Context, playerID string, limit int) ([]Result, error) {
	rows, err := s.db.Query(ctx, recentQuery("$1", "$2"), playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Result])
	if err != nil {
		return nil, fmt.Errorf("collect recent: %w", err)
	}
	return out, nil
}

func (s *PGStore) Close() error {
	s.db.Close()
	return nil
}
