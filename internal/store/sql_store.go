package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLStore keeps results in a SQLite file.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating it if needed) the database file at path.
func OpenSQLite(path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return NewSQLStore(db), nil
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// DB exposes the handle, for migrations.
func (s *SQLStore) DB() *sql.DB { return s.db }

func (s *SQLStore) Record(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_results
			(id, player_id, won, attempts, max_attempts, code_length, secret, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.PlayerID, r.Won, r.Attempts, r.MaxAttempts, r.CodeLength, r.Secret,
		r.StartedAt.UTC(), r.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert result %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLStore) Stats(ctx context.Context, playerID string) (PlayerStats, error) {
	st := PlayerStats{PlayerID: playerID}
	err := s.db.QueryRowContext(ctx, statsQuery("?"), playerID).
		Scan(&st.Games, &st.Wins, &st.BestAttempts)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("query stats: %w", err)
	}
	st.Losses = st.Games - st.Wins
	return st, nil
}

func (s *SQLStore) Recent(ctx context.Context, playerID string, limit int) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, recentQuery("?", "?"), playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.PlayerID, &r.Won, &r.Attempts, &r.MaxAttempts,
			&r.CodeLength, &r.Secret, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) Close() error { return s.db.Close() }

// statsQuery and recentQuery are shared with PGStore; only the placeholder
// syntax differs.
func statsQuery(player string) string {
	return `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN won THEN 1 ELSE 0 END), 0),
		       COALESCE(MIN(CASE WHEN won THEN attempts END), 0)
		FROM game_results
		WHERE player_id = ` + player
}

func recentQuery(player, limit string) string {
	return `
		SELECT id, player_id, won, attempts, max_attempts, code_length, secret, started_at, finished_at
		FROM game_results
		WHERE player_id = ` + player + `
		ORDER BY finished_at DESC
		LIMIT ` + limit
}
