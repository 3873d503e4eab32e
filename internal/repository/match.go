package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound reports a missing row.
var ErrNotFound = errors.New("not found")

// MatchResult is the durable record of one finished match.
type MatchResult struct {
	MatchID    string
	Seed       int64
	Winner     int // 0 on a draw
	Rounds     int
	Steps      int
	FinishedAt time.Time
}

// MatchRepository stores match results and replay blobs.
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a repository on the given database.
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Migrate creates the repository's tables when they do not exist yet.
func (r *MatchRepository) Migrate(ctx context.Context) error {
	_, err := r.db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS match_results (
			match_id    TEXT PRIMARY KEY,
			seed        BIGINT NOT NULL,
			winner      INT NOT NULL,
			rounds      INT NOT NULL,
			steps       INT NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS match_replays (
			match_id TEXT PRIMARY KEY REFERENCES match_results(match_id),
			data     BYTEA NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate match tables: %w", err)
	}
	return nil
}

// SaveResult inserts or updates a match result.
func (r *MatchRepository) SaveResult(ctx context.Context, res MatchResult) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO match_results (match_id, seed, winner, rounds, steps, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (match_id) DO UPDATE SET
			winner = EXCLUDED.winner,
			rounds = EXCLUDED.rounds,
			steps = EXCLUDED.steps,
			finished_at = EXCLUDED.finished_at
	`, res.MatchID, res.Seed, res.Winner, res.Rounds, res.Steps, res.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to save match result: %w", err)
	}
	return nil
}

// GetResult fetches one match result.
func (r *MatchRepository) GetResult(ctx context.Context, matchID string) (MatchResult, error) {
	var res MatchResult
	err := r.db.pool.QueryRow(ctx, `
		SELECT match_id, seed, winner, rounds, steps, finished_at
		FROM match_results WHERE match_id = $1
	`, matchID).Scan(&res.MatchID, &res.Seed, &res.Winner, &res.Rounds, &res.Steps, &res.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return MatchResult{}, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return MatchResult{}, fmt.Errorf("failed to get match result: %w", err)
	}
	return res, nil
}

// ListRecent returns the most recently finished matches.
func (r *MatchRepository) ListRecent(ctx context.Context, limit int) ([]MatchResult, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT match_id, seed, winner, rounds, steps, finished_at
		FROM match_results ORDER BY finished_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var res MatchResult
		if err := rows.Scan(&res.MatchID, &res.Seed, &res.Winner, &res.Rounds, &res.Steps, &res.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// SaveReplay stores a match's serialized replay.
func (r *MatchRepository) SaveReplay(ctx context.Context, matchID string, data []byte) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO match_replays (match_id, data) VALUES ($1, $2)
		ON CONFLICT (match_id) DO UPDATE SET data = EXCLUDED.data
	`, matchID, data)
	if err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}
	return nil
}

// GetReplay fetches a match's serialized replay.
func (r *MatchRepository) GetReplay(ctx context.Context, matchID string) ([]byte, error) {
	var data []byte
	err := r.db.pool.QueryRow(ctx, `
		SELECT data FROM match_replays WHERE match_id = $1
	`, matchID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("replay %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get replay: %w", err)
	}
	return data, nil
}
