// Export match results from the database to CSV for offline analysis.
//
// Usage: go run scripts/export_results.go [output.csv]
//
// The database URL is taken from DATABASE_URL, defaulting to a local
// postgres.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	ctx := context.Background()

	outPath := "data/match_results.csv"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "postgres://localhost:5432/invoke?sslmode=disable"
	}

	fmt.Println("=== Match Result Export ===")
	fmt.Printf("Output: %s\n", outPath)

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	rows, err := pool.Query(ctx, `
		SELECT match_id, seed, winner, rounds, steps, finished_at
		FROM match_results ORDER BY finished_at
	`)
	if err != nil {
		log.Fatalf("Failed to query match results: %v", err)
	}
	defer rows.Close()

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"match_id", "seed", "winner", "rounds", "steps", "finished_at"}); err != nil {
		log.Fatalf("Failed to write header: %v", err)
	}

	count := 0
	for rows.Next() {
		var (
			matchID    string
			seed       int64
			winner     int
			rounds     int
			steps      int
			finishedAt time.Time
		)
		if err := rows.Scan(&matchID, &seed, &winner, &rounds, &steps, &finishedAt); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}
		record := []string{
			matchID,
			strconv.FormatInt(seed, 10),
			strconv.Itoa(winner),
			strconv.Itoa(rounds),
			strconv.Itoa(steps),
			finishedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			log.Fatalf("Failed to write row: %v", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed reading rows: %v", err)
	}

	fmt.Printf("Exported %d match results\n", count)
}
