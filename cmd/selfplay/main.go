// Self-play driver: runs a series of seeded matches between two agent
// policies and prints the standings. Useful for exercising the rules engine
// and for regression-checking determinism (the same seed replays the same
// series).
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/invokesim/invoke-server-go/internal/series"
)

var (
	numMatches = flag.Int("matches", 10, "number of matches to play")
	baseSeed   = flag.Int64("seed", 1, "seed of the first match; match i uses seed+i")
	p1Kind     = flag.String("p1", "random", "player 1 agent: lazy or random")
	p2Kind     = flag.String("p2", "random", "player 2 agent: lazy or random")
	debug      = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	logger, err := initLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	mgr := series.NewManager(logger)
	s := mgr.CreateSeries(
		series.AgentKind(*p1Kind),
		series.AgentKind(*p2Kind),
		*baseSeed,
		*numMatches,
	)

	if err := s.Run(); err != nil {
		logger.Fatal("series failed", zap.Error(err))
	}

	snap := s.Snapshot()
	for _, m := range snap.Matches {
		if m.Err != "" {
			logger.Error("match failed",
				zap.Int("match", m.Number),
				zap.Int64("seed", m.Seed),
				zap.String("error", m.Err),
			)
			continue
		}
		logger.Info("match finished",
			zap.Int("match", m.Number),
			zap.Int64("seed", m.Seed),
			zap.Stringer("winner", m.Winner),
			zap.Int("rounds", m.Rounds),
			zap.Int("steps", m.Steps),
		)
	}

	fmt.Printf("series %s: %d matches\n", snap.ID, snap.Played)
	fmt.Printf("  P1 (%s): %d wins, %d losses, %d draws\n",
		snap.P1.Agent, snap.P1.Wins, snap.P1.Losses, snap.P1.Draws)
	fmt.Printf("  P2 (%s): %d wins, %d losses, %d draws\n",
		snap.P2.Agent, snap.P2.Wins, snap.P2.Losses, snap.P2.Draws)
}

func initLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
