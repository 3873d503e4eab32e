// Package series runs self-play series: batches of seeded matches between two
// agents, with per-seat standings. A series is reproducible from its base
// seed.
package series

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invokesim/invoke-server-go/internal/game/agent"
	"github.com/invokesim/invoke-server-go/internal/game/catalog"
	"github.com/invokesim/invoke-server-go/internal/game/core"
)

// State tracks a series through its lifecycle.
type State int

const (
	StateWaiting State = iota
	StateInProgress
	StateFinished
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "WAITING"
	case StateInProgress:
		return "IN_PROGRESS"
	case StateFinished:
		return "FINISHED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// AgentKind selects the decision policy for one seat.
type AgentKind string

const (
	AgentLazy   AgentKind = "lazy"
	AgentRandom AgentKind = "random"
)

func buildAgent(kind AgentKind, rng *rand.Rand) (core.Agent, error) {
	switch kind {
	case AgentLazy:
		return agent.LazyAgent{}, nil
	case AgentRandom:
		return agent.NewRandomAgent(rng), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", kind)
}

// MatchRecord is the outcome of one match in a series.
type MatchRecord struct {
	Number int
	Seed   int64
	Winner core.Pid // 0 on a draw
	Rounds int
	Steps  int
	Err    string
}

// Standing is one seat's running tally.
type Standing struct {
	Agent  AgentKind
	Wins   int
	Losses int
	Draws  int
}

// Snapshot is a consistent copy of a series for external use.
type Snapshot struct {
	ID         string
	State      State
	BaseSeed   int64
	NumMatches int
	Played     int
	P1         Standing
	P2         Standing
	Matches    []MatchRecord
	CreateTime time.Time
	StartTime  *time.Time
	EndTime    *time.Time
}

// Series is a batch of matches between two fixed agent policies.
type Series struct {
	id         string
	state      State
	baseSeed   int64
	numMatches int
	p1Kind     AgentKind
	p2Kind     AgentKind
	p1         Standing
	p2         Standing
	matches    []MatchRecord
	createTime time.Time
	startTime  *time.Time
	endTime    *time.Time
	mu         sync.RWMutex
}

// NewSeries creates a series of numMatches matches. Match i plays with seed
// baseSeed+i.
func NewSeries(p1, p2 AgentKind, baseSeed int64, numMatches int) *Series {
	return &Series{
		id:         uuid.NewString(),
		state:      StateWaiting,
		baseSeed:   baseSeed,
		numMatches: numMatches,
		p1Kind:     p1,
		p2Kind:     p2,
		p1:         Standing{Agent: p1},
		p2:         Standing{Agent: p2},
		createTime: time.Now(),
	}
}

// ID returns the series id.
func (s *Series) ID() string {
	return s.id
}

// Run plays every match in order. It returns the first agent construction
// error; an individual match failure is recorded and the series continues.
func (s *Series) Run() error {
	s.mu.Lock()
	if s.state != StateWaiting {
		s.mu.Unlock()
		return fmt.Errorf("series %s already started", s.id)
	}
	s.state = StateInProgress
	now := time.Now()
	s.startTime = &now
	s.mu.Unlock()

	for i := 0; i < s.numMatches; i++ {
		seed := s.baseSeed + int64(i)
		rec := s.playMatch(i+1, seed)

		s.mu.Lock()
		s.matches = append(s.matches, rec)
		switch {
		case rec.Err != "":
		case rec.Winner == core.P1:
			s.p1.Wins++
			s.p2.Losses++
		case rec.Winner == core.P2:
			s.p2.Wins++
			s.p1.Losses++
		default:
			s.p1.Draws++
			s.p2.Draws++
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.state = StateFinished
	end := time.Now()
	s.endTime = &end
	s.mu.Unlock()
	return nil
}

func (s *Series) playMatch(number int, seed int64) MatchRecord {
	rec := MatchRecord{Number: number, Seed: seed}

	rng := rand.New(rand.NewSource(seed))
	p1, err := buildAgent(s.p1Kind, rng)
	if err != nil {
		rec.Err = err.Error()
		return rec
	}
	p2, err := buildAgent(s.p2Kind, rng)
	if err != nil {
		rec.Err = err.Error()
		return rec
	}

	initial := core.NewGameState(
		core.NewDefaultMode(),
		catalog.NewRegistry(),
		rng,
		core.NewPlayerState(catalog.DefaultRoster(), catalog.DefaultDeck()),
		core.NewPlayerState(catalog.DefaultRoster(), catalog.DefaultDeck()),
	)
	machine := core.NewGameStateMachine(initial, p1, p2)
	if err := machine.Run(); err != nil {
		rec.Err = err.Error()
		return rec
	}

	final := machine.State()
	if winner, ok := final.Winner(); ok {
		rec.Winner = winner
	}
	rec.Rounds = final.Round()
	rec.Steps = len(machine.History())
	return rec
}

// Snapshot returns a consistent copy of the series state.
func (s *Series) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		ID:         s.id,
		State:      s.state,
		BaseSeed:   s.baseSeed,
		NumMatches: s.numMatches,
		Played:     len(s.matches),
		P1:         s.p1,
		P2:         s.p2,
		Matches:    append([]MatchRecord(nil), s.matches...),
		CreateTime: s.createTime,
		StartTime:  cloneTime(s.startTime),
		EndTime:    cloneTime(s.endTime),
	}
}

func cloneTime(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	cp := *src
	return &cp
}

// Manager holds series by id.
type Manager struct {
	series map[string]*Series
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewManager creates a series manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		series: make(map[string]*Series),
		logger: logger,
	}
}

// CreateSeries registers a new series.
func (m *Manager) CreateSeries(p1, p2 AgentKind, baseSeed int64, numMatches int) *Series {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := NewSeries(p1, p2, baseSeed, numMatches)
	m.series[s.ID()] = s

	if m.logger != nil {
		m.logger.Info("series created",
			zap.String("series_id", s.ID()),
			zap.String("p1", string(p1)),
			zap.String("p2", string(p2)),
			zap.Int64("base_seed", baseSeed),
			zap.Int("matches", numMatches),
		)
	}
	return s
}

// GetSeries retrieves a series by id.
func (m *Manager) GetSeries(id string) (*Series, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.series[id]
	return s, ok
}

// RemoveSeries removes a series.
func (m *Manager) RemoveSeries(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.series, id)
	if m.logger != nil {
		m.logger.Info("series removed", zap.String("series_id", id))
	}
}

// ActiveCount returns the number of unfinished series.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, s := range m.series {
		snap := s.Snapshot()
		if snap.State != StateFinished && snap.State != StateFailed {
			count++
		}
	}
	return count
}
