package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLazySeriesDrawsEveryMatch(t *testing.T) {
	s := NewSeries(AgentLazy, AgentLazy, 100, 2)
	require.NoError(t, s.Run())

	snap := s.Snapshot()
	assert.Equal(t, StateFinished, snap.State)
	assert.Equal(t, 2, snap.Played)
	assert.Equal(t, 2, snap.P1.Draws)
	assert.Equal(t, 2, snap.P2.Draws)
	assert.Zero(t, snap.P1.Wins)
	assert.Zero(t, snap.P2.Wins)

	require.Len(t, snap.Matches, 2)
	assert.Equal(t, int64(100), snap.Matches[0].Seed)
	assert.Equal(t, int64(101), snap.Matches[1].Seed)
	for _, m := range snap.Matches {
		assert.Empty(t, m.Err)
		assert.Equal(t, 15, m.Rounds)
	}
	require.NotNil(t, snap.StartTime)
	require.NotNil(t, snap.EndTime)
}

func TestRandomSeriesCompletes(t *testing.T) {
	s := NewSeries(AgentRandom, AgentRandom, 7, 3)
	require.NoError(t, s.Run())

	snap := s.Snapshot()
	assert.Equal(t, StateFinished, snap.State)
	assert.Equal(t, 3, snap.Played)
	for _, m := range snap.Matches {
		assert.Empty(t, m.Err)
		assert.Greater(t, m.Steps, 0)
	}
	total := snap.P1.Wins + snap.P1.Losses + snap.P1.Draws
	assert.Equal(t, 3, total, "every match lands in the standings")
}

func TestUnknownAgentKindRecordsError(t *testing.T) {
	s := NewSeries(AgentKind("psychic"), AgentLazy, 1, 1)
	require.NoError(t, s.Run())

	snap := s.Snapshot()
	assert.Equal(t, StateFinished, snap.State)
	require.Len(t, snap.Matches, 1)
	assert.Contains(t, snap.Matches[0].Err, "unknown agent kind")
	assert.Zero(t, snap.P1.Wins+snap.P1.Losses+snap.P1.Draws, "failed matches stay out of the standings")
}

func TestSeriesRunsOnlyOnce(t *testing.T) {
	s := NewSeries(AgentLazy, AgentLazy, 1, 1)
	require.NoError(t, s.Run())
	assert.Error(t, s.Run())
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(zap.NewNop())

	s := m.CreateSeries(AgentLazy, AgentLazy, 5, 1)
	assert.Equal(t, 1, m.ActiveCount())

	got, ok := m.GetSeries(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	require.NoError(t, s.Run())
	assert.Equal(t, 0, m.ActiveCount())

	m.RemoveSeries(s.ID())
	_, ok = m.GetSeries(s.ID())
	assert.False(t, ok)
}
