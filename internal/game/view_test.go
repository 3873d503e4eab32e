package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invokesim/invoke-server-go/internal/game/catalog"
	"github.com/invokesim/invoke-server-go/internal/game/core"
)

// dealtState is a fresh match stepped once, so both opening hands are dealt.
func dealtState(t *testing.T) *core.GameState {
	t.Helper()
	s := core.NewGameState(
		core.NewDefaultMode(),
		catalog.NewRegistry(),
		rand.New(rand.NewSource(1)),
		core.NewPlayerState(catalog.DefaultRoster(), catalog.DefaultDeck()),
		core.NewPlayerState(catalog.DefaultRoster(), catalog.DefaultDeck()),
	)
	return s.Step()
}

func handSum(hand map[string]int) int {
	total := 0
	for _, n := range hand {
		total += n
	}
	return total
}

func TestBuildViewHidesOpponentHand(t *testing.T) {
	view := BuildView(dealtState(t), core.P1)

	require.Len(t, view.Players, 2)
	mine, theirs := view.Players[0], view.Players[1]

	assert.Equal(t, 5, handSum(mine.Hand), "own hand stays visible")
	assert.Equal(t, 5, mine.HandCount)
	assert.Nil(t, theirs.Hand, "opponent hand must be reduced to a count")
	assert.Nil(t, theirs.Dice)
	assert.Equal(t, 5, theirs.HandCount)
	assert.Equal(t, 25, theirs.DeckCount)
}

func TestBuildViewOmniscientShowsBothHands(t *testing.T) {
	view := BuildView(dealtState(t), ViewerOmniscient)

	require.Len(t, view.Players, 2)
	assert.Equal(t, 5, handSum(view.Players[0].Hand))
	assert.Equal(t, 5, handSum(view.Players[1].Hand))
}

func TestBuildViewCarriesPhaseAndWaiting(t *testing.T) {
	s := dealtState(t)
	view := BuildView(s, core.P2)

	assert.Equal(t, "CardSelectPhase", view.Phase)
	assert.Equal(t, 1, view.Round)
	assert.Equal(t, int(core.P1), view.Waiting, "card selection waits on P1 first")
	assert.False(t, view.Ended)

	chars := view.Players[0].Characters
	require.Len(t, chars, 3)
	assert.Equal(t, "Kaeya", chars[0].Name)
	assert.Equal(t, 10, chars[0].MaxHP)
	assert.False(t, chars[0].Defeated)
}
