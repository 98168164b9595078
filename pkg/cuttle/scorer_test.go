package cuttle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKingTargetsDecreaseWithMoreKings(t *testing.T) {
	require.Equal(t, 21, targetForKings(0))
	require.Equal(t, 14, targetForKings(1))
	require.Equal(t, 10, targetForKings(2))
	require.Equal(t, 5, targetForKings(3))
	require.Equal(t, 0, targetForKings(4))
	require.Equal(t, 0, targetForKings(9))
}

func TestGetPlayerScoreSumsPointCards(t *testing.T) {
	s := newScenarioGame()
	s.moveToField(0, s.cardID(Clubs, Five), PurposePoints)
	s.moveToField(0, s.cardID(Diamonds, Seven), PurposePoints)
	s.moveToField(0, s.cardID(Hearts, King), PurposeFaceCard)

	require.Equal(t, 12, s.GetPlayerScore(0))
	require.Equal(t, 1, s.GetPlayerKingCount(0))
	require.Equal(t, 14, s.GetPlayerTarget(0))
}

func TestIsStalemateWhenDrawPileAndHandAreEmpty(t *testing.T) {
	s := newScenarioGame()
	s.drawPile = nil
	require.True(t, s.IsStalemate())

	s.give(0, s.cardID(Clubs, Five))
	require.False(t, s.IsStalemate())
}
