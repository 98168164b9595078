package cuttle

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTripsThroughJSON(t *testing.T) {
	s := newScenarioGame()
	point := s.cardID(Clubs, Seven)
	s.moveToField(0, point, PurposePoints)
	s.give(1, s.cardID(Diamonds, Five))

	snap := s.Snapshot()
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored := Restore(Config{Log: createTestLogger()}, &decoded)
	require.Equal(t, s.Turn(), restored.Turn())
	require.Equal(t, s.Phase(), restored.Phase())
	require.Contains(t, restored.fields[0], point)
	require.Equal(t, s.GetPlayerScore(0), restored.GetPlayerScore(0))
}

func TestSnapshotPreservesPendingOneOff(t *testing.T) {
	s := newScenarioGame()
	ace := s.cardID(Hearts, Ace)
	s.give(0, ace)
	_, _, err := s.Apply(Action{Type: ActionPlayOneOff, PlayedBy: 0, Card: ace, Target: NoCard})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Equal(t, "ResolvingOneOff", snap.Phase)
	require.Equal(t, ace, snap.PendingOneOff)

	restored := Restore(Config{Log: createTestLogger()}, snap)
	require.Equal(t, PhaseResolvingOneOff, restored.Phase())
	require.Equal(t, 1, restored.CurrentActionPlayer())
}
