package cuttle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlayPointsAdvancesTurn(t *testing.T) {
	s := newScenarioGame()
	ace := s.cardID(Clubs, Ace)
	s.give(0, ace)

	finished, winner, err := s.Apply(Action{Type: ActionPlayPoints, PlayedBy: 0, Card: ace, Target: NoCard})
	require.NoError(t, err)
	require.True(t, finished)
	require.Equal(t, -1, winner)
	require.Equal(t, 1, s.Turn())
	require.Contains(t, s.fields[0], ace)
}

func TestScuttleRequiresHigherRankOrSuit(t *testing.T) {
	s := newScenarioGame()
	three := s.cardID(Clubs, Three)
	two := s.cardID(Clubs, Two)
	s.moveToField(1, two, PurposePoints)
	s.give(0, three)

	legal := s.LegalActions(0)
	found := false
	for _, a := range legal {
		if a.Type == ActionScuttle && a.Card == three && a.Target == two {
			found = true
		}
	}
	require.True(t, found)

	finished, _, err := s.Apply(Action{Type: ActionScuttle, PlayedBy: 0, Card: three, Target: two})
	require.NoError(t, err)
	require.True(t, finished)
	require.NotContains(t, s.fields[1], two)
	require.Contains(t, s.discard, two)
	require.Contains(t, s.discard, three)
}

func TestScuttleRejectsLowerValue(t *testing.T) {
	s := newScenarioGame()
	two := s.cardID(Clubs, Two)
	three := s.cardID(Clubs, Three)
	s.moveToField(1, three, PurposePoints)
	s.give(0, two)

	_, _, err := s.Apply(Action{Type: ActionScuttle, PlayedBy: 0, Card: two, Target: three})
	require.Error(t, err)
	var re *RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, KindScuttleInvalid, re.Kind)
}

func TestWinByReachingDefaultTarget(t *testing.T) {
	s := newScenarioGame()

	ten := s.cardID(Clubs, Ten)
	nine := s.cardID(Diamonds, Nine)
	two := s.cardID(Hearts, Two)
	s.give(0, ten)
	s.give(0, nine)
	s.give(0, two)

	filler1 := s.cardID(Spades, Four)
	filler2 := s.cardID(Spades, Six)
	s.give(1, filler1)
	s.give(1, filler2)

	_, _, err := s.Apply(Action{Type: ActionPlayPoints, PlayedBy: 0, Card: ten, Target: NoCard})
	require.NoError(t, err)
	_, _, err = s.Apply(Action{Type: ActionPlayPoints, PlayedBy: 1, Card: filler1, Target: NoCard})
	require.NoError(t, err)
	_, _, err = s.Apply(Action{Type: ActionPlayPoints, PlayedBy: 0, Card: nine, Target: NoCard})
	require.NoError(t, err)
	_, _, err = s.Apply(Action{Type: ActionPlayPoints, PlayedBy: 1, Card: filler2, Target: NoCard})
	require.NoError(t, err)

	finished, winner, err := s.Apply(Action{Type: ActionPlayPoints, PlayedBy: 0, Card: two, Target: NoCard})
	require.NoError(t, err)
	require.True(t, finished)
	require.Equal(t, 0, winner)
	require.Equal(t, StatusPlayer0Won, s.Status())
}

func TestOneOffAceClearsAllPointCards(t *testing.T) {
	s := newScenarioGame()
	p0Point := s.cardID(Clubs, Five)
	p1Point := s.cardID(Diamonds, Six)
	s.moveToField(0, p0Point, PurposePoints)
	s.moveToField(1, p1Point, PurposePoints)

	ace := s.cardID(Hearts, Ace)
	s.give(0, ace)

	finished, _, err := s.Apply(Action{Type: ActionPlayOneOff, PlayedBy: 0, Card: ace, Target: NoCard})
	require.NoError(t, err)
	require.False(t, finished)
	require.Equal(t, PhaseResolvingOneOff, s.Phase())
	require.Equal(t, 1, s.CurrentActionPlayer())

	finished, _, err = s.Apply(Action{Type: ActionResolve, PlayedBy: 1, Card: NoCard, Target: NoCard})
	require.NoError(t, err)
	require.True(t, finished)
	require.Equal(t, PhaseBase, s.Phase())
	require.Empty(t, s.fields[0])
	require.Empty(t, s.fields[1])
	require.Contains(t, s.discard, p0Point)
	require.Contains(t, s.discard, p1Point)
	require.Contains(t, s.discard, ace)
}

func TestCounterCancelsOneOff(t *testing.T) {
	s := newScenarioGame()
	point := s.cardID(Clubs, Five)
	s.moveToField(0, point, PurposePoints)

	ace := s.cardID(Hearts, Ace)
	s.give(0, ace)
	two := s.cardID(Spades, Two)
	s.give(1, two)

	_, _, err := s.Apply(Action{Type: ActionPlayOneOff, PlayedBy: 0, Card: ace, Target: NoCard})
	require.NoError(t, err)

	_, _, err = s.Apply(Action{Type: ActionCounter, PlayedBy: 1, Card: two, Target: NoCard})
	require.NoError(t, err)
	require.Equal(t, 0, s.CurrentActionPlayer())

	finished, _, err := s.Apply(Action{Type: ActionResolve, PlayedBy: 0, Card: NoCard, Target: NoCard})
	require.NoError(t, err)
	require.True(t, finished)
	require.Contains(t, s.fields[0], point, "countered one-off must not apply its effect")
	require.Contains(t, s.discard, ace)
	require.Contains(t, s.discard, two)
}

func TestOneOffFourMakesOpponentDiscardTwoCards(t *testing.T) {
	s := newScenarioGame()
	four := s.cardID(Clubs, Four)
	s.give(0, four)
	first := s.cardID(Diamonds, Seven)
	second := s.cardID(Diamonds, Eight)
	s.give(1, first)
	s.give(1, second)

	_, _, err := s.Apply(Action{Type: ActionPlayOneOff, PlayedBy: 0, Card: four, Target: NoCard})
	require.NoError(t, err)

	_, _, err = s.Apply(Action{Type: ActionResolve, PlayedBy: 1, Card: NoCard, Target: NoCard})
	require.NoError(t, err)
	require.Equal(t, PhaseResolvingFour, s.Phase())
	require.Equal(t, 1, s.CurrentActionPlayer())
	require.Equal(t, 2, s.pendingFourRemaining)

	finished, _, err := s.Apply(Action{Type: ActionDiscardFromHand, PlayedBy: 1, Card: first, Target: NoCard})
	require.NoError(t, err)
	require.False(t, finished)
	require.Equal(t, PhaseResolvingFour, s.Phase())
	require.Contains(t, s.discard, first)

	finished, _, err = s.Apply(Action{Type: ActionDiscardFromHand, PlayedBy: 1, Card: second, Target: NoCard})
	require.NoError(t, err)
	require.True(t, finished)
	require.Equal(t, PhaseBase, s.Phase())
	require.Contains(t, s.discard, second)
	require.Equal(t, 1, s.Turn())
}

func TestOneOffFourCapsAtOneWhenOpponentHandHasOneCard(t *testing.T) {
	s := newScenarioGame()
	four := s.cardID(Clubs, Four)
	s.give(0, four)
	toDiscard := s.cardID(Diamonds, Seven)
	s.give(1, toDiscard)

	_, _, err := s.Apply(Action{Type: ActionPlayOneOff, PlayedBy: 0, Card: four, Target: NoCard})
	require.NoError(t, err)
	_, _, err = s.Apply(Action{Type: ActionResolve, PlayedBy: 1, Card: NoCard, Target: NoCard})
	require.NoError(t, err)
	require.Equal(t, 1, s.pendingFourRemaining)

	finished, _, err := s.Apply(Action{Type: ActionDiscardFromHand, PlayedBy: 1, Card: toDiscard, Target: NoCard})
	require.NoError(t, err)
	require.True(t, finished)
	require.Equal(t, PhaseBase, s.Phase())
}

func TestOneOffCardStaysInHandUntilResolved(t *testing.T) {
	s := newScenarioGame()
	ace := s.cardID(Hearts, Ace)
	s.give(0, ace)
	two := s.cardID(Spades, Two)
	s.give(1, two)

	_, _, err := s.Apply(Action{Type: ActionPlayOneOff, PlayedBy: 0, Card: ace, Target: NoCard})
	require.NoError(t, err)
	require.Contains(t, s.hands[0], ace, "one-off must stay in hand until the chain resolves")

	_, _, err = s.Apply(Action{Type: ActionResolve, PlayedBy: 1, Card: NoCard, Target: NoCard})
	require.NoError(t, err)
	require.NotContains(t, s.hands[0], ace)
	require.Contains(t, s.discard, ace)
}

func TestOneOffThreeReclaimsFromDiscard(t *testing.T) {
	s := newScenarioGame()
	three := s.cardID(Clubs, Three)
	s.give(0, three)
	reclaimed := s.cardID(Diamonds, Nine)
	s.discard = append(s.discard, reclaimed)

	_, _, err := s.Apply(Action{Type: ActionPlayOneOff, PlayedBy: 0, Card: three, Target: NoCard})
	require.NoError(t, err)

	_, _, err = s.Apply(Action{Type: ActionResolve, PlayedBy: 1, Card: NoCard, Target: NoCard})
	require.NoError(t, err)
	require.Equal(t, PhaseResolvingThree, s.Phase())
	require.Equal(t, 0, s.CurrentActionPlayer())

	finished, _, err := s.Apply(Action{Type: ActionTakeFromDiscard, PlayedBy: 0, Source: reclaimed, Target: NoCard, Card: NoCard})
	require.NoError(t, err)
	require.True(t, finished)
	require.Contains(t, s.hands[0], reclaimed)
	require.NotContains(t, s.discard, reclaimed)
}

func TestPlayJackStealsFieldCard(t *testing.T) {
	s := newScenarioGame()
	point := s.cardID(Clubs, Seven)
	s.moveToField(1, point, PurposePoints)
	jack := s.cardID(Diamonds, Jack)
	s.give(0, jack)

	_, _, err := s.Apply(Action{Type: ActionPlayJack, PlayedBy: 0, Card: jack, Target: point})
	require.NoError(t, err)
	require.True(t, s.card(point).IsStolen())
	require.Equal(t, 0, effectiveOwner(s.card(point)))
	require.Equal(t, s.GetPlayerScore(0), 7)
	require.Equal(t, s.GetPlayerScore(1), 0)
}

func TestJackBlockedByOpponentQueen(t *testing.T) {
	s := newScenarioGame()
	queen := s.cardID(Clubs, Queen)
	point := s.cardID(Diamonds, Seven)
	s.moveToField(1, queen, PurposeFaceCard)
	s.moveToField(1, point, PurposePoints)
	jack := s.cardID(Hearts, Jack)
	s.give(0, jack)

	legal := s.LegalActions(0)
	for _, a := range legal {
		require.Falsef(t, a.Type == ActionPlayJack && a.Target == point, "Jack must not be offered against a Queen-protected field")
	}

	_, _, err := s.Apply(Action{Type: ActionPlayJack, PlayedBy: 0, Card: jack, Target: point})
	require.Error(t, err)
	var re *RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, KindJackBlocked, re.Kind)
}

func TestJackCannotRetargetCardAlreadyControlledByAttacker(t *testing.T) {
	s := newScenarioGame()
	point := s.cardID(Diamonds, Seven)
	s.moveToField(1, point, PurposePoints)
	firstJack := s.cardID(Hearts, Jack)
	s.give(0, firstJack)
	_, _, err := s.Apply(Action{Type: ActionPlayJack, PlayedBy: 0, Card: firstJack, Target: point})
	require.NoError(t, err)
	require.Equal(t, 0, effectiveOwner(s.card(point)), "player 0 now effectively controls the stolen point card")

	s.turn = 0
	s.currentActionPlayer = 0
	secondJack := s.cardID(Spades, Jack)
	s.give(0, secondJack)

	legal := s.LegalActions(0)
	for _, a := range legal {
		require.Falsef(t, a.Type == ActionPlayJack && a.Target == point, "Jack must not target a card player 0 already effectively controls")
	}

	_, _, err = s.Apply(Action{Type: ActionPlayJack, PlayedBy: 0, Card: secondJack, Target: point})
	require.Error(t, err)
	var re *RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, KindJackBlocked, re.Kind)
}

func TestCounterBlockedByOpponentQueen(t *testing.T) {
	s := newScenarioGame()
	queen := s.cardID(Clubs, Queen)
	s.moveToField(1, queen, PurposeFaceCard) // one-off player's own field blocks the counterer (player 0)
	s.turn = 1
	s.currentActionPlayer = 1

	ace := s.cardID(Hearts, Ace)
	s.give(1, ace)
	two := s.cardID(Spades, Two)
	s.give(0, two)

	_, _, err := s.Apply(Action{Type: ActionPlayOneOff, PlayedBy: 1, Card: ace, Target: NoCard})
	require.NoError(t, err)

	legal := s.LegalActions(0)
	for _, a := range legal {
		require.NotEqual(t, ActionCounter, a.Type, "Counter must not be offered while the opposing Queen blocks it")
	}

	_, _, err = s.Apply(Action{Type: ActionCounter, PlayedBy: 0, Card: two, Target: NoCard})
	require.Error(t, err)
	var re *RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, KindCounterBlocked, re.Kind)
}

func TestScuttleCannotTargetCardStolenByAttacker(t *testing.T) {
	s := newScenarioGame()
	point := s.cardID(Diamonds, Seven)
	s.moveToField(1, point, PurposePoints)
	jack := s.cardID(Hearts, Jack)
	s.give(0, jack)
	_, _, err := s.Apply(Action{Type: ActionPlayJack, PlayedBy: 0, Card: jack, Target: point})
	require.NoError(t, err)
	require.Equal(t, 0, effectiveOwner(s.card(point)), "player 0 now effectively controls the stolen point card")

	s.turn = 0
	s.currentActionPlayer = 0
	attacker := s.cardID(Clubs, Nine)
	s.give(0, attacker)

	legal := s.LegalActions(0)
	for _, a := range legal {
		require.Falsef(t, a.Type == ActionScuttle && a.Target == point, "player 0 cannot scuttle a point card they already stole")
	}

	_, _, err = s.Apply(Action{Type: ActionScuttle, PlayedBy: 0, Card: attacker, Target: point})
	require.Error(t, err)
	var re *RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, KindTargetMissing, re.Kind)
}

func TestDrawWithFullHandIsHandFull(t *testing.T) {
	s := newScenarioGame()
	for i := 0; i < maxHandSize; i++ {
		id, ok := s.drawTop()
		require.True(t, ok)
		s.hands[0] = append(s.hands[0], id)
	}

	legal := s.LegalActions(0)
	for _, a := range legal {
		require.NotEqual(t, ActionDraw, a.Type, "Draw must not be offered at a full hand")
	}

	_, _, err := s.Apply(Action{Type: ActionDraw, PlayedBy: 0, Card: NoCard, Target: NoCard})
	require.Error(t, err)
	var re *RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, KindHandFull, re.Kind)
}

func TestDrawFromEmptyPileIsIllegal(t *testing.T) {
	s := newScenarioGame()
	s.drawPile = nil

	_, _, err := s.Apply(Action{Type: ActionDraw, PlayedBy: 0, Card: NoCard, Target: NoCard})
	require.Error(t, err)
	var re *RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, KindCardMissing, re.Kind)
}

func TestWrongPlayerCannotAct(t *testing.T) {
	s := newScenarioGame()
	card := s.cardID(Clubs, Five)
	s.give(1, card)

	_, _, err := s.Apply(Action{Type: ActionPlayPoints, PlayedBy: 1, Card: card, Target: NoCard})
	require.Error(t, err)
	var re *RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, KindWrongPlayer, re.Kind)
}
