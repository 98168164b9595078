package cuttle

import "math/rand"

// newScenarioGame builds a fresh 52-card arena with both hands and fields
// emptied, so tests can place exactly the cards a scenario needs without
// fighting a shuffled deal.
func newScenarioGame() *State {
	s := NewGame(Config{Rng: rand.New(rand.NewSource(1)), Log: createTestLogger()})
	s.drawPile = append(s.drawPile, s.hands[0]...)
	s.drawPile = append(s.drawPile, s.hands[1]...)
	s.hands[0] = nil
	s.hands[1] = nil
	return s
}

// cardID finds the arena card matching suit/rank.
func (s *State) cardID(suit Suit, rank Rank) CardID {
	for _, c := range s.arena {
		if c.Suit == suit && c.Rank == rank {
			return c.ID
		}
	}
	panic("card not found")
}

// give moves a card directly from the draw pile (or wherever it sits) into
// player's hand, for scenario setup.
func (s *State) give(player int, id CardID) {
	removeFromSlice(&s.drawPile, id)
	removeFromSlice(&s.discard, id)
	s.hands[player] = append(s.hands[player], id)
}
