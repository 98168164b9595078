package cuttle

import "math/rand"

// newArena builds the canonical 52-card arena: one card per suit/rank pair,
// each with a stable CardID equal to its index. IDs never change after this
// point (spec.md §3).
func newArena() []*Card {
	arena := make([]*Card, 0, 52)
	id := CardID(0)
	for s := Clubs; s <= Spades; s++ {
		for r := Ace; r <= King; r++ {
			arena = append(arena, &Card{
				ID:       id,
				Suit:     s,
				Rank:     r,
				PlayedBy: NoPlayer,
				Purpose:  PurposeNone,
			})
			id++
		}
	}
	return arena
}

// buildDrawPile returns the ids of every card in the arena, shuffled by rng.
// The draw pile is a stack with the top card at the end of the slice, so
// drawing is an O(1) pop from the tail.
func buildDrawPile(arena []*Card, rng *rand.Rand) []CardID {
	ids := make([]CardID, len(arena))
	for i, c := range arena {
		ids[i] = c.ID
	}
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ids
}

// dealOpeningHands removes the opening hands from the draw pile: dealerHand
// cards go to the dealer (player 0), and the remaining cards go to the
// non-dealer (player 1), per spec.md §4.B's 5/6-card asymmetric deal. The
// pile is consumed from its tail, matching Draw's "top = last element"
// convention.
func dealOpeningHands(pile []CardID, dealerHand, nonDealerHand int) (dealer, nonDealer []CardID, rest []CardID) {
	n := len(pile)
	dealer = append([]CardID(nil), pile[n-dealerHand:]...)
	pile = pile[:n-dealerHand]

	n = len(pile)
	nonDealer = append([]CardID(nil), pile[n-nonDealerHand:]...)
	pile = pile[:n-nonDealerHand]

	return dealer, nonDealer, pile
}
