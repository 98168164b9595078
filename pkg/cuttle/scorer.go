package cuttle

// kingTargets maps a player's controlled King count to the point total they
// must reach to win (spec.md §4.D). Four or more Kings wins immediately.
var kingTargets = [...]int{21, 14, 10, 5}

func targetForKings(kings int) int {
	if kings >= len(kingTargets) {
		return 0
	}
	return kingTargets[kings]
}

// effectiveOwner returns who currently benefits from a card sitting in
// play: its original player, flipped by an odd number of Jack attachments
// (spec.md §3's IsStolen).
func effectiveOwner(c *Card) int {
	if c.IsStolen() {
		return Opponent(c.PlayedBy)
	}
	return c.PlayedBy
}

// hasQueenOnField reports whether player has a Queen in their field. A Queen
// blocks the opponent's Jacks and Counters (spec.md §4.E/§4.F).
func (s *State) hasQueenOnField(player int) bool {
	for _, id := range s.fields[player] {
		if s.card(id).Rank == Queen {
			return true
		}
	}
	return false
}

// fieldCards returns every card id currently in either player's field.
func (s *State) fieldCards() []CardID {
	all := make([]CardID, 0, len(s.fields[0])+len(s.fields[1]))
	all = append(all, s.fields[0]...)
	all = append(all, s.fields[1]...)
	return all
}

// GetPlayerScore sums the point value of every point card effectively
// controlled by player, accounting for Jack steals (spec.md §4.D).
func (s *State) GetPlayerScore(player int) int {
	score := 0
	for _, id := range s.fieldCards() {
		c := s.card(id)
		if c.Purpose == PurposePoints && effectiveOwner(c) == player {
			score += c.PointValue()
		}
	}
	return score
}

// GetPlayerKingCount counts the Kings effectively controlled by player.
func (s *State) GetPlayerKingCount(player int) int {
	kings := 0
	for _, id := range s.fieldCards() {
		c := s.card(id)
		if c.Purpose == PurposeFaceCard && c.Rank == King && effectiveOwner(c) == player {
			kings++
		}
	}
	return kings
}

// GetPlayerTarget returns the point total player must reach to win, given
// their currently controlled Kings.
func (s *State) GetPlayerTarget(player int) int {
	return targetForKings(s.GetPlayerKingCount(player))
}

// IsWinner reports whether player has met or exceeded their target.
func (s *State) IsWinner(player int) bool {
	return s.GetPlayerScore(player) >= s.GetPlayerTarget(player)
}

// Winner returns the winning player, or -1 if neither has won. Player 0 is
// checked first (spec.md §4.D); Apply's own end-of-turn check instead
// prefers the acting player when both have reached their target.
func (s *State) Winner() int {
	if s.IsWinner(0) {
		return 0
	}
	if s.IsWinner(1) {
		return 1
	}
	return -1
}

// IsStalemate reports whether the draw pile is exhausted and the player on
// turn has no legal action left (an empty hand, or e.g. only Jacks with
// nothing to target).
func (s *State) IsStalemate() bool {
	return len(s.drawPile) == 0 && len(s.LegalActions(s.currentActionPlayer)) == 0
}
