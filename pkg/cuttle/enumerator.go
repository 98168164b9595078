package cuttle

// LegalActions enumerates every Action the given player may submit to Apply
// in the current phase (spec.md §4.E). A player with no legal action gets
// an empty slice; it is never legal to act out of turn.
func (s *State) LegalActions(player int) []Action {
	if s.status != StatusInProgress || player != s.currentActionPlayer {
		return nil
	}

	switch s.phaseKind {
	case PhaseBase:
		return s.legalBaseActions(player)
	case PhaseResolvingOneOff:
		return s.legalCounterActions(player)
	case PhaseResolvingFour:
		return s.legalDiscardActions(player)
	case PhaseResolvingThree:
		return s.legalTakeActions(player)
	default:
		return nil
	}
}

func (s *State) legalBaseActions(player int) []Action {
	var actions []Action

	if len(s.drawPile) > 0 && len(s.hands[player]) < maxHandSize {
		actions = append(actions, Action{Type: ActionDraw, PlayedBy: player, Card: NoCard, Target: NoCard})
	}

	opponent := Opponent(player)
	opponentHasQueen := s.hasQueenOnField(opponent)

	for _, id := range s.hands[player] {
		c := s.card(id)

		if c.IsPointCard() {
			actions = append(actions, Action{Type: ActionPlayPoints, PlayedBy: player, Card: id, Target: NoCard})

			for _, fid := range s.fields[opponent] {
				target := s.card(fid)
				if target.IsPointCard() && effectiveOwner(target) == opponent && ScuttleComparable(c, target) {
					actions = append(actions, Action{Type: ActionScuttle, PlayedBy: player, Card: id, Target: fid})
				}
			}
		}

		if c.Rank == Queen || c.Rank == King || c.Rank == Eight {
			actions = append(actions, Action{Type: ActionPlayFaceCard, PlayedBy: player, Card: id, Target: NoCard})
		}

		if c.Rank == Jack && !opponentHasQueen {
			for _, fid := range s.fields[opponent] {
				target := s.card(fid)
				if target.IsPointCard() && effectiveOwner(target) != player {
					actions = append(actions, Action{Type: ActionPlayJack, PlayedBy: player, Card: id, Target: fid})
				}
			}
		}

		if c.IsOneOff() {
			actions = append(actions, Action{Type: ActionPlayOneOff, PlayedBy: player, Card: id, Target: NoCard})
		}
	}

	return actions
}

func (s *State) legalCounterActions(player int) []Action {
	actions := []Action{{Type: ActionResolve, PlayedBy: player, Card: NoCard, Target: NoCard}}
	if s.hasQueenOnField(Opponent(player)) {
		return actions
	}
	for _, id := range s.hands[player] {
		if s.card(id).Rank == Two {
			actions = append(actions, Action{Type: ActionCounter, PlayedBy: player, Card: id, Target: NoCard})
		}
	}
	return actions
}

func (s *State) legalDiscardActions(player int) []Action {
	actions := make([]Action, 0, len(s.hands[player]))
	for _, id := range s.hands[player] {
		actions = append(actions, Action{Type: ActionDiscardFromHand, PlayedBy: player, Card: id, Target: NoCard})
	}
	return actions
}

func (s *State) legalTakeActions(player int) []Action {
	actions := make([]Action, 0, len(s.discard))
	for _, id := range s.discard {
		actions = append(actions, Action{Type: ActionTakeFromDiscard, PlayedBy: player, Source: id, Target: NoCard, Card: NoCard})
	}
	return actions
}
