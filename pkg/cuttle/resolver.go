package cuttle

// maxHandSize caps how many cards a Five may draw up to (spec.md §4.F).
const maxHandSize = 8

// Apply validates and applies a single action, mutating State only after
// validation succeeds in full (spec.md §7's validate-before-mutate rule).
// turnFinished reports whether a base turn closed out as a result; winner is
// -1 unless the match just ended.
func (s *State) Apply(a Action) (turnFinished bool, winner int, err error) {
	if s.status != StatusInProgress {
		return false, -1, newRuleError(KindWrongPhase, "match has already ended")
	}
	if a.PlayedBy != s.currentActionPlayer {
		return false, -1, newRuleError(KindWrongPlayer, "player %d may not act; it is player %d's turn", a.PlayedBy, s.currentActionPlayer)
	}

	switch s.phaseKind {
	case PhaseBase:
		return s.applyBase(a)
	case PhaseResolvingOneOff:
		return s.applyCounterWindow(a)
	case PhaseResolvingFour:
		return s.applyFourDiscard(a)
	case PhaseResolvingThree:
		return s.applyThreeTake(a)
	default:
		return false, -1, newRuleError(KindWrongPhase, "unknown phase")
	}
}

func (s *State) applyBase(a Action) (bool, int, error) {
	player := a.PlayedBy

	switch a.Type {
	case ActionDraw:
		if len(s.hands[player]) >= maxHandSize {
			return false, -1, newRuleError(KindHandFull, "player %d already holds %d cards", player, maxHandSize)
		}
		id, ok := s.drawTop()
		if !ok {
			return false, -1, newRuleError(KindCardMissing, "draw pile is empty")
		}
		s.hands[player] = append(s.hands[player], id)
		s.history.append(HistoryEntry{Turn: s.overallTurn, Player: player, Type: a.Type, Card: id, Target: NoCard, Source: NoCard})
		s.nextTurn()
		return true, -1, nil

	case ActionPlayPoints:
		c := s.card(a.Card)
		if s.findInHand(a.Card) != player || !c.IsPointCard() {
			return false, -1, newRuleError(KindIllegalAction, "card %d is not a point card in player %d's hand", a.Card, player)
		}
		removeFromSlice(&s.hands[player], a.Card)
		s.moveToField(player, a.Card, PurposePoints)
		s.history.append(HistoryEntry{Turn: s.overallTurn, Player: player, Type: a.Type, Card: a.Card, Target: NoCard, Source: NoCard})
		return s.finishBaseTurn()

	case ActionScuttle:
		attacker := s.card(a.Card)
		opponent := Opponent(player)
		if s.findInHand(a.Card) != player || !attacker.IsPointCard() {
			return false, -1, newRuleError(KindIllegalAction, "card %d is not a point card in player %d's hand", a.Card, player)
		}
		if s.findInField(a.Target) != opponent {
			return false, -1, newRuleError(KindTargetMissing, "card %d is not in player %d's field", a.Target, opponent)
		}
		target := s.card(a.Target)
		if effectiveOwner(target) != opponent {
			return false, -1, newRuleError(KindTargetMissing, "card %d is controlled by player %d, not player %d", a.Target, player, opponent)
		}
		if !ScuttleComparable(attacker, target) {
			return false, -1, newRuleError(KindScuttleInvalid, "card %d cannot scuttle card %d", a.Card, a.Target)
		}
		removeFromSlice(&s.hands[player], a.Card)
		s.moveToDiscard(a.Card)
		s.removeAndDiscardField(a.Target)
		s.history.append(HistoryEntry{Turn: s.overallTurn, Player: player, Type: a.Type, Card: a.Card, Target: a.Target, Source: NoCard})
		return s.finishBaseTurn()

	case ActionPlayFaceCard:
		c := s.card(a.Card)
		if s.findInHand(a.Card) != player || !(c.Rank == Queen || c.Rank == King || c.Rank == Eight) {
			return false, -1, newRuleError(KindIllegalAction, "card %d is not a playable face card in player %d's hand", a.Card, player)
		}
		removeFromSlice(&s.hands[player], a.Card)
		s.moveToField(player, a.Card, PurposeFaceCard)
		s.history.append(HistoryEntry{Turn: s.overallTurn, Player: player, Type: a.Type, Card: a.Card, Target: NoCard, Source: NoCard})
		return s.finishBaseTurn()

	case ActionPlayJack:
		c := s.card(a.Card)
		opponent := Opponent(player)
		if s.findInHand(a.Card) != player || c.Rank != Jack {
			return false, -1, newRuleError(KindIllegalAction, "card %d is not a Jack in player %d's hand", a.Card, player)
		}
		if s.findInField(a.Target) != opponent {
			return false, -1, newRuleError(KindTargetMissing, "card %d is not in player %d's field", a.Target, opponent)
		}
		target := s.card(a.Target)
		if !target.IsPointCard() || s.hasQueenOnField(opponent) || effectiveOwner(target) == player {
			return false, -1, newRuleError(KindJackBlocked, "card %d cannot be targeted by a Jack", a.Target)
		}
		removeFromSlice(&s.hands[player], a.Card)
		s.moveToField(player, a.Card, PurposeJack)
		target.Attachments = append(target.Attachments, a.Card)
		s.history.append(HistoryEntry{Turn: s.overallTurn, Player: player, Type: a.Type, Card: a.Card, Target: a.Target, Source: NoCard})
		return s.finishBaseTurn()

	case ActionPlayOneOff:
		c := s.card(a.Card)
		if s.findInHand(a.Card) != player || !c.IsOneOff() {
			return false, -1, newRuleError(KindIllegalAction, "card %d is not a one-off card in player %d's hand", a.Card, player)
		}
		// The card stays in hand[player] until the counter chain resolves
		// (spec.md §4.F OneOff); only Purpose/PlayedBy mark it as pending.
		c.PlayedBy = player
		c.Purpose = PurposeOneOff
		s.pendingOneOff = a.Card
		s.pendingOneOffPlayer = player
		s.counterCount = 0
		s.history.append(HistoryEntry{Turn: s.overallTurn, Player: player, Type: a.Type, Card: a.Card, Target: NoCard, Source: NoCard})
		s.transitionTo(PhaseResolvingOneOff)
		s.currentActionPlayer = Opponent(player)
		return false, -1, nil

	default:
		return false, -1, newRuleError(KindIllegalAction, "action %s is not legal in the base phase", a.Type)
	}
}

// applyCounterWindow handles responses to an open one-off: either Counter
// with a Two (extending the chain) or Resolve (decline, letting resolution
// proceed). The effect applies only if an even number of Counters have been
// played (spec.md §4.F's counter-chain parity rule).
func (s *State) applyCounterWindow(a Action) (bool, int, error) {
	player := a.PlayedBy

	switch a.Type {
	case ActionCounter:
		c := s.card(a.Card)
		if s.findInHand(a.Card) != player || c.Rank != Two {
			return false, -1, newRuleError(KindCounterBlocked, "card %d is not a Two in player %d's hand", a.Card, player)
		}
		if s.hasQueenOnField(Opponent(player)) {
			return false, -1, newRuleError(KindCounterBlocked, "player %d has a Queen on field", Opponent(player))
		}
		removeFromSlice(&s.hands[player], a.Card)
		s.moveToDiscard(a.Card)
		s.counterCount++
		s.history.append(HistoryEntry{Turn: s.overallTurn, Player: player, Type: a.Type, Card: a.Card, Target: NoCard, Source: NoCard})
		s.currentActionPlayer = Opponent(player)
		return false, -1, nil

	case ActionResolve:
		oneOff := s.pendingOneOff
		oneOffPlayer := s.pendingOneOffPlayer
		countered := s.counterCount%2 != 0
		s.history.append(HistoryEntry{Turn: s.overallTurn, Player: player, Type: a.Type, Card: oneOff, Target: NoCard, Source: NoCard, Countered: countered})

		removeFromSlice(&s.hands[oneOffPlayer], oneOff)
		s.moveToDiscard(oneOff)
		s.pendingOneOff = NoCard
		s.counterCount = 0

		if !countered {
			if started := s.beginOneOffEffect(oneOffPlayer, s.card(oneOff).Rank); started {
				return false, -1, nil
			}
		}

		return s.concludeOneOff(oneOffPlayer)

	default:
		return false, -1, newRuleError(KindIllegalAction, "action %s is not legal while a one-off is open", a.Type)
	}
}

// beginOneOffEffect applies an uncountered one-off's effect. Ace/Five/Six
// resolve immediately; Three/Four start an interactive sub-phase and report
// started=true so the caller defers concluding the base turn.
func (s *State) beginOneOffEffect(player int, rank Rank) (started bool) {
	switch rank {
	case Ace:
		for _, p := range [2]int{0, 1} {
			for _, id := range append([]CardID(nil), s.fields[p]...) {
				if s.card(id).IsPointCard() {
					s.removeAndDiscardField(id)
				}
			}
		}
		return false

	case Three:
		if len(s.discard) == 0 {
			return false
		}
		s.pendingThreePlayer = player
		s.transitionTo(PhaseResolvingThree)
		s.currentActionPlayer = player
		return true

	case Four:
		opponent := Opponent(player)
		if len(s.hands[opponent]) == 0 {
			return false
		}
		s.pendingFourPlayer = opponent
		s.pendingFourRemaining = min(2, len(s.hands[opponent]))
		s.transitionTo(PhaseResolvingFour)
		s.currentActionPlayer = opponent
		return true

	case Five:
		for i := 0; i < 2 && len(s.hands[player]) < maxHandSize && len(s.drawPile) > 0; i++ {
			id, _ := s.drawTop()
			s.hands[player] = append(s.hands[player], id)
		}
		return false

	case Six:
		for _, p := range [2]int{0, 1} {
			for _, id := range append([]CardID(nil), s.fields[p]...) {
				c := s.card(id)
				if c.Purpose == PurposeFaceCard || c.Purpose == PurposeJack {
					s.removeAndDiscardField(id)
					s.stripAttachmentReferences(id)
				}
			}
		}
		return false

	default:
		return false
	}
}

func (s *State) applyFourDiscard(a Action) (bool, int, error) {
	player := a.PlayedBy
	if a.Type != ActionDiscardFromHand {
		return false, -1, newRuleError(KindIllegalAction, "action %s is not legal while a Four is resolving", a.Type)
	}
	if s.findInHand(a.Card) != player {
		return false, -1, newRuleError(KindIllegalAction, "card %d is not in player %d's hand", a.Card, player)
	}
	removeFromSlice(&s.hands[player], a.Card)
	s.moveToDiscard(a.Card)
	s.history.append(HistoryEntry{Turn: s.overallTurn, Player: player, Type: a.Type, Card: a.Card, Target: NoCard, Source: NoCard})

	s.pendingFourRemaining--
	if s.pendingFourRemaining > 0 && len(s.hands[player]) > 0 {
		return false, -1, nil
	}
	s.pendingFourPlayer = -1
	return s.concludeOneOff(s.pendingOneOffPlayer)
}

func (s *State) applyThreeTake(a Action) (bool, int, error) {
	player := a.PlayedBy
	if a.Type != ActionTakeFromDiscard {
		return false, -1, newRuleError(KindIllegalAction, "action %s is not legal while a Three is resolving", a.Type)
	}
	if !contains(s.discard, a.Source) {
		return false, -1, newRuleError(KindCardMissing, "card %d is not in the discard pile", a.Source)
	}
	removeFromSlice(&s.discard, a.Source)
	s.card(a.Source).clearPlayerInfo()
	s.hands[player] = append(s.hands[player], a.Source)
	s.history.append(HistoryEntry{Turn: s.overallTurn, Player: player, Type: a.Type, Card: NoCard, Target: NoCard, Source: a.Source})

	s.pendingThreePlayer = -1
	return s.concludeOneOff(s.pendingOneOffPlayer)
}

// concludeOneOff returns control to the base phase and closes out the base
// turn of whoever played the original one-off.
func (s *State) concludeOneOff(oneOffPlayer int) (bool, int, error) {
	s.transitionTo(PhaseBase)
	s.currentActionPlayer = oneOffPlayer
	return s.finishBaseTurn()
}

// finishBaseTurn checks for a winner, then either ends the match or advances
// to the opponent's turn (checking for a stalemate along the way). If both
// players have reached their target, the acting player (s.turn) wins.
func (s *State) finishBaseTurn() (bool, int, error) {
	w := -1
	if s.IsWinner(s.turn) {
		w = s.turn
	} else if s.IsWinner(Opponent(s.turn)) {
		w = Opponent(s.turn)
	}
	if w >= 0 {
		if w == 0 {
			s.status = StatusPlayer0Won
		} else {
			s.status = StatusPlayer1Won
		}
		return true, w, nil
	}
	s.nextTurn()
	if s.status == StatusInProgress && s.IsStalemate() {
		s.status = StatusStalemate
	}
	return true, -1, nil
}

// removeAndDiscardField removes id from whichever field holds it and files
// it in the discard pile, cascading to discard any cards attached to it
// (e.g. Jacks that were stealing it).
func (s *State) removeAndDiscardField(id CardID) {
	owner := s.findInField(id)
	if owner < 0 {
		return
	}
	attachments := append([]CardID(nil), s.card(id).Attachments...)
	removeFromSlice(&s.fields[owner], id)
	s.moveToDiscard(id)

	for _, aid := range attachments {
		if aOwner := s.findInField(aid); aOwner >= 0 {
			removeFromSlice(&s.fields[aOwner], aid)
			s.moveToDiscard(aid)
		}
	}
}

// stripAttachmentReferences removes id from every card's Attachments list.
// Used when id (a Jack) is destroyed directly without its target also being
// removed, so the target's steal count stays accurate.
func (s *State) stripAttachmentReferences(id CardID) {
	for _, c := range s.arena {
		for i, a := range c.Attachments {
			if a == id {
				c.Attachments = append(c.Attachments[:i], c.Attachments[i+1:]...)
				break
			}
		}
	}
}
