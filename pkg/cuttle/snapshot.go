package cuttle

import (
	"github.com/cuttlegame/cuttle/pkg/statemachine"
	"github.com/decred/slog"
)

// Snapshot is the self-describing, JSON-serializable view of a match, used
// for persistence and for the HTTP surface (spec.md §6.3). Suits, ranks,
// phases, and action types are encoded symbolically rather than as bare
// integers, so a snapshot can be read without the source.
type Snapshot struct {
	Arena []*Card `json:"arena"`

	Hands  [2][]CardID `json:"hands"`
	Fields [2][]CardID `json:"fields"`

	DrawPile []CardID `json:"draw_pile"`
	Discard  []CardID `json:"discard"`

	Turn                int `json:"turn"`
	CurrentActionPlayer int `json:"current_action_player"`
	OverallTurn         int `json:"overall_turn"`

	Phase                string `json:"phase"`
	PendingOneOff        CardID `json:"pending_one_off"`
	PendingOneOffPlayer  int    `json:"pending_one_off_player"`
	CounterCount         int    `json:"counter_count"`
	PendingFourPlayer    int    `json:"pending_four_player"`
	PendingFourRemaining int    `json:"pending_four_remaining"`
	PendingThreePlayer   int    `json:"pending_three_player"`

	Status string `json:"status"`

	History []HistoryEntry `json:"history"`
}

// Snapshot captures the complete, reloadable state of the match.
func (s *State) Snapshot() *Snapshot {
	arena := make([]*Card, len(s.arena))
	for i, c := range s.arena {
		cc := *c
		cc.Attachments = append([]CardID(nil), c.Attachments...)
		arena[i] = &cc
	}

	return &Snapshot{
		Arena:                arena,
		Hands:                [2][]CardID{append([]CardID(nil), s.hands[0]...), append([]CardID(nil), s.hands[1]...)},
		Fields:               [2][]CardID{append([]CardID(nil), s.fields[0]...), append([]CardID(nil), s.fields[1]...)},
		DrawPile:             append([]CardID(nil), s.drawPile...),
		Discard:              append([]CardID(nil), s.discard...),
		Turn:                 s.turn,
		CurrentActionPlayer:  s.currentActionPlayer,
		OverallTurn:          s.overallTurn,
		Phase:                s.phaseKind.String(),
		PendingOneOff:        s.pendingOneOff,
		PendingOneOffPlayer:  s.pendingOneOffPlayer,
		CounterCount:         s.counterCount,
		PendingFourPlayer:    s.pendingFourPlayer,
		PendingFourRemaining: s.pendingFourRemaining,
		PendingThreePlayer:   s.pendingThreePlayer,
		Status:               s.status.String(),
		History:              append([]HistoryEntry(nil), s.history.entries...),
	}
}

func phaseKindFromName(name string) PhaseKind {
	switch name {
	case "ResolvingOneOff":
		return PhaseResolvingOneOff
	case "ResolvingFour":
		return PhaseResolvingFour
	case "ResolvingThree":
		return PhaseResolvingThree
	default:
		return PhaseBase
	}
}

func statusFromName(name string) GameStatus {
	switch name {
	case "Player0Won":
		return StatusPlayer0Won
	case "Player1Won":
		return StatusPlayer1Won
	case "Stalemate":
		return StatusStalemate
	default:
		return StatusInProgress
	}
}

// Restore rebuilds a State from a Snapshot previously produced by
// (*State).Snapshot. Only cfg.Log is used; the other Config fields only
// matter when dealing a new match.
func Restore(cfg Config, snap *Snapshot) *State {
	arena := make([]*Card, len(snap.Arena))
	for i, c := range snap.Arena {
		cc := *c
		cc.Attachments = append([]CardID(nil), c.Attachments...)
		arena[i] = &cc
	}

	h := newHistory()
	h.entries = append(h.entries, snap.History...)

	s := &State{
		arena:                arena,
		hands:                [2][]CardID{append([]CardID(nil), snap.Hands[0]...), append([]CardID(nil), snap.Hands[1]...)},
		fields:               [2][]CardID{append([]CardID(nil), snap.Fields[0]...), append([]CardID(nil), snap.Fields[1]...)},
		drawPile:             append([]CardID(nil), snap.DrawPile...),
		discard:              append([]CardID(nil), snap.Discard...),
		turn:                 snap.Turn,
		currentActionPlayer:  snap.CurrentActionPlayer,
		overallTurn:          snap.OverallTurn,
		phaseKind:            phaseKindFromName(snap.Phase),
		pendingOneOff:        snap.PendingOneOff,
		pendingOneOffPlayer:  snap.PendingOneOffPlayer,
		counterCount:         snap.CounterCount,
		pendingFourPlayer:    snap.PendingFourPlayer,
		pendingFourRemaining: snap.PendingFourRemaining,
		pendingThreePlayer:   snap.PendingThreePlayer,
		status:               statusFromName(snap.Status),
		history:              h,
		log:                  cfg.Log,
	}

	s.sm = statemachine.NewStateMachine(s, statePhaseBase)
	s.transitionTo(s.phaseKind)
	return s
}

// Log returns the logger the match was configured with, or a disabled one
// if none was provided.
func (s *State) Log() slog.Logger {
	if s.log == nil {
		return slog.Disabled
	}
	return s.log
}
