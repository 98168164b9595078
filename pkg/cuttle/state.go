package cuttle

import (
	"math/rand"

	"github.com/cuttlegame/cuttle/pkg/statemachine"
	"github.com/decred/slog"
)

// GameStatus reports whether a match is still being played and, if not, who
// won (spec.md §4.D).
type GameStatus int

const (
	StatusInProgress GameStatus = iota
	StatusPlayer0Won
	StatusPlayer1Won
	StatusStalemate
)

func (s GameStatus) String() string {
	switch s {
	case StatusInProgress:
		return "InProgress"
	case StatusPlayer0Won:
		return "Player0Won"
	case StatusPlayer1Won:
		return "Player1Won"
	case StatusStalemate:
		return "Stalemate"
	default:
		return "Unknown"
	}
}

// PhaseKind names the current member of the Phase tagged variant
// (spec.md §9's "explicit phase transitions" design note).
type PhaseKind int

const (
	PhaseBase PhaseKind = iota
	PhaseResolvingOneOff
	PhaseResolvingFour
	PhaseResolvingThree
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseBase:
		return "Base"
	case PhaseResolvingOneOff:
		return "ResolvingOneOff"
	case PhaseResolvingFour:
		return "ResolvingFour"
	case PhaseResolvingThree:
		return "ResolvingThree"
	default:
		return "Unknown"
	}
}

// Config controls how a new match is built.
type Config struct {
	Rng           *rand.Rand
	Log           slog.Logger
	DealerHand    int // cards dealt to player 0; spec.md default 5
	NonDealerHand int // cards dealt to player 1; spec.md default 6
}

// State is the complete, self-contained engine for one Cuttle match. It owns
// the card arena and every container that references into it by CardID.
// State is not safe for concurrent use: the caller (a session store) is
// responsible for serializing access (spec.md §5, SPEC_FULL.md §5).
type State struct {
	arena []*Card

	hands  [2][]CardID
	fields [2][]CardID

	drawPile []CardID
	discard  []CardID

	turn                int // player whose base turn it is
	currentActionPlayer int // player who must act next, possibly mid-resolution
	overallTurn         int

	phaseKind            PhaseKind
	pendingOneOff        CardID
	pendingOneOffPlayer  int
	counterCount         int // Counters played so far against pendingOneOff
	pendingFourPlayer    int
	pendingFourRemaining int
	pendingThreePlayer   int

	status GameStatus

	history *History

	sm  *statemachine.StateMachine[State]
	log slog.Logger
}

// NewGame deals a fresh 52-card arena and starts a match with player 0 as
// dealer, per spec.md §4.B/§4.D.
func NewGame(cfg Config) *State {
	dealerHand := cfg.DealerHand
	if dealerHand == 0 {
		dealerHand = 5
	}
	nonDealerHand := cfg.NonDealerHand
	if nonDealerHand == 0 {
		nonDealerHand = 6
	}

	arena := newArena()
	pile := buildDrawPile(arena, cfg.Rng)
	p0Hand, p1Hand, rest := dealOpeningHands(pile, dealerHand, nonDealerHand)

	s := &State{
		arena:                arena,
		hands:                [2][]CardID{p0Hand, p1Hand},
		fields:               [2][]CardID{{}, {}},
		drawPile:             rest,
		discard:              []CardID{},
		turn:                 0,
		currentActionPlayer:  0,
		overallTurn:          1,
		phaseKind:            PhaseBase,
		pendingOneOff:        -1,
		pendingFourPlayer:    -1,
		pendingThreePlayer:   -1,
		status:               StatusInProgress,
		history:              newHistory(),
		log:                  cfg.Log,
	}
	s.sm = statemachine.NewStateMachine(s, statePhaseBase)
	return s
}

// card looks up an arena card by id. Panics on an out-of-range id: every
// CardID in play originates from this arena, so an invalid id is a
// programmer error, not a runtime condition to recover from.
func (s *State) card(id CardID) *Card {
	return s.arena[int(id)]
}

// Opponent returns the other seat.
func Opponent(player int) int {
	return 1 - player
}

// Phase reports the current member of the tagged Phase variant.
func (s *State) Phase() PhaseKind { return s.phaseKind }

// Turn returns whose base turn it currently is.
func (s *State) Turn() int { return s.turn }

// CurrentActionPlayer returns the player who must act next. During
// resolution phases this can differ from Turn (e.g. the defender holds a
// Counter window, or the Four's target discards).
func (s *State) CurrentActionPlayer() int { return s.currentActionPlayer }

// Status reports whether the match is still being played.
func (s *State) Status() GameStatus { return s.status }

// transitionTo moves the engine to a new phase, keeping phaseKind and the
// underlying state machine in lockstep.
func (s *State) transitionTo(kind PhaseKind) {
	s.phaseKind = kind
	switch kind {
	case PhaseBase:
		s.sm.SetState(statePhaseBase)
	case PhaseResolvingOneOff:
		s.sm.SetState(statePhaseResolvingOneOff)
	case PhaseResolvingFour:
		s.sm.SetState(statePhaseResolvingFour)
	case PhaseResolvingThree:
		s.sm.SetState(statePhaseResolvingThree)
	}
}

// nextTurn advances the base turn to the opponent, closing out a completed
// base turn. overallTurn only increments when turn wraps back to 0
// (spec.md §3, §4.D).
func (s *State) nextTurn() {
	s.turn = Opponent(s.turn)
	s.currentActionPlayer = s.turn
	if s.turn == 0 {
		s.overallTurn++
	}
}

// statePhaseBase is the state function for the normal, un-suspended phase:
// either player may act on their turn.
func statePhaseBase(st *State, cb func(string, statemachine.StateEvent)) statemachine.StateFn[State] {
	if cb != nil {
		cb("Base", statemachine.StateEntered)
	}
	return statePhaseBase
}

// statePhaseResolvingOneOff is held while a played one-off card sits open
// for a Counter-Two response (spec.md §4.F).
func statePhaseResolvingOneOff(st *State, cb func(string, statemachine.StateEvent)) statemachine.StateFn[State] {
	if cb != nil {
		cb("ResolvingOneOff", statemachine.StateEntered)
	}
	return statePhaseResolvingOneOff
}

// statePhaseResolvingFour is held while the Four's target picks a card from
// their hand to discard.
func statePhaseResolvingFour(st *State, cb func(string, statemachine.StateEvent)) statemachine.StateFn[State] {
	if cb != nil {
		cb("ResolvingFour", statemachine.StateEntered)
	}
	return statePhaseResolvingFour
}

// statePhaseResolvingThree is held while the Three's player picks a card
// from the discard pile to reclaim.
func statePhaseResolvingThree(st *State, cb func(string, statemachine.StateEvent)) statemachine.StateFn[State] {
	if cb != nil {
		cb("ResolvingThree", statemachine.StateEntered)
	}
	return statePhaseResolvingThree
}
