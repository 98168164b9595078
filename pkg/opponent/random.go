// Package opponent provides reference implementations of cuttle.OpponentPort.
package opponent

import (
	"math/rand"

	"github.com/cuttlegame/cuttle/pkg/cuttle"
)

// Random chooses uniformly among the legal actions offered to it. It is
// meant as a baseline for local play and tests, not as serious AI.
type Random struct {
	Rng *rand.Rand
}

// NewRandom builds a Random opponent backed by rng. A nil rng falls back to
// a source with the fixed seed 1, so every such opponent makes the same
// sequence of choices.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Random{Rng: rng}
}

// ChooseAction implements cuttle.OpponentPort.
func (r *Random) ChooseAction(state *cuttle.State, player int, legal []cuttle.Action) cuttle.Action {
	return legal[r.Rng.Intn(len(legal))]
}
