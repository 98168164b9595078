// Command cuttlecli plays a local match against a random-move opponent in
// a terminal, presenting each turn's legal actions as a selectable menu.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/decred/slog"

	"github.com/cuttlegame/cuttle/pkg/cuttle"
	"github.com/cuttlegame/cuttle/pkg/opponent"
)

func main() {
	var seed int64
	var humanSeat int
	flag.Int64Var(&seed, "seed", 0, "deterministic RNG seed (0 = random)")
	flag.IntVar(&humanSeat, "seat", 0, "which seat the human plays (0 or 1)")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	backend := slog.NewBackend(os.Stderr)
	log := backend.Logger("CLI")
	log.SetLevel(slog.LevelError)

	m := newModel(seed, humanSeat, log)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "cuttlecli: %v\n", err)
		os.Exit(1)
	}
}

func newModel(seed int64, humanSeat int, log slog.Logger) *model {
	cfg := cuttle.Config{Rng: rand.New(rand.NewSource(seed)), Log: log}
	state := cuttle.NewGame(cfg)
	ai := opponent.NewRandom(rand.New(rand.NewSource(seed + 1)))

	m := &model{
		state:     state,
		ai:        ai,
		humanSeat: humanSeat,
		aiSeat:    cuttle.Opponent(humanSeat),
	}
	m.runAITurns()
	return m
}
