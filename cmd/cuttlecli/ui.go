package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cuttlegame/cuttle/pkg/cuttle"
	"github.com/cuttlegame/cuttle/pkg/opponent"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).MarginLeft(2)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")).Bold(true)
	blurredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// model is the bubbletea Model driving a single local match.
type model struct {
	state     *cuttle.State
	ai        *opponent.Random
	humanSeat int
	aiSeat    int

	legal    []cuttle.Action
	selected int
	message  string
}

func (m *model) Init() tea.Cmd { return nil }

// runAITurns plays out the AI's moves until control returns to the human
// seat or the match ends.
func (m *model) runAITurns() {
	for m.state.Status() == cuttle.StatusInProgress && m.state.CurrentActionPlayer() == m.aiSeat {
		legal := m.state.LegalActions(m.aiSeat)
		if len(legal) == 0 {
			break
		}
		action := m.ai.ChooseAction(m.state, m.aiSeat, legal)
		if _, _, err := m.state.Apply(action); err != nil {
			m.message = fmt.Sprintf("ai error: %v", err)
			break
		}
	}
	m.refreshLegal()
}

func (m *model) refreshLegal() {
	m.legal = nil
	m.selected = 0
	if m.state.Status() == cuttle.StatusInProgress && m.state.CurrentActionPlayer() == m.humanSeat {
		m.legal = m.state.LegalActions(m.humanSeat)
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.legal)-1 {
			m.selected++
		}
	case "enter":
		if len(m.legal) == 0 {
			return m, nil
		}
		action := m.legal[m.selected]
		if _, _, err := m.state.Apply(action); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.message = ""
		m.runAITurns()
	}

	return m, nil
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("cuttle") + "\n\n")
	fmt.Fprintf(&b, "you: %d/%d   opponent: %d/%d   turn: %d\n\n",
		m.state.GetPlayerScore(m.humanSeat), m.state.GetPlayerTarget(m.humanSeat),
		m.state.GetPlayerScore(m.aiSeat), m.state.GetPlayerTarget(m.aiSeat),
		m.state.Turn())

	if m.state.Status() != cuttle.StatusInProgress {
		b.WriteString(fmt.Sprintf("game over: %s\n", m.state.Status()))
		b.WriteString(helpStyle.Render("press q to quit"))
		return b.String()
	}

	if len(m.legal) == 0 {
		b.WriteString("waiting for opponent...\n")
	}

	for i, a := range m.legal {
		line := describeAction(a)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(blurredStyle.Render("  "+line) + "\n")
		}
	}

	if m.message != "" {
		b.WriteString("\n" + errorStyle.Render(m.message) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("up/down to choose, enter to play, q to quit"))
	return b.String()
}

func describeAction(a cuttle.Action) string {
	switch a.Type {
	case cuttle.ActionDraw:
		return "Draw"
	case cuttle.ActionResolve:
		return "Resolve (decline to counter)"
	default:
		return fmt.Sprintf("%s card=%d target=%d source=%d", a.Type, a.Card, a.Target, a.Source)
	}
}
