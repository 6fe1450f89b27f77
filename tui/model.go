package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"beatbox/debug"
	"beatbox/sequencer"
	"beatbox/theme"
	"beatbox/widgets"
)

type Model struct {
	Session  *sequencer.Session
	Player   *sequencer.Player
	Theme    *theme.Theme
	row      int // instrument under the cursor
	col      int // step under the cursor
	err      error
	help     bool
	quitting bool
}

type PlayheadMsg int

func NewModel(session *sequencer.Session, player *sequencer.Player, th *theme.Theme) Model {
	return Model{
		Session: session,
		Player:  player,
		Theme:   th,
	}
}

func ListenForPlayhead(player *sequencer.Player) tea.Cmd {
	return func() tea.Msg {
		return PlayheadMsg(<-player.PlayheadChan)
	}
}

func (m Model) Init() tea.Cmd {
	if m.Player == nil {
		return nil
	}
	return ListenForPlayhead(m.Player)
}

var keys = []widgets.KeyBinding{
	{Key: "hjkl", Desc: "move"},
	{Key: "space", Desc: "toggle"},
	{Key: "s", Desc: "start"},
	{Key: "x", Desc: "stop"},
	{Key: "+/-", Desc: "tempo"},
	{Key: "q", Desc: "quit"},
	{Key: "?", Desc: "help"},
}

var helpSections = []widgets.KeySection{
	{Title: "Grid", Keys: []widgets.KeyBinding{
		{Key: "h/j/k/l", Desc: "move cursor (arrows too)"},
		{Key: "space", Desc: "toggle cell"},
	}},
	{Title: "Playback", Keys: []widgets.KeyBinding{
		{Key: "s/enter", Desc: "start from the top"},
		{Key: "x", Desc: "stop"},
		{Key: "+/=", Desc: "tempo up 3%"},
		{Key: "-/_", Desc: "tempo down 3%"},
	}},
	{Keys: []widgets.KeyBinding{
		{Key: "?", Desc: "close help"},
		{Key: "q", Desc: "quit"},
	}},
}

// actionForKey maps playback keys to session actions
func actionForKey(key string) (sequencer.Action, bool) {
	switch key {
	case "s", "enter":
		return sequencer.Action{Type: sequencer.ActionStart}, true
	case "x":
		return sequencer.Action{Type: sequencer.ActionStop}, true
	case "+", "=":
		return sequencer.Action{Type: sequencer.ActionTempoUp}, true
	case "-", "_":
		return sequencer.Action{Type: sequencer.ActionTempoDown}, true
	}
	return sequencer.Action{}, false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			m.quitting = true
			if err := m.Session.Dispatch(sequencer.Action{Type: sequencer.ActionStop}); err != nil {
				debug.Error("tui", err, "stop on quit")
			}
			return m, tea.Quit

		case "h", "left":
			if m.col > 0 {
				m.col--
			}
		case "l", "right":
			if m.col < sequencer.NumSteps-1 {
				m.col++
			}
		case "k", "up":
			if m.row > 0 {
				m.row--
			}
		case "j", "down":
			if m.row < sequencer.NumInstruments-1 {
				m.row++
			}

		case "?":
			m.help = !m.help

		case " ", "space":
			m.err = m.Session.Dispatch(sequencer.Toggle(m.row, m.col))

		default:
			if action, ok := actionForKey(key); ok {
				m.err = m.Session.Dispatch(action)
				if m.err != nil {
					debug.Log("tui", "%s: %v", action.Type, m.err)
				}
			}
		}

	case PlayheadMsg:
		return m, ListenForPlayhead(m.Player)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	th := m.Theme
	headerStyle := lipgloss.NewStyle().Foreground(th.Accent())
	nameStyle := lipgloss.NewStyle().Foreground(th.FG())
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())
	activeStyle := lipgloss.NewStyle().Foreground(th.Active())
	cursorStyle := lipgloss.NewStyle().Foreground(th.Cursor()).Bold(true)
	playheadStyle := lipgloss.NewStyle().Foreground(th.Success())
	errStyle := lipgloss.NewStyle().Foreground(th.Warning())

	playing := m.Session.Playing()
	playState := "STOP"
	if playing {
		playState = "PLAY"
	}
	factor := m.Session.TempoFactor()
	bpm := m.Session.BPM()

	playhead := -1
	if playing && m.Player != nil {
		playhead = m.Player.Tick() % sequencer.NumSteps
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render(fmt.Sprintf("BeatBox  %s  %.0fbpm x%.3f = %.1f  %s",
		playState, bpm, factor, bpm*factor, m.Session.Kit().Name)))
	out.WriteString("\n\n")

	grid := m.Session.Grid()
	sym := th.Symbols
	for i, inst := range m.Session.Kit().Instruments {
		out.WriteString(nameStyle.Render(fmt.Sprintf("%-15s", inst.Name)))
		row, _ := grid.Row(i)
		for j, on := range row {
			isCursor := i == m.row && j == m.col

			var cell string
			switch {
			case isCursor && on:
				cell = cursorStyle.Render(string(sym.CursorActive))
			case isCursor:
				cell = cursorStyle.Render(string(sym.CursorEmpty))
			case on:
				cell = activeStyle.Render(string(sym.StepActive))
			case j == playhead:
				cell = playheadStyle.Render(string(sym.StepPlayhead))
			default:
				cell = dimStyle.Render(string(sym.StepEmpty))
			}
			out.WriteString(cell)
			if j%4 == 3 {
				out.WriteString(" ")
			}
		}
		out.WriteString("\n")
	}

	out.WriteString("\n")
	if m.help {
		out.WriteString(nameStyle.Render(widgets.RenderKeyHelp(helpSections)))
	} else {
		out.WriteString(dimStyle.Render(widgets.RenderKeyLine(keys)))
	}
	if m.err != nil {
		out.WriteString("\n")
		out.WriteString(errStyle.Render("error: " + m.err.Error()))
	}

	return out.String()
}
