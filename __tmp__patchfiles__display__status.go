// Package display renders komp's live session status: the chord currently
// detected from held notes, the raw held notes themselves, and the
// scheduler's phase. Adapted from the teacher's TUIModel (Model/Update/View
// over bubbletea, styled with lipgloss) down to the single screen komp
// needs — no fretboard, tablature, or playback transport, since komp has
// no audio player to transport.
package display

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"komp/chord"
	"komp/key"
)

var (
	primaryColor = lipgloss.Color("#00FFFF")
	accentColor  = lipgloss.Color("#00FF00")
	dimColor     = lipgloss.Color("#666666")
	rootColor    = lipgloss.Color("#FF6666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	headerStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	chordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	rootStyle = lipgloss.NewStyle().
			Foreground(rootColor)

	noteStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// TickMsg is sent on each refresh tick so the view keeps redrawing even
// when no new MIDI packets arrive.
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Snapshot is the subset of live session state the status view cares
// about, polled from the tracker and scheduler each tick rather than
// pushed, since both run on their own goroutines.
type Snapshot struct {
	HeldNotes []key.Pitch
	Chord     chord.Chord
	HasChord  bool
	Playing   bool
}

// SnapshotFunc polls the current session state.
type SnapshotFunc func() Snapshot

// StatusModel is the Bubbletea model for komp's live status screen.
type StatusModel struct {
	poll     SnapshotFunc
	snap     Snapshot
	quitting bool
}

// NewStatusModel builds a status model that polls poll() on every tick.
func NewStatusModel(poll SnapshotFunc) *StatusModel {
	return &StatusModel{poll: poll}
}

func (m *StatusModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.EnterAltScreen)
}

func (m *StatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			m.quitting = true
			return m, tea.Quit
		}
	case TickMsg:
		m.snap = m.poll()
		return m, tickCmd()
	}
	return m, nil
}

func (m *StatusModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("komp") + headerStyle.Render("  live accompanist") + "\n\n")

	b.WriteString(headerStyle.Render("held notes: "))
	if len(m.snap.HeldNotes) == 0 {
		b.WriteString(dimStyle.Render("(none)"))
	} else {
		names := make([]string, len(m.snap.HeldNotes))
		for i, p := range m.snap.HeldNotes {
			names[i] = p.String()
		}
		b.WriteString(noteStyle.Render(strings.Join(names, " ")))
	}
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("chord:      "))
	if m.snap.HasChord {
		b.WriteString(chordStyle.Render(m.snap.Chord.String()))
		b.WriteString(" ")
		b.WriteString(rootStyle.Render(fmt.Sprintf("(root %s)", m.snap.Chord.Root)))
	} else {
		b.WriteString(dimStyle.Render("(none detected)"))
	}
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("scheduler:  "))
	if m.snap.Playing {
		b.WriteString(accentStatus("running"))
	} else {
		b.WriteString(dimStyle.Render("stopped"))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("press q or enter to quit"))

	return borderStyle.Render(b.String())
}

func accentStatus(s string) string {
	return lipgloss.NewStyle().Foreground(accentColor).Render(s)
}

// Run starts the status program and blocks until the user quits. Wiring
// this into main is optional — komp's primary quit trigger remains a
// line on stdin per the accompanist's own run loop; Run is for sessions
// launched with a visible status screen instead of a plain log.
func Run(poll SnapshotFunc) error {
	p := tea.NewProgram(NewStatusModel(poll))
	_, err := p.Run()
	return err
}


