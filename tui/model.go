package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"go-piano/metrics"
	"go-piano/midi"
	"go-piano/practice"
	"go-piano/theme"
	"go-piano/widgets"
)

const timeRounding = 100 * time.Millisecond

// Model holds everything the view needs to draw one frame. It doubles
// as the session's observer, so the loop that owns it repaints after
// every handled event.
type Model struct {
	Session *practice.Session
	Theme   *theme.Theme

	highlighted []uint8
	completions int
	device      string
	lastEvent   string
	notice      string
	showHelp    bool
}

func NewModel(session *practice.Session, th *theme.Theme) *Model {
	m := &Model{Session: session, Theme: th}
	session.SetObserver(m)
	return m
}

// HighlightedNotesChanged implements practice.Observer.
func (m *Model) HighlightedNotesChanged(notes []uint8) {
	m.highlighted = notes
}

// ExerciseCompleted implements practice.Observer.
func (m *Model) ExerciseCompleted() {
	m.completions++
	stats := m.Session.Stats()
	settings := m.Session.Settings()
	metrics.ExerciseCompleted(settings.Mode.String(), stats.Elapsed, stats.Presses)
}

func (m *Model) SetDevice(name string) { m.device = name }

func (m *Model) Device() string { return m.device }

func (m *Model) SetLastEvent(s string) { m.lastEvent = s }

func (m *Model) SetNotice(s string) { m.notice = s }

func (m *Model) ToggleHelp() { m.showHelp = !m.showHelp }

func (m *Model) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	doneStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	s := m.Session
	settings := s.Settings()
	step, total := s.Progress()

	header := headerStyle.Render(fmt.Sprintf("go-piano  %-9s  %s  %s",
		strings.ToUpper(s.State().String()), settings.Mode, exerciseLabel(settings)))

	strip := widgets.RenderKeyboard(m.keyCells())

	progress := widgets.RenderProgress(step, total,
		widgets.ProgressSymbols{
			Done:    m.Theme.Symbols.StepDone,
			Current: m.Theme.Symbols.StepCurrent,
			Pending: m.Theme.Symbols.StepPending,
		},
		m.Theme.RGB(theme.RoleSuccess), m.Theme.RGB(theme.RoleMuted))

	legend := widgets.RenderLegendItem(m.Theme.RGB(theme.RoleAccent), "next", "play these keys") + "\n" +
		widgets.RenderLegendItem(m.Theme.RGB(theme.RoleHeld), "held", "keys currently down")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(strip)
	out.WriteString("\n\n")
	out.WriteString(progress)
	out.WriteString("\n")

	if s.State() == practice.StateCompleted {
		stats := s.Stats()
		out.WriteString(doneStyle.Render(fmt.Sprintf("complete in %s (%d presses), start to go again",
			stats.Elapsed.Round(timeRounding), stats.Presses)))
		out.WriteString("\n")
	}
	if held := s.HeldNotes(); len(held) > 0 {
		names := make([]string, len(held))
		for i, n := range held {
			names[i] = midi.NoteName(n)
		}
		out.WriteString(fgStyle.Render("held: " + strings.Join(names, " ")))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(legend)
	out.WriteString("\n\n")

	device := "no keyboard, tap <note> to play"
	if m.device != "" {
		device = "keyboard: " + m.device
	}
	if m.completions > 0 {
		device += fmt.Sprintf("  runs: %d", m.completions)
	}
	out.WriteString(dimStyle.Render(device))
	out.WriteString("\n")
	if m.lastEvent != "" {
		out.WriteString(dimStyle.Render("last: " + m.lastEvent))
		out.WriteString("\n")
	}
	if m.notice != "" {
		out.WriteString(warnStyle.Render(m.notice))
		out.WriteString("\n")
	}

	if m.showHelp {
		out.WriteString("\n")
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(commandHelp)))
		out.WriteString("\n")
	}

	out.WriteString(dimStyle.Render("start reset demo help  mode/key/scale/root/quality/octaves/direction <v>  tap <note>  quit"))
	return out.String()
}

var commandHelp = []widgets.KeySection{
	{Title: "session", Keys: []widgets.KeyBinding{
		{Key: "start", Desc: "begin the exercise"},
		{Key: "reset", Desc: "back to idle, progress cleared"},
		{Key: "demo", Desc: "play the keys the exercise is waiting on"},
		{Key: "quit", Desc: "save settings and leave"},
	}},
	{Title: "exercise", Keys: []widgets.KeyBinding{
		{Key: "mode <m>", Desc: "scales, chords-single, chords-progression, chords-by-type, arpeggios"},
		{Key: "key <k>", Desc: "C Db D Eb E F Gb G Ab A Bb B"},
		{Key: "scale <s>", Desc: "major, minor, dorian, ... harmonic-minor, melodic-minor"},
		{Key: "root <k>", Desc: "root note for chord and arpeggio modes"},
		{Key: "quality <q>", Desc: "major, minor, diminished, augmented"},
		{Key: "octaves <n>", Desc: "arpeggio span, 1 to 3"},
		{Key: "direction <d>", Desc: "up, down, updown"},
	}},
	{Title: "playback", Keys: []widgets.KeyBinding{
		{Key: "tap <note>", Desc: "sound a note by name or number, e.g. tap C4 or tap 60"},
	}},
}

// keyCells builds the strip over the exercise's keyboard window.
func (m *Model) keyCells() []widgets.KeyCell {
	r := m.Session.Range()

	hi := make(map[uint8]bool, len(m.highlighted))
	for _, n := range m.highlighted {
		hi[n] = true
	}
	held := make(map[uint8]bool)
	for _, n := range m.Session.HeldNotes() {
		held[n] = true
	}

	cells := make([]widgets.KeyCell, 0, r.Width())
	for n := r.Lowest; ; n++ {
		sym := m.Theme.Symbols.WhiteKey
		role := theme.RoleWhiteKey
		if midi.IsBlackKey(n) {
			sym = m.Theme.Symbols.BlackKey
			role = theme.RoleBlackKey
		}
		switch {
		case held[n] && hi[n]:
			role = theme.RoleSuccess
		case held[n]:
			role = theme.RoleHeld
		case hi[n]:
			role = theme.RoleAccent
		}

		label := ""
		if n%12 == 0 {
			label = midi.NoteName(n)
		}
		cells = append(cells, widgets.KeyCell{Color: m.Theme.RGB(role), Symbol: sym, Label: label})

		if n == r.Highest {
			break
		}
	}
	return cells
}

func exerciseLabel(st practice.Settings) string {
	switch st.Mode {
	case practice.ModeScales, practice.ModeChordsProgression:
		return fmt.Sprintf("%s %s", st.Key, st.Scale)
	case practice.ModeChordsSingle:
		return fmt.Sprintf("%s %s", st.RootNote, st.ChordQuality)
	case practice.ModeChordsByType:
		return fmt.Sprintf("%s across all roots", st.ChordQuality)
	case practice.ModeArpeggios:
		return fmt.Sprintf("%s %s x%d %s", st.RootNote, st.ChordQuality, st.ArpeggioOctaves, st.ArpeggioDirection)
	}
	return ""
}
