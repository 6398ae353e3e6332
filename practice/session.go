package practice

import (
	"fmt"
	"sort"
	"time"

	"go-piano/debug"
	"go-piano/midi"
	"go-piano/theory"
)

// State tracks where the session is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateActive
	StateCompleted
)

var stateNames = []string{"idle", "active", "completed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Observer receives the session's outward signals. The session calls it
// synchronously from whatever goroutine feeds the handlers.
type Observer interface {
	HighlightedNotesChanged(notes []uint8)
	ExerciseCompleted()
}

// Settings selects the exercise. Zero value is a C major scale.
type Settings struct {
	Mode              Mode
	Key               theory.Key
	Scale             theory.ScaleType
	RootNote          theory.Key
	ChordQuality      theory.ChordQuality
	ArpeggioOctaves   int
	ArpeggioDirection theory.Direction
}

// Stats summarizes a run.
type Stats struct {
	Presses int
	Matches int
	Elapsed time.Duration
}

// Session is the practice state machine. It consumes note presses and
// releases, advances through a generated exercise, and reports progress
// through the observer. Not safe for concurrent use; the owner feeds
// events in arrival order.
type Session struct {
	settings Settings
	observer Observer

	state       State
	sequence    []uint8
	index       int
	progression []theory.VoicedChord
	chordIndex  int
	heldNotes   map[uint8]bool

	startedAt   time.Time
	completedAt time.Time
	presses     int
	matches     int
}

// NewSession builds a session for the given settings. The observer may be
// nil and attached later with SetObserver.
func NewSession(settings Settings, observer Observer) (*Session, error) {
	s := &Session{
		observer:  observer,
		heldNotes: make(map[uint8]bool),
	}
	if err := s.apply(settings); err != nil {
		return nil, err
	}
	return s, nil
}

// apply regenerates the exercise for new settings and drops back to idle.
func (s *Session) apply(settings Settings) error {
	if settings.ArpeggioOctaves < 1 {
		settings.ArpeggioOctaves = 1
	} else if settings.ArpeggioOctaves > 3 {
		settings.ArpeggioOctaves = 3
	}
	seq, prog, err := generate(settings)
	if err != nil {
		return err
	}
	s.settings = settings
	s.sequence = seq
	s.progression = prog
	s.state = StateIdle
	s.index = 0
	s.chordIndex = 0
	s.heldNotes = make(map[uint8]bool)
	s.presses = 0
	s.matches = 0
	s.startedAt = time.Time{}
	s.completedAt = time.Time{}
	debug.Log("practice", "exercise regenerated: mode=%s key=%s scale=%s", settings.Mode, settings.Key, settings.Scale)
	s.pushHighlight()
	return nil
}

// generate produces the note sequence or chord progression for settings.
func generate(settings Settings) ([]uint8, []theory.VoicedChord, error) {
	switch settings.Mode {
	case ModeScales:
		def, err := theory.NewScale(settings.Key, settings.Scale)
		if err != nil {
			return nil, nil, err
		}
		return def.Notes(1), nil, nil

	case ModeArpeggios:
		arp := theory.Arpeggio{
			Quality: settings.ChordQuality,
			Octaves: settings.ArpeggioOctaves,
			Dir:     settings.ArpeggioDirection,
		}
		return arp.Notes(settings.RootNote, 4), nil, nil

	case ModeChordsSingle:
		prog := make([]theory.VoicedChord, 0, 3)
		for inv := 0; inv <= 2; inv++ {
			prog = append(prog, theory.VoicedChord{
				Chord:  theory.Chord{Root: settings.RootNote, Quality: settings.ChordQuality, Inversion: inv},
				Octave: 4,
			})
		}
		return nil, prog, nil

	case ModeChordsByType:
		prog := make([]theory.VoicedChord, 0, 12)
		for _, root := range theory.AllKeys() {
			prog = append(prog, theory.VoicedChord{
				Chord:  theory.Chord{Root: root, Quality: settings.ChordQuality},
				Octave: 4,
			})
		}
		return nil, prog, nil

	case ModeChordsProgression:
		triads, err := theory.DiatonicTriads(settings.Key, settings.Scale)
		if err != nil {
			return nil, nil, err
		}
		return nil, theory.VoiceProgression(triads), nil
	}
	return nil, nil, fmt.Errorf("unknown practice mode %d", int(settings.Mode))
}

// SetObserver attaches an observer and immediately syncs it with the
// current highlight.
func (s *Session) SetObserver(o Observer) {
	s.observer = o
	s.pushHighlight()
}

// Start begins the exercise from the first step.
func (s *Session) Start() {
	s.index = 0
	s.chordIndex = 0
	s.heldNotes = make(map[uint8]bool)
	s.state = StateActive
	s.startedAt = time.Now()
	s.completedAt = time.Time{}
	s.presses = 0
	s.matches = 0
	debug.Log("practice", "session started: %s", s.settings.Mode)
	s.pushHighlight()
}

// Reset returns to idle without touching the settings. Calling it on an
// already idle session leaves everything as is.
func (s *Session) Reset() {
	s.index = 0
	s.chordIndex = 0
	s.heldNotes = make(map[uint8]bool)
	s.state = StateIdle
	s.startedAt = time.Time{}
	s.completedAt = time.Time{}
	s.presses = 0
	s.matches = 0
	s.pushHighlight()
}

// HandleNotePressed feeds one note-on into the session. Ignored unless
// the session is active.
func (s *Session) HandleNotePressed(note uint8) {
	if s.state != StateActive {
		return
	}
	s.presses++
	if s.settings.Mode.IsChordMode() {
		s.heldNotes[note] = true
		s.checkChord()
		return
	}
	if note != s.sequence[s.index] {
		return
	}
	s.matches++
	s.index++
	if s.index >= len(s.sequence) {
		s.complete()
		return
	}
	s.pushHighlight()
}

// HandleNoteReleased feeds one note-off into the session. Only chord
// modes care about releases.
func (s *Session) HandleNoteReleased(note uint8) {
	if s.state != StateActive {
		return
	}
	if !s.settings.Mode.IsChordMode() {
		return
	}
	delete(s.heldNotes, note)
	s.checkChord()
}

// HandleEvent routes a decoded MIDI event into the press/release handlers.
func (s *Session) HandleEvent(e midi.Event) {
	switch e.Kind {
	case midi.KindNoteOn:
		s.HandleNotePressed(e.Note())
	case midi.KindNoteOff:
		s.HandleNoteReleased(e.Note())
	case midi.KindControlChange, midi.KindProgramChange, midi.KindPitchBend, midi.KindOther:
		// Non-note traffic never affects progress.
	}
}

// checkChord advances when every expected note of the current chord is
// held. Extra held notes never block the match.
func (s *Session) checkChord() {
	expected := s.progression[s.chordIndex].Notes()
	for _, n := range expected {
		if !s.heldNotes[n] {
			return
		}
	}
	s.matches++
	s.chordIndex++
	s.heldNotes = make(map[uint8]bool)
	debug.Log("practice", "chord %d/%d matched", s.chordIndex, len(s.progression))
	if s.chordIndex >= len(s.progression) {
		s.complete()
		return
	}
	s.pushHighlight()
}

func (s *Session) complete() {
	s.state = StateCompleted
	s.completedAt = time.Now()
	debug.Log("practice", "exercise completed after %d presses", s.presses)
	s.pushHighlight()
	if s.observer != nil {
		s.observer.ExerciseCompleted()
	}
}

// Highlighted returns the notes the player must currently produce. Idle
// sessions preview the first step; completed sessions highlight nothing.
func (s *Session) Highlighted() []uint8 {
	if s.state == StateCompleted {
		return nil
	}
	if s.settings.Mode.IsChordMode() {
		if s.chordIndex >= len(s.progression) {
			return nil
		}
		return s.progression[s.chordIndex].Notes()
	}
	if s.index >= len(s.sequence) {
		return nil
	}
	return []uint8{s.sequence[s.index]}
}

func (s *Session) pushHighlight() {
	if s.observer == nil {
		return
	}
	s.observer.HighlightedNotesChanged(s.Highlighted())
}

// State reports the lifecycle phase.
func (s *Session) State() State { return s.state }

// IsActive reports whether the session is consuming input.
func (s *Session) IsActive() bool { return s.state == StateActive }

// Settings returns the current exercise settings.
func (s *Session) Settings() Settings { return s.settings }

// Progress reports completed steps and the step total for the exercise.
func (s *Session) Progress() (step, total int) {
	if s.settings.Mode.IsChordMode() {
		return s.chordIndex, len(s.progression)
	}
	return s.index, len(s.sequence)
}

// CurrentChord returns the chord the session is waiting on, if any.
func (s *Session) CurrentChord() (theory.VoicedChord, bool) {
	if !s.settings.Mode.IsChordMode() || s.chordIndex >= len(s.progression) {
		return theory.VoicedChord{}, false
	}
	return s.progression[s.chordIndex], true
}

// HeldNotes returns the currently held notes in ascending order.
func (s *Session) HeldNotes() []uint8 {
	out := make([]uint8, 0, len(s.heldNotes))
	for n := range s.heldNotes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Stats reports press counts and elapsed time for the current run.
func (s *Session) Stats() Stats {
	st := Stats{Presses: s.presses, Matches: s.matches}
	switch {
	case s.startedAt.IsZero():
	case !s.completedAt.IsZero():
		st.Elapsed = s.completedAt.Sub(s.startedAt)
	default:
		st.Elapsed = time.Since(s.startedAt)
	}
	return st
}

// Range returns the keyboard window covering the whole exercise.
func (s *Session) Range() NoteRange {
	if s.settings.Mode.IsChordMode() {
		return SelectRangeForProgression(s.progression)
	}
	return SelectRange(s.sequence)
}

// SetPracticeMode switches generators.
func (s *Session) SetPracticeMode(m Mode) error {
	next := s.settings
	next.Mode = m
	return s.apply(next)
}

// SetSelectedKey changes the key for scale and progression modes.
func (s *Session) SetSelectedKey(k theory.Key) error {
	next := s.settings
	next.Key = k
	return s.apply(next)
}

// SetSelectedScaleType changes the scale type.
func (s *Session) SetSelectedScaleType(t theory.ScaleType) error {
	next := s.settings
	next.Scale = t
	return s.apply(next)
}

// SetSelectedRootNote changes the root for chord and arpeggio modes.
func (s *Session) SetSelectedRootNote(k theory.Key) error {
	next := s.settings
	next.RootNote = k
	return s.apply(next)
}

// SetSelectedChordQuality changes the chord or arpeggio quality.
func (s *Session) SetSelectedChordQuality(q theory.ChordQuality) error {
	next := s.settings
	next.ChordQuality = q
	return s.apply(next)
}

// SetSelectedArpeggioOctaves changes the arpeggio span. Out-of-range
// values are clamped to 1..3.
func (s *Session) SetSelectedArpeggioOctaves(octaves int) error {
	next := s.settings
	next.ArpeggioOctaves = octaves
	return s.apply(next)
}

// SetSelectedArpeggioDirection changes the arpeggio direction.
func (s *Session) SetSelectedArpeggioDirection(d theory.Direction) error {
	next := s.settings
	next.ArpeggioDirection = d
	return s.apply(next)
}
