package practice

import (
	"fmt"
	"strings"
)

// Mode selects which generator feeds the session.
type Mode int

const (
	ModeScales Mode = iota
	ModeChordsSingle
	ModeChordsProgression
	ModeChordsByType
	ModeArpeggios
)

var modeNames = []string{"scales", "chords-single", "chords-progression", "chords-by-type", "arpeggios"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// IsChordMode reports whether progress is held-set based rather than
// note-by-note.
func (m Mode) IsChordMode() bool {
	switch m {
	case ModeChordsSingle, ModeChordsProgression, ModeChordsByType:
		return true
	case ModeScales, ModeArpeggios:
		return false
	}
	return false
}

// Modes returns all practice modes in display order.
func Modes() []Mode {
	out := make([]Mode, len(modeNames))
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// ParseMode matches names like "scales" or "chords-progression".
func ParseMode(s string) (Mode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "_", "-")
	norm = strings.ReplaceAll(norm, " ", "-")
	for i, name := range modeNames {
		if norm == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown practice mode %q", s)
}
