package midi

import (
	"fmt"
	"strconv"
	"strings"
)

// Standard 88-key compass, A0 through C8.
const (
	LowestNote  uint8 = 21
	HighestNote uint8 = 108
)

// Flat spellings, matching how keys are named elsewhere.
var noteNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// NoteName renders a MIDI number in scientific pitch notation, C4 = 60.
func NoteName(n uint8) string {
	return fmt.Sprintf("%s%d", noteNames[n%12], int(n)/12-1)
}

// IsBlackKey reports whether the note lands on an accidental.
func IsBlackKey(n uint8) bool {
	switch n % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

var pitchClasses = map[string]int{
	"c": 0, "c#": 1, "db": 1, "d": 2, "d#": 3, "eb": 3,
	"e": 4, "f": 5, "f#": 6, "gb": 6, "g": 7, "g#": 8,
	"ab": 8, "a": 9, "a#": 10, "bb": 10, "b": 11,
}

// ParseNote accepts scientific pitch notation ("C4", "Bb2", "f#3") or a
// bare MIDI number and returns the note number.
func ParseNote(s string) (uint8, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return 0, fmt.Errorf("empty note")
	}

	if n, err := strconv.Atoi(in); err == nil {
		if n < 0 || n > 127 {
			return 0, fmt.Errorf("note %d out of MIDI range", n)
		}
		return uint8(n), nil
	}

	split := len(in)
	for split > 0 {
		c := in[split-1]
		if c != '-' && (c < '0' || c > '9') {
			break
		}
		split--
	}
	name, octStr := in[:split], in[split:]
	pc, ok := pitchClasses[name]
	if !ok {
		return 0, fmt.Errorf("unknown note name %q", s)
	}
	oct, err := strconv.Atoi(octStr)
	if err != nil {
		return 0, fmt.Errorf("bad octave in %q", s)
	}
	n := (oct+1)*12 + pc
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("note %q out of MIDI range", s)
	}
	return uint8(n), nil
}
