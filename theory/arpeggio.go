package theory

import (
	"fmt"
	"strings"
)

// Direction orders the unrolled arpeggio tones.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionUpDown
)

var directionNames = []string{"up", "down", "up-down"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection matches "up", "down", "updown"/"up-down".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "":
		return DirectionUp, nil
	case "down":
		return DirectionDown, nil
	case "updown", "up-down", "up down":
		return DirectionUpDown, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Arpeggio unrolls a triad quality across one to three octaves.
type Arpeggio struct {
	Quality ChordQuality
	Octaves int // 1-3
	Dir     Direction
}

// Notes produces the flat MIDI sequence for the given root, closing with
// the tonic above the span. UpDown descends again without repeating the
// apex, so the sequence ends back on the starting root.
func (a Arpeggio) Notes(root Key, octave int) []uint8 {
	span := a.Octaves
	if span < 1 {
		span = 1
	}
	if span > 3 {
		span = 3
	}

	iv := qualityIntervals[a.Quality]
	base := int(root.MidiNote(octave))
	up := make([]uint8, 0, 3*span+1)
	for o := 0; o < span; o++ {
		for _, off := range iv {
			up = append(up, uint8(base+12*o+off))
		}
	}
	up = append(up, uint8(base+12*span))

	switch a.Dir {
	case DirectionDown:
		return reversedNotes(up)
	case DirectionUpDown:
		out := make([]uint8, 0, 2*len(up)-1)
		out = append(out, up...)
		for i := len(up) - 2; i >= 0; i-- {
			out = append(out, up[i])
		}
		return out
	default:
		return up
	}
}

func reversedNotes(notes []uint8) []uint8 {
	out := make([]uint8, len(notes))
	for i, n := range notes {
		out[len(notes)-1-i] = n
	}
	return out
}
