package practice

import (
	"go-piano/debug"
	"go-piano/midi"
	"go-piano/theory"
)

// rangeSpan is the semitone distance between a window's endpoints,
// four octaves inclusive of both endpoint keys.
const rangeSpan = 48

// NoteRange is a 49-key keyboard window.
type NoteRange struct {
	Lowest  uint8
	Highest uint8
}

// Contains reports whether a note falls inside the window.
func (r NoteRange) Contains(n uint8) bool {
	return n >= r.Lowest && n <= r.Highest
}

// Width returns the number of keys in the window.
func (r NoteRange) Width() int {
	return int(r.Highest) - int(r.Lowest) + 1
}

// SelectRange picks the 49-key window for an exercise sequence. The
// window is anchored on a C boundary so it spans whole octaves, then
// shifted to cover the sequence and clamped to the instrument. Clamping
// at the extreme edges narrows the window rather than sliding it.
func SelectRange(seq []uint8) NoteRange {
	if len(seq) == 0 {
		debug.Log("range", "empty sequence, using default window")
		return NoteRange{Lowest: 36, Highest: 84}
	}

	min, max := int(seq[0]), int(seq[0])
	for _, n := range seq[1:] {
		if int(n) < min {
			min = int(n)
		}
		if int(n) > max {
			max = int(n)
		}
	}

	center := (min + max) / 2
	center -= center % 12
	start := center - rangeSpan/2
	end := center + rangeSpan/2

	if min < start {
		shift := start - min
		start -= shift
		end -= shift
	}
	if max > end {
		shift := max - end
		start += shift
		end += shift
	}

	if start < int(midi.LowestNote) {
		debug.Log("range", "clamping window start %d to instrument low %d", start, midi.LowestNote)
		start = int(midi.LowestNote)
	}
	if end > int(midi.HighestNote) {
		debug.Log("range", "clamping window end %d to instrument high %d", end, midi.HighestNote)
		end = int(midi.HighestNote)
	}

	return NoteRange{Lowest: uint8(start), Highest: uint8(end)}
}

// SelectRangeForProgression picks the window covering every chord tone
// across a voiced progression.
func SelectRangeForProgression(progression []theory.VoicedChord) NoteRange {
	var all []uint8
	for _, vc := range progression {
		all = append(all, vc.Notes()...)
	}
	return SelectRange(all)
}
