package theory

import (
	"fmt"
	"strings"
)

// ChordQuality is a triad quality.
type ChordQuality int

const (
	QualityMajor ChordQuality = iota
	QualityMinor
	QualityDiminished
	QualityAugmented
)

// Semitone offsets from the root in root position.
var qualityIntervals = map[ChordQuality][3]int{
	QualityMajor:      {0, 4, 7},
	QualityMinor:      {0, 3, 7},
	QualityDiminished: {0, 3, 6},
	QualityAugmented:  {0, 4, 8},
}

var qualityNames = []string{"major", "minor", "diminished", "augmented"}
var qualitySuffixes = []string{"", "m", "dim", "aug"}

func (q ChordQuality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return fmt.Sprintf("ChordQuality(%d)", int(q))
	}
	return qualityNames[q]
}

// Qualities returns the triad qualities in display order.
func Qualities() []ChordQuality {
	out := make([]ChordQuality, len(qualityNames))
	for i := range out {
		out[i] = ChordQuality(i)
	}
	return out
}

// ParseQuality matches "major", "min", "dim", "aug" and friends.
func ParseQuality(s string) (ChordQuality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major", "maj", "":
		return QualityMajor, nil
	case "minor", "min", "m":
		return QualityMinor, nil
	case "diminished", "dim":
		return QualityDiminished, nil
	case "augmented", "aug":
		return QualityAugmented, nil
	}
	return 0, fmt.Errorf("unknown chord quality %q", s)
}

// Chord is a triad: root, quality, and voicing inversion. It owns no state;
// MidiNotes derives the concrete voicing.
type Chord struct {
	Root      Key
	Quality   ChordQuality
	Inversion int // 0 root position, 1 first, 2 second
}

// MidiNotes returns the voiced triad in the given octave, ascending.
// Inversion 1 raises the lowest note an octave, inversion 2 the lowest two,
// so the pitch-class set never changes with the voicing.
func (c Chord) MidiNotes(octave int) []uint8 {
	iv := qualityIntervals[c.Quality]
	root := int(c.Root.MidiNote(octave))

	inv := c.Inversion
	if inv < 0 {
		inv = 0
	}
	if inv > 2 {
		inv = 2
	}

	voiced := make([]uint8, 0, 3)
	for i := inv; i < 3; i++ {
		voiced = append(voiced, uint8(root+iv[i]))
	}
	for i := 0; i < inv; i++ {
		voiced = append(voiced, uint8(root+iv[i]+12))
	}
	return voiced
}

// PitchClasses returns the chord's pitch-class set, octave independent.
func (c Chord) PitchClasses() map[int]bool {
	iv := qualityIntervals[c.Quality]
	set := make(map[int]bool, 3)
	for _, off := range iv {
		set[(int(c.Root)+off)%12] = true
	}
	return set
}

// Name renders the chord symbol, slash-noting the bass for inversions
// ("Cm", "Ebaug", "C/E").
func (c Chord) Name() string {
	name := c.Root.String() + qualitySuffixes[c.Quality]
	if c.Inversion > 0 {
		bass := KeyFromPitchClass(c.MidiNotes(4)[0])
		name += "/" + bass.String()
	}
	return name
}
