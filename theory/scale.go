package theory

import (
	"fmt"
	"strings"
)

// ScaleType selects a diatonic mode or minor variant.
type ScaleType int

const (
	ScaleMajor ScaleType = iota
	ScaleMinor
	ScaleDorian
	ScalePhrygian
	ScaleLydian
	ScaleMixolydian
	ScaleLocrian
	ScaleHarmonicMinor
	ScaleMelodicMinor
)

// Semitone steps between successive degrees. Every table sums to 12.
var scaleSteps = map[ScaleType][]int{
	ScaleMajor:         {2, 2, 1, 2, 2, 2, 1},
	ScaleMinor:         {2, 1, 2, 2, 1, 2, 2},
	ScaleDorian:        {2, 1, 2, 2, 2, 1, 2},
	ScalePhrygian:      {1, 2, 2, 2, 1, 2, 2},
	ScaleLydian:        {2, 2, 2, 1, 2, 2, 1},
	ScaleMixolydian:    {2, 2, 1, 2, 2, 1, 2},
	ScaleLocrian:       {1, 2, 2, 1, 2, 2, 2},
	ScaleHarmonicMinor: {2, 1, 2, 2, 1, 3, 1},
	ScaleMelodicMinor:  {2, 1, 2, 2, 2, 2, 1},
}

var scaleNames = []string{
	"major",
	"minor",
	"dorian",
	"phrygian",
	"lydian",
	"mixolydian",
	"locrian",
	"harmonic minor",
	"melodic minor",
}

func (st ScaleType) String() string {
	if st < 0 || int(st) >= len(scaleNames) {
		return fmt.Sprintf("ScaleType(%d)", int(st))
	}
	return scaleNames[st]
}

// ScaleTypes returns all supported scale types in display order.
func ScaleTypes() []ScaleType {
	out := make([]ScaleType, len(scaleNames))
	for i := range out {
		out[i] = ScaleType(i)
	}
	return out
}

// ParseScaleType matches a name like "major" or "harmonic-minor".
func ParseScaleType(s string) (ScaleType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", " ")
	norm = strings.ReplaceAll(norm, "_", " ")
	for i, name := range scaleNames {
		if norm == name {
			return ScaleType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scale type %q", s)
}

// ScaleDefinition binds a key to a mode's interval pattern.
type ScaleDefinition struct {
	Key   Key
	Type  ScaleType
	Steps []int
}

// NewScale derives the interval pattern for a key and mode.
func NewScale(key Key, st ScaleType) (ScaleDefinition, error) {
	steps, ok := scaleSteps[st]
	if !ok {
		return ScaleDefinition{}, fmt.Errorf("unknown scale type %d", int(st))
	}
	return ScaleDefinition{Key: key, Type: st, Steps: steps}, nil
}

// Notes walks the interval pattern from the key's octave-4 root. Both tonic
// endpoints are included, so one octave yields eight notes.
func (s ScaleDefinition) Notes(octaves int) []uint8 {
	if octaves < 1 {
		octaves = 1
	}
	notes := make([]uint8, 0, len(s.Steps)*octaves+1)
	n := int(s.Key.MidiNote(4))
	notes = append(notes, uint8(n))
	for o := 0; o < octaves; o++ {
		for _, step := range s.Steps {
			n += step
			notes = append(notes, uint8(n))
		}
	}
	return notes
}

// Degrees returns the seven scale-degree pitch classes, tonic first.
func (s ScaleDefinition) Degrees() []Key {
	out := make([]Key, 0, len(s.Steps))
	pc := int(s.Key)
	for _, step := range s.Steps {
		out = append(out, Key(pc%12))
		pc += step
	}
	return out
}
