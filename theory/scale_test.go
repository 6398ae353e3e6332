package theory

import (
	"testing"
)

func TestScaleNotes(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		scale    ScaleType
		octaves  int
		expected []uint8
	}{
		{
			name:     "C major one octave",
			key:      KeyC,
			scale:    ScaleMajor,
			octaves:  1,
			expected: []uint8{60, 62, 64, 65, 67, 69, 71, 72},
		},
		{
			name:     "A natural minor",
			key:      KeyA,
			scale:    ScaleMinor,
			octaves:  1,
			expected: []uint8{69, 71, 72, 74, 76, 77, 79, 81},
		},
		{
			name:     "D dorian",
			key:      KeyD,
			scale:    ScaleDorian,
			octaves:  1,
			expected: []uint8{62, 64, 65, 67, 69, 71, 72, 74},
		},
		{
			name:     "Eb major",
			key:      KeyEb,
			scale:    ScaleMajor,
			octaves:  1,
			expected: []uint8{63, 65, 67, 68, 70, 72, 74, 75},
		},
		{
			name:     "C harmonic minor",
			key:      KeyC,
			scale:    ScaleHarmonicMinor,
			octaves:  1,
			expected: []uint8{60, 62, 63, 65, 67, 68, 71, 72},
		},
		{
			name:     "G mixolydian",
			key:      KeyG,
			scale:    ScaleMixolydian,
			octaves:  1,
			expected: []uint8{67, 69, 71, 72, 74, 76, 77, 79},
		},
		{
			name:     "C major two octaves",
			key:      KeyC,
			scale:    ScaleMajor,
			octaves:  2,
			expected: []uint8{60, 62, 64, 65, 67, 69, 71, 72, 74, 76, 77, 79, 81, 83, 84},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := NewScale(tt.key, tt.scale)
			if err != nil {
				t.Fatalf("NewScale failed: %v", err)
			}
			notes := def.Notes(tt.octaves)

			if len(notes) != len(tt.expected) {
				t.Errorf("Expected %d notes, got %d", len(tt.expected), len(notes))
			}
			for i, expected := range tt.expected {
				if i < len(notes) && notes[i] != expected {
					t.Errorf("Note %d: expected MIDI %d, got %d", i, expected, notes[i])
				}
			}
		})
	}
}

func TestScaleStepsSumToOctave(t *testing.T) {
	for _, st := range ScaleTypes() {
		def, err := NewScale(KeyC, st)
		if err != nil {
			t.Fatalf("NewScale(%s) failed: %v", st, err)
		}
		if len(def.Steps) != 7 {
			t.Errorf("%s: expected 7 steps, got %d", st, len(def.Steps))
		}
		sum := 0
		for _, s := range def.Steps {
			sum += s
		}
		if sum != 12 {
			t.Errorf("%s: steps sum to %d, want 12", st, sum)
		}
	}
}

func TestScaleLengthLaw(t *testing.T) {
	// One octave closes on the upper tonic: steps + 1 notes.
	for _, key := range AllKeys() {
		for _, st := range ScaleTypes() {
			def, err := NewScale(key, st)
			if err != nil {
				t.Fatalf("NewScale(%s, %s) failed: %v", key, st, err)
			}
			for octaves := 1; octaves <= 3; octaves++ {
				got := len(def.Notes(octaves))
				want := len(def.Steps)*octaves + 1
				if got != want {
					t.Errorf("%s %s octaves=%d: expected %d notes, got %d", key, st, octaves, want, got)
				}
			}
		}
	}
}

func TestScaleDegrees(t *testing.T) {
	def, err := NewScale(KeyC, ScaleMajor)
	if err != nil {
		t.Fatalf("NewScale failed: %v", err)
	}
	expected := []Key{KeyC, KeyD, KeyE, KeyF, KeyG, KeyA, KeyB}
	degrees := def.Degrees()
	if len(degrees) != len(expected) {
		t.Fatalf("Expected %d degrees, got %d", len(expected), len(degrees))
	}
	for i, want := range expected {
		if degrees[i] != want {
			t.Errorf("Degree %d: expected %s, got %s", i+1, want, degrees[i])
		}
	}
}

func TestParseScaleType(t *testing.T) {
	tests := []struct {
		in      string
		want    ScaleType
		wantErr bool
	}{
		{in: "major", want: ScaleMajor},
		{in: "Minor", want: ScaleMinor},
		{in: "harmonic-minor", want: ScaleHarmonicMinor},
		{in: "melodic_minor", want: ScaleMelodicMinor},
		{in: "mixolydian", want: ScaleMixolydian},
		{in: "bebop", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseScaleType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseScaleType(%q): expected error, got %s", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseScaleType(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScaleType(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
