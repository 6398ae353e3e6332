package practice

import (
	"testing"

	"go-piano/theory"
)

func TestSelectRange(t *testing.T) {
	tests := []struct {
		name        string
		seq         []uint8
		wantLowest  uint8
		wantHighest uint8
	}{
		{
			name:        "one octave C major scale",
			seq:         []uint8{60, 62, 64, 65, 67, 69, 71, 72},
			wantLowest:  36,
			wantHighest: 84,
		},
		{
			name:        "single note",
			seq:         []uint8{60},
			wantLowest:  36,
			wantHighest: 84,
		},
		{
			name:        "A minor scale",
			seq:         []uint8{69, 71, 72, 74, 76, 77, 79, 81},
			wantLowest:  48,
			wantHighest: 96,
		},
		{
			name:        "empty sequence falls back to default window",
			seq:         nil,
			wantLowest:  36,
			wantHighest: 84,
		},
		{
			name:        "full width span shifts up to cover the top",
			seq:         []uint8{50, 98},
			wantLowest:  50,
			wantHighest: 98,
		},
		{
			name:        "bottom of the keyboard clamps the start",
			seq:         []uint8{21, 23, 24},
			wantLowest:  21,
			wantHighest: 36,
		},
		{
			name:        "top of the keyboard clamps the end",
			seq:         []uint8{103, 108},
			wantLowest:  72,
			wantHighest: 108,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectRange(tt.seq)
			if got.Lowest != tt.wantLowest || got.Highest != tt.wantHighest {
				t.Errorf("SelectRange(%v) = [%d, %d], want [%d, %d]",
					tt.seq, got.Lowest, got.Highest, tt.wantLowest, tt.wantHighest)
			}
			for _, n := range tt.seq {
				if n >= 21 && n <= 108 && !got.Contains(n) {
					t.Errorf("window [%d, %d] does not cover note %d", got.Lowest, got.Highest, n)
				}
			}
		})
	}
}

func TestSelectRangeWidth(t *testing.T) {
	got := SelectRange([]uint8{60, 62, 64, 65, 67, 69, 71, 72})
	if got.Width() != 49 {
		t.Errorf("expected a 49 key window, got %d", got.Width())
	}
}

func TestSelectRangeForProgression(t *testing.T) {
	triads, err := theory.DiatonicTriads(theory.KeyC, theory.ScaleMajor)
	if err != nil {
		t.Fatalf("DiatonicTriads: %v", err)
	}
	progression := theory.VoiceProgression(triads)

	r := SelectRangeForProgression(progression)
	if r.Width() > 49 {
		t.Errorf("window wider than 49 keys: %d", r.Width())
	}
	for _, vc := range progression {
		for _, n := range vc.Notes() {
			if !r.Contains(n) {
				t.Errorf("window [%d, %d] misses chord tone %d", r.Lowest, r.Highest, n)
			}
		}
	}
}
