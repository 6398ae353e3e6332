package theory

import "fmt"

// VoicedChord is a chord placed at a concrete octave by the voicer.
type VoicedChord struct {
	Chord  Chord
	Octave int
}

// Notes returns the voiced chord's MIDI numbers, ascending.
func (v VoicedChord) Notes() []uint8 {
	return v.Chord.MidiNotes(v.Octave)
}

func triadQuality(third, fifth int) (ChordQuality, bool) {
	switch {
	case third == 4 && fifth == 7:
		return QualityMajor, true
	case third == 3 && fifth == 7:
		return QualityMinor, true
	case third == 3 && fifth == 6:
		return QualityDiminished, true
	case third == 4 && fifth == 8:
		return QualityAugmented, true
	}
	return 0, false
}

// DiatonicTriads builds the seven triads stacked on each degree of the
// scale. Qualities fall out of the scale's own third and fifth intervals,
// so minor variants get their augmented and diminished degrees for free.
func DiatonicTriads(key Key, st ScaleType) ([]Chord, error) {
	def, err := NewScale(key, st)
	if err != nil {
		return nil, err
	}

	// Two octaves of absolute degree offsets so thirds and fifths can be
	// stacked past the top of the first octave.
	offsets := make([]int, 0, 2*len(def.Steps))
	off := 0
	for o := 0; o < 2; o++ {
		for _, step := range def.Steps {
			offsets = append(offsets, off)
			off += step
		}
	}

	triads := make([]Chord, 0, 7)
	for d := 0; d < 7; d++ {
		third := offsets[d+2] - offsets[d]
		fifth := offsets[d+4] - offsets[d]
		q, ok := triadQuality(third, fifth)
		if !ok {
			return nil, fmt.Errorf("degree %d of %s %s stacks to no triad (3rd=%d 5th=%d)", d+1, key, st, third, fifth)
		}
		triads = append(triads, Chord{
			Root:    Key((int(key) + offsets[d]) % 12),
			Quality: q,
		})
	}
	return triads, nil
}

// VoiceProgression assigns an octave and inversion to each chord so its
// voices move as little as possible from the previous chord. The first
// chord stays in root position at the base octave. Ties prefer root
// position, then the lowest octave.
func VoiceProgression(triads []Chord) []VoicedChord {
	const baseOctave = 4
	if len(triads) == 0 {
		return nil
	}

	first := triads[0]
	first.Inversion = 0
	out := make([]VoicedChord, 0, len(triads))
	out = append(out, VoicedChord{Chord: first, Octave: baseOctave})
	prev := out[0].Notes()

	for _, t := range triads[1:] {
		var best VoicedChord
		bestCost := -1
		for inv := 0; inv <= 2; inv++ {
			for oct := baseOctave - 1; oct <= baseOctave+1; oct++ {
				cand := t
				cand.Inversion = inv
				vc := VoicedChord{Chord: cand, Octave: oct}
				cost := voiceMovement(prev, vc.Notes())
				if bestCost < 0 || cost < bestCost {
					best = vc
					bestCost = cost
				}
			}
		}
		out = append(out, best)
		prev = best.Notes()
	}
	return out
}

// voiceMovement sums the absolute semitone distance between corresponding
// voices. Both voicings are ascending triads.
func voiceMovement(a, b []uint8) int {
	total := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		total += d
	}
	return total
}
