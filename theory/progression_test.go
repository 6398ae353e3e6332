package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiatonicTriadsCMajor(t *testing.T) {
	triads, err := DiatonicTriads(KeyC, ScaleMajor)
	require.NoError(t, err)
	require.Len(t, triads, 7)

	expectedRoots := []Key{KeyC, KeyD, KeyE, KeyF, KeyG, KeyA, KeyB}
	expectedQualities := []ChordQuality{
		QualityMajor, QualityMinor, QualityMinor, QualityMajor,
		QualityMajor, QualityMinor, QualityDiminished,
	}

	for i, triad := range triads {
		assert.Equal(t, expectedRoots[i], triad.Root, "degree %d root", i+1)
		assert.Equal(t, expectedQualities[i], triad.Quality, "degree %d quality", i+1)
		assert.Equal(t, 0, triad.Inversion, "degree %d starts in root position", i+1)
	}
}

func TestDiatonicTriadsNaturalMinor(t *testing.T) {
	triads, err := DiatonicTriads(KeyA, ScaleMinor)
	require.NoError(t, err)
	require.Len(t, triads, 7)

	expectedQualities := []ChordQuality{
		QualityMinor, QualityDiminished, QualityMajor, QualityMinor,
		QualityMinor, QualityMajor, QualityMajor,
	}
	for i, triad := range triads {
		assert.Equal(t, expectedQualities[i], triad.Quality, "degree %d quality", i+1)
	}
	assert.Equal(t, KeyA, triads[0].Root)
	assert.Equal(t, KeyB, triads[1].Root)
	assert.Equal(t, KeyG, triads[6].Root)
}

func TestDiatonicTriadsHarmonicMinor(t *testing.T) {
	// The raised seventh produces the augmented third degree and a second
	// diminished triad on the leading tone.
	triads, err := DiatonicTriads(KeyA, ScaleHarmonicMinor)
	require.NoError(t, err)

	expectedQualities := []ChordQuality{
		QualityMinor, QualityDiminished, QualityAugmented, QualityMinor,
		QualityMajor, QualityMajor, QualityDiminished,
	}
	for i, triad := range triads {
		assert.Equal(t, expectedQualities[i], triad.Quality, "degree %d quality", i+1)
	}
}

func TestDiatonicTriadsAllScales(t *testing.T) {
	for _, key := range AllKeys() {
		for _, st := range ScaleTypes() {
			triads, err := DiatonicTriads(key, st)
			require.NoError(t, err, "%s %s", key, st)
			require.Len(t, triads, 7, "%s %s", key, st)
		}
	}
}

func TestVoiceProgressionMinimality(t *testing.T) {
	triads, err := DiatonicTriads(KeyC, ScaleMajor)
	require.NoError(t, err)

	voiced := VoiceProgression(triads)
	require.Len(t, voiced, 7)

	// Opening chord is untouched: root position at the base octave.
	assert.Equal(t, 0, voiced[0].Chord.Inversion)
	assert.Equal(t, 4, voiced[0].Octave)
	assert.Equal(t, []uint8{60, 64, 67}, voiced[0].Notes())

	// Each chosen voicing moves no more than any other voicing of the same
	// triad would.
	for i := 1; i < len(voiced); i++ {
		prev := voiced[i-1].Notes()
		chosen := voiceMovement(prev, voiced[i].Notes())

		for inv := 0; inv <= 2; inv++ {
			for oct := 3; oct <= 5; oct++ {
				alt := voiced[i].Chord
				alt.Inversion = inv
				cost := voiceMovement(prev, VoicedChord{Chord: alt, Octave: oct}.Notes())
				assert.LessOrEqual(t, chosen, cost,
					"chord %d (%s): chosen voicing moves %d, alternative inv=%d oct=%d moves %d",
					i, voiced[i].Chord.Name(), chosen, inv, oct, cost)
			}
		}
	}
}

func TestVoiceProgressionDeterministic(t *testing.T) {
	triads, err := DiatonicTriads(KeyEb, ScaleMinor)
	require.NoError(t, err)

	a := VoiceProgression(triads)
	b := VoiceProgression(triads)
	require.Equal(t, a, b)
}

func TestVoiceProgressionEmpty(t *testing.T) {
	assert.Nil(t, VoiceProgression(nil))
}
