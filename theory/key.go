package theory

import (
	"fmt"
	"strings"
)

// Key is one of the 12 pitch classes.
type Key int

const (
	KeyC Key = iota
	KeyDb
	KeyD
	KeyEb
	KeyE
	KeyF
	KeyGb
	KeyG
	KeyAb
	KeyA
	KeyBb
	KeyB
)

// Flat spellings preferred for the black keys.
var keyNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

func (k Key) String() string {
	if k < 0 || k > 11 {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// MidiNote returns the key's MIDI number in the given octave (C4 = 60).
func (k Key) MidiNote(octave int) uint8 {
	return uint8((octave+1)*12 + int(k))
}

// KeyFromPitchClass maps any MIDI note to its key.
func KeyFromPitchClass(note uint8) Key {
	return Key(int(note) % 12)
}

// AllKeys returns the twelve keys in chromatic order from C.
func AllKeys() []Key {
	keys := make([]Key, 12)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

var keyAliases = map[string]Key{
	"C": KeyC, "B#": KeyC,
	"C#": KeyDb, "Db": KeyDb,
	"D":  KeyD,
	"D#": KeyEb, "Eb": KeyEb,
	"E": KeyE, "Fb": KeyE,
	"F": KeyF, "E#": KeyF,
	"F#": KeyGb, "Gb": KeyGb,
	"G":  KeyG,
	"G#": KeyAb, "Ab": KeyAb,
	"A":  KeyA,
	"A#": KeyBb, "Bb": KeyBb,
	"B": KeyB, "Cb": KeyB,
}

// ParseKey accepts flat and sharp spellings in any case ("eb", "D#", "Gb").
func ParseKey(s string) (Key, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, fmt.Errorf("empty key name")
	}
	norm := strings.ToUpper(t[:1]) + strings.ToLower(t[1:])
	if k, ok := keyAliases[norm]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown key %q", s)
}
