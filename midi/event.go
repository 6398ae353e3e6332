package midi

import "fmt"

// Status bytes. The high nibble selects the message kind, the low nibble
// is the zero-based channel.
const (
	StatusNoteOff       uint8 = 0x80
	StatusNoteOn        uint8 = 0x90
	StatusControlChange uint8 = 0xB0
	StatusProgramChange uint8 = 0xC0
	StatusPitchBend     uint8 = 0xE0
	StatusTimingClock   uint8 = 0xF8
	StatusActiveSensing uint8 = 0xFE
)

// Kind classifies a decoded event.
type Kind int

const (
	KindNoteOn Kind = iota
	KindNoteOff
	KindControlChange
	KindProgramChange
	KindPitchBend
	KindOther
)

var kindNames = []string{"note on", "note off", "control change", "program change", "pitch bend", "other"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Event is one decoded MIDI message. Immutable once decoded; Raw is only
// set for Other events and aliases the input packet.
type Event struct {
	Kind    Kind
	Channel uint8 // 0-15 internally, shown 1-16
	Data1   uint8
	Data2   uint8
	Raw     []byte
}

// BendValue combines the 14-bit LSB/MSB pair and normalizes it to
// exactly [-1.0, 1.0].
func (e Event) BendValue() float64 {
	raw := int(e.Data1) | int(e.Data2)<<7
	return float64(raw)/0x3FFF*2.0 - 1.0
}

// Note returns the note number for note events.
func (e Event) Note() uint8 {
	return e.Data1
}

// Velocity returns the velocity for note events.
func (e Event) Velocity() uint8 {
	return e.Data2
}

func (e Event) String() string {
	switch e.Kind {
	case KindNoteOn:
		return fmt.Sprintf("ch %d note on  %s vel %d", e.Channel+1, NoteName(e.Data1), e.Data2)
	case KindNoteOff:
		return fmt.Sprintf("ch %d note off %s", e.Channel+1, NoteName(e.Data1))
	case KindControlChange:
		return fmt.Sprintf("ch %d cc %d val %d", e.Channel+1, e.Data1, e.Data2)
	case KindProgramChange:
		return fmt.Sprintf("ch %d program %d", e.Channel+1, e.Data1)
	case KindPitchBend:
		return fmt.Sprintf("ch %d bend %+.2f", e.Channel+1, e.BendValue())
	case KindOther:
		return fmt.Sprintf("other [% X]", e.Raw)
	}
	return fmt.Sprintf("event kind %d", int(e.Kind))
}
