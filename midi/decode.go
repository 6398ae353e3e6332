package midi

// Decode turns one raw packet into an event. The bool reports whether the
// packet produced one: empty packets, realtime clock/sensing bytes, and
// short messages other than ProgramChange do not. Decode never fails on
// arbitrary bytes; unrecognized statuses come back as KindOther so they
// can still be displayed.
func Decode(b []byte) (Event, bool) {
	if len(b) == 0 {
		return Event{}, false
	}

	status := b[0]
	if status == StatusTimingClock || status == StatusActiveSensing {
		return Event{}, false
	}
	channel := status & 0x0F

	if len(b) >= 3 {
		switch status & 0xF0 {
		case StatusNoteOn:
			if b[2] == 0 {
				// Velocity 0 is a note off by the running-status convention.
				return Event{Kind: KindNoteOff, Channel: channel, Data1: b[1]}, true
			}
			return Event{Kind: KindNoteOn, Channel: channel, Data1: b[1], Data2: b[2]}, true
		case StatusNoteOff:
			return Event{Kind: KindNoteOff, Channel: channel, Data1: b[1], Data2: b[2]}, true
		case StatusControlChange:
			return Event{Kind: KindControlChange, Channel: channel, Data1: b[1], Data2: b[2]}, true
		case StatusPitchBend:
			return Event{Kind: KindPitchBend, Channel: channel, Data1: b[1], Data2: b[2]}, true
		case StatusProgramChange:
			return Event{Kind: KindProgramChange, Channel: channel, Data1: b[1]}, true
		default:
			return Event{Kind: KindOther, Channel: channel, Data1: b[1], Data2: b[2], Raw: b}, true
		}
	}

	if len(b) == 2 && status&0xF0 == StatusProgramChange {
		return Event{Kind: KindProgramChange, Channel: channel, Data1: b[1]}, true
	}

	return Event{}, false
}
