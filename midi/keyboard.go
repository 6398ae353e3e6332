package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-piano/debug"
)

// Keyboard is one connected MIDI input port. Every incoming packet runs
// through Decode; the typed events come out on Events().
type Keyboard struct {
	id       string
	inPort   drivers.In
	stopFunc func()
	events   chan Event
}

// NewKeyboard opens the input port and starts listening
func NewKeyboard(id string, inPort drivers.In) (*Keyboard, error) {
	kb := &Keyboard{
		id:     id,
		inPort: inPort,
		events: make(chan Event, 64),
	}

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		event, ok := Decode(msg)
		if !ok {
			return
		}
		debug.LogEvery(50, "midi", "in: %s", event)
		select {
		case kb.events <- event:
		default:
			// Consumer is behind; dropping beats blocking the driver callback.
			debug.LogEvery(100, "midi", "input overflow, dropped %s", event)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", id, err)
	}
	kb.stopFunc = stop

	return kb, nil
}

func (kb *Keyboard) ID() string {
	return kb.id
}

// Events returns the decoded event stream
func (kb *Keyboard) Events() <-chan Event {
	return kb.events
}

func (kb *Keyboard) Close() error {
	if kb.stopFunc != nil {
		kb.stopFunc()
		kb.stopFunc = nil
	}
	close(kb.events)
	return nil
}
