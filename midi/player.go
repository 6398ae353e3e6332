package midi

import (
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-piano/debug"
)

// SendFunc delivers one outgoing MIDI message.
type SendFunc func(gomidi.Message) error

// Player sounds virtual taps: note on now, note off on a deferred timer.
// Every sounding note owns its own timer, so re-tapping a note replaces
// only that note's pending off and overlapping notes never cut each other
// short. Close cancels everything still pending and silences it.
type Player struct {
	send     SendFunc
	hold     time.Duration
	channel  uint8
	velocity uint8

	mu     sync.Mutex
	timers map[uint8]*time.Timer
	gens   map[uint8]uint64
	closed bool
}

type PlayerOption func(*Player)

// WithHold sets how long a tapped note sounds before the deferred off.
func WithHold(d time.Duration) PlayerOption {
	return func(p *Player) {
		if d > 0 {
			p.hold = d
		}
	}
}

// WithChannel sets the outgoing MIDI channel (0-15).
func WithChannel(ch uint8) PlayerOption {
	return func(p *Player) {
		if ch <= 15 {
			p.channel = ch
		}
	}
}

// WithVelocity sets the note-on velocity.
func WithVelocity(v uint8) PlayerOption {
	return func(p *Player) {
		if v >= 1 && v <= 127 {
			p.velocity = v
		}
	}
}

// NewPlayer wraps a send function. The default hold is 500ms.
func NewPlayer(send SendFunc, opts ...PlayerOption) *Player {
	p := &Player{
		send:     send,
		hold:     500 * time.Millisecond,
		velocity: 100,
		timers:   make(map[uint8]*time.Timer),
		gens:     make(map[uint8]uint64),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tap sounds a note now and schedules its note off after the hold. A tap
// on an already-sounding note retriggers it and replaces its timer.
func (p *Player) Tap(note uint8) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if t, ok := p.timers[note]; ok {
		t.Stop()
	}
	// The generation stamp keeps a stale timer that lost the Stop race
	// from silencing the retriggered note.
	p.gens[note]++
	gen := p.gens[note]
	p.timers[note] = time.AfterFunc(p.hold, func() { p.expire(note, gen) })
	p.mu.Unlock()

	if err := p.send(gomidi.NoteOn(p.channel, note, p.velocity)); err != nil {
		debug.Log("player", "note on %s failed: %v", NoteName(note), err)
	}
}

func (p *Player) expire(note uint8, gen uint64) {
	p.mu.Lock()
	if p.closed || p.gens[note] != gen {
		p.mu.Unlock()
		return
	}
	delete(p.timers, note)
	p.mu.Unlock()

	if err := p.send(gomidi.NoteOff(p.channel, note)); err != nil {
		debug.Log("player", "note off %s failed: %v", NoteName(note), err)
	}
}

// Pending reports how many notes are waiting on their deferred off.
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.timers)
}

// Close cancels every pending timer and sends a note off for anything
// still sounding.
func (p *Player) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	pending := make([]uint8, 0, len(p.timers))
	for note, t := range p.timers {
		t.Stop()
		pending = append(pending, note)
	}
	p.timers = nil
	p.mu.Unlock()

	for _, note := range pending {
		if err := p.send(gomidi.NoteOff(p.channel, note)); err != nil {
			debug.Log("player", "note off %s failed: %v", NoteName(note), err)
		}
	}
}
