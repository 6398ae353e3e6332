package midi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-piano/debug"
)

// DeviceEvent is emitted when keyboards connect/disconnect
type DeviceEvent struct {
	Type     DeviceEventType
	Keyboard *Keyboard
	ID       string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of MIDI keyboards
type DeviceManager struct {
	keyboards map[string]*Keyboard
	filter    string // optional substring match on port names
	mu        sync.RWMutex
	events    chan DeviceEvent
	pollRate  time.Duration
}

// NewDeviceManager creates a device manager. An empty filter attaches to
// every hardware input; otherwise only ports whose name contains the
// filter are used.
func NewDeviceManager(filter string) *DeviceManager {
	return &DeviceManager{
		keyboards: make(map[string]*Keyboard),
		filter:    strings.ToLower(filter),
		events:    make(chan DeviceEvent, 16),
		pollRate:  time.Second,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Keyboards returns a snapshot of connected keyboards
func (dm *DeviceManager) Keyboards() map[string]*Keyboard {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	snapshot := make(map[string]*Keyboard, len(dm.keyboards))
	for k, v := range dm.keyboards {
		snapshot[k] = v
	}
	return snapshot
}

// First returns any connected keyboard (or nil)
func (dm *DeviceManager) First() *Keyboard {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	for _, kb := range dm.keyboards {
		return kb
	}
	return nil
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()

	var inPorts []drivers.In
	select {
	case inPorts = <-ch:
	case <-time.After(3 * time.Second):
		// MIDI backend is hung - skip this scan
		debug.Log("midi", "port scan timed out, skipping")
		return
	}

	seenIDs := make(map[string]bool)

	for i, inPort := range inPorts {
		name := strings.ToLower(inPort.String())
		if isThruPort(name) {
			continue
		}
		if dm.filter != "" && !strings.Contains(name, dm.filter) {
			continue
		}

		id := inPort.String()
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.keyboards[id]
		dm.mu.RUnlock()

		if !exists {
			kb, err := NewKeyboard(id, inPorts[i])
			if err != nil {
				debug.Log("midi", "attach %s failed: %v", id, err)
				continue
			}

			dm.mu.Lock()
			dm.keyboards[id] = kb
			dm.mu.Unlock()

			debug.Log("midi", "keyboard connected: %s", id)
			dm.emit(DeviceEvent{
				Type:     DeviceConnected,
				Keyboard: kb,
				ID:       id,
			})
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.keyboards {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		kb := dm.keyboards[id]
		kb.Close()
		delete(dm.keyboards, id)
		debug.Log("midi", "keyboard disconnected: %s", id)
		dm.emit(DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		})
	}
	dm.mu.Unlock()
}

// emit never blocks; if nobody is draining Events the notification is
// dropped rather than stalling the scan loop.
func (dm *DeviceManager) emit(ev DeviceEvent) {
	select {
	case dm.events <- ev:
	default:
		debug.Log("midi", "device event dropped: %v %s", ev.Type, ev.ID)
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, kb := range dm.keyboards {
		kb.Close()
	}
	dm.keyboards = make(map[string]*Keyboard)
}

// isThruPort filters the software loopback ports every backend exposes.
func isThruPort(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "through") ||
		strings.Contains(name, "thru") ||
		strings.Contains(name, "rtmidi") ||
		strings.Contains(name, "virtual")
}

// InputNames lists the currently visible input ports.
func InputNames() []string {
	ports := gomidi.GetInPorts()
	names := make([]string, 0, len(ports))
	for _, p := range ports {
		names = append(names, p.String())
	}
	return names
}

// OutputNames lists the currently visible output ports.
func OutputNames() []string {
	ports := gomidi.GetOutPorts()
	names := make([]string, 0, len(ports))
	for _, p := range ports {
		names = append(names, p.String())
	}
	return names
}

// OutputNames lists the currently visible output ports.
func OutputNames() []string {
	ports := gomidi.GetOutPorts()
	names := make([]string, 0, len(ports))
	for _, p := range ports {
		names = append(names, p.String())
	}
	return names
}

// FindOutput opens the first output port whose name contains the given
// substring (case insensitive) and returns its send function.
func FindOutput(name string) (SendFunc, func(), error) {
	want := strings.ToLower(name)
	for _, out := range gomidi.GetOutPorts() {
		if want != "" && !strings.Contains(strings.ToLower(out.String()), want) {
			continue
		}
		send, err := gomidi.SendTo(out)
		if err != nil {
			return nil, nil, fmt.Errorf("open output %s: %w", out.String(), err)
		}
		port := out
		return SendFunc(send), func() { port.Close() }, nil
	}
	return nil, nil, fmt.Errorf("no output port matching %q", name)
}
