package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go-piano/debug"
	"go-piano/metrics"
	"go-piano/midi"
	"go-piano/practice"
	"go-piano/theory"
)

// App runs the practice screen: one goroutine owns the session and
// consumes MIDI events, typed commands, and device notifications in
// arrival order, repainting after each.
type App struct {
	model   *Model
	session *practice.Session
	devices *midi.DeviceManager
	player  *midi.Player

	events chan midi.Event
	lines  chan string
	in     io.Reader
	out    io.Writer
}

// NewApp wires the screen together. devices may be nil when running
// without hardware input.
func NewApp(model *Model, devices *midi.DeviceManager, player *midi.Player) *App {
	return &App{
		model:   model,
		session: model.Session,
		devices: devices,
		player:  player,
		events:  make(chan midi.Event, 64),
		lines:   make(chan string),
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// Enqueue feeds a decoded event into the loop without blocking the
// caller.
func (a *App) Enqueue(e midi.Event) {
	select {
	case a.events <- e:
	default:
		debug.Log("tui", "event queue full, dropping %s", e)
	}
}

func (a *App) Run(ctx context.Context) error {
	go a.readLines(ctx)

	var deviceEvents <-chan midi.DeviceEvent
	if a.devices != nil {
		deviceEvents = a.devices.Events()
	}

	a.repaint()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-a.events:
			a.model.SetLastEvent(ev.String())
			a.session.HandleEvent(ev)
			a.repaint()

		case de, ok := <-deviceEvents:
			if !ok {
				deviceEvents = nil
				continue
			}
			a.handleDevice(ctx, de)
			a.repaint()

		case line, ok := <-a.lines:
			if !ok {
				return nil
			}
			if quit := a.handleCommand(line); quit {
				return nil
			}
			a.repaint()
		}
	}
}

func (a *App) handleDevice(ctx context.Context, de midi.DeviceEvent) {
	switch de.Type {
	case midi.DeviceConnected:
		a.model.SetDevice(de.ID)
		metrics.DeviceSeen(de.ID, true)
		go a.forward(ctx, de.Keyboard)
	case midi.DeviceDisconnected:
		metrics.DeviceSeen(de.ID, false)
		if a.model.Device() == de.ID {
			a.model.SetDevice("")
		}
	}
}

// forward drains one keyboard into the app's event queue.
func (a *App) forward(ctx context.Context, kb *midi.Keyboard) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-kb.Events():
			if !ok {
				return
			}
			a.Enqueue(ev)
		}
	}
}

func (a *App) readLines(ctx context.Context) {
	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		select {
		case a.lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	close(a.lines)
}

// handleCommand applies one typed command. Returns true on quit.
func (a *App) handleCommand(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "q", "quit", "exit":
		return true

	case "start", "go":
		a.session.Start()
		metrics.ExerciseStarted(a.session.Settings().Mode.String(), exerciseLabel(a.session.Settings()))

	case "reset", "stop":
		a.session.Reset()

	case "demo":
		a.demo()

	case "help", "h", "?":
		a.model.ToggleHelp()

	case "mode", "m":
		err = oneArg(args, func(v string) error {
			m, perr := practice.ParseMode(v)
			if perr != nil {
				return perr
			}
			return a.session.SetPracticeMode(m)
		})

	case "key", "k":
		err = oneArg(args, func(v string) error {
			k, perr := theory.ParseKey(v)
			if perr != nil {
				return perr
			}
			return a.session.SetSelectedKey(k)
		})

	case "scale", "s":
		err = oneArg(args, func(v string) error {
			st, perr := theory.ParseScaleType(v)
			if perr != nil {
				return perr
			}
			return a.session.SetSelectedScaleType(st)
		})

	case "root":
		err = oneArg(args, func(v string) error {
			k, perr := theory.ParseKey(v)
			if perr != nil {
				return perr
			}
			return a.session.SetSelectedRootNote(k)
		})

	case "quality":
		err = oneArg(args, func(v string) error {
			q, perr := theory.ParseQuality(v)
			if perr != nil {
				return perr
			}
			return a.session.SetSelectedChordQuality(q)
		})

	case "octaves", "oct":
		err = oneArg(args, func(v string) error {
			n, perr := strconv.Atoi(v)
			if perr != nil {
				return fmt.Errorf("octaves wants a number, got %q", v)
			}
			return a.session.SetSelectedArpeggioOctaves(n)
		})

	case "direction", "dir":
		err = oneArg(args, func(v string) error {
			d, perr := theory.ParseDirection(v)
			if perr != nil {
				return perr
			}
			return a.session.SetSelectedArpeggioDirection(d)
		})

	case "tap", "t":
		err = a.tap(args)

	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		a.model.SetNotice(err.Error())
	} else {
		a.model.SetNotice("")
	}
	return false
}

func oneArg(args []string, apply func(string) error) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one value")
	}
	return apply(args[0])
}

func (a *App) tap(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tap <note> [note...]")
	}
	for _, arg := range args {
		n, err := midi.ParseNote(arg)
		if err != nil {
			return err
		}
		a.player.Tap(n)
	}
	return nil
}

// demo taps whatever the session is waiting on.
func (a *App) demo() {
	for _, n := range a.session.Highlighted() {
		a.player.Tap(n)
	}
}

func (a *App) repaint() {
	fmt.Fprint(a.out, "\033[2J\033[H")
	fmt.Fprintln(a.out, a.model.View())
}
