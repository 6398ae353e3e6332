package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-piano/config"
	"go-piano/debug"
	"go-piano/metrics"
	"go-piano/midi"
	"go-piano/practice"
	"go-piano/theme"
	"go-piano/theory"
	"go-piano/tui"
)

const version = "0.2.0"

func main() {
	var (
		virtual  = flag.Bool("virtual", false, "run without hardware input, notes come from tap commands")
		debugLog = flag.Bool("debug", false, "write a debug log under ~/.config/go-piano")
		listOnly = flag.Bool("list", false, "print MIDI ports and exit")
		inFilter = flag.String("port", "", "substring match on input port names (overrides config)")
		outPort  = flag.String("out", "", "output port for played notes (overrides config)")

		mode      = flag.String("mode", "", "practice mode (overrides config)")
		key       = flag.String("key", "", "key for scale and progression modes (overrides config)")
		scale     = flag.String("scale", "", "scale type (overrides config)")
		root      = flag.String("root", "", "root note for chord and arpeggio modes (overrides config)")
		quality   = flag.String("quality", "", "chord quality (overrides config)")
		octaves   = flag.Int("octaves", 0, "arpeggio octave span 1-3 (overrides config)")
		direction = flag.String("direction", "", "arpeggio direction (overrides config)")
	)
	flag.Parse()
	defer gomidi.CloseDriver()

	if *listOnly {
		listPorts()
		return
	}

	if *debugLog {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *inFilter != "" {
		cfg.MIDI.PortFilter = *inFilter
	}
	if *outPort != "" {
		cfg.MIDI.OutputPort = *outPort
	}
	overrideString(&cfg.Practice.Mode, *mode)
	overrideString(&cfg.Practice.Key, *key)
	overrideString(&cfg.Practice.Scale, *scale)
	overrideString(&cfg.Practice.RootNote, *root)
	overrideString(&cfg.Practice.ChordQuality, *quality)
	overrideString(&cfg.Practice.ArpeggioDirection, *direction)
	if *octaves != 0 {
		cfg.Practice.ArpeggioOctaves = *octaves
	}
	cfg.Validate()

	if err := metrics.Init(cfg.SentryDSN, "go-piano@"+version); err != nil {
		fmt.Fprintf(os.Stderr, "metrics: %v\n", err)
	}
	defer metrics.Close()

	th := theme.New(theme.FromConfig(cfg.UI.Palette))

	session, err := practice.NewSession(sessionSettings(cfg), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "practice: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Device manager handles hot-plug of MIDI keyboards
	var manager *midi.DeviceManager
	if !*virtual {
		manager = midi.NewDeviceManager(cfg.MIDI.PortFilter)
		go manager.Run(ctx)
	}

	// Hardware sound output is optional. The loopback below always
	// feeds played notes back into the session.
	var hwSend midi.SendFunc
	if cfg.MIDI.OutputPort != "" {
		send, closePort, err := midi.FindOutput(cfg.MIDI.OutputPort)
		if err != nil {
			debug.Log("main", "output port: %v", err)
			metrics.CaptureErr(err)
		} else {
			hwSend = send
			defer closePort()
		}
	}

	model := tui.NewModel(session, th)

	var app *tui.App
	loopback := func(msg gomidi.Message) error {
		if ev, ok := midi.Decode(msg); ok && app != nil {
			app.Enqueue(ev)
		}
		if hwSend != nil {
			return hwSend(msg)
		}
		return nil
	}
	player := midi.NewPlayer(loopback,
		midi.WithHold(time.Duration(cfg.MIDI.HoldMillis)*time.Millisecond),
		midi.WithChannel(uint8(cfg.MIDI.Channel)))
	defer player.Close()

	app = tui.NewApp(model, manager, player)

	fmt.Println("go-piano")
	fmt.Println("Connect a MIDI keyboard any time - it will be picked up automatically")
	fmt.Println("Type start to begin, quit to leave")
	fmt.Println("")

	if err := app.Run(ctx); err != nil {
		metrics.CaptureErr(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	saveSettings(cfg, session)
}

// listPorts prints every visible MIDI port.
func listPorts() {
	fmt.Println("inputs:")
	for _, name := range midi.InputNames() {
		fmt.Println("  " + name)
	}
	fmt.Println("outputs:")
	for _, name := range midi.OutputNames() {
		fmt.Println("  " + name)
	}
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// sessionSettings maps the stored config onto typed settings. Bad
// values fall back to defaults rather than refusing to start.
func sessionSettings(cfg *config.Config) practice.Settings {
	st := practice.Settings{ArpeggioOctaves: cfg.Practice.ArpeggioOctaves}

	if m, err := practice.ParseMode(cfg.Practice.Mode); err == nil {
		st.Mode = m
	} else {
		debug.Log("main", "config mode: %v", err)
	}
	if k, err := theory.ParseKey(cfg.Practice.Key); err == nil {
		st.Key = k
	} else {
		debug.Log("main", "config key: %v", err)
	}
	if s, err := theory.ParseScaleType(cfg.Practice.Scale); err == nil {
		st.Scale = s
	} else {
		debug.Log("main", "config scale: %v", err)
	}
	if k, err := theory.ParseKey(cfg.Practice.RootNote); err == nil {
		st.RootNote = k
	} else {
		debug.Log("main", "config rootNote: %v", err)
	}
	if q, err := theory.ParseQuality(cfg.Practice.ChordQuality); err == nil {
		st.ChordQuality = q
	} else {
		debug.Log("main", "config chordQuality: %v", err)
	}
	if d, err := theory.ParseDirection(cfg.Practice.ArpeggioDirection); err == nil {
		st.ArpeggioDirection = d
	} else {
		debug.Log("main", "config arpeggioDirection: %v", err)
	}
	return st
}

// saveSettings persists the session's last settings for the next run.
func saveSettings(cfg *config.Config, s *practice.Session) {
	st := s.Settings()
	cfg.Practice.Mode = st.Mode.String()
	cfg.Practice.Key = st.Key.String()
	cfg.Practice.Scale = st.Scale.String()
	cfg.Practice.RootNote = st.RootNote.String()
	cfg.Practice.ChordQuality = st.ChordQuality.String()
	cfg.Practice.ArpeggioOctaves = st.ArpeggioOctaves
	cfg.Practice.ArpeggioDirection = st.ArpeggioDirection.String()
	if err := cfg.Save(); err != nil {
		debug.Log("main", "save config: %v", err)
	}
}
