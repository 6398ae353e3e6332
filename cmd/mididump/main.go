package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-piano/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	defer gomidi.CloseDriver()

	switch os.Args[1] {
	case "list":
		listPorts()
	case "dump":
		dump(os.Args[2:], false)
	case "bend":
		dump(os.Args[2:], true)
	case "tap":
		tap(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI diagnostics")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                  - List all MIDI ports")
	fmt.Println("  dump [filter]         - Print decoded events from an input port")
	fmt.Println("  bend [filter]         - Print normalized pitch bend values")
	fmt.Println("  tap <port> <note...>  - Send notes with deferred note-offs")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! The MIDI backend is hung.")
		fmt.Println("On macOS try: sudo killall coreaudiod midiserver")
	}
}

func findInput(filter string) drivers.In {
	for _, p := range gomidi.GetInPorts() {
		name := strings.ToLower(p.String())
		if strings.Contains(name, "through") || strings.Contains(name, "thru") {
			continue
		}
		if filter != "" && !strings.Contains(name, strings.ToLower(filter)) {
			continue
		}
		return p
	}
	return nil
}

func dump(args []string, bendOnly bool) {
	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}

	in := findInput(filter)
	if in == nil {
		fmt.Println("No matching input port. Try: mididump list")
		return
	}
	fmt.Printf("Listening on %s (ctrl+c to exit)\n", in.String())

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		ev, ok := midi.Decode(msg)
		if !ok {
			return
		}
		if bendOnly {
			if ev.Kind != midi.KindPitchBend {
				return
			}
			fmt.Printf("%8dms  bend %+.4f\n", timestampms, ev.BendValue())
			return
		}
		fmt.Printf("%8dms  %s\n", timestampms, ev)
	})
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	fmt.Println("\nBye")
}

func tap(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: mididump tap <port> <note...>")
		return
	}

	send, closePort, err := midi.FindOutput(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer closePort()

	player := midi.NewPlayer(send)
	defer player.Close()

	for _, arg := range args[1:] {
		n, err := midi.ParseNote(arg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("tap %s\n", midi.NoteName(n))
		player.Tap(n)
		time.Sleep(250 * time.Millisecond)
	}

	// Let the deferred note-offs fire before the port closes.
	time.Sleep(600 * time.Millisecond)
}
