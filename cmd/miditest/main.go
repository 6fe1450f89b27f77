package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"beatbox/midi"
	"beatbox/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "dump":
		dumpTrack()
	case "demo":
		port := ""
		if len(os.Args) > 2 {
			port = os.Args[2]
		}
		loops := 2
		if len(os.Args) > 3 {
			if n, err := strconv.Atoi(os.Args[3]); err == nil && n > 0 {
				loops = n
			}
		}
		playDemo(port, loops)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("BeatBox MIDI test")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                 - List MIDI output ports")
	fmt.Println("  dump                 - Print the compiled demo track")
	fmt.Println("  demo [port] [loops]  - Play the demo pattern on a port")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	names, err := midi.OutPorts(context.Background())
	if err != nil {
		fmt.Printf("\n%v\n", err)
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	for i, name := range names {
		fmt.Printf("  %d: %s\n", i, name)
	}
	if len(names) == 0 {
		fmt.Println("  (none)")
	}
}

type cell struct{ instrument, step int }

// demoCells is four on the floor with off-beat hats and a backbeat snare
func demoCells() []cell {
	var cells []cell
	for step := 0; step < sequencer.NumSteps; step++ {
		switch step % 4 {
		case 0:
			cells = append(cells, cell{0, step}) // Bass Drum
		case 2:
			cells = append(cells, cell{1, step}) // Closed Hi-Hat
		}
	}
	return append(cells, cell{3, 4}, cell{3, 12}) // Acoustic Snare
}

func buildGrid(cells []cell) (sequencer.Grid, error) {
	var g sequencer.Grid
	for _, c := range cells {
		if err := g.Set(c.instrument, c.step, true); err != nil {
			return sequencer.Grid{}, err
		}
	}
	return g, nil
}

func demoGrid() (sequencer.Grid, error) {
	return buildGrid(demoCells())
}

func dumpTrack() {
	g, err := demoGrid()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	track := sequencer.Compile(g, sequencer.GetKit(sequencer.DefaultKit))
	fmt.Printf("%d events, %d ticks\n", track.Len(), track.Ticks())
	for i, e := range track {
		fmt.Printf("  %3d: %s\n", i, e)
	}
}

func playDemo(port string, loops int) {
	g, err := demoGrid()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	sink, err := midi.OpenPort(context.Background(), port)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer midi.CloseDriver()
	fmt.Printf("Playing on %s, %d loops\n", sink.Name(), loops)

	player := sequencer.NewPlayer(func() (midi.Sink, error) { return sink, nil })
	if err := player.Open(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer player.Close()

	if err := player.SetTrack(sequencer.Compile(g, sequencer.GetKit(sequencer.DefaultKit))); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	player.SetLoopContinuously(true)
	if err := player.Start(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	// 16 steps of 16th notes is one bar of 4 beats
	bar := time.Duration(float64(4*time.Minute) / player.TempoBPM())
	time.Sleep(time.Duration(loops) * bar)
	player.Stop()
	fmt.Println("Done")
}
