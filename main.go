package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"beatbox/config"
	"beatbox/debug"
	"beatbox/midi"
	"beatbox/sequencer"
	"beatbox/theme"
	"beatbox/tui"
)

// flags override the config file
type flags struct {
	config    string
	port      string
	soundfont string
	debug     bool
}

func main() {
	var f flags
	flag.StringVar(&f.config, "config", "", "config file (default ~/.config/beatbox/config.yaml)")
	flag.StringVar(&f.port, "port", "", "MIDI output port (substring match)")
	flag.StringVar(&f.soundfont, "soundfont", "", "play through a SoundFont (.sf2) instead of a MIDI port")
	flag.BoolVar(&f.debug, "debug", false, "write debug.log to the config directory")
	flag.Parse()

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup happens before main exits
func run(f flags) error {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return err
	}
	f.apply(cfg)

	if cfg.Debug {
		if dir, err := config.ConfigDir(); err == nil {
			if err := debug.Enable(dir); err != nil {
				fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
			}
		}
		defer debug.Disable()
	}

	// Load theme
	palette := theme.Plasma
	if cfg.Palette != "" {
		p, err := theme.LoadGPL(cfg.Palette)
		if err != nil {
			debug.Error("main", err, "load palette, using built-in")
		} else {
			palette = p
		}
	}
	th := theme.New(palette)

	player := sequencer.NewPlayer(openerFor(cfg.Output))
	session := sequencer.NewSession(player, sequencer.GetKit(cfg.Kit), cfg.Tempo)
	defer midi.CloseDriver()
	defer session.Close()

	// A missing output is not fatal: the grid stays editable and Start
	// reports the problem
	setupErr := session.Setup()

	m := tui.NewModel(session, player, th)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	if setupErr != nil {
		fmt.Fprintf(os.Stderr, "no sound: %v\n", setupErr)
	}
	return nil
}

func (f flags) apply(cfg *config.Config) {
	if f.port != "" {
		cfg.Output.Port = f.port
	}
	if f.soundfont != "" {
		cfg.Output.SoundFont = f.soundfont
	}
	if f.debug {
		cfg.Debug = true
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// openerFor picks the output: a SoundFont synth when configured, otherwise
// a MIDI port
func openerFor(out config.OutputConfig) sequencer.Opener {
	if out.SoundFont != "" {
		return func() (midi.Sink, error) {
			s, err := midi.OpenSynth(out.SoundFont)
			if err != nil {
				return nil, err
			}
			return s, nil
		}
	}
	return func() (midi.Sink, error) {
		p, err := midi.OpenPort(context.Background(), out.Port)
		if err != nil {
			return nil, err
		}
		debug.Log("main", "output port %s", p.Name())
		return p, nil
	}
}
