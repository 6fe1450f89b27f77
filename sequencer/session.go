package sequencer

import (
	"errors"
	"fmt"

	"beatbox/debug"
)

// ActionType identifies a user action
type ActionType int

const (
	ActionStart ActionType = iota
	ActionStop
	ActionTempoUp
	ActionTempoDown
	ActionCellToggled
)

func (a ActionType) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionTempoUp:
		return "tempo-up"
	case ActionTempoDown:
		return "tempo-down"
	case ActionCellToggled:
		return "toggle"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Action is one user action. Instrument and Step are only read for
// ActionCellToggled.
type Action struct {
	Type       ActionType
	Instrument int
	Step       int
}

// Toggle builds the action for flipping one cell
func Toggle(instrument, step int) Action {
	return Action{Type: ActionCellToggled, Instrument: instrument, Step: step}
}

// Session is the application state: the grid the user edits, the track
// compiled from it on the last Start, and the sequencer that plays it.
// All methods are meant to be called from one goroutine (the UI loop).
type Session struct {
	grid  Grid
	track Track
	kit   Kit
	bpm   float64
	seq   Sequencer
}

// NewSession creates a session with an empty grid
func NewSession(seq Sequencer, kit Kit, bpm float64) *Session {
	return &Session{
		kit: kit,
		bpm: bpm,
		seq: seq,
	}
}

// Setup opens the sequencer and sets the base tempo. A failure is logged
// and returned; the session stays usable for editing either way.
func (s *Session) Setup() error {
	err := s.seq.Open()
	debug.Error("session", err, "open sequencer")
	s.seq.SetTempoBPM(s.bpm)
	if err != nil {
		return fmt.Errorf("open sequencer: %w", err)
	}
	return nil
}

// Dispatch handles one user action
func (s *Session) Dispatch(a Action) error {
	debug.Log("session", "dispatch %s", a.Type)

	switch a.Type {
	case ActionStart:
		return s.start()
	case ActionStop:
		s.seq.Stop()
	case ActionTempoUp:
		TempoUp(s.seq)
	case ActionTempoDown:
		TempoDown(s.seq)
	case ActionCellToggled:
		if _, err := s.grid.Toggle(a.Instrument, a.Step); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown action %s", a.Type)
	}
	return nil
}

// start rebuilds the track from the current grid and plays it in a loop.
// Each sequencer call is attempted even if an earlier one failed; failures
// are logged and returned together.
func (s *Session) start() error {
	s.track = Compile(s.grid, s.kit)
	debug.Log("session", "compiled %d events from %d active cells", s.track.Len(), s.grid.Active())

	var errs []error
	if err := s.seq.SetTrack(s.track); err != nil {
		debug.Error("session", err, "set track")
		errs = append(errs, fmt.Errorf("set track: %w", err))
	}
	s.seq.SetLoopContinuously(true)
	if err := s.seq.Start(); err != nil {
		debug.Error("session", err, "start")
		errs = append(errs, fmt.Errorf("start: %w", err))
	}
	s.seq.SetTempoBPM(s.bpm)
	return errors.Join(errs...)
}

// Grid returns a snapshot of the grid
func (s *Session) Grid() Grid {
	return s.grid
}

// Track returns the track compiled by the last Start (nil before that)
func (s *Session) Track() Track {
	return s.track
}

func (s *Session) Kit() Kit {
	return s.kit
}

// BPM returns the base tempo
func (s *Session) BPM() float64 {
	return s.bpm
}

func (s *Session) Playing() bool {
	return s.seq.Playing()
}

func (s *Session) TempoFactor() float64 {
	return s.seq.TempoFactor()
}

// Close stops playback and releases the sequencer
func (s *Session) Close() error {
	return s.seq.Close()
}
