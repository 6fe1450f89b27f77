package sequencer

import "errors"

var (
	ErrNotOpen  = errors.New("sequencer not open")
	ErrNoTrack  = errors.New("no track loaded")
	ErrNoOutput = errors.New("no output")
)

// Sequencer loops a compiled track on an output.
//
// Tempo is BPM scaled by the tempo factor. The factor starts at 1.0 and is
// only ever changed by SetTempoFactor.
type Sequencer interface {
	Open() error
	Close() error

	SetTrack(t Track) error
	SetLoopContinuously(loop bool)
	Start() error
	Stop()
	Playing() bool

	SetTempoBPM(bpm float64)
	TempoBPM() float64
	TempoFactor() float64
	SetTempoFactor(f float64)
}
