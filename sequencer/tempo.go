package sequencer

// Per-click tempo factor multipliers. There are no bounds, and up followed
// by down does not return to the same factor.
const (
	TempoUpFactor   = 1.03
	TempoDownFactor = 0.97
)

// TempoUp raises the sequencer's tempo factor by 3%
func TempoUp(s Sequencer) {
	s.SetTempoFactor(s.TempoFactor() * TempoUpFactor)
}

// TempoDown lowers the sequencer's tempo factor by 3%
func TempoDown(s Sequencer) {
	s.SetTempoFactor(s.TempoFactor() * TempoDownFactor)
}
