package sequencer

import (
	"errors"
	"fmt"
)

const (
	NumInstruments = 16
	NumSteps       = 16
)

// ErrOutOfRange is returned for a cell outside the 16x16 grid
var ErrOutOfRange = errors.New("cell out of range")

// Grid holds the on/off state of every (instrument, step) cell. The zero
// value is a grid with every cell off. Grid is a value type: assigning it
// takes a snapshot.
type Grid struct {
	cells [NumInstruments][NumSteps]bool
}

func checkCell(instrument, step int) error {
	if instrument < 0 || instrument >= NumInstruments || step < 0 || step >= NumSteps {
		return fmt.Errorf("%w: instrument %d step %d", ErrOutOfRange, instrument, step)
	}
	return nil
}

// Cell reports whether a cell is active
func (g Grid) Cell(instrument, step int) (bool, error) {
	if err := checkCell(instrument, step); err != nil {
		return false, err
	}
	return g.cells[instrument][step], nil
}

// Set changes a cell
func (g *Grid) Set(instrument, step int, active bool) error {
	if err := checkCell(instrument, step); err != nil {
		return err
	}
	g.cells[instrument][step] = active
	return nil
}

// Toggle flips a cell and returns its new state
func (g *Grid) Toggle(instrument, step int) (bool, error) {
	if err := checkCell(instrument, step); err != nil {
		return false, err
	}
	g.cells[instrument][step] = !g.cells[instrument][step]
	return g.cells[instrument][step], nil
}

// Row returns the steps of one instrument
func (g Grid) Row(instrument int) ([NumSteps]bool, error) {
	if err := checkCell(instrument, 0); err != nil {
		return [NumSteps]bool{}, err
	}
	return g.cells[instrument], nil
}

// Active counts active cells
func (g Grid) Active() int {
	n := 0
	for i := range g.cells {
		for _, on := range g.cells[i] {
			if on {
				n++
			}
		}
	}
	return n
}
