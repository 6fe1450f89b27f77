package sequencer

import (
	"sort"

	"beatbox/midi"
)

// Fixed values of the compiled track
const (
	NoteVelocity = 100

	// written after every instrument row, lands on the last tick of the loop
	rowEndTick       = NumSteps
	rowEndChannel    = 1
	rowEndController = 127

	// written once at the end so step 16 always exists
	loopEndTick    = NumSteps - 1
	loopEndProgram = 1
)

// Track is the ordered event list for one pass of the loop
type Track []midi.Event

// Len returns the number of events
func (t Track) Len() int {
	return len(t)
}

// Ticks returns the loop length, the highest tick in the track
func (t Track) Ticks() int {
	end := 0
	for _, e := range t {
		if e.Tick > end {
			end = e.Tick
		}
	}
	return end
}

// Sorted returns a copy ordered by tick. Events on the same tick keep
// their compiled order.
func (t Track) Sorted() Track {
	out := make(Track, len(t))
	copy(out, t)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Tick < out[j].Tick
	})
	return out
}

// Compile turns a grid snapshot into a track: a NoteOn/NoteOff pair per
// active cell, a controller event closing every row, and a final program
// change on the drum channel. The result has 2*active+17 events.
func Compile(grid Grid, kit Kit) Track {
	track := make(Track, 0, 2*grid.Active()+NumInstruments+1)

	for i := 0; i < NumInstruments; i++ {
		key := kit.Instruments[i].Key
		for j := 0; j < NumSteps; j++ {
			if !grid.cells[i][j] {
				continue
			}
			track = append(track,
				midi.Event{Command: midi.NoteOn, Channel: midi.DrumChannel, Data1: key, Data2: NoteVelocity, Tick: j},
				midi.Event{Command: midi.NoteOff, Channel: midi.DrumChannel, Data1: key, Data2: NoteVelocity, Tick: j + 1},
			)
		}
		track = append(track, midi.Event{Command: midi.CC, Channel: rowEndChannel, Data1: rowEndController, Data2: 0, Tick: rowEndTick})
	}

	track = append(track, midi.Event{Command: midi.ProgramChange, Channel: midi.DrumChannel, Data1: loopEndProgram, Data2: 0, Tick: loopEndTick})
	return track
}
