package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beatbox/midi"
)

var (
	rowEnd  = midi.Event{Command: midi.CC, Channel: 1, Data1: 127, Data2: 0, Tick: 16}
	loopEnd = midi.Event{Command: midi.ProgramChange, Channel: 9, Data1: 1, Data2: 0, Tick: 15}
)

func countNotes(track Track) (on, off int) {
	for _, e := range track {
		switch e.Command {
		case midi.NoteOn:
			on++
		case midi.NoteOff:
			off++
		}
	}
	return on, off
}

func TestCompileEmptyGrid(t *testing.T) {
	track := Compile(Grid{}, GetKit(DefaultKit))
	require.Equal(t, 17, track.Len())

	on, off := countNotes(track)
	assert.Zero(t, on)
	assert.Zero(t, off)
	for _, e := range track[:16] {
		assert.Equal(t, rowEnd, e)
	}
	assert.Equal(t, loopEnd, track[16])
	assert.Equal(t, 16, track.Ticks())
}

func TestCompileBassDrumFirstStep(t *testing.T) {
	var g Grid
	require.NoError(t, g.Set(0, 0, true))

	track := Compile(g, GetKit(DefaultKit))
	require.Equal(t, 19, track.Len())

	assert.Equal(t, midi.Event{Command: midi.NoteOn, Channel: 9, Data1: 35, Data2: 100, Tick: 0}, track[0])
	assert.Equal(t, midi.Event{Command: midi.NoteOff, Channel: 9, Data1: 35, Data2: 100, Tick: 1}, track[1])
	for _, e := range track[2:18] {
		assert.Equal(t, rowEnd, e)
	}
	assert.Equal(t, loopEnd, track[18])
}

func TestCompileFullRow(t *testing.T) {
	var g Grid
	for j := 0; j < NumSteps; j++ {
		require.NoError(t, g.Set(4, j, true))
	}

	track := Compile(g, GetKit(DefaultKit))
	require.Equal(t, 49, track.Len())

	on, off := countNotes(track)
	assert.Equal(t, 16, on)
	assert.Equal(t, 16, off)

	// rows 0-3 contribute only their row end, then row 4 notes follow
	for j := 0; j < NumSteps; j++ {
		assert.Equal(t, midi.Event{Command: midi.NoteOn, Channel: 9, Data1: 49, Data2: 100, Tick: j}, track[4+2*j])
		assert.Equal(t, midi.Event{Command: midi.NoteOff, Channel: 9, Data1: 49, Data2: 100, Tick: j + 1}, track[5+2*j])
	}
	assert.Equal(t, rowEnd, track[36])
}

func TestCompileSingleCell(t *testing.T) {
	kit := GetKit(DefaultKit)
	for _, c := range [][2]int{{0, 15}, {7, 3}, {15, 0}, {15, 15}} {
		var g Grid
		require.NoError(t, g.Set(c[0], c[1], true))
		track := Compile(g, kit)
		key := kit.Instruments[c[0]].Key

		var ons, offs []midi.Event
		for _, e := range track {
			switch e.Command {
			case midi.NoteOn:
				ons = append(ons, e)
			case midi.NoteOff:
				offs = append(offs, e)
			}
		}
		require.Len(t, ons, 1, "cell %v", c)
		require.Len(t, offs, 1, "cell %v", c)
		assert.Equal(t, midi.Event{Command: midi.NoteOn, Channel: 9, Data1: key, Data2: 100, Tick: c[1]}, ons[0])
		assert.Equal(t, midi.Event{Command: midi.NoteOff, Channel: 9, Data1: key, Data2: 100, Tick: c[1] + 1}, offs[0])
	}
}

func TestCompileEventCount(t *testing.T) {
	var g Grid
	// diagonal plus a scattered set
	for i := 0; i < NumInstruments; i++ {
		require.NoError(t, g.Set(i, i, true))
		require.NoError(t, g.Set(i, (i*5)%NumSteps, true))
	}
	active := g.Active()
	assert.Equal(t, 2*active+17, Compile(g, GetKit(DefaultKit)).Len())

	for i := 0; i < NumInstruments; i++ {
		for j := 0; j < NumSteps; j++ {
			require.NoError(t, g.Set(i, j, true))
		}
	}
	assert.Equal(t, 2*256+17, Compile(g, GetKit("gm")).Len())
}

func TestCompileIsDeterministic(t *testing.T) {
	var g Grid
	require.NoError(t, g.Set(2, 4, true))
	require.NoError(t, g.Set(9, 11, true))

	kit := GetKit(DefaultKit)
	assert.Equal(t, Compile(g, kit), Compile(g, kit))
}

func TestCompileUsesKitKeys(t *testing.T) {
	var g Grid
	require.NoError(t, g.Set(0, 0, true))
	track := Compile(g, GetKit("gm"))
	assert.Equal(t, uint8(36), track[0].Data1)
}

func TestTrackSorted(t *testing.T) {
	var g Grid
	require.NoError(t, g.Set(1, 15, true))
	require.NoError(t, g.Set(0, 3, true))

	track := Compile(g, GetKit(DefaultKit))
	sorted := track.Sorted()
	require.Equal(t, track.Len(), sorted.Len())

	for i := 1; i < sorted.Len(); i++ {
		assert.LessOrEqual(t, sorted[i-1].Tick, sorted[i].Tick)
	}
	// tick 15: the hi-hat NoteOn was compiled before the program change
	assert.Equal(t, midi.Event{Command: midi.NoteOn, Channel: 9, Data1: 42, Data2: 100, Tick: 15}, sorted[2])
	assert.Equal(t, loopEnd, sorted[3])
	// Sorted leaves the compiled track alone
	assert.Equal(t, uint8(35), track[0].Data1)
}
