package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridStartsEmpty(t *testing.T) {
	var g Grid
	assert.Equal(t, 0, g.Active())
	for i := 0; i < NumInstruments; i++ {
		for j := 0; j < NumSteps; j++ {
			on, err := g.Cell(i, j)
			require.NoError(t, err)
			assert.False(t, on)
		}
	}
}

func TestGridToggleAndSet(t *testing.T) {
	var g Grid

	on, err := g.Toggle(3, 7)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, 1, g.Active())

	on, err = g.Toggle(3, 7)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, 0, g.Active())

	require.NoError(t, g.Set(15, 15, true))
	require.NoError(t, g.Set(0, 0, true))
	on, err = g.Cell(15, 15)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, 2, g.Active())

	row, err := g.Row(15)
	require.NoError(t, err)
	assert.True(t, row[15])
	assert.False(t, row[0])
}

func TestGridOutOfRange(t *testing.T) {
	var g Grid
	cells := [][2]int{{-1, 0}, {0, -1}, {16, 0}, {0, 16}, {99, 99}}
	for _, c := range cells {
		_, err := g.Toggle(c[0], c[1])
		assert.ErrorIs(t, err, ErrOutOfRange, "toggle %v", c)
		assert.ErrorIs(t, g.Set(c[0], c[1], true), ErrOutOfRange, "set %v", c)
		_, err = g.Cell(c[0], c[1])
		assert.ErrorIs(t, err, ErrOutOfRange, "cell %v", c)
	}
	_, err := g.Row(16)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 0, g.Active())
}

func TestGridCopyIsSnapshot(t *testing.T) {
	var g Grid
	require.NoError(t, g.Set(1, 1, true))
	snap := g
	require.NoError(t, g.Set(2, 2, true))

	assert.Equal(t, 1, snap.Active())
	assert.Equal(t, 2, g.Active())
}

func TestKits(t *testing.T) {
	kit := GetKit(DefaultKit)
	assert.Equal(t, "Bass Drum", kit.Instruments[0].Name)
	assert.Equal(t, [NumInstruments]uint8{35, 42, 46, 38, 49, 39, 50, 60, 70, 72, 64, 56, 58, 47, 67, 63}, kit.Keys())

	assert.Equal(t, "General MIDI", GetKit("gm").Name)
	assert.Equal(t, kit, GetKit("no-such-kit"))

	for _, name := range KitNames() {
		k, ok := Kits[name]
		require.True(t, ok, name)
		for i, inst := range k.Instruments {
			assert.NotEmpty(t, inst.Name, "%s row %d", name, i)
			assert.NotZero(t, inst.Key, "%s row %d", name, i)
		}
	}
}

func TestGridReadsOnSnapshot(t *testing.T) {
	s := NewSession(newFakeSequencer(), GetKit(DefaultKit), 120)
	require.NoError(t, s.Dispatch(Toggle(5, 7)))

	// reads work on the returned value directly
	assert.Equal(t, 1, s.Grid().Active())
	on, err := s.Grid().Cell(5, 7)
	require.NoError(t, err)
	assert.True(t, on)
	row, err := s.Grid().Row(5)
	require.NoError(t, err)
	assert.True(t, row[7])
}
