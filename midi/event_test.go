package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventMessage(t *testing.T) {
	assert.Equal(t, []byte{0x99, 35, 100}, []byte(Event{Command: NoteOn, Channel: 9, Data1: 35, Data2: 100}.Message()))
	assert.Equal(t, []byte{0x89, 35, 100}, []byte(Event{Command: NoteOff, Channel: 9, Data1: 35, Data2: 100}.Message()))
	assert.Equal(t, []byte{0xB1, 127, 0}, []byte(Event{Command: CC, Channel: 1, Data1: 127, Data2: 0}.Message()))
	assert.Equal(t, []byte{0xC9, 1}, []byte(Event{Command: ProgramChange, Channel: 9, Data1: 1}.Message()))
}

func TestEventMessageUnknownCommand(t *testing.T) {
	// pitch bend has no builder here, raw bytes pass through masked
	msg := Event{Command: 0xE0, Channel: 2, Data1: 0x80, Data2: 0x40}.Message()
	assert.Equal(t, []byte{0xE2, 0x00, 0x40}, []byte(msg))
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "NoteOn ch=9 35/100 @0", Event{Command: NoteOn, Channel: 9, Data1: 35, Data2: 100}.String())
	assert.Equal(t, "CC ch=1 127/0 @16", Event{Command: CC, Channel: 1, Data1: 127, Tick: 16}.String())
	assert.Equal(t, "0xE0 ch=0 0/0 @3", Event{Command: 0xE0, Tick: 3}.String())
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	assert.NoError(t, r.Send(Event{Command: NoteOn, Data1: 42}))
	assert.NoError(t, r.Send(Event{Command: NoteOff, Data1: 42}))
	assert.Equal(t, 2, r.Len())

	events := r.Events()
	events[0].Data1 = 0
	assert.Equal(t, uint8(42), r.Events()[0].Data1, "Events returns a copy")

	assert.False(t, r.Closed())
	assert.NoError(t, r.Close())
	assert.True(t, r.Closed())
}
