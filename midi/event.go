package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn        uint8 = 0x90
	NoteOff       uint8 = 0x80
	CC            uint8 = 0xB0
	ProgramChange uint8 = 0xC0
)

// DrumChannel is the General MIDI percussion channel (10th, zero-based 9)
const DrumChannel uint8 = 9

// Event is a short channel message placed at a tick of the loop
type Event struct {
	Command uint8 // NoteOn, NoteOff, CC, ProgramChange
	Channel uint8 // 0-15
	Data1   uint8 // key, controller or program
	Data2   uint8 // velocity or value
	Tick    int
}

// Message builds the wire message for the event.
func (e Event) Message() gomidi.Message {
	switch e.Command {
	case NoteOn:
		return gomidi.NoteOn(e.Channel, e.Data1, e.Data2)
	case NoteOff:
		return gomidi.NoteOffVelocity(e.Channel, e.Data1, e.Data2)
	case CC:
		return gomidi.ControlChange(e.Channel, e.Data1, e.Data2)
	case ProgramChange:
		return gomidi.ProgramChange(e.Channel, e.Data1)
	}
	return gomidi.Message{e.Command | e.Channel&0x0F, e.Data1 & 0x7F, e.Data2 & 0x7F}
}

func (e Event) String() string {
	var name string
	switch e.Command {
	case NoteOn:
		name = "NoteOn"
	case NoteOff:
		name = "NoteOff"
	case CC:
		name = "CC"
	case ProgramChange:
		name = "ProgramChange"
	default:
		name = fmt.Sprintf("0x%02X", e.Command)
	}
	return fmt.Sprintf("%s ch=%d %d/%d @%d", name, e.Channel, e.Data1, e.Data2, e.Tick)
}

// Sink receives events as they come due during playback
type Sink interface {
	Send(e Event) error
	Close() error
}
