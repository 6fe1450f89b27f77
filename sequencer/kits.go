package sequencer

// Instrument is one drum voice: a display name and the percussion key it
// plays on the drum channel
type Instrument struct {
	Name string
	Key  uint8
}

// Kit maps the 16 grid rows to instruments, in row order
type Kit struct {
	Name        string
	Instruments [NumInstruments]Instrument
}

// Keys returns the percussion key of every row
func (k Kit) Keys() [NumInstruments]uint8 {
	var keys [NumInstruments]uint8
	for i, inst := range k.Instruments {
		keys[i] = inst.Key
	}
	return keys
}

// Kits contains all available drum kit mappings
var Kits = map[string]Kit{
	"beatbox": {
		Name: "BeatBox",
		Instruments: [NumInstruments]Instrument{
			{"Bass Drum", 35},
			{"Closed Hi-Hat", 42},
			{"Open Hi-Hat", 46},
			{"Acoustic Snare", 38},
			{"Crash Cymbal", 49},
			{"Hand Clap", 39},
			{"High Tom", 50},
			{"Hi Bongo", 60},
			{"Maracas", 70},
			{"Whistle", 72},
			{"Low Conga", 64},
			{"Cowbell", 56},
			{"Vibraslap", 58},
			{"Low-mid Tom", 47},
			{"High Agogo", 67},
			{"Open Hi Conga", 63},
		},
	},
	"gm": {
		Name: "General MIDI",
		Instruments: [NumInstruments]Instrument{
			{"Kick", 36},
			{"Snare", 38},
			{"Closed HH", 42},
			{"Open HH", 46},
			{"Low Tom", 41},
			{"Mid Tom", 43},
			{"High Tom", 45},
			{"Crash", 49},
			{"Ride", 51},
			{"Clap", 39},
			{"Rimshot", 37},
			{"Cowbell", 56},
			{"Clave", 75},
			{"Maracas", 70},
			{"Low Conga", 64},
			{"High Conga", 63},
		},
	},
}

// DefaultKit is the default kit name
const DefaultKit = "beatbox"

// KitNames returns the list of available kit names
func KitNames() []string {
	return []string{"beatbox", "gm"}
}

// GetKit returns a kit by name, defaulting to the BeatBox kit if not found
func GetKit(name string) Kit {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}
