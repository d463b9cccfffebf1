// Package gmpercussion names the General MIDI percussion key map: the fixed
// assignment of drum/percussion sounds to note numbers on channel 10 (index
// 9), independent of whatever instrument a ProgramChange selects on other
// channels.
package gmpercussion

// Key numbers from the General MIDI Level 1 percussion key map.
// Reference: https://computermusicresource.com/GM.Percussion.KeyMap.html
const (
	AcousticBassDrum = 35
	BassDrum1        = 36
	SideStick        = 37
	AcousticSnare    = 38
	HandClap         = 39
	ElectricSnare    = 40
	LowFloorTom      = 41
	ClosedHiHat      = 42
	HighFloorTom     = 43
	PedalHiHat       = 44
	LowTom           = 45
	OpenHiHat        = 46
	LowMidTom        = 47
	HiMidTom         = 48
	CrashCymbal1     = 49
	HighTom          = 50
	RideCymbal1      = 51
	ChineseCymbal    = 52
	RideBell         = 53
	Tambourine       = 54
	SplashCymbal     = 55
	Cowbell          = 56
	CrashCymbal2     = 57
	Vibraslap        = 58
	RideCymbal2      = 59
	HiBongo          = 60
	LowBongo         = 61
	MuteHiConga      = 62
	OpenHiConga      = 63
	LowConga         = 64
	HighTimbale      = 65
	LowTimbale       = 66
	HighAgogo        = 67
	LowAgogo         = 68
	Cabasa           = 69
	Maracas          = 70
	ShortWhistle     = 71
	LongWhistle      = 72
	ShortGuiro       = 73
	LongGuiro        = 74
	Claves           = 75
	HiWoodBlock      = 76
	LowWoodBlock     = 77
	MuteCuica        = 78
	OpenCuica        = 79
	MuteTriangle     = 80
	OpenTriangle     = 81

	// Channel is the zero-indexed MIDI channel (channel 10 in 1-indexed
	// terms) General MIDI reserves for percussion.
	Channel = 9
)

var names = map[uint8]string{
	AcousticBassDrum: "Acoustic Bass Drum",
	BassDrum1:        "Bass Drum 1",
	SideStick:        "Side Stick",
	AcousticSnare:    "Acoustic Snare",
	HandClap:         "Hand Clap",
	ElectricSnare:    "Electric Snare",
	LowFloorTom:      "Low Floor Tom",
	ClosedHiHat:      "Closed Hi-Hat",
	HighFloorTom:     "High Floor Tom",
	PedalHiHat:       "Pedal Hi-Hat",
	LowTom:           "Low Tom",
	OpenHiHat:        "Open Hi-Hat",
	LowMidTom:        "Low-Mid Tom",
	HiMidTom:         "Hi-Mid Tom",
	CrashCymbal1:     "Crash Cymbal 1",
	HighTom:          "High Tom",
	RideCymbal1:      "Ride Cymbal 1",
	ChineseCymbal:    "Chinese Cymbal",
	RideBell:         "Ride Bell",
	Tambourine:       "Tambourine",
	SplashCymbal:     "Splash Cymbal",
	Cowbell:          "Cowbell",
	CrashCymbal2:     "Crash Cymbal 2",
	Vibraslap:        "Vibraslap",
	RideCymbal2:      "Ride Cymbal 2",
	HiBongo:          "Hi Bongo",
	LowBongo:         "Low Bongo",
	MuteHiConga:      "Mute Hi Conga",
	OpenHiConga:      "Open Hi Conga",
	LowConga:         "Low Conga",
	HighTimbale:      "High Timbale",
	LowTimbale:       "Low Timbale",
	HighAgogo:        "High Agogo",
	LowAgogo:         "Low Agogo",
	Cabasa:           "Cabasa",
	Maracas:          "Maracas",
	ShortWhistle:     "Short Whistle",
	LongWhistle:      "Long Whistle",
	ShortGuiro:       "Short Guiro",
	LongGuiro:        "Long Guiro",
	Claves:           "Claves",
	HiWoodBlock:      "Hi Wood Block",
	LowWoodBlock:     "Low Wood Block",
	MuteCuica:        "Mute Cuica",
	OpenCuica:        "Open Cuica",
	MuteTriangle:     "Mute Triangle",
	OpenTriangle:     "Open Triangle",
}

// Name reports the General MIDI percussion name for a note key, and whether
// that key has one assigned.
func Name(key uint8) (string, bool) {
	name, ok := names[key]
	return name, ok
}
