package core

// SoundType represents the audio cues played by external collaborators
type SoundType int

const (
	SoundRep       SoundType = iota // Repetition completed
	SoundPowerFull                  // Gauge full
	SoundMismatch                   // Wrong ingredient buzz
	SoundOrder                      // Order served
	SoundTimeUp                     // Clock expired
	SoundAngry                      // Customer lost patience
	SoundTypeCount
)
