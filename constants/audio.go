package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// AudioVolume is the linear gain applied to every cue
	AudioVolume = 0.25
)

// Cue Timing
const (
	RepCueDuration       = 90 * time.Millisecond
	PowerFullCueDuration = 400 * time.Millisecond
	MismatchCueDuration  = 150 * time.Millisecond
	OrderCueDuration     = 250 * time.Millisecond
	TimeUpCueDuration    = 600 * time.Millisecond
	AngryCueDuration     = 200 * time.Millisecond
)

// Cue Frequencies (Hz)
const (
	RepCueFreq       = 880.0
	PowerFullLowFreq = 440.0
	PowerFullHiFreq  = 1320.0
	MismatchCueFreq  = 120.0
	OrderCueFreq     = 988.0
	OrderCueFreq2    = 1319.0
	TimeUpCueFreq    = 196.0
	AngryCueFreq     = 150.0
)
