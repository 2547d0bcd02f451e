package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/panic-burger/constants"
	"github.com/lixenwraith/panic-burger/core"
)

// newCue builds the finite streamer for one sound type, nil if unknown
func newCue(sr beep.SampleRate, st core.SoundType, gain float64) beep.Streamer {
	switch st {
	case core.SoundRep:
		return beep.Take(sr.N(constants.RepCueDuration),
			NewToneGenerator(sr, constants.RepCueFreq, gain))

	case core.SoundPowerFull:
		n := sr.N(constants.PowerFullCueDuration)
		return beep.Take(n,
			NewSweepGenerator(sr, constants.PowerFullLowFreq, constants.PowerFullHiFreq, n, gain))

	case core.SoundMismatch:
		return beep.Take(sr.N(constants.MismatchCueDuration),
			NewBuzzGenerator(sr, constants.MismatchCueFreq, gain))

	case core.SoundOrder:
		half := sr.N(constants.OrderCueDuration) / 2
		return beep.Seq(
			beep.Take(half, NewToneGenerator(sr, constants.OrderCueFreq, gain)),
			beep.Take(half, NewToneGenerator(sr, constants.OrderCueFreq2, gain)),
		)

	case core.SoundTimeUp:
		n := sr.N(constants.TimeUpCueDuration)
		return beep.Take(n,
			NewSweepGenerator(sr, constants.TimeUpCueFreq*2, constants.TimeUpCueFreq, n, gain))

	case core.SoundAngry:
		return beep.Take(sr.N(constants.AngryCueDuration),
			NewBuzzGenerator(sr, constants.AngryCueFreq, gain*0.8))
	}
	return nil
}
