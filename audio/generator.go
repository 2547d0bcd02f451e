package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// envelope ramps in over attack seconds and decays exponentially
func envelope(t, attack, decay float64) float64 {
	env := math.Min(t/attack, 1.0)
	return env * math.Exp(-t*decay)
}

// ToneGenerator generates a decaying sine blip
type ToneGenerator struct {
	sr   beep.SampleRate
	freq float64
	gain float64
	pos  int
}

// NewToneGenerator creates a sine tone generator
func NewToneGenerator(sr beep.SampleRate, freq, gain float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, gain: gain}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := g.gain * envelope(t, 0.005, 12) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// SweepGenerator glides linearly from one frequency to another over span samples
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	span     int
	gain     float64
	pos      int
	phase    float64
}

// NewSweepGenerator creates a rising or falling sweep
func NewSweepGenerator(sr beep.SampleRate, from, to float64, span int, gain float64) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to, span: max(span, 1), gain: gain}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.span), 1.0)
		freq := g.from + (g.to-g.from)*progress

		// Integrate phase so the glide has no clicks
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		t := float64(g.pos) / float64(g.sr)
		sample := g.gain * envelope(t, 0.01, 2) * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a harsh low buzz from stacked harmonics
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	gain float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq, gain float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq, gain: gain}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.6 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.3 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*3*t)
		sample *= g.gain * math.Min(t/0.02, 1.0)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
