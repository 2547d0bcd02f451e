package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/panic-burger/constants"
	"github.com/lixenwraith/panic-burger/core"
)

const sampleRate = beep.SampleRate(constants.AudioSampleRate)

// SoundManager plays short synthesized cues through the speaker
// Every method is safe before Initialize or after a failed Initialize; playback is then skipped
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool
	gain        float64
}

// NewSoundManager creates a sound manager with the given initial mute state
func NewSoundManager(muted bool) *SoundManager {
	sm := &SoundManager{
		mixer: &beep.Mixer{},
		gain:  constants.AudioVolume,
	}
	sm.muted.Store(muted)
	return sm
}

// Initialize opens the speaker
// A failure leaves the manager silent; callers log it and keep running
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences all cues and releases the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Play queues one cue; returns false when nothing was played
func (sm *SoundManager) Play(st core.SoundType) bool {
	if sm.muted.Load() {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}

	cue := newCue(sampleRate, st, sm.gain)
	if cue == nil {
		return false
	}

	speaker.Lock()
	sm.mixer.Add(cue)
	speaker.Unlock()
	return true
}

// ToggleMute flips the mute state and returns the new value
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted reports the mute state
func (sm *SoundManager) IsMuted() bool {
	return sm.muted.Load()
}

// IsRunning reports whether the speaker is open
func (sm *SoundManager) IsRunning() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}
