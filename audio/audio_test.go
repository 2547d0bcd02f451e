package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/panic-burger/constants"
	"github.com/lixenwraith/panic-burger/core"
	"github.com/lixenwraith/panic-burger/engine"
	"github.com/lixenwraith/panic-burger/events"
)

type recordingPlayer struct {
	played []core.SoundType
}

func (p *recordingPlayer) Play(st core.SoundType) bool {
	p.played = append(p.played, st)
	return true
}

// drain streams s to completion and returns the sample count and peak amplitude
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

// TestCueLengths verifies every cue is finite with the configured duration
func TestCueLengths(t *testing.T) {
	want := map[core.SoundType]int{
		core.SoundRep:       sampleRate.N(constants.RepCueDuration),
		core.SoundPowerFull: sampleRate.N(constants.PowerFullCueDuration),
		core.SoundMismatch:  sampleRate.N(constants.MismatchCueDuration),
		core.SoundOrder:     sampleRate.N(constants.OrderCueDuration) / 2 * 2,
		core.SoundTimeUp:    sampleRate.N(constants.TimeUpCueDuration),
		core.SoundAngry:     sampleRate.N(constants.AngryCueDuration),
	}
	for st := core.SoundType(0); st < core.SoundTypeCount; st++ {
		cue := newCue(sampleRate, st, constants.AudioVolume)
		if cue == nil {
			t.Fatalf("No cue for sound %d", st)
		}
		n, peak := drain(cue)
		if n != want[st] {
			t.Errorf("Sound %d: expected %d samples, got %d", st, want[st], n)
		}
		if peak <= 0 || peak > 1 {
			t.Errorf("Sound %d: peak %f outside (0,1]", st, peak)
		}
		t.Logf("✓ Sound %d: %d samples, peak %.3f", st, n, peak)
	}

	if newCue(sampleRate, core.SoundTypeCount, 1) != nil {
		t.Error("Unknown sound type should produce no cue")
	}
}

// TestSoundManagerGracefulDegradation verifies audio calls are safe without a speaker
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(false)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	for st := core.SoundType(0); st < core.SoundTypeCount; st++ {
		if sm.Play(st) {
			t.Errorf("Play(%d) reported playback without a speaker", st)
		}
	}
	if sm.IsRunning() {
		t.Error("Manager should not be running before Initialize")
	}
	sm.Cleanup()
	t.Logf("✓ Uninitialized manager stays silent")
}

// TestSoundManagerInitialization verifies init and cleanup when a device exists
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(false)

	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected without an audio device): %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should be a no-op, got %v", err)
	}
	if !sm.Play(core.SoundRep) {
		t.Error("Play should succeed on an open speaker")
	}
	sm.Cleanup()
	if sm.IsRunning() {
		t.Error("Cleanup should close the speaker")
	}
}

func TestToggleMute(t *testing.T) {
	sm := NewSoundManager(true)
	if !sm.IsMuted() {
		t.Fatal("Expected muted start")
	}
	if sm.ToggleMute() || sm.IsMuted() {
		t.Error("Toggle should unmute")
	}
	if !sm.ToggleMute() || !sm.IsMuted() {
		t.Error("Toggle should mute again")
	}
	t.Logf("✓ Mute toggles")
}

// TestCueHandlerMapping verifies each gameplay event maps to its sound
func TestCueHandlerMapping(t *testing.T) {
	p := &recordingPlayer{}
	h := NewCueHandler(p)

	if len(h.EventTypes()) != len(cueForEvent) {
		t.Fatalf("Expected %d event types, got %d", len(cueForEvent), len(h.EventTypes()))
	}

	tests := []struct {
		event events.EventType
		sound core.SoundType
	}{
		{events.EventRepetitionCompleted, core.SoundRep},
		{events.EventPowerFull, core.SoundPowerFull},
		{events.EventOrderMismatch, core.SoundMismatch},
		{events.EventOrderCompleted, core.SoundOrder},
		{events.EventTimeExpired, core.SoundTimeUp},
		{events.EventCustomerAngry, core.SoundAngry},
	}
	for _, tc := range tests {
		p.played = nil
		h.HandleEvent(engine.Snapshot{}, events.GameEvent{Type: tc.event})
		if len(p.played) != 1 || p.played[0] != tc.sound {
			t.Errorf("%s: expected sound %d, got %v", tc.event, tc.sound, p.played)
			continue
		}
		t.Logf("✓ %s -> sound %d", tc.event, tc.sound)
	}

	p.played = nil
	h.HandleEvent(engine.Snapshot{}, events.GameEvent{Type: events.EventPhaseChanged})
	if len(p.played) != 0 {
		t.Error("Phase change should be silent")
	}
}

// TestCueHandlerRouted verifies the handler works through the event router
func TestCueHandlerRouted(t *testing.T) {
	q := events.NewQueue()
	r := events.NewRouter[engine.Snapshot](q)
	p := &recordingPlayer{}
	r.Register(NewCueHandler(p))

	q.Emit(events.EventPowerFull, nil, 1)
	q.Emit(events.EventOrderCreated, nil, 1)
	q.Emit(events.EventOrderCompleted, nil, 2)
	if n := r.DispatchAll(engine.Snapshot{}); n != 3 {
		t.Fatalf("Expected 3 dispatched, got %d", n)
	}
	if len(p.played) != 2 || p.played[0] != core.SoundPowerFull || p.played[1] != core.SoundOrder {
		t.Errorf("Unexpected plays %v", p.played)
	}
	t.Logf("✓ Routed cues: %v", p.played)
}
