package audio

import (
	"github.com/lixenwraith/panic-burger/core"
	"github.com/lixenwraith/panic-burger/engine"
	"github.com/lixenwraith/panic-burger/events"
)

// Player is the minimal playback surface the cue handler needs
type Player interface {
	Play(core.SoundType) bool
}

var cueForEvent = map[events.EventType]core.SoundType{
	events.EventRepetitionCompleted: core.SoundRep,
	events.EventPowerFull:           core.SoundPowerFull,
	events.EventOrderMismatch:       core.SoundMismatch,
	events.EventOrderCompleted:      core.SoundOrder,
	events.EventTimeExpired:         core.SoundTimeUp,
	events.EventCustomerAngry:       core.SoundAngry,
}

// CueHandler plays a sound for each gameplay event it is routed
type CueHandler struct {
	player Player
	types  []events.EventType
}

// NewCueHandler creates a handler playing through player
func NewCueHandler(player Player) *CueHandler {
	types := make([]events.EventType, 0, len(cueForEvent))
	for et := events.EventType(0); et < events.EventTypeCount; et++ {
		if _, ok := cueForEvent[et]; ok {
			types = append(types, et)
		}
	}
	return &CueHandler{player: player, types: types}
}

func (h *CueHandler) EventTypes() []events.EventType {
	return h.types
}

func (h *CueHandler) HandleEvent(_ engine.Snapshot, ev events.GameEvent) {
	if st, ok := cueForEvent[ev.Type]; ok {
		h.player.Play(st)
	}
}
