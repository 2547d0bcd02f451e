package render

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/panic-burger/constants"
	"github.com/lixenwraith/panic-burger/core"
	"github.com/lixenwraith/panic-burger/engine"
	"github.com/lixenwraith/panic-burger/events"
	"github.com/lixenwraith/panic-burger/status"
)

// clockWarnSeconds turns the clock red
const clockWarnSeconds = 10

type flashKind uint8

const (
	flashNone flashKind = iota
	flashMismatch
	flashServed
	flashAngry
)

// HUD draws the phase screens onto a Surface
// Present runs on the scheduler goroutine; HandleEvent runs just before it in the same tick
type HUD struct {
	surface Surface
	reg     *status.Registry
	debug   atomic.Bool

	flash      flashKind
	flashUntil int64
	flashText  string
}

// NewHUD creates a HUD; reg may be nil when the debug line is not used
func NewHUD(surface Surface, reg *status.Registry) *HUD {
	return &HUD{surface: surface, reg: reg}
}

// SetDebug toggles the metrics line at the bottom of the screen; safe from any goroutine
func (h *HUD) SetDebug(on bool) {
	h.debug.Store(on)
}

// Debug reports whether the metrics line is shown
func (h *HUD) Debug() bool {
	return h.debug.Load()
}

// EventTypes implements events.Handler
func (h *HUD) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventOrderMismatch,
		events.EventOrderCompleted,
		events.EventCustomerAngry,
	}
}

// HandleEvent implements events.Handler
func (h *HUD) HandleEvent(s engine.Snapshot, ev events.GameEvent) {
	switch ev.Type {
	case events.EventOrderMismatch:
		text := "WRONG! START OVER"
		if p, ok := ev.Payload.(*events.MismatchPayload); ok && p.Expected.Valid() {
			text = fmt.Sprintf("WRONG! NEEDED %s", strings.ToUpper(p.Expected.String()))
		}
		h.setFlash(flashMismatch, text, ev.Frame)
	case events.EventOrderCompleted:
		text := "ORDER UP!"
		if p, ok := ev.Payload.(*events.OrderCompletedPayload); ok {
			text = fmt.Sprintf("ORDER UP! BURGER #%d", p.BurgersCompleted)
		}
		h.setFlash(flashServed, text, ev.Frame)
	case events.EventCustomerAngry:
		h.setFlash(flashAngry, "THE CUSTOMER IS GETTING ANGRY!", ev.Frame)
	}
}

func (h *HUD) setFlash(kind flashKind, text string, frame int64) {
	h.flash = kind
	h.flashText = text
	h.flashUntil = frame + constants.FlashFrames
}

// Present implements engine.Presenter
func (h *HUD) Present(s engine.Snapshot) {
	w, ht := h.surface.Size()
	h.fill(w, ht)
	if w <= 0 || ht <= 0 {
		return
	}

	h.drawStatusBar(s, w)

	switch s.Phase {
	case core.PhaseMenu:
		h.drawMenu(w, ht)
	case core.PhaseInstructions:
		h.drawInstructions()
	case core.PhaseCalibration:
		h.drawCalibration(s)
	case core.PhaseCharging:
		h.drawGauge(s)
		h.drawCustomer(s, constants.GaugeX+8)
		h.text(constants.GaugeX+8, constants.HUDTop+3, s.Message, baseStyle().Foreground(RgbTitle))
		h.text(constants.GaugeX+8, constants.HUDTop+5, "SQUAT TO POWER THE GRILL", baseStyle().Foreground(RgbDim))
	case core.PhaseAssembling:
		h.drawGauge(s)
		h.drawCustomer(s, constants.GaugeX+8)
		h.drawOrder(s, constants.GaugeX+8, constants.HUDTop+3)
	case core.PhaseGameOver:
		h.drawGameOver(s, w, ht)
	}

	if h.flash != flashNone && s.Frame < h.flashUntil {
		h.drawFlash(w, ht)
	} else {
		h.flash = flashNone
	}

	h.drawFooter(s, w, ht)

	if sh, ok := h.surface.(shower); ok {
		sh.Show()
	}
}

func (h *HUD) fill(w, ht int) {
	st := baseStyle()
	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			h.surface.SetContent(x, y, ' ', nil, st)
		}
	}
}

// text draws s starting at x, y; returns the column after the last rune
func (h *HUD) text(x, y int, s string, st tcell.Style) int {
	for _, r := range s {
		h.surface.SetContent(x, y, r, nil, st)
		x++
	}
	return x
}

func (h *HUD) centered(w, y int, s string, st tcell.Style) {
	x := (w - len([]rune(s))) / 2
	if x < 0 {
		x = 0
	}
	h.text(x, y, s, st)
}

func (h *HUD) drawStatusBar(s engine.Snapshot, w int) {
	st := tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusText)
	for x := 0; x < w; x++ {
		h.surface.SetContent(x, 0, ' ', nil, st)
	}
	x := h.text(1, 0, " "+strings.ToUpper(s.Phase.String())+" ", st.Bold(true))
	x = h.text(x+1, 0, fmt.Sprintf("SCORE %d", s.Score), st)
	x = h.text(x+2, 0, fmt.Sprintf("BURGERS %d", s.Burgers), st)

	clockStyle := st
	if s.Phase.ClockRunning() && s.Time <= clockWarnSeconds {
		clockStyle = st.Foreground(RgbClockLow).Bold(true)
	}
	h.text(x+2, 0, "TIME "+FormatClock(s.Time), clockStyle)
}

func (h *HUD) drawMenu(w, ht int) {
	mid := ht / 2
	h.centered(w, mid-2, "P A N I C   B U R G E R", baseStyle().Foreground(RgbTitle).Bold(true))
	h.centered(w, mid, "squat to fire up the grill, stack the order before time runs out", baseStyle())
	h.centered(w, mid+2, "PRESS SPACE TO START", baseStyle().Foreground(RgbServed))
}

var instructionLines = []string{
	"HOW TO PLAY",
	"",
	"1. Stand in front of the camera until your hips are measured.",
	"2. Squat down and stand back up to charge the power gauge.",
	"3. When the gauge is full, build the order from the bottom up:",
	"     1/LEFT tomato   2/UP lettuce   3/DOWN cheese   4/RIGHT patty",
	"4. A wrong layer throws the whole burger away.",
	"5. Every burger served adds time to the clock.",
	"",
	"PRESS SPACE TO CONTINUE",
}

func (h *HUD) drawInstructions() {
	for i, line := range instructionLines {
		st := baseStyle()
		if i == 0 {
			st = st.Foreground(RgbTitle).Bold(true)
		}
		h.text(constants.GaugeX, constants.HUDTop+i, line, st)
	}
}

func (h *HUD) drawCalibration(s engine.Snapshot) {
	y := constants.HUDTop
	h.text(constants.GaugeX, y, "CALIBRATION", baseStyle().Foreground(RgbTitle).Bold(true))
	h.text(constants.GaugeX, y+2, s.Message, baseStyle())
	h.drawBar(constants.GaugeX, y+4, 30, s.Samples, s.CalibrationFrames)
	h.text(constants.GaugeX+32, y+4, fmt.Sprintf("%d/%d", s.Samples, s.CalibrationFrames), baseStyle().Foreground(RgbDim))
	h.text(constants.GaugeX, y+6, "STAND STILL, FULLY UPRIGHT", baseStyle().Foreground(RgbDim))
}

// drawBar draws a horizontal progress bar of width cells
func (h *HUD) drawBar(x, y, width, value, max int) {
	filled := 0
	if max > 0 {
		filled = value * width / max
	}
	for i := 0; i < width; i++ {
		st := baseStyle().Foreground(RgbGaugeEmpty)
		r := '░'
		if i < filled {
			st = baseStyle().Foreground(RgbMatched)
			r = '█'
		}
		h.surface.SetContent(x+i, y, r, nil, st)
	}
}

// drawGauge draws the vertical power gauge, bottom-up
func (h *HUD) drawGauge(s engine.Snapshot) {
	ratio := s.PowerRatio()
	filled := int(ratio*float64(constants.GaugeHeight) + 0.5)
	bottom := constants.HUDTop + constants.GaugeHeight - 1
	for i := 0; i < constants.GaugeHeight; i++ {
		y := bottom - i
		progress := float64(i+1) / float64(constants.GaugeHeight)
		st := baseStyle().Foreground(RgbGaugeEmpty)
		r := '░'
		if i < filled {
			st = baseStyle().Foreground(GaugeColor(progress))
			r = '█'
		}
		h.surface.SetContent(constants.GaugeX, y, '│', nil, baseStyle().Foreground(RgbDim))
		h.surface.SetContent(constants.GaugeX+1, y, r, nil, st)
		h.surface.SetContent(constants.GaugeX+2, y, r, nil, st)
		h.surface.SetContent(constants.GaugeX+3, y, '│', nil, baseStyle().Foreground(RgbDim))
	}
	h.text(constants.GaugeX, bottom+1, fmt.Sprintf("%3d%%", int(ratio*100+0.5)), baseStyle())
}

func (h *HUD) drawCustomer(s engine.Snapshot, x int) {
	y := constants.HUDTop
	if !s.HasCustomer {
		h.text(x, y, "NO CUSTOMER", baseStyle().Foreground(RgbDim))
		return
	}
	face, st := "(^_^)", baseStyle()
	if s.Customer.Angry {
		face, st = "(>_<)", baseStyle().Foreground(RgbAngry).Bold(true)
	}
	h.text(x, y, fmt.Sprintf("CUSTOMER #%d %s", s.Customer.ID, face), st)
	if s.Leaving > 0 {
		h.text(x, y+1, strings.Repeat("·", s.Leaving)+" leaving", baseStyle().Foreground(RgbDim))
	}
}

// drawOrder lists the order top to bottom with a check next to each placed layer
func (h *HUD) drawOrder(s engine.Snapshot, x, y int) {
	h.text(x, y, "ORDER", baseStyle().Foreground(RgbTitle).Bold(true))
	for i, ing := range s.Order {
		row := y + 1 + i
		glyph := '?'
		if ing.Valid() {
			glyph = constants.IngredientGlyphs[ing]
		}
		h.surface.SetContent(x, row, glyph, nil, baseStyle().Foreground(IngredientColor(ing)).Bold(true))
		next := h.text(x+2, row, strings.ToUpper(ing.String()), baseStyle())
		if i < len(s.Stack) {
			h.surface.SetContent(next+1, row, '✓', nil, baseStyle().Foreground(RgbMatched).Bold(true))
		} else if i == len(s.Stack) {
			h.surface.SetContent(next+1, row, '◀', nil, baseStyle().Foreground(RgbServed))
		}
	}
}

func (h *HUD) drawGameOver(s engine.Snapshot, w, ht int) {
	mid := ht / 2
	h.centered(w, mid-2, "G A M E   O V E R", baseStyle().Foreground(RgbMismatch).Bold(true))
	h.centered(w, mid, fmt.Sprintf("SCORE %d   BURGERS %d", s.Score, s.Burgers), baseStyle())
	h.centered(w, mid+2, "PRESS SPACE TO PLAY AGAIN", baseStyle().Foreground(RgbServed))
}

func (h *HUD) drawFlash(w, ht int) {
	st := baseStyle().Bold(true)
	switch h.flash {
	case flashMismatch:
		st = st.Foreground(RgbMismatch)
	case flashServed:
		st = st.Foreground(RgbServed)
	case flashAngry:
		st = st.Foreground(RgbAngry)
	}
	h.centered(w, ht-3, h.flashText, st)
}

func (h *HUD) drawFooter(s engine.Snapshot, w, ht int) {
	st := baseStyle().Foreground(RgbDim)
	if !h.debug.Load() || h.reg == nil {
		h.text(1, ht-1, "SPACE advance  S squat  C recalibrate  M mute  Q quit", st)
		return
	}
	snap := h.reg.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		if k == status.KeyMessage || k == status.KeyRunID {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, formatMetric(snap[k])))
	}
	line := strings.Join(parts, " ")
	if r := []rune(line); len(r) > w-2 && w > 2 {
		line = string(r[:w-2])
	}
	h.text(1, ht-1, line, st)
	h.text(1, ht-2, "run "+s.RunID, st)
}

func formatMetric(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.1f", f)
	}
	return fmt.Sprint(v)
}

// FormatClock renders seconds as m:ss, negative values as 0:00
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
