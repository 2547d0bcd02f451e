package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/panic-burger/core"
)

// RGB palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbText       = tcell.NewRGBColor(220, 220, 220) // Light gray
	RgbDim        = tcell.NewRGBColor(110, 110, 120) // Muted gray for hints
	RgbTitle      = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbGaugeEmpty = tcell.NewRGBColor(50, 50, 50)    // Very dark gray
	RgbMatched    = tcell.NewRGBColor(50, 255, 50)   // Bright green checkmark
	RgbMismatch   = tcell.NewRGBColor(255, 80, 80)   // Normal red
	RgbServed     = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
	RgbAngry      = tcell.NewRGBColor(200, 50, 50)   // Dark red
	RgbStatusBg   = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbClockLow   = tcell.NewRGBColor(255, 120, 120) // Bright red below the warning threshold
)

// Ingredient colors, indexed by core.Ingredient
var ingredientColors = [core.IngredientCount]tcell.Color{
	core.IngredientTomato:  tcell.NewRGBColor(230, 57, 70),
	core.IngredientLettuce: tcell.NewRGBColor(106, 190, 48),
	core.IngredientCheese:  tcell.NewRGBColor(255, 200, 40),
	core.IngredientPatty:   tcell.NewRGBColor(139, 90, 43),
}

// IngredientColor returns the layer color, dim gray for unknown values
func IngredientColor(ing core.Ingredient) tcell.Color {
	if !ing.Valid() {
		return RgbDim
	}
	return ingredientColors[ing]
}

// GaugeColor returns the color for a given position in the power gauge gradient
// progress is 0.0 to 1.0, representing position from bottom to top
func GaugeColor(progress float64) tcell.Color {
	if progress <= 0.0 {
		return RgbGaugeEmpty
	}
	if progress > 1.0 {
		progress = 1.0
	}

	// Deep red → orange → yellow → green
	if progress < 0.333 {
		t := progress / 0.333
		r := int32(139 + (255-139)*t)
		g := int32(0 + (69-0)*t)
		return tcell.NewRGBColor(r, g, 0)
	} else if progress < 0.667 {
		t := (progress - 0.333) / 0.334
		g := int32(69 + (215-69)*t)
		return tcell.NewRGBColor(255, g, 0)
	}
	t := (progress - 0.667) / 0.333
	r := int32(255 - (255-34)*t)
	g := int32(215 - (215-200)*t)
	b := int32(0 + (34-0)*t)
	return tcell.NewRGBColor(r, g, b)
}

func baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)
}
