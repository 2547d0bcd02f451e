package constants

// HUD Layout
const (
	// GaugeHeight is the number of rows the power gauge occupies
	GaugeHeight = 10

	// GaugeX is the left column of the power gauge
	GaugeX = 2

	// HUDTop is the first row below the stats bar
	HUDTop = 2

	// FlashFrames is how long a mismatch or serve flash stays visible
	FlashFrames = 20
)

// Ingredient glyphs, indexed by core.Ingredient
var IngredientGlyphs = [...]rune{'T', 'L', 'C', 'P'}
