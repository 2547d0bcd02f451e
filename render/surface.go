package render

import "github.com/gdamore/tcell/v2"

// Surface is the subset of tcell.Screen the HUD draws through
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// shower is implemented by tcell.Screen; buffers have nothing to flush
type shower interface {
	Show()
}

// Cell is one character position in a CellBuffer
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// CellBuffer is an in-memory Surface, used headless and in tests
type CellBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewCellBuffer creates a buffer with the specified dimensions
func NewCellBuffer(width, height int) *CellBuffer {
	b := &CellBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *CellBuffer) Resize(width, height int) {
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to blanks using exponential copy
func (b *CellBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Style: tcell.StyleDefault}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *CellBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// SetContent writes to the buffer. Combining runes are ignored.
func (b *CellBuffer) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: primary, Style: style}
}

// Get returns the cell at x, y; out of bounds yields a zero Cell
func (b *CellBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Size returns buffer dimensions.
func (b *CellBuffer) Size() (int, int) {
	return b.width, b.height
}

// Row returns line y as a string with trailing blanks kept
func (b *CellBuffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	runes := make([]rune, b.width)
	for x := 0; x < b.width; x++ {
		runes[x] = b.cells[y*b.width+x].Rune
	}
	return string(runes)
}
