package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells are a 2x4 dot grid. Bit order per dot position:
//
//	0 3
//	1 4
//	2 5
//	6 7
var brailleDots = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Ink is what a dot was drawn for. When several inks land in one cell the
// highest wins the cell colour.
type Ink uint8

const (
	InkNone Ink = iota
	InkBoundary
	InkPotential
	InkConfirmed
	InkHover
	InkHighlight
	InkMarker
	InkFrame
)

type cell struct {
	bits  uint8
	ink   Ink
	label rune
}

// Canvas is a grid of terminal cells addressed in braille dots. A canvas
// returned by Sub shares cells with its parent.
type Canvas struct {
	cells  []cell
	stride int
	col0   int
	row0   int
	cols   int
	rows   int
}

// NewCanvas allocates a canvas of cols x rows terminal cells
func NewCanvas(cols, rows int) *Canvas {
	cols = max(cols, 0)
	rows = max(rows, 0)
	return &Canvas{
		cells:  make([]cell, cols*rows),
		stride: cols,
		cols:   cols,
		rows:   rows,
	}
}

// Sub returns a view onto a rectangle of c, clipped to c's bounds.
func (c *Canvas) Sub(col, row, cols, rows int) *Canvas {
	col = min(max(col, 0), c.cols)
	row = min(max(row, 0), c.rows)
	cols = min(max(cols, 0), c.cols-col)
	rows = min(max(rows, 0), c.rows-row)
	return &Canvas{
		cells:  c.cells,
		stride: c.stride,
		col0:   c.col0 + col,
		row0:   c.row0 + row,
		cols:   cols,
		rows:   rows,
	}
}

// Cols is the width in terminal cells
func (c *Canvas) Cols() int { return c.cols }

// Rows is the height in terminal cells
func (c *Canvas) Rows() int { return c.rows }

// DotSize is the canvas size in braille dots.
func (c *Canvas) DotSize() (w, h int) {
	return c.cols * 2, c.rows * 4
}

func (c *Canvas) at(col, row int) *cell {
	return &c.cells[(c.row0+row)*c.stride+c.col0+col]
}

// Clear erases every cell in the canvas region
func (c *Canvas) Clear() {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			*c.at(col, row) = cell{}
		}
	}
}

// Set raises the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int, ink Ink) {
	w, h := c.DotSize()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	cl := c.at(x/2, y/4)
	cl.bits |= brailleDots[y%4][x%2]
	if ink > cl.ink {
		cl.ink = ink
	}
}

// Line draws a segment between two dots using Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, ink Ink) {
	w, h := c.DotSize()
	// Both ends past the same edge: nothing visible.
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= w && x1 >= w) || (y0 >= h && y1 >= h) {
		return
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.Set(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Disc fills every dot whose centre lies within r of (cx, cy). The dot
// nearest the centre is always set so tiny radii stay visible.
func (c *Canvas) Disc(cx, cy, r float64, ink Ink) {
	c.Set(int(math.Floor(cx)), int(math.Floor(cy)), ink)
	if r <= 0 {
		return
	}
	x0 := int(math.Floor(cx - r))
	x1 := int(math.Ceil(cx + r))
	y0 := int(math.Floor(cy - r))
	y1 := int(math.Ceil(cy + r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ddx := float64(x) + 0.5 - cx
			ddy := float64(y) + 0.5 - cy
			if ddx*ddx+ddy*ddy <= r*r {
				c.Set(x, y, ink)
			}
		}
	}
}

// Ring outlines a circle of radius r.
func (c *Canvas) Ring(cx, cy, r float64, ink Ink) {
	if r <= 0 {
		c.Set(int(math.Floor(cx)), int(math.Floor(cy)), ink)
		return
	}
	steps := max(int(2*math.Pi*r), 8)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(int(math.Floor(cx+r*math.Cos(a))), int(math.Floor(cy+r*math.Sin(a))), ink)
	}
}

// Border draws a frame around the edge of the canvas using box cells.
func (c *Canvas) Border() {
	if c.cols < 2 || c.rows < 2 {
		return
	}
	for col := 0; col < c.cols; col++ {
		c.label(col, 0, '─', InkFrame)
		c.label(col, c.rows-1, '─', InkFrame)
	}
	for row := 0; row < c.rows; row++ {
		c.label(0, row, '│', InkFrame)
		c.label(c.cols-1, row, '│', InkFrame)
	}
	c.label(0, 0, '╭', InkFrame)
	c.label(c.cols-1, 0, '╮', InkFrame)
	c.label(0, c.rows-1, '╰', InkFrame)
	c.label(c.cols-1, c.rows-1, '╯', InkFrame)
}

// Text writes s starting at the given cell, replacing any dots there.
func (c *Canvas) Text(col, row int, s string, ink Ink) {
	for _, r := range s {
		c.label(col, row, r, ink)
		col++
	}
}

func (c *Canvas) label(col, row int, r rune, ink Ink) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	*c.at(col, row) = cell{ink: ink, label: r}
}

func (cl cell) glyph() rune {
	switch {
	case cl.label != 0:
		return cl.label
	case cl.bits == 0:
		return ' '
	default:
		return rune(brailleBase) + rune(cl.bits)
	}
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var sb strings.Builder
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			sb.WriteRune(c.at(col, row).glyph())
		}
		if row < c.rows-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Palette maps inks to terminal styles
type Palette map[Ink]lipgloss.Style

// DefaultPalette colours confirmed warehouses green, potential ones amber,
// the highlight red and the searched-location marker blue.
func DefaultPalette() Palette {
	return Palette{
		InkBoundary:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D")),
		InkPotential: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD93D")),
		InkConfirmed: lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCF7F")),
		InkHover:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		InkHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		InkMarker:    lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF")).Bold(true),
		InkFrame:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4A90E2")),
	}
}

// Render renders the canvas, styling each cell by its ink. Runs of cells
// with the same ink share one styled span.
func (c *Canvas) Render(p Palette) string {
	var sb strings.Builder
	var run strings.Builder
	flush := func(ink Ink) {
		if run.Len() == 0 {
			return
		}
		if style, ok := p[ink]; ok {
			sb.WriteString(style.Render(run.String()))
		} else {
			sb.WriteString(run.String())
		}
		run.Reset()
	}

	for row := 0; row < c.rows; row++ {
		current := InkNone
		for col := 0; col < c.cols; col++ {
			cl := c.at(col, row)
			ink := cl.ink
			if cl.glyph() == ' ' {
				ink = InkNone
			}
			if ink != current {
				flush(current)
				current = ink
			}
			run.WriteRune(cl.glyph())
		}
		flush(current)
		if row < c.rows-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
