package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Layer tags what was drawn into a cell. A cell takes the color of the
// highest layer drawn into it.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerAsteroid
	LayerAttractor
	LayerPlanet
	LayerStar
)

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Layers        [][]Layer
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Layers: make([][]Layer, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Layers[i] = make([]Layer, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) dots.
func (c *Canvas) Set(x, y int, l Layer) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if l > c.Layers[row][col] {
		c.Layers[row][col] = l
	}
}

// Unset clears a dot. The cell keeps its layer.
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	mask := ^rune(pixelMap[y%4][x%2])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Layers[i][j] = LayerNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, l Layer) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, l)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle lights every dot within r of (cx, cy). r <= 0 lights the
// center dot only.
func (c *Canvas) FillCircle(cx, cy, r int, l Layer) {
	if r <= 0 {
		c.Set(cx, cy, l)
		return
	}
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r2 {
				c.Set(cx+dx, cy+dy, l)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colors each run of same-layer cells with the theme's color for
// that layer.
func (c *Canvas) Render(theme Theme) string {
	styles := [...]lipgloss.Style{
		LayerNone:      lipgloss.NewStyle().Foreground(theme.Muted),
		LayerAsteroid:  lipgloss.NewStyle().Foreground(theme.Asteroid),
		LayerAttractor: lipgloss.NewStyle().Foreground(theme.Accent),
		LayerPlanet:    lipgloss.NewStyle().Foreground(theme.Planet),
		LayerStar:      lipgloss.NewStyle().Foreground(theme.Star).Bold(true),
	}

	var b strings.Builder
	for i, row := range c.Grid {
		layers := c.Layers[i]
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && layers[j] == layers[start] {
				continue
			}
			b.WriteString(styles[layers[start]].Render(string(row[start:j])))
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
