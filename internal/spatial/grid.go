// Package spatial provides the uniform grid used for asteroid-asteroid
// neighbor queries.
//
// Cells store asteroid indices, never pointers, and keep their backing
// arrays between rebuilds so a steady-state substep allocates nothing.
package spatial

import "math"

// stencil is the half neighborhood walked from every cell: same, east,
// southwest, south, southeast. Summed over the grid it touches every pair of
// identical or adjacent cells exactly once.
var stencil = [5][2]int{{0, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}

// Grid is a uniform cell index over a square domain.
//
// Memory layout: cells are stored row-major (cells[row*cols+col]).
type Grid struct {
	cellSize    float32
	invCellSize float32
	cols, rows  int
	cells       [][]int32
}

// New builds a grid covering [0, domain) on both axes. cellSize must be at
// least the collision diameter or near pairs across non-adjacent cells are
// missed.
func New(domain, cellSize float32) *Grid {
	n := int(math.Ceil(float64(domain / cellSize)))
	if n < 1 {
		n = 1
	}
	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1 / cellSize,
		cols:        n,
		rows:        n,
		cells:       make([][]int32, n*n),
	}
}

func (g *Grid) CellSize() float32 { return g.cellSize }

// Dims returns the column and row counts.
func (g *Grid) Dims() (int, int) { return g.cols, g.rows }

// Fits reports whether pairs closer than diameter are always found.
func (g *Grid) Fits(diameter float32) bool { return g.cellSize >= diameter }

// Clear empties every bucket without releasing memory.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// CellOf returns the column and row covering (x, y). Each axis is clamped
// into the grid independently, so points on or past the edge land in the
// border cells.
func (g *Grid) CellOf(x, y float32) (int, int) {
	return clamp(int(x*g.invCellSize), g.cols), clamp(int(y*g.invCellSize), g.rows)
}

func clamp(c, n int) int {
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}

// Rebuild clears the grid and inserts index i at (xs[i], ys[i]).
func (g *Grid) Rebuild(xs, ys []float32) {
	g.Clear()
	for i := range xs {
		col, row := g.CellOf(xs[i], ys[i])
		idx := row*g.cols + col
		g.cells[idx] = append(g.cells[idx], int32(i))
	}
}

// ForEachPair calls fn once for every unordered pair of indices sharing a
// cell or sitting in edge/corner-adjacent cells. fn always receives i < j.
func (g *Grid) ForEachPair(fn func(i, j int)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			home := g.cells[row*g.cols+col]
			if len(home) == 0 {
				continue
			}
			for _, off := range stencil {
				nc, nr := col+off[0], row+off[1]
				if nc < 0 || nc >= g.cols || nr >= g.rows {
					continue
				}
				if off[0] == 0 && off[1] == 0 {
					for a := 0; a < len(home); a++ {
						for b := a + 1; b < len(home); b++ {
							emit(fn, home[a], home[b])
						}
					}
					continue
				}
				other := g.cells[nr*g.cols+nc]
				for _, i := range home {
					for _, j := range other {
						emit(fn, i, j)
					}
				}
			}
		}
	}
}

// emit orders the pair so the lower index comes first.
func emit(fn func(i, j int), a, b int32) {
	if a < b {
		fn(int(a), int(b))
	} else if b < a {
		fn(int(b), int(a))
	}
}

// Stats summarizes bucket occupancy for profiling.
type Stats struct {
	TotalCells    int
	NonEmptyCells int
	Entries       int
	MaxInCell     int
}

func (g *Grid) Stats() Stats {
	s := Stats{TotalCells: len(g.cells)}
	for _, c := range g.cells {
		n := len(c)
		s.Entries += n
		if n > 0 {
			s.NonEmptyCells++
		}
		if n > s.MaxInCell {
			s.MaxInCell = n
		}
	}
	return s
}
