package physics

import (
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/spatial"
)

// MutualSoftening is added to squared asteroid separations for mutual gravity.
const MutualSoftening float32 = 0.25

// ApplyMutualGravity attracts asteroid pairs that the grid reports as
// neighbors. Range is bounded by the cell size, so this is a short-range
// clumping force rather than full N-body gravity.
func ApplyMutualGravity(st *dynamo.State, grid *spatial.Grid, g, dt float32) {
	grid.Rebuild(st.PosX, st.PosY)

	px, py := st.PosX, st.PosY
	vx, vy := st.VelX, st.VelY
	k := g * dt
	grid.ForEachPair(func(i, j int) {
		dx, dy := px[j]-px[i], py[j]-py[i]
		d2 := dx*dx + dy*dy
		if d2 <= contactEpsilon {
			return
		}
		f := k / ((d2 + MutualSoftening) * sqrt32(d2))
		vx[i] += dx * f
		vy[i] += dy * f
		vx[j] -= dx * f
		vy[j] -= dy * f
	})
}
