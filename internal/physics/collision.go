package physics

import (
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/spatial"
)

// contactEpsilon rejects pairs so close that the contact normal is undefined.
const contactEpsilon float32 = 1e-8

// ResolveCollisions rebuilds grid from the current asteroid positions and
// resolves every overlapping pair. It returns the number of contacts.
//
// Asteroids are unit-mass discs: overlapping pairs are pushed apart by half
// the penetration each, and approaching pairs exchange an impulse of
// (1+e)·|vn|/2 along the normal.
func ResolveCollisions(st *dynamo.State, grid *spatial.Grid, radius, restitution float32) int {
	grid.Rebuild(st.PosX, st.PosY)

	contacts := 0
	grid.ForEachPair(func(i, j int) {
		if resolvePair(st, i, j, radius, restitution) {
			contacts++
		}
	})
	return contacts
}

func resolvePair(st *dynamo.State, i, j int, radius, restitution float32) bool {
	px, py := st.PosX, st.PosY
	vx, vy := st.VelX, st.VelY

	dx, dy := px[j]-px[i], py[j]-py[i]
	d2 := dx*dx + dy*dy
	minDist := 2 * radius
	if d2 >= minDist*minDist || d2 <= contactEpsilon {
		return false
	}

	d := sqrt32(d2)
	nx, ny := dx/d, dy/d

	half := (minDist - d) * 0.5
	px[i] -= nx * half
	py[i] -= ny * half
	px[j] += nx * half
	py[j] += ny * half

	vn := (vx[j]-vx[i])*nx + (vy[j]-vy[i])*ny
	if vn < 0 {
		imp := -(1 + restitution) * vn * 0.5
		vx[i] -= nx * imp
		vy[i] -= ny * imp
		vx[j] += nx * imp
		vy[j] += ny * imp
	}
	return true
}
