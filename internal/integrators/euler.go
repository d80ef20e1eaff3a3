// Package integrators advances body positions from their velocities.
//
// Forces are applied to velocities first (package physics); Drift then moves
// bodies with the updated velocities, which makes each substep a
// semi-implicit (symplectic) Euler step.
package integrators

import "github.com/san-kum/cosmosim/internal/dynamo"

type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

// Step drifts every body by dt and then damps asteroid velocities.
func (e *SemiImplicitEuler) Step(st *dynamo.State, dt, damping float32) {
	e.Drift(st, dt)
	e.Damp(st, damping)
}

// Drift moves planets and asteroids by velocity × dt.
func (e *SemiImplicitEuler) Drift(st *dynamo.State, dt float32) {
	for i := range st.Planets {
		p := &st.Planets[i]
		p.X += p.VX * dt
		p.Y += p.VY * dt
	}

	px, py := st.PosX, st.PosY
	vx, vy := st.VelX, st.VelY
	for i := range px {
		px[i] += vx[i] * dt
		py[i] += vy[i] * dt
	}
}

// Damp scales asteroid velocities by factor. It is applied once per substep
// and is not scaled by dt, so more substeps per frame means stronger damping.
// Planets are never damped.
func (e *SemiImplicitEuler) Damp(st *dynamo.State, factor float32) {
	if factor == 1 {
		return
	}
	vx, vy := st.VelX, st.VelY
	for i := range vx {
		vx[i] *= factor
		vy[i] *= factor
	}
}
