package physics

import "github.com/san-kum/cosmosim/internal/dynamo"

// ApplyBoundaries keeps bodies inside the [0, domain] square.
//
// A planet's velocity component flips when its center comes within one
// radius of a wall; position is left alone, so a fast planet may briefly
// poke past the wall. Asteroids are clamped into [radius, domain-radius]
// and lose energy by restitution on every clamp.
func ApplyBoundaries(st *dynamo.State, domain, radius, restitution float32) {
	for i := range st.Planets {
		p := &st.Planets[i]
		if p.X < p.Radius || p.X > domain-p.Radius {
			p.VX = -p.VX
		}
		if p.Y < p.Radius || p.Y > domain-p.Radius {
			p.VY = -p.VY
		}
	}

	lo, hi := radius, domain-radius
	px, py := st.PosX, st.PosY
	vx, vy := st.VelX, st.VelY
	for i := range px {
		if px[i] < lo {
			px[i] = lo
			vx[i] = -vx[i] * restitution
		} else if px[i] > hi {
			px[i] = hi
			vx[i] = -vx[i] * restitution
		}
		if py[i] < lo {
			py[i] = lo
			vy[i] = -vy[i] * restitution
		} else if py[i] > hi {
			py[i] = hi
			vy[i] = -vy[i] * restitution
		}
	}
}
