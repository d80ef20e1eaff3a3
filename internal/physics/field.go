package physics

import (
	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
)

const (
	// StarSoftening is added to the squared star distance for asteroids so
	// the pull stays bounded near the star.
	StarSoftening float32 = 25

	// PlanetInfluence is the distance beyond which a planet ignores asteroids.
	PlanetInfluence float32 = 60

	// AttractorSoftening keeps the attractor finite at zero distance.
	AttractorSoftening float32 = 0.1
)

// ApplyAsteroidForces adds every external force acting on asteroids to
// their velocities over dt: the softened star pull, per-planet pulls inside
// PlanetInfluence, the attractor, and uniform global gravity.
func ApplyAsteroidForces(st *dynamo.State, cfg config.StepConfig, dt float32) {
	px, py := st.PosX, st.PosY
	vx, vy := st.VelX, st.VelY
	n := len(px)

	if cfg.Star.Enabled {
		sx, sy := cfg.Star.X, cfg.Star.Y
		gm := cfg.Star.Mass * dt
		for i := 0; i < n; i++ {
			rx, ry := sx-px[i], sy-py[i]
			d := sqrt32(rx*rx + ry*ry + StarSoftening)
			f := gm / (d * d * d)
			vx[i] += rx * f
			vy[i] += ry * f
		}
	}

	const cutoff2 = PlanetInfluence * PlanetInfluence
	for _, p := range st.Planets {
		r2 := p.Radius * p.Radius
		gm := p.Mass * dt
		for i := 0; i < n; i++ {
			rx, ry := p.X-px[i], p.Y-py[i]
			d2 := rx*rx + ry*ry
			if d2 >= cutoff2 || d2 <= r2 {
				continue
			}
			d := sqrt32(d2)
			f := gm / (d2 * d)
			vx[i] += rx * f
			vy[i] += ry * f
		}
	}

	if cfg.Attractor.Enabled {
		ax, ay := cfg.Attractor.X, cfg.Attractor.Y
		k := cfg.Attractor.Strength * dt
		for i := 0; i < n; i++ {
			rx, ry := ax-px[i], ay-py[i]
			inv := 1 / (sqrt32(rx*rx+ry*ry) + AttractorSoftening)
			f := k * inv * inv
			vx[i] += rx * f
			vy[i] += ry * f
		}
	}

	if cfg.Gravity.Enabled {
		gx, gy := cfg.Gravity.X*dt, cfg.Gravity.Y*dt
		for i := 0; i < n; i++ {
			vx[i] += gx
			vy[i] += gy
		}
	}
}
