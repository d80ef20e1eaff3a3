package physics

import (
	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
)

// ApplyPlanetForces adds star gravity and planet-planet gravity to every
// planet's velocity over dt.
//
// Star gravity is unsoftened and skipped within distance 1 of the star.
// Planet pairs attract only while their separation exceeds the sum of their
// radii; overlapping planets exert nothing on each other.
func ApplyPlanetForces(st *dynamo.State, cfg config.StepConfig, dt float32) {
	planets := st.Planets
	n := len(planets)

	if cfg.Star.Enabled {
		sx, sy, sm := cfg.Star.X, cfg.Star.Y, cfg.Star.Mass
		for i := range planets {
			p := &planets[i]
			rx, ry := sx-p.X, sy-p.Y
			d := sqrt32(rx*rx + ry*ry)
			if d <= 1 {
				continue
			}
			f := sm / (d * d * d) * dt
			p.VX += rx * f
			p.VY += ry * f
		}
	}

	for i := 0; i < n; i++ {
		a := &planets[i]
		for j := i + 1; j < n; j++ {
			b := &planets[j]

			rx, ry := b.X-a.X, b.Y-a.Y
			d := sqrt32(rx*rx + ry*ry)
			if d <= a.Radius+b.Radius {
				continue
			}
			inv3 := dt / (d * d * d)

			fa := b.Mass * inv3
			a.VX += rx * fa
			a.VY += ry * fa

			fb := a.Mass * inv3
			b.VX -= rx * fb
			b.VY -= ry * fb
		}
	}
}
