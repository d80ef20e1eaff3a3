package physics

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
)

// Asteroid belt annulus around the domain center.
const (
	BeltInner float32 = 80
	BeltOuter float32 = 110
)

// PlanetTemplate places a preset planet at Distance from the domain center.
type PlanetTemplate struct {
	Distance float32
	Mass     float32
	Radius   float32
	Color    color.RGBA
}

// PresetPlanets are seeded on every reset.
var PresetPlanets = []PlanetTemplate{
	{Distance: 40, Mass: 200, Radius: 4, Color: color.RGBA{R: 230, G: 140, B: 60, A: 255}},
	{Distance: 60, Mass: 400, Radius: 5, Color: color.RGBA{R: 90, G: 150, B: 255, A: 255}},
	{Distance: 135, Mass: 800, Radius: 7, Color: color.RGBA{R: 220, G: 200, B: 150, A: 255}},
}

// Seed clears st and fills it with the preset planets plus
// cfg.System.ParticleCount belt asteroids on near-circular orbits.
//
// Planets and asteroids orbit the domain center using cfg.Star.Mass, whether
// or not star gravity is enabled.
func Seed(st *dynamo.State, cfg config.StepConfig, rng *rand.Rand) {
	st.Clear()

	cx, cy := config.Center()
	mass := cfg.Star.Mass

	for _, tpl := range PresetPlanets {
		s, c := sincos32(rng.Float64() * 2 * math.Pi)
		v := CircularSpeed(mass, tpl.Distance)
		st.AppendPlanet(dynamo.Planet{
			X:      cx + c*tpl.Distance,
			Y:      cy + s*tpl.Distance,
			VX:     -s * v,
			VY:     c * v,
			Mass:   tpl.Mass,
			Radius: tpl.Radius,
			Color:  tpl.Color,
		})
	}

	span := BeltOuter - BeltInner
	for i := 0; i < cfg.System.ParticleCount; i++ {
		s, c := sincos32(rng.Float64() * 2 * math.Pi)
		// sqrt pushes samples outward so the belt is not crowded at its inner edge
		r := BeltInner + sqrt32(rng.Float32())*span
		v := CircularSpeed(mass, r) * (0.925 + rng.Float32()*0.15)
		st.AppendAsteroid(cx+c*r, cy+s*r, -s*v, c*v)
	}
}
