package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func quietConfig() config.StepConfig {
	cfg := config.Default()
	cfg.Star.Enabled = false
	cfg.Gravity.Enabled = false
	cfg.Attractor.Enabled = false
	cfg.Mutual.Enabled = false
	return cfg
}

func dist(x, y float32) float32 {
	cx, cy := config.Center()
	dx, dy := x-cx, y-cy
	return sqrt32(dx*dx + dy*dy)
}

func TestSeed_BeltAndPlanets(t *testing.T) {
	cfg := config.Default()
	cfg.System.ParticleCount = 3000
	st := dynamo.NewState(0)

	Seed(st, cfg, rand.New(rand.NewSource(1)))

	require.Equal(t, 3000, st.Len())
	require.Len(t, st.PosY, 3000)
	require.Len(t, st.VelX, 3000)
	require.Len(t, st.VelY, 3000)
	require.Len(t, st.Planets, len(PresetPlanets))

	for i := 0; i < st.Len(); i++ {
		r := dist(st.PosX[i], st.PosY[i])
		assert.GreaterOrEqual(t, r, BeltInner-1e-3, "asteroid %d", i)
		assert.LessOrEqual(t, r, BeltOuter+1e-3, "asteroid %d", i)

		speed := sqrt32(st.VelX[i]*st.VelX[i] + st.VelY[i]*st.VelY[i])
		circ := CircularSpeed(cfg.Star.Mass, r)
		assert.InDelta(t, 1.0, speed/circ, 0.076, "asteroid %d speed multiplier", i)
	}

	for i, p := range st.Planets {
		d := dist(p.X, p.Y)
		assert.InDelta(t, PresetPlanets[i].Distance, d, 1e-3)
		speed := sqrt32(p.VX*p.VX + p.VY*p.VY)
		assert.InDelta(t, CircularSpeed(cfg.Star.Mass, d), speed, 1e-3)

		// velocity is tangential to the radius vector
		cx, cy := config.Center()
		dot := (p.X-cx)*p.VX + (p.Y-cy)*p.VY
		assert.InDelta(t, 0, dot, 1e-2)
	}
}

func TestSeed_DiscardsPreviousBodies(t *testing.T) {
	cfg := config.Default()
	cfg.System.ParticleCount = 10
	st := dynamo.NewState(0)
	st.AppendAsteroid(1, 1, 1, 1)
	st.AppendPlanet(dynamo.Planet{Mass: 1, Radius: 1})

	Seed(st, cfg, rand.New(rand.NewSource(2)))

	assert.Equal(t, 10, st.Len())
	assert.Len(t, st.Planets, len(PresetPlanets))
}

func TestCircularSpeed(t *testing.T) {
	assert.InDelta(t, math.Sqrt(10000.0/40.0), float64(CircularSpeed(10000, 40)), 1e-4)
}

func TestOrbitVelocity(t *testing.T) {
	vx, vy, ok := OrbitVelocity(190, 150, 150, 150, 10000)
	require.True(t, ok)
	assert.InDelta(t, 0, vx, tol)
	assert.InDelta(t, 15.811, vy, 1e-3)

	_, _, ok = OrbitVelocity(150.5, 150, 150, 150, 10000)
	assert.False(t, ok, "inside the distance floor")
}

func TestPlanetForces_StarPull(t *testing.T) {
	cfg := quietConfig()
	cfg.Star.Enabled = true
	st := dynamo.NewState(0)
	st.AppendPlanet(dynamo.Planet{X: 190, Y: 150, Mass: 1, Radius: 1})

	ApplyPlanetForces(st, cfg, 0.01)

	// a = M/d^2 toward the star
	assert.InDelta(t, -10000.0/1600.0*0.01, st.Planets[0].VX, tol)
	assert.InDelta(t, 0, st.Planets[0].VY, tol)
}

func TestPlanetForces_StarDistanceFloor(t *testing.T) {
	cfg := quietConfig()
	cfg.Star.Enabled = true
	st := dynamo.NewState(0)
	st.AppendPlanet(dynamo.Planet{X: 150.5, Y: 150, Mass: 1, Radius: 1})

	ApplyPlanetForces(st, cfg, 0.01)

	assert.Zero(t, st.Planets[0].VX)
	assert.Zero(t, st.Planets[0].VY)
}

func TestPlanetForces_ThirdLaw(t *testing.T) {
	cfg := quietConfig()
	st := dynamo.NewState(0)
	st.AppendPlanet(dynamo.Planet{X: 100, Y: 100, Mass: 300, Radius: 3})
	st.AppendPlanet(dynamo.Planet{X: 130, Y: 140, Mass: 900, Radius: 5})

	ApplyPlanetForces(st, cfg, 0.02)

	a, b := st.Planets[0], st.Planets[1]
	assert.NotZero(t, a.VX)
	assert.InDelta(t, 0, a.Mass*a.VX+b.Mass*b.VX, 1e-2)
	assert.InDelta(t, 0, a.Mass*a.VY+b.Mass*b.VY, 1e-2)
	// a is pulled toward b
	assert.Greater(t, a.VX, float32(0))
	assert.Greater(t, a.VY, float32(0))
}

func TestPlanetForces_OverlapIsNoop(t *testing.T) {
	cfg := quietConfig()
	st := dynamo.NewState(0)
	st.AppendPlanet(dynamo.Planet{X: 100, Y: 100, Mass: 300, Radius: 5})
	st.AppendPlanet(dynamo.Planet{X: 108, Y: 100, Mass: 300, Radius: 5})

	ApplyPlanetForces(st, cfg, 0.02)

	for _, p := range st.Planets {
		assert.Zero(t, p.VX)
		assert.Zero(t, p.VY)
	}
}

func TestAsteroidForces_StarIsSoftened(t *testing.T) {
	cfg := quietConfig()
	cfg.Star.Enabled = true
	st := dynamo.NewState(1)
	cx, cy := config.Center()
	st.AppendAsteroid(cx+0.01, cy, 0, 0)

	ApplyAsteroidForces(st, cfg, 0.01)

	assert.False(t, math.IsInf(float64(st.VelX[0]), 0))
	assert.Less(t, st.VelX[0], float32(0), "pulled toward the star")
	// bounded by M*dt*r/soft^(3/2)
	assert.Less(t, -st.VelX[0], float32(10000*0.01*0.01/125.0)+tol)
}

func TestAsteroidForces_PlanetCutoffs(t *testing.T) {
	cfg := quietConfig()
	st := dynamo.NewState(3)
	st.AppendPlanet(dynamo.Planet{X: 100, Y: 100, Mass: 500, Radius: 5})
	st.AppendAsteroid(120, 100, 0, 0) // inside influence
	st.AppendAsteroid(170, 100, 0, 0) // beyond PlanetInfluence
	st.AppendAsteroid(103, 100, 0, 0) // inside the planet

	ApplyAsteroidForces(st, cfg, 0.01)

	assert.InDelta(t, -500.0/400.0*0.01, st.VelX[0], tol)
	assert.Zero(t, st.VelX[1])
	assert.Zero(t, st.VelX[2])
}

func TestAsteroidForces_AttractorAndGravity(t *testing.T) {
	cfg := quietConfig()
	cfg.Attractor.Enabled = true
	cfg.Attractor.X, cfg.Attractor.Y = 100, 100
	cfg.Attractor.Strength = 50
	cfg.Gravity.Enabled = true
	cfg.Gravity.X, cfg.Gravity.Y = 0, 10

	st := dynamo.NewState(2)
	st.AppendAsteroid(100, 110, 0, 0)
	st.AppendAsteroid(100, 100, 0, 0) // exactly on the attractor

	ApplyAsteroidForces(st, cfg, 0.1)

	pull := float32(50 * 0.1 * 10 / (10.1 * 10.1))
	assert.InDelta(t, 0, st.VelX[0], tol)
	assert.InDelta(t, -pull+1, st.VelY[0], tol)

	assert.Zero(t, st.VelX[1])
	assert.InDelta(t, 1, st.VelY[1], tol, "only gravity at zero distance")
}

func newPair(x0, vx0, x1, vx1 float32) *dynamo.State {
	st := dynamo.NewState(2)
	st.AppendAsteroid(x0, 50, vx0, 0)
	st.AppendAsteroid(x1, 50, vx1, 0)
	return st
}

func TestResolveCollisions_ConservesMomentum(t *testing.T) {
	st := newPair(50, 3, 50.8, -1)
	before := st.VelX[0] + st.VelX[1]

	contacts := ResolveCollisions(st, spatial.New(100, 2), 0.5, 1)

	assert.Equal(t, 1, contacts)
	assert.InDelta(t, before, st.VelX[0]+st.VelX[1], tol)
	assert.InDelta(t, 0, st.VelY[0]+st.VelY[1], tol)
	// equal masses with e=1 swap normal velocities
	assert.InDelta(t, -1, st.VelX[0], tol)
	assert.InDelta(t, 3, st.VelX[1], tol)
	// separated to exactly one diameter
	assert.InDelta(t, 1.0, st.PosX[1]-st.PosX[0], tol)
}

func TestResolveCollisions_RestitutionScalesRebound(t *testing.T) {
	st := newPair(50, 2, 50.9, -2)

	ResolveCollisions(st, spatial.New(100, 2), 0.5, 0.5)

	assert.InDelta(t, -1, st.VelX[0], tol)
	assert.InDelta(t, 1, st.VelX[1], tol)
}

func TestResolveCollisions_SeparatingPairOnlyPushed(t *testing.T) {
	st := newPair(50, -1, 50.6, 1)

	ResolveCollisions(st, spatial.New(100, 2), 0.5, 1)

	assert.Equal(t, float32(-1), st.VelX[0])
	assert.Equal(t, float32(1), st.VelX[1])
	assert.InDelta(t, 1.0, st.PosX[1]-st.PosX[0], tol)
}

func TestResolveCollisions_DegenerateNormalSkipped(t *testing.T) {
	st := newPair(50, 1, 50, -1)

	contacts := ResolveCollisions(st, spatial.New(100, 2), 0.5, 1)

	assert.Zero(t, contacts)
	assert.Equal(t, float32(50), st.PosX[0])
	assert.Equal(t, float32(1), st.VelX[0])
}

func TestResolveCollisions_IsolatedUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	st := dynamo.NewState(0)
	st.AppendAsteroid(20, 20, 4, -2) // the isolated one
	for i := 0; i < 200; i++ {
		x := 40 + rng.Float32()*50
		y := 40 + rng.Float32()*50
		st.AppendAsteroid(x, y, rng.Float32(), rng.Float32())
	}

	ResolveCollisions(st, spatial.New(100, 1), 0.5, 0.8)

	assert.Equal(t, float32(20), st.PosX[0])
	assert.Equal(t, float32(20), st.PosY[0])
	assert.Equal(t, float32(4), st.VelX[0])
	assert.Equal(t, float32(-2), st.VelY[0])
}

func TestMutualGravity_Symmetric(t *testing.T) {
	st := newPair(50, 0, 51, 0)

	ApplyMutualGravity(st, spatial.New(100, 2), 0.05, 0.1)

	assert.Greater(t, st.VelX[0], float32(0))
	assert.InDelta(t, 0, st.VelX[0]+st.VelX[1], 1e-7)
}

func TestApplyBoundaries_Asteroids(t *testing.T) {
	st := dynamo.NewState(2)
	st.AppendAsteroid(-3, 50, -4, 0)
	st.AppendAsteroid(50, 305, 0, 6)

	ApplyBoundaries(st, 300, 0.5, 0.5)

	assert.Equal(t, float32(0.5), st.PosX[0])
	assert.Equal(t, float32(2), st.VelX[0])
	assert.Equal(t, float32(299.5), st.PosY[1])
	assert.Equal(t, float32(-3), st.VelY[1])
}

func TestApplyBoundaries_PlanetsReflectWithoutClamp(t *testing.T) {
	st := dynamo.NewState(0)
	st.AppendPlanet(dynamo.Planet{X: 3, Y: 150, VX: -5, VY: 1, Mass: 1, Radius: 4})
	st.AppendPlanet(dynamo.Planet{X: 150, Y: 150, VX: 2, VY: 2, Mass: 1, Radius: 4})

	ApplyBoundaries(st, 300, 0.5, 0.8)

	p := st.Planets[0]
	assert.Equal(t, float32(5), p.VX, "fully elastic")
	assert.Equal(t, float32(3), p.X, "no positional correction")
	assert.Equal(t, float32(1), p.VY)

	q := st.Planets[1]
	assert.Equal(t, float32(2), q.VX)
	assert.Equal(t, float32(2), q.VY)
}
