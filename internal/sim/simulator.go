package sim

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/integrators"
	"github.com/san-kum/cosmosim/internal/physics"
	"github.com/san-kum/cosmosim/internal/spatial"
)

// DefaultCellSize is the grid cell used while the collision diameter fits.
const DefaultCellSize float32 = 4

// Simulator owns the particle state and advances it one frame per Step.
// It is not safe for concurrent use.
type Simulator struct {
	state  *dynamo.State
	grid   *spatial.Grid
	integ  *integrators.SemiImplicitEuler
	rng    *rand.Rand
	logger *log.Logger

	spawn    config.SpawnRequest
	hasSpawn bool

	// target is the asteroid count the state should hold; spawned asteroids
	// raise it. configured is the last count read from a StepConfig.
	target     int
	configured int

	stats Stats
}

type Option func(*Simulator)

func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// WithRand replaces the seeded random source used for resets.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) { s.rng = r }
}

// New creates a simulator and seeds it from cfg. A zero seed picks one from
// the clock.
func New(cfg config.StepConfig, opts ...Option) *Simulator {
	s := &Simulator{
		state: dynamo.NewState(cfg.System.ParticleCount),
		integ: integrators.NewSemiImplicitEuler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.rng == nil {
		seed := cfg.System.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
	s.grid = spatial.New(config.DomainSize, DefaultCellSize)
	s.Reset(cfg)
	return s
}

// Spawn queues a one-shot spawn for the next Step. A second call before
// that Step replaces the first.
func (s *Simulator) Spawn(req config.SpawnRequest) {
	s.spawn = req
	s.hasSpawn = true
}

func (s *Simulator) PendingSpawn() bool { return s.hasSpawn }

// TargetCount is the asteroid count the simulator is holding, including
// spawned asteroids.
func (s *Simulator) TargetCount() int { return s.target }

func (s *Simulator) Stats() Stats { return s.stats }

// Snapshot copies the current state into dst.
func (s *Simulator) Snapshot(dst *dynamo.Snapshot) {
	s.state.SnapshotInto(dst)
}

// Reset discards every body, spawned ones included, and reseeds from cfg.
func (s *Simulator) Reset(cfg config.StepConfig) {
	physics.Seed(s.state, cfg, s.rng)
	s.configured = cfg.System.ParticleCount
	s.target = s.configured
	s.stats.Resets++
	s.logger.Debug("reset", "asteroids", s.state.Len(), "planets", len(s.state.Planets))
}

// Step advances the simulation by dt using cfg.
//
// A queued spawn is applied first, even while paused. When not paused the
// state is reseeded if the asteroid count no longer matches the target, then
// cfg.Physics.Substeps substeps run: forces, drift and damping, collisions
// and boundaries.
func (s *Simulator) Step(cfg config.StepConfig, dt float32) {
	start := time.Now()
	s.drainSpawn(cfg)

	if cfg.System.Paused {
		return
	}

	if cfg.System.ParticleCount != s.configured {
		s.configured = cfg.System.ParticleCount
		s.target = s.configured
	}
	if s.state.Len() != s.target {
		s.Reset(cfg)
	}

	p := cfg.Physics
	if p.Collisions || cfg.Mutual.Enabled {
		s.ensureGrid(2 * p.CollisionRadius)
	}

	substeps := p.Substeps
	if substeps < 1 {
		substeps = 1
	}
	contacts := 0
	sub := dt / float32(substeps)
	for k := 0; k < substeps; k++ {
		physics.ApplyPlanetForces(s.state, cfg, sub)
		physics.ApplyAsteroidForces(s.state, cfg, sub)
		if cfg.Mutual.Enabled {
			physics.ApplyMutualGravity(s.state, s.grid, cfg.Mutual.G, sub)
		}

		s.integ.Step(s.state, sub, p.Damping)

		if p.Collisions {
			contacts += physics.ResolveCollisions(s.state, s.grid, p.CollisionRadius, p.Restitution)
		}
		physics.ApplyBoundaries(s.state, config.DomainSize, p.CollisionRadius, p.Restitution)
	}

	s.stats.Frames++
	s.stats.Contacts = contacts
	s.stats.StepTime = time.Since(start)
}

func (s *Simulator) drainSpawn(cfg config.StepConfig) {
	if !s.hasSpawn {
		return
	}
	req := s.spawn
	s.spawn = config.SpawnRequest{}
	s.hasSpawn = false

	vx, vy := req.VelX, req.VelY
	if req.AutoOrbit {
		if ox, oy, ok := physics.OrbitVelocity(req.X, req.Y, cfg.Star.X, cfg.Star.Y, cfg.Star.Mass); ok {
			vx, vy = ox, oy
		}
	}

	switch req.Kind {
	case config.KindAsteroid:
		s.state.AppendAsteroid(req.X, req.Y, vx, vy)
		s.target++
	default:
		s.state.AppendPlanet(dynamo.Planet{
			X: req.X, Y: req.Y, VX: vx, VY: vy,
			Mass: req.Mass, Radius: req.Radius, Color: req.Color,
		})
	}
	s.stats.Spawns++
	s.logger.Debug("spawn", "kind", req.Kind, "x", req.X, "y", req.Y, "vx", vx, "vy", vy)
}

// ensureGrid grows the cell size when the collision diameter outgrows it.
func (s *Simulator) ensureGrid(diameter float32) {
	if s.grid.Fits(diameter) {
		return
	}
	s.grid = spatial.New(config.DomainSize, diameter)
	s.logger.Debug("grid resized", "cell", diameter)
}
