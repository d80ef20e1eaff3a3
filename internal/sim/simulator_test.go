package sim

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/physics"
)

const frameDt float32 = 1.0 / 60

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func testConfig(particles int) config.StepConfig {
	cfg := config.Default()
	cfg.System.ParticleCount = particles
	cfg.System.Seed = 42
	return cfg
}

var _ = Describe("Simulator", func() {
	var (
		cfg config.StepConfig
		s   *Simulator
	)

	BeforeEach(func() {
		cfg = testConfig(200)
		s = New(cfg, WithLogger(quietLogger()))
	})

	Describe("New", func() {
		It("seeds the configured asteroids and the preset planets", func() {
			var snap dynamo.Snapshot
			s.Snapshot(&snap)
			Expect(snap.Len()).To(Equal(200))
			Expect(snap.Planets).To(HaveLen(len(physics.PresetPlanets)))
			Expect(s.TargetCount()).To(Equal(200))
			Expect(s.Stats().Resets).To(Equal(1))
		})

		It("is reproducible for a fixed seed", func() {
			other := New(cfg, WithLogger(quietLogger()))
			var a, b dynamo.Snapshot
			s.Snapshot(&a)
			other.Snapshot(&b)
			Expect(a.PosX).To(Equal(b.PosX))
			Expect(a.Planets).To(Equal(b.Planets))
		})
	})

	Describe("Spawn", func() {
		It("applies a queued spawn while paused and leaves everything else alone", func() {
			var before, after dynamo.Snapshot
			s.Snapshot(&before)

			cfg.System.Paused = true
			req := cfg.SpawnAt(100, 100)
			req.Kind = config.KindPlanet
			req.AutoOrbit = false
			s.Spawn(req)
			Expect(s.PendingSpawn()).To(BeTrue())

			s.Step(cfg, frameDt)
			s.Snapshot(&after)

			Expect(s.PendingSpawn()).To(BeFalse())
			Expect(after.Planets).To(HaveLen(len(before.Planets) + 1))
			Expect(after.Planets[:len(before.Planets)]).To(Equal(before.Planets))
			Expect(after.PosX).To(Equal(before.PosX))
			Expect(after.VelY).To(Equal(before.VelY))

			p := after.Planets[len(after.Planets)-1]
			Expect(p.X).To(BeNumerically("==", 100))
			Expect(p.Y).To(BeNumerically("==", 100))
			Expect(p.Mass).To(BeNumerically("==", cfg.Spawn.Mass))
		})

		It("keeps only the latest request before a step", func() {
			cfg.System.Paused = true
			first := cfg.SpawnAt(50, 50)
			second := cfg.SpawnAt(60, 60)
			s.Spawn(first)
			s.Spawn(second)
			s.Step(cfg, frameDt)

			var snap dynamo.Snapshot
			s.Snapshot(&snap)
			Expect(snap.Planets).To(HaveLen(len(physics.PresetPlanets) + 1))
			Expect(snap.Planets[len(snap.Planets)-1].X).To(BeNumerically("==", 60))
			Expect(s.Stats().Spawns).To(Equal(1))
		})

		It("gives auto-orbit spawns the circular velocity around the star", func() {
			cfg.System.Paused = true
			cx, cy := config.Center()
			req := cfg.SpawnAt(cx+40, cy)
			req.AutoOrbit = true
			s.Spawn(req)
			s.Step(cfg, frameDt)

			var snap dynamo.Snapshot
			s.Snapshot(&snap)
			p := snap.Planets[len(snap.Planets)-1]
			want := math.Sqrt(float64(cfg.Star.Mass) / 40)
			Expect(float64(p.VX)).To(BeNumerically("~", 0, 1e-4))
			Expect(float64(p.VY)).To(BeNumerically("~", want, 1e-3))
		})

		It("uses the request velocity when auto-orbit has no tangent", func() {
			cfg.System.Paused = true
			req := cfg.SpawnAt(cfg.Star.X, cfg.Star.Y)
			req.AutoOrbit = true
			req.VelX, req.VelY = 2, -3
			s.Spawn(req)
			s.Step(cfg, frameDt)

			var snap dynamo.Snapshot
			s.Snapshot(&snap)
			p := snap.Planets[len(snap.Planets)-1]
			Expect(p.VX).To(BeNumerically("==", 2))
			Expect(p.VY).To(BeNumerically("==", -3))
		})

		It("does not reset after an asteroid spawn", func() {
			s.Step(cfg, frameDt)

			req := cfg.SpawnAt(20, 20)
			req.Kind = config.KindAsteroid
			req.AutoOrbit = false
			s.Spawn(req)
			s.Step(cfg, frameDt)
			s.Step(cfg, frameDt)

			Expect(s.TargetCount()).To(Equal(201))
			Expect(s.Stats().Resets).To(Equal(1))

			var snap dynamo.Snapshot
			s.Snapshot(&snap)
			Expect(snap.Len()).To(Equal(201))
		})
	})

	Describe("Step", func() {
		It("reseeds when the particle count changes and discards spawned bodies", func() {
			req := cfg.SpawnAt(30, 30)
			s.Spawn(req)
			s.Step(cfg, frameDt)

			cfg.System.ParticleCount = 350
			s.Step(cfg, frameDt)

			var snap dynamo.Snapshot
			s.Snapshot(&snap)
			Expect(snap.Len()).To(Equal(350))
			Expect(snap.Planets).To(HaveLen(len(physics.PresetPlanets)))
			Expect(s.TargetCount()).To(Equal(350))
			Expect(s.Stats().Resets).To(Equal(2))
		})

		It("does not advance while paused", func() {
			var before, after dynamo.Snapshot
			s.Snapshot(&before)

			cfg.System.Paused = true
			cfg.System.ParticleCount = 10
			for i := 0; i < 5; i++ {
				s.Step(cfg, frameDt)
			}
			s.Snapshot(&after)

			Expect(after).To(Equal(before))
			Expect(s.Stats().Frames).To(BeZero())
		})

		It("keeps every asteroid inside the domain", func() {
			cfg.Gravity.Enabled = true
			cfg.Attractor.Enabled = true
			cfg.Mutual.Enabled = true
			for i := 0; i < 120; i++ {
				s.Step(cfg, frameDt)
			}

			var snap dynamo.Snapshot
			s.Snapshot(&snap)
			Expect(snap.IsValid()).To(BeTrue())
			r := cfg.Physics.CollisionRadius
			for i := range snap.PosX {
				Expect(snap.PosX[i]).To(BeNumerically(">=", r))
				Expect(snap.PosX[i]).To(BeNumerically("<=", config.DomainSize-r))
				Expect(snap.PosY[i]).To(BeNumerically(">=", r))
				Expect(snap.PosY[i]).To(BeNumerically("<=", config.DomainSize-r))
			}
		})

		It("treats a zero substep count as one", func() {
			cfg.Physics.Substeps = 0
			var before, after dynamo.Snapshot
			s.Snapshot(&before)
			s.Step(cfg, frameDt)
			s.Snapshot(&after)
			Expect(after.IsValid()).To(BeTrue())
			Expect(after.PosX).NotTo(Equal(before.PosX))
		})

		It("grows the grid when the collision diameter outgrows a cell", func() {
			cfg.Physics.CollisionRadius = 3
			s.Step(cfg, frameDt)
			Expect(s.grid.CellSize()).To(BeNumerically(">=", 6))
		})
	})

	Describe("a lone planet around the star", func() {
		const dist float32 = 40

		BeforeEach(func() {
			cfg = testConfig(0)
			cfg.Physics.Collisions = false
			s = New(cfg, WithLogger(quietLogger()))

			cx, cy := config.Center()
			v := physics.CircularSpeed(cfg.Star.Mass, dist)
			s.state.Planets = s.state.Planets[:0]
			s.state.AppendPlanet(dynamo.Planet{X: cx + dist, Y: cy, VY: v, Mass: 200, Radius: 4})
		})

		It("starts at the circular speed", func() {
			Expect(float64(s.state.Planets[0].VY)).To(BeNumerically("~", 15.81, 0.01))
		})

		It("stays near its orbit radius", func() {
			cx, cy := config.Center()
			for i := 0; i < 60; i++ {
				s.Step(cfg, frameDt)
				p := s.state.Planets[0]
				d := math.Hypot(float64(p.X-cx), float64(p.Y-cy))
				Expect(d).To(BeNumerically("~", float64(dist), 0.5))
			}
			Expect(s.Stats().Resets).To(Equal(1))
		})

		It("keeps its speed to within O(dt) after one step", func() {
			v0 := float64(physics.CircularSpeed(cfg.Star.Mass, dist))
			deviation := func(dt float32) float64 {
				cx, cy := config.Center()
				fresh := New(cfg, WithLogger(quietLogger()))
				fresh.state.Planets = fresh.state.Planets[:0]
				fresh.state.AppendPlanet(dynamo.Planet{X: cx + dist, Y: cy, VY: float32(v0), Mass: 200, Radius: 4})
				fresh.Step(cfg, dt)
				p := fresh.state.Planets[0]
				return math.Abs(math.Hypot(float64(p.VX), float64(p.VY)) - v0)
			}

			coarse := deviation(frameDt)
			fine := deviation(frameDt / 10)
			Expect(coarse).To(BeNumerically("<", float64(frameDt)))
			Expect(fine).To(BeNumerically("<", float64(frameDt)/10))
			Expect(fine).To(BeNumerically("<", coarse))
		})
	})
})
