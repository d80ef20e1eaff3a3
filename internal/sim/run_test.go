package sim

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/metrics"
)

type frameCounter struct{ frames []int }

func (c *frameCounter) OnStep(frame int, snap *dynamo.Snapshot, t float64) {
	c.frames = append(c.frames, frame)
}

var _ = Describe("Runner", func() {
	var (
		cfg    config.StepConfig
		runner *Runner
		rc     RunConfig
	)

	BeforeEach(func() {
		cfg = testConfig(100)
		runner = NewRunner(New(cfg, WithLogger(quietLogger())))
		rc = DefaultRunConfig()
		rc.Frames = 25
		rc.SampleEvery = 10
	})

	It("rejects a run without frames", func() {
		rc.Frames = 0
		_, err := runner.Run(context.Background(), cfg, rc, nil)
		Expect(err).To(MatchError(dynamo.ErrNoFrames))
	})

	It("samples every N frames plus the last one", func() {
		result, err := runner.Run(context.Background(), cfg, rc, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Frames).To(Equal(25))

		frames := make([]int, 0, len(result.Samples))
		for _, smp := range result.Samples {
			frames = append(frames, smp.Frame)
			Expect(smp.Asteroids).To(Equal(100))
			Expect(smp.Kinetic).To(BeNumerically(">", 0))
		}
		Expect(frames).To(Equal([]int{0, 10, 20, 24}))
		Expect(result.SimTime).To(BeNumerically("~", 25*float64(rc.Dt), 1e-9))
	})

	It("feeds metrics and observers every frame", func() {
		obs := &frameCounter{}
		runner.AddObserver(obs)
		runner.AddMetric(metrics.NewPopulation())

		result, err := runner.Run(context.Background(), cfg, rc, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(obs.frames).To(HaveLen(25))
		Expect(result.Metrics).To(HaveKeyWithValue("population", 100.0))
	})

	It("lets a hook pause time and queue spawns", func() {
		hook := func(frame int, c *config.StepConfig, s *Simulator) {
			if frame == 5 {
				c.System.Paused = true
				req := c.SpawnAt(40, 40)
				req.Kind = config.KindAsteroid
				s.Spawn(req)
			}
		}

		result, err := runner.Run(context.Background(), cfg, rc, hook)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.SimTime).To(BeNumerically("~", 5*float64(rc.Dt), 1e-9))
		Expect(result.Stats.Spawns).To(Equal(1))
		Expect(result.Samples[len(result.Samples)-1].Asteroids).To(Equal(101))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := runner.Run(ctx, cfg, rc, nil)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(result.Frames).To(BeZero())
	})
})

var _ = Describe("Ensemble", func() {
	It("runs independent seeds", func() {
		cfg := testConfig(80)
		rc := DefaultRunConfig()
		rc.Frames = 10

		ens := NewEnsemble(cfg, 3, 7, func() []dynamo.Metric {
			return []dynamo.Metric{metrics.NewPopulation(), metrics.NewKineticEnergy()}
		}, quietLogger())

		results, err := ens.Run(context.Background(), rc)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for _, r := range results {
			Expect(r.Frames).To(Equal(10))
			Expect(r.Metrics).To(HaveKeyWithValue("population", 80.0))
		}
		Expect(results[0].Metrics["kinetic_energy"]).NotTo(Equal(results[1].Metrics["kinetic_energy"]))
	})
})
