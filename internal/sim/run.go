package sim

import (
	"context"
	"time"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/metrics"
)

// Runner steps a Simulator for a fixed number of frames without a renderer,
// feeding metrics and observers from a snapshot after every frame.
type Runner struct {
	sim       *Simulator
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func NewRunner(s *Simulator) *Runner {
	return &Runner{
		sim:       s,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

// Run advances rc.Frames frames starting from cfg. The context is checked
// between frames; a frame in progress always completes.
func (r *Runner) Run(ctx context.Context, cfg config.StepConfig, rc RunConfig, hook Hook) (*Result, error) {
	if rc.Frames <= 0 {
		return nil, dynamo.ErrNoFrames
	}
	every := rc.SampleEvery
	if every < 1 {
		every = 1
	}

	result := &Result{
		Samples: make([]Sample, 0, rc.Frames/every+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	var snap dynamo.Snapshot
	t := 0.0
	start := time.Now()

	for frame := 0; frame < rc.Frames; frame++ {
		select {
		case <-ctx.Done():
			r.finish(result, t, start)
			return result, ctx.Err()
		default:
		}

		if hook != nil {
			hook(frame, &cfg, r.sim)
		}
		r.sim.Step(cfg, rc.Dt)
		if !cfg.System.Paused {
			t += float64(rc.Dt)
		}
		result.Frames++

		r.sim.Snapshot(&snap)
		for _, m := range r.metrics {
			m.Observe(&snap, t)
		}
		for _, o := range r.observers {
			o.OnStep(frame, &snap, t)
		}

		if frame%every == 0 || frame == rc.Frames-1 {
			result.Samples = append(result.Samples, r.sample(frame, t, &snap))
		}

		if rc.ValidateState && !snap.IsValid() {
			r.finish(result, t, start)
			return result, &dynamo.SimulationError{Frame: frame, Time: t, Wrapped: dynamo.ErrInvalidState}
		}
	}

	r.finish(result, t, start)
	return result, nil
}

func (r *Runner) sample(frame int, t float64, snap *dynamo.Snapshot) Sample {
	px, py := metrics.TotalMomentum(snap)
	return Sample{
		Frame:     frame,
		Time:      t,
		Asteroids: snap.Len(),
		Planets:   len(snap.Planets),
		Kinetic:   metrics.TotalKinetic(snap),
		MomentumX: px,
		MomentumY: py,
		Contacts:  r.sim.Stats().Contacts,
	}
}

func (r *Runner) finish(result *Result, t float64, start time.Time) {
	result.SimTime = t
	result.Elapsed = time.Since(start)
	result.Stats = r.sim.Stats()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
