package sim

import (
	"time"

	"github.com/san-kum/cosmosim/internal/config"
)

// RunConfig drives a headless run of fixed length.
type RunConfig struct {
	Dt            float32
	Frames        int
	SampleEvery   int
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Dt:            1.0 / 60,
		Frames:        600,
		SampleEvery:   1,
		ValidateState: true,
	}
}

// Hook runs before every frame of a headless run. It may edit the frame's
// configuration and queue spawns.
type Hook func(frame int, cfg *config.StepConfig, s *Simulator)

// Sample is one recorded frame of a run.
type Sample struct {
	Frame     int
	Time      float64
	Asteroids int
	Planets   int
	Kinetic   float64
	MomentumX float64
	MomentumY float64
	Contacts  int
}

type Result struct {
	Samples []Sample
	Metrics map[string]float64
	Frames  int
	SimTime float64
	Elapsed time.Duration
	Stats   Stats
}

// Stats are running counters kept by a Simulator.
type Stats struct {
	Frames   int
	Resets   int
	Spawns   int
	Contacts int
	StepTime time.Duration
}
