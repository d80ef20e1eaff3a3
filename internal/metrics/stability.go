package metrics

import (
	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
)

// Stability is the fraction of frames in which every asteroid is finite and
// inside the domain.
type Stability struct {
	name       string
	domain     float32
	violations int
	samples    int
}

func NewStability(domain float32) *Stability {
	return &Stability{
		name:   "stability",
		domain: domain,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(snap *dynamo.Snapshot, t float64) {
	s.samples++
	if !snap.IsValid() {
		s.violations++
		return
	}
	for i := range snap.PosX {
		x, y := snap.PosX[i], snap.PosY[i]
		if x < 0 || y < 0 || x > s.domain || y > s.domain {
			s.violations++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Defaults returns the metric set recorded by headless runs.
func Defaults(domain float32, sx, sy, starMass float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(sx, sy, starMass),
		NewMomentum(),
		NewPopulation(),
		NewStability(domain),
	}
}

// ForConfig returns Defaults for cfg's domain and star.
func ForConfig(cfg config.StepConfig) []dynamo.Metric {
	return Defaults(config.DomainSize, float64(cfg.Star.X), float64(cfg.Star.Y), float64(cfg.Star.Mass))
}
