package metrics

import (
	"math"

	"github.com/san-kum/cosmosim/internal/dynamo"
)

// TotalMomentum sums mass × velocity over every body. Asteroids count as
// unit mass.
func TotalMomentum(snap *dynamo.Snapshot) (px, py float64) {
	for i := range snap.VelX {
		px += float64(snap.VelX[i])
		py += float64(snap.VelY[i])
	}
	for _, p := range snap.Planets {
		px += float64(p.Mass) * float64(p.VX)
		py += float64(p.Mass) * float64(p.VY)
	}
	return
}

// Momentum reports the magnitude of total momentum at the last observed frame.
type Momentum struct {
	name string
	last float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(snap *dynamo.Snapshot, t float64) {
	px, py := TotalMomentum(snap)
	m.last = math.Hypot(px, py)
}

func (m *Momentum) Value() float64 { return m.last }
func (m *Momentum) Reset()         { m.last = 0 }

// Population reports the largest asteroid count seen.
type Population struct {
	name string
	max  int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(snap *dynamo.Snapshot, t float64) {
	if n := snap.Len(); n > p.max {
		p.max = n
	}
}

func (p *Population) Value() float64 { return float64(p.max) }
func (p *Population) Reset()         { p.max = 0 }
