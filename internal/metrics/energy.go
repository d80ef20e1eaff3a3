package metrics

import (
	"math"

	"github.com/san-kum/cosmosim/internal/dynamo"
)

// TotalKinetic returns the kinetic energy of every body in snap. Asteroids
// count as unit mass.
func TotalKinetic(snap *dynamo.Snapshot) float64 {
	ke := 0.0
	for i := range snap.VelX {
		vx, vy := float64(snap.VelX[i]), float64(snap.VelY[i])
		ke += 0.5 * (vx*vx + vy*vy)
	}
	for _, p := range snap.Planets {
		vx, vy := float64(p.VX), float64(p.VY)
		ke += 0.5 * float64(p.Mass) * (vx*vx + vy*vy)
	}
	return ke
}

// OrbitalEnergy returns the planets' kinetic plus star-potential energy
// about a star of the given mass at (sx, sy). Planet-planet potential is
// left out.
func OrbitalEnergy(snap *dynamo.Snapshot, sx, sy, starMass float64) float64 {
	e := 0.0
	for _, p := range snap.Planets {
		m := float64(p.Mass)
		vx, vy := float64(p.VX), float64(p.VY)
		dx, dy := float64(p.X)-sx, float64(p.Y)-sy
		r := math.Sqrt(dx*dx + dy*dy)
		e += 0.5 * m * (vx*vx + vy*vy)
		if r > 1 {
			e -= starMass * m / r
		}
	}
	return e
}

// KineticEnergy averages TotalKinetic over the observed frames.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(snap *dynamo.Snapshot, t float64) {
	e.total += TotalKinetic(snap)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative change of the planets' orbital
// energy since the first observed frame.
type EnergyDrift struct {
	name          string
	sx, sy, mass  float64
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(sx, sy, starMass float64) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", sx: sx, sy: sy, mass: starMass}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(snap *dynamo.Snapshot, t float64) {
	energy := OrbitalEnergy(snap, e.sx, e.sy, e.mass)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
