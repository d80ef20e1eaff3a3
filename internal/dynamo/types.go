package dynamo

import (
	"image/color"
	"math"
)

// Planet is a massive body. Planets take part in N-body gravity and wall
// reflection but never in grid collisions.
type Planet struct {
	X, Y   float32
	VX, VY float32
	Mass   float32
	Radius float32
	Color  color.RGBA
}

// State is the simulator's only mutable data store. The four asteroid
// columns are index-aligned and always have the same length.
type State struct {
	PosX, PosY []float32
	VelX, VelY []float32
	Planets    []Planet
}

func NewState(capacity int) *State {
	return &State{
		PosX:    make([]float32, 0, capacity),
		PosY:    make([]float32, 0, capacity),
		VelX:    make([]float32, 0, capacity),
		VelY:    make([]float32, 0, capacity),
		Planets: make([]Planet, 0, 8),
	}
}

// Len returns the live asteroid count.
func (s *State) Len() int { return len(s.PosX) }

func (s *State) AppendAsteroid(x, y, vx, vy float32) {
	s.PosX = append(s.PosX, x)
	s.PosY = append(s.PosY, y)
	s.VelX = append(s.VelX, vx)
	s.VelY = append(s.VelY, vy)
}

func (s *State) AppendPlanet(p Planet) {
	s.Planets = append(s.Planets, p)
}

// Clear drops every asteroid and planet but keeps the allocated capacity.
func (s *State) Clear() {
	s.PosX = s.PosX[:0]
	s.PosY = s.PosY[:0]
	s.VelX = s.VelX[:0]
	s.VelY = s.VelY[:0]
	s.Planets = s.Planets[:0]
}

// Snapshot is a detached, read-only copy of a State.
type Snapshot struct {
	PosX    []float32 `msgpack:"pos_x"`
	PosY    []float32 `msgpack:"pos_y"`
	VelX    []float32 `msgpack:"vel_x"`
	VelY    []float32 `msgpack:"vel_y"`
	Planets []Planet  `msgpack:"planets"`
}

// SnapshotInto copies s into dst, reusing dst's buffers when large enough.
func (s *State) SnapshotInto(dst *Snapshot) {
	dst.PosX = append(dst.PosX[:0], s.PosX...)
	dst.PosY = append(dst.PosY[:0], s.PosY...)
	dst.VelX = append(dst.VelX[:0], s.VelX...)
	dst.VelY = append(dst.VelY[:0], s.VelY...)
	dst.Planets = append(dst.Planets[:0], s.Planets...)
}

// Len returns the asteroid count captured in the snapshot.
func (s *Snapshot) Len() int { return len(s.PosX) }

// IsValid reports whether every captured coordinate is finite.
func (s *Snapshot) IsValid() bool {
	for _, col := range [][]float32{s.PosX, s.PosY, s.VelX, s.VelY} {
		for _, v := range col {
			if !finite(v) {
				return false
			}
		}
	}
	for _, p := range s.Planets {
		if !finite(p.X) || !finite(p.Y) || !finite(p.VX) || !finite(p.VY) {
			return false
		}
	}
	return true
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Metric accumulates a scalar over the snapshots of a run.
type Metric interface {
	Name() string
	Observe(snap *Snapshot, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every frame of a headless run.
type Observer interface {
	OnStep(frame int, snap *Snapshot, t float64)
}
