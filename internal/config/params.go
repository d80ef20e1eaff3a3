package config

import (
	"fmt"
	"math"
	"sort"
)

// param binds a tunable name to exactly one field of a StepConfig.
type param struct {
	f32 *float32
	i   *int
	b   *bool
}

func (p param) get() float64 {
	switch {
	case p.f32 != nil:
		return float64(*p.f32)
	case p.i != nil:
		return float64(*p.i)
	case *p.b:
		return 1
	}
	return 0
}

func (p param) set(v float64) {
	switch {
	case p.f32 != nil:
		*p.f32 = float32(v)
	case p.i != nil:
		*p.i = int(math.Round(v))
	default:
		*p.b = v != 0
	}
}

func (c *StepConfig) table() map[string]param {
	return map[string]param{
		"paused":           {b: &c.System.Paused},
		"particles":        {i: &c.System.ParticleCount},
		"gravity":          {b: &c.Gravity.Enabled},
		"gravity_x":        {f32: &c.Gravity.X},
		"gravity_y":        {f32: &c.Gravity.Y},
		"star":             {b: &c.Star.Enabled},
		"star_mass":        {f32: &c.Star.Mass},
		"star_x":           {f32: &c.Star.X},
		"star_y":           {f32: &c.Star.Y},
		"mutual":           {b: &c.Mutual.Enabled},
		"mutual_g":         {f32: &c.Mutual.G},
		"attractor":        {b: &c.Attractor.Enabled},
		"attractor_x":      {f32: &c.Attractor.X},
		"attractor_y":      {f32: &c.Attractor.Y},
		"attractor_str":    {f32: &c.Attractor.Strength},
		"damping":          {f32: &c.Physics.Damping},
		"restitution":      {f32: &c.Physics.Restitution},
		"collision_radius": {f32: &c.Physics.CollisionRadius},
		"collisions":       {b: &c.Physics.Collisions},
		"substeps":         {i: &c.Physics.Substeps},
	}
}

// Params returns every tunable value keyed by name. Booleans read as 0 or 1.
func (c StepConfig) Params() map[string]float64 {
	out := make(map[string]float64)
	for k, p := range c.table() {
		out[k] = p.get()
	}
	return out
}

// SetParam assigns one tunable by name. Booleans are true for any non-zero value.
func (c *StepConfig) SetParam(name string, value float64) error {
	p, ok := c.table()[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	p.set(value)
	return nil
}

// IsToggle reports whether name is a boolean parameter.
func (c *StepConfig) IsToggle(name string) bool {
	p, ok := c.table()[name]
	return ok && p.b != nil
}

// IsInteger reports whether name is an integer parameter.
func (c *StepConfig) IsInteger(name string) bool {
	p, ok := c.table()[name]
	return ok && p.i != nil
}

func ParamNames() []string {
	var c StepConfig
	names := make([]string, 0, 24)
	for k := range c.table() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
