package config

import "sort"

// Presets are named starting points. Each entry is built from Default.
var Presets = map[string]func() StepConfig{
	"belt": Default,
	"dense": func() StepConfig {
		c := Default()
		c.System.ParticleCount = 8000
		c.Physics.CollisionRadius = 0.4
		c.Physics.Substeps = 6
		return c
	},
	"box": func() StepConfig {
		c := Default()
		c.Star.Enabled = false
		c.Gravity.Enabled = true
		c.Physics.Damping = 0.99
		c.System.ParticleCount = 1000
		c.Physics.CollisionRadius = 1.0
		return c
	},
	"calm": func() StepConfig {
		c := Default()
		c.Physics.Damping = 0.999
		c.Physics.Restitution = 0.5
		return c
	},
	"swarm": func() StepConfig {
		c := Default()
		c.Attractor.Enabled = true
		c.Mutual.Enabled = true
		c.Physics.Damping = 0.995
		return c
	},
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (StepConfig, bool) {
	fn, ok := Presets[name]
	if !ok {
		return StepConfig{}, false
	}
	return fn(), true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for k := range Presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
