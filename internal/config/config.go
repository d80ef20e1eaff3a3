package config

const (
	// DomainSize is the side of the square simulation domain.
	DomainSize float32 = 300

	DefaultParticles   = 2000
	DefaultStarMass    = 10000
	DefaultGravityY    = 9.8
	DefaultMutualG     = 0.05
	DefaultAttractor   = 50
	DefaultDamping     = 1.0
	DefaultRestitution = 0.8
	DefaultRadius      = 0.5
	DefaultSubsteps    = 4
	DefaultSpawnMass   = 500
	DefaultSpawnRadius = 5
	DefaultSpawnColor  = "#8fd3ff"
)

// StepConfig is the per-step configuration snapshot. It is passed by value
// into every step and never retained by the core beyond that call.
//
// Each section doubles as a yaml mapping and a gcfg INI section.
type StepConfig struct {
	System    SystemConfig    `yaml:"system" gcfg:"system"`
	Gravity   GravityConfig   `yaml:"gravity" gcfg:"gravity"`
	Star      StarConfig      `yaml:"star" gcfg:"star"`
	Mutual    MutualConfig    `yaml:"mutual" gcfg:"mutual"`
	Attractor AttractorConfig `yaml:"attractor" gcfg:"attractor"`
	Physics   PhysicsConfig   `yaml:"physics" gcfg:"physics"`
	Spawn     SpawnConfig     `yaml:"spawn" gcfg:"spawn"`
}

type SystemConfig struct {
	Paused        bool  `yaml:"paused" gcfg:"paused"`
	ParticleCount int   `yaml:"particle_count" gcfg:"particle-count"`
	Seed          int64 `yaml:"seed" gcfg:"seed"`
}

// GravityConfig is the uniform global gravity vector.
type GravityConfig struct {
	Enabled bool    `yaml:"enabled" gcfg:"enabled"`
	X       float32 `yaml:"x" gcfg:"x"`
	Y       float32 `yaml:"y" gcfg:"y"`
}

type StarConfig struct {
	Enabled bool    `yaml:"enabled" gcfg:"enabled"`
	Mass    float32 `yaml:"mass" gcfg:"mass"`
	X       float32 `yaml:"x" gcfg:"x"`
	Y       float32 `yaml:"y" gcfg:"y"`
}

// MutualConfig controls short-range asteroid-asteroid attraction.
type MutualConfig struct {
	Enabled bool    `yaml:"enabled" gcfg:"enabled"`
	G       float32 `yaml:"g" gcfg:"g"`
}

// AttractorConfig pulls asteroids toward an external point, usually the pointer.
type AttractorConfig struct {
	Enabled  bool    `yaml:"enabled" gcfg:"enabled"`
	X        float32 `yaml:"x" gcfg:"x"`
	Y        float32 `yaml:"y" gcfg:"y"`
	Strength float32 `yaml:"strength" gcfg:"strength"`
}

type PhysicsConfig struct {
	Damping         float32 `yaml:"damping" gcfg:"damping"`
	Restitution     float32 `yaml:"restitution" gcfg:"restitution"`
	CollisionRadius float32 `yaml:"collision_radius" gcfg:"collision-radius"`
	Collisions      bool    `yaml:"collisions" gcfg:"collisions"`
	Substeps        int     `yaml:"substeps" gcfg:"substeps"`
}

// SpawnConfig holds the defaults a driver uses to build spawn requests.
// The step itself never reads it.
type SpawnConfig struct {
	Kind      string  `yaml:"kind" gcfg:"kind"`
	Mass      float32 `yaml:"mass" gcfg:"mass"`
	Radius    float32 `yaml:"radius" gcfg:"radius"`
	Color     string  `yaml:"color" gcfg:"color"`
	AutoOrbit bool    `yaml:"auto_orbit" gcfg:"auto-orbit"`
	VelX      float32 `yaml:"vel_x" gcfg:"vel-x"`
	VelY      float32 `yaml:"vel_y" gcfg:"vel-y"`
}

// Center returns the middle of the domain.
func Center() (float32, float32) {
	return DomainSize / 2, DomainSize / 2
}

func Default() StepConfig {
	cx, cy := Center()
	return StepConfig{
		System: SystemConfig{
			ParticleCount: DefaultParticles,
		},
		Gravity: GravityConfig{
			Y: DefaultGravityY,
		},
		Star: StarConfig{
			Enabled: true,
			Mass:    DefaultStarMass,
			X:       cx,
			Y:       cy,
		},
		Mutual: MutualConfig{
			G: DefaultMutualG,
		},
		Attractor: AttractorConfig{
			X:        cx,
			Y:        cy,
			Strength: DefaultAttractor,
		},
		Physics: PhysicsConfig{
			Damping:         DefaultDamping,
			Restitution:     DefaultRestitution,
			CollisionRadius: DefaultRadius,
			Collisions:      true,
			Substeps:        DefaultSubsteps,
		},
		Spawn: SpawnConfig{
			Kind:      KindPlanet.String(),
			Mass:      DefaultSpawnMass,
			Radius:    DefaultSpawnRadius,
			Color:     DefaultSpawnColor,
			AutoOrbit: true,
		},
	}
}

// SpawnAt builds a one-shot request at (x, y) from the spawn defaults.
// An unparsable color falls back to DefaultSpawnColor.
func (c StepConfig) SpawnAt(x, y float32) SpawnRequest {
	col, err := ParseColor(c.Spawn.Color)
	if err != nil {
		col, _ = ParseColor(DefaultSpawnColor)
	}
	return SpawnRequest{
		Kind:      ParseKind(c.Spawn.Kind),
		X:         x,
		Y:         y,
		VelX:      c.Spawn.VelX,
		VelY:      c.Spawn.VelY,
		AutoOrbit: c.Spawn.AutoOrbit,
		Mass:      c.Spawn.Mass,
		Radius:    c.Spawn.Radius,
		Color:     col,
	}
}
