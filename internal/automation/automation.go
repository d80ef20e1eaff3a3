package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/metrics"
	"github.com/san-kum/cosmosim/internal/sim"
)

var ErrEmptyScenario = errors.New("automation: scenario has no frames")

// Scenario is a scripted headless run: a starting preset plus events keyed
// by frame number.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Preset      string  `yaml:"preset"`
	Particles   int     `yaml:"particles"`
	Frames      int     `yaml:"frames"`
	Dt          float32 `yaml:"dt"`
	Seed        int64   `yaml:"seed"`
	Events      []Event `yaml:"events"`
}

// Event fires before the step of its frame. Set is applied first, then
// pause/resume, then the spawn is queued.
type Event struct {
	Frame  int                `yaml:"frame"`
	Set    map[string]float64 `yaml:"set"`
	Spawn  *SpawnEvent        `yaml:"spawn"`
	Pause  bool               `yaml:"pause"`
	Resume bool               `yaml:"resume"`
}

// SpawnEvent overrides the config's spawn defaults for one spawn. Zero
// fields keep the defaults.
type SpawnEvent struct {
	Kind      string  `yaml:"kind"`
	X         float32 `yaml:"x"`
	Y         float32 `yaml:"y"`
	VelX      float32 `yaml:"vel_x"`
	VelY      float32 `yaml:"vel_y"`
	AutoOrbit *bool   `yaml:"auto_orbit"`
	Mass      float32 `yaml:"mass"`
	Radius    float32 `yaml:"radius"`
	Color     string  `yaml:"color"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// Config builds the scenario's starting configuration.
func (s *Scenario) Config() (config.StepConfig, error) {
	cfg := config.Default()
	if s.Preset != "" {
		p, ok := config.GetPreset(s.Preset)
		if !ok {
			return cfg, fmt.Errorf("%w: %s", config.ErrUnknownPreset, s.Preset)
		}
		cfg = p
	}
	if s.Particles > 0 {
		cfg.System.ParticleCount = s.Particles
	}
	cfg.System.Seed = s.Seed
	return cfg, nil
}

// RunConfig returns the headless run settings, falling back to the defaults
// for a zero dt.
func (s *Scenario) RunConfig() sim.RunConfig {
	rc := sim.DefaultRunConfig()
	rc.Frames = s.Frames
	if s.Dt > 0 {
		rc.Dt = s.Dt
	}
	return rc
}

// Validate checks the frame count and every event's parameter names and
// colors.
func (s *Scenario) Validate() error {
	if s.Frames <= 0 {
		return ErrEmptyScenario
	}
	probe := config.Default()
	for _, ev := range s.Events {
		for name, v := range ev.Set {
			if err := probe.SetParam(name, v); err != nil {
				return fmt.Errorf("event at frame %d: %w", ev.Frame, err)
			}
		}
		if ev.Spawn != nil && ev.Spawn.Color != "" {
			if _, err := config.ParseColor(ev.Spawn.Color); err != nil {
				return fmt.Errorf("event at frame %d: %w", ev.Frame, err)
			}
		}
	}
	return nil
}

// Hook turns the scenario's events into a per-frame sim.Hook.
func (s *Scenario) Hook() sim.Hook {
	byFrame := make(map[int][]Event)
	for _, ev := range s.Events {
		byFrame[ev.Frame] = append(byFrame[ev.Frame], ev)
	}

	return func(frame int, cfg *config.StepConfig, sm *sim.Simulator) {
		for _, ev := range byFrame[frame] {
			for name, v := range ev.Set {
				_ = cfg.SetParam(name, v)
			}
			if ev.Pause {
				cfg.System.Paused = true
			}
			if ev.Resume {
				cfg.System.Paused = false
			}
			if ev.Spawn != nil {
				sm.Spawn(ev.Spawn.request(*cfg))
			}
		}
	}
}

func (e *SpawnEvent) request(cfg config.StepConfig) config.SpawnRequest {
	req := cfg.SpawnAt(e.X, e.Y)
	if e.Kind != "" {
		req.Kind = config.ParseKind(e.Kind)
	}
	if e.VelX != 0 || e.VelY != 0 {
		req.VelX, req.VelY = e.VelX, e.VelY
	}
	if e.AutoOrbit != nil {
		req.AutoOrbit = *e.AutoOrbit
	}
	if e.Mass > 0 {
		req.Mass = e.Mass
	}
	if e.Radius > 0 {
		req.Radius = e.Radius
	}
	if c, err := config.ParseColor(e.Color); err == nil {
		req.Color = c
	}
	return req
}

// Run executes a scenario with the default metric set and returns the
// result plus the final snapshot.
func Run(ctx context.Context, scenario *Scenario, logger *log.Logger) (*sim.Result, *dynamo.Snapshot, error) {
	if err := scenario.Validate(); err != nil {
		return nil, nil, err
	}
	cfg, err := scenario.Config()
	if err != nil {
		return nil, nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	logger.Info("running scenario", "name", scenario.Name, "frames", scenario.Frames, "events", len(scenario.Events))

	s := sim.New(cfg, sim.WithLogger(logger))
	runner := sim.NewRunner(s)
	for _, m := range metrics.ForConfig(cfg) {
		runner.AddMetric(m)
	}

	result, err := runner.Run(ctx, cfg, scenario.RunConfig(), scenario.Hook())
	if err != nil {
		return result, nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	var snap dynamo.Snapshot
	s.Snapshot(&snap)
	return result, &snap, nil
}
