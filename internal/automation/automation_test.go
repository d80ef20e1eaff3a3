package automation

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cosmosim/internal/config"
)

const scenarioYAML = `
name: spawn-and-pause
description: spawn an asteroid, then pause halfway
preset: calm
particles: 60
frames: 20
dt: 0.02
seed: 9
events:
  - frame: 2
    spawn:
      kind: asteroid
      x: 30
      y: 40
      auto_orbit: false
  - frame: 5
    set:
      collisions: 0
      damping: 0.9
  - frame: 10
    pause: true
  - frame: 15
    resume: true
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func quiet() *log.Logger { return log.New(io.Discard) }

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, "spawn-and-pause", sc.Name)
	assert.Equal(t, 20, sc.Frames)
	assert.InDelta(t, 0.02, sc.Dt, 1e-7)
	require.Len(t, sc.Events, 4)
	require.NotNil(t, sc.Events[0].Spawn)
	require.NotNil(t, sc.Events[0].Spawn.AutoOrbit)
	assert.False(t, *sc.Events[0].Spawn.AutoOrbit)
	assert.Equal(t, 0.9, sc.Events[1].Set["damping"])
}

func TestScenarioConfig(t *testing.T) {
	sc := &Scenario{Preset: "calm", Particles: 60, Seed: 9}
	cfg, err := sc.Config()
	require.NoError(t, err)

	want, _ := config.GetPreset("calm")
	assert.Equal(t, want.Physics, cfg.Physics)
	assert.Equal(t, 60, cfg.System.ParticleCount)
	assert.Equal(t, int64(9), cfg.System.Seed)

	sc.Preset = "nebula"
	_, err = sc.Config()
	assert.True(t, errors.Is(err, config.ErrUnknownPreset), "got %v", err)
}

func TestValidate(t *testing.T) {
	assert.True(t, errors.Is((&Scenario{}).Validate(), ErrEmptyScenario))

	sc := &Scenario{Frames: 5, Events: []Event{{Frame: 1, Set: map[string]float64{"warp": 1}}}}
	assert.True(t, errors.Is(sc.Validate(), config.ErrUnknownParam))

	sc = &Scenario{Frames: 5, Events: []Event{{Frame: 1, Spawn: &SpawnEvent{Color: "red"}}}}
	assert.True(t, errors.Is(sc.Validate(), config.ErrBadColor))
}

func TestHookAppliesEventsInOrder(t *testing.T) {
	sc := &Scenario{
		Frames: 3,
		Events: []Event{
			{Frame: 1, Set: map[string]float64{"star_mass": 123}, Pause: true},
			{Frame: 2, Resume: true},
		},
	}
	hook := sc.Hook()
	cfg := config.Default()

	hook(0, &cfg, nil)
	assert.False(t, cfg.System.Paused)

	hook(1, &cfg, nil)
	assert.True(t, cfg.System.Paused)
	assert.Equal(t, float32(123), cfg.Star.Mass)

	hook(2, &cfg, nil)
	assert.False(t, cfg.System.Paused)
}

func TestSpawnEventRequest(t *testing.T) {
	cfg := config.Default()
	off := false
	ev := &SpawnEvent{Kind: "asteroid", X: 5, Y: 6, AutoOrbit: &off, Color: "#010203"}

	req := ev.request(cfg)
	assert.Equal(t, config.KindAsteroid, req.Kind)
	assert.False(t, req.AutoOrbit)
	assert.Equal(t, cfg.Spawn.Mass, req.Mass)
	assert.Equal(t, uint8(2), req.Color.G)

	ev = &SpawnEvent{X: 5, Y: 6, Mass: 42}
	req = ev.request(cfg)
	assert.Equal(t, config.KindPlanet, req.Kind)
	assert.True(t, req.AutoOrbit)
	assert.Equal(t, float32(42), req.Mass)
}

func TestRun(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	result, snap, err := Run(context.Background(), sc, quiet())
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, 20, result.Frames)
	assert.Equal(t, 1, result.Stats.Spawns)
	assert.Equal(t, 61, snap.Len())
	// five paused frames do not advance time
	assert.InDelta(t, 15*0.02, result.SimTime, 1e-6)
	assert.Contains(t, result.Metrics, "population")
}

func TestRunEmpty(t *testing.T) {
	_, _, err := Run(context.Background(), &Scenario{}, quiet())
	assert.True(t, errors.Is(err, ErrEmptyScenario))
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Preset:    "calm",
		ParamName: "restitution",
		ParamMin:  0.2,
		ParamMax:  0.8,
		NumSteps:  3,
		Frames:    5,
		Seed:      3,
	}
	results, err := RunSweep(context.Background(), sweep, quiet())
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.InDelta(t, 0.2, results[0].ParamValue, 1e-9)
	assert.InDelta(t, 0.5, results[1].ParamValue, 1e-9)
	assert.InDelta(t, 0.8, results[2].ParamValue, 1e-9)
	for _, r := range results {
		assert.Equal(t, 4, r.Final.Frame)
	}

	sweep.ParamName = "warp"
	_, err = RunSweep(context.Background(), sweep, quiet())
	assert.True(t, errors.Is(err, config.ErrUnknownParam))
}

func TestRunSweepRoundsIntegerParams(t *testing.T) {
	sweep := &ParameterSweep{
		Preset:    "calm",
		ParamName: "particles",
		ParamMin:  10,
		ParamMax:  11,
		NumSteps:  4,
		Frames:    2,
		Seed:      5,
	}
	results, err := RunSweep(context.Background(), sweep, quiet())
	require.NoError(t, err)
	require.Len(t, results, 4)

	want := []float64{10, 10, 11, 11}
	for i, r := range results {
		assert.Equal(t, want[i], r.ParamValue, "step %d", i)
		assert.Equal(t, int(r.ParamValue), r.Final.Asteroids, "step %d ran a different count than reported", i)
	}
}
