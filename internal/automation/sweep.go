package automation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/metrics"
	"github.com/san-kum/cosmosim/internal/sim"
)

// ParameterSweep runs one preset across evenly spaced values of a single
// tunable parameter.
type ParameterSweep struct {
	Preset    string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Frames    int
	Dt        float32
	Seed      int64
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	Final      sim.Sample
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *log.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, errors.New("automation: sweep needs at least one step")
	}
	if logger == nil {
		logger = log.Default()
	}

	base, ok := config.GetPreset(sweep.Preset)
	if !ok {
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownPreset, sweep.Preset)
	}
	base.System.Seed = sweep.Seed
	if err := base.SetParam(sweep.ParamName, sweep.ParamMin); err != nil {
		return nil, err
	}

	rc := sim.DefaultRunConfig()
	rc.Frames = sweep.Frames
	if sweep.Dt > 0 {
		rc.Dt = sweep.Dt
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		if base.IsInteger(sweep.ParamName) {
			paramVal = math.Round(paramVal)
		}
		cfg := base
		_ = cfg.SetParam(sweep.ParamName, paramVal)

		runner := sim.NewRunner(sim.New(cfg, sim.WithLogger(logger)))
		for _, m := range metrics.ForConfig(cfg) {
			runner.AddMetric(m)
		}

		result, err := runner.Run(ctx, cfg, rc, nil)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		sr := SweepResult{ParamValue: paramVal, Metrics: result.Metrics}
		if n := len(result.Samples); n > 0 {
			sr.Final = result.Samples[n-1]
		}
		results = append(results, sr)

		logger.Info("sweep step", "step", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
