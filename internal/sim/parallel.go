package sim

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
)

// Ensemble runs independent simulations of one configuration with
// consecutive seeds. Each run owns its own Simulator, so runs may proceed in
// parallel without sharing state.
type Ensemble struct {
	cfg        config.StepConfig
	numRuns    int
	seedStart  int64
	newMetrics func() []dynamo.Metric
	logger     *log.Logger
}

// NewEnsemble prepares numRuns runs. newMetrics, if non-nil, is called once
// per run so no metric is shared between goroutines.
func NewEnsemble(cfg config.StepConfig, numRuns int, seedStart int64, newMetrics func() []dynamo.Metric, logger *log.Logger) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics, logger: logger}
}

func (e *Ensemble) Run(ctx context.Context, rc RunConfig) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.cfg
			cfg.System.Seed = e.seedStart + int64(idx)

			opts := []Option{}
			if e.logger != nil {
				opts = append(opts, WithLogger(e.logger.With("run", idx)))
			}
			runner := NewRunner(New(cfg, opts...))
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					runner.AddMetric(m)
				}
			}

			results[idx], errs[idx] = runner.Run(ctx, cfg, rc, nil)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
