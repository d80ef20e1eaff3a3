package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/cosmosim/internal/sim"
)

type ExportData struct {
	Run     RunMetadata        `json:"run"`
	Steps   int                `json:"steps"`
	Samples []sim.Sample       `json:"samples"`
	Metrics map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run and its samples to w as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:     *meta,
		Steps:   len(samples),
		Samples: samples,
		Metrics: meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
