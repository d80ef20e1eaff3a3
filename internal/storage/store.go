package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/sim"
)

var ErrRunNotFound = errors.New("run not found")

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
	snapshotFile = "snapshot.msgpack"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	SimTime   float64            `json:"sim_time"`
	Elapsed   time.Duration      `json:"elapsed"`
	Resets    int                `json:"resets"`
	Spawns    int                `json:"spawns"`
	Config    config.StepConfig  `json:"config"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewMetadata fills run metadata from a finished run.
func NewMetadata(name string, cfg config.StepConfig, rc sim.RunConfig, result *sim.Result) RunMetadata {
	return RunMetadata{
		Name:    name,
		Seed:    cfg.System.Seed,
		Dt:      float64(rc.Dt),
		Frames:  result.Frames,
		SimTime: result.SimTime,
		Elapsed: result.Elapsed,
		Resets:  result.Stats.Resets,
		Spawns:  result.Stats.Spawns,
		Config:  cfg,
		Metrics: result.Metrics,
	}
}

// Save writes a run directory holding the metadata, the sample table and,
// when snap is non-nil, the final particle snapshot. It returns the run id.
func (s *Store) Save(meta RunMetadata, samples []sim.Sample, snap *dynamo.Snapshot) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if err := writeSamples(filepath.Join(runDir, samplesFile), samples); err != nil {
		return "", err
	}

	if snap != nil {
		data, err := msgpack.Marshal(snap)
		if err != nil {
			return "", fmt.Errorf("encode snapshot: %w", err)
		}
		if err := os.WriteFile(filepath.Join(runDir, snapshotFile), data, 0644); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var sampleHeader = []string{"frame", "time", "asteroids", "planets", "kinetic", "momentum_x", "momentum_y", "contacts"}

func writeSamples(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sampleHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Frame),
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.Itoa(smp.Asteroids),
			strconv.Itoa(smp.Planets),
			strconv.FormatFloat(smp.Kinetic, 'g', -1, 64),
			strconv.FormatFloat(smp.MomentumX, 'g', -1, 64),
			strconv.FormatFloat(smp.MomentumY, 'g', -1, 64),
			strconv.Itoa(smp.Contacts),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads a run's sample table. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		smp, ok := parseSample(record)
		if !ok {
			continue
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(record []string) (sim.Sample, bool) {
	if len(record) != len(sampleHeader) {
		return sim.Sample{}, false
	}

	var (
		smp  sim.Sample
		errs []error
	)
	atoi := func(s string) int {
		v, err := strconv.Atoi(s)
		errs = append(errs, err)
		return v
	}
	atof := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		errs = append(errs, err)
		return v
	}

	smp.Frame = atoi(record[0])
	smp.Time = atof(record[1])
	smp.Asteroids = atoi(record[2])
	smp.Planets = atoi(record[3])
	smp.Kinetic = atof(record[4])
	smp.MomentumX = atof(record[5])
	smp.MomentumY = atof(record[6])
	smp.Contacts = atoi(record[7])

	return smp, errors.Join(errs...) == nil
}

// LoadSnapshot decodes the final snapshot of a run.
func (s *Store) LoadSnapshot(runID string) (*dynamo.Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, snapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var snap dynamo.Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
