package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ShadowLoveElysia/Whisper-vits-svc-LargeV3/logging"
)

// Defaults substituted when a snapshot predates the field or stored zero
const (
	DefaultIteration    = 1
	DefaultLearningRate = 2e-4
)

// Snapshot is one persisted training state: flattened model and optimizer
// tensors keyed by parameter name, plus the scheduler scalars.
type Snapshot struct {
	Model        map[string][]float64 `msgpack:"model"`
	Optimizer    map[string][]float64 `msgpack:"optimizer"`
	LearningRate float64              `msgpack:"learning_rate"`
	Iteration    int64                `msgpack:"iteration"`
}

// LoadResult is a restored snapshot. Missing lists the model keys that were
// absent from the file and substituted from the in-memory state, so the caller
// can surface them beyond the per-key warnings already logged.
type LoadResult struct {
	Model        map[string][]float64
	Optimizer    map[string][]float64
	LearningRate float64
	Iteration    int64
	Missing      []string
}

// Save persists a snapshot to path, replacing any previous file atomically
// via a rename from a temp file in the same directory.
func Save(path string, snap *Snapshot, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	logger.Info("saving model and optimizer state", logging.Fields{
		"iteration": snap.Iteration,
		"path":      path,
	})

	tmp, err := os.CreateTemp(filepath.Dir(path), ".ckpt-*")
	if err != nil {
		return fmt.Errorf("checkpoint: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := msgpack.NewEncoder(tmp).Encode(snap); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint: encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint: rename into place: %w", err)
	}
	return nil
}

// Load restores a snapshot from path. Model keys present in current but
// missing from the file are non-fatal: the in-memory value is kept and a
// warning logged per key. A missing or unreadable file is an error. Keys in
// the file that current does not know are dropped, matching the shape of the
// model being restored into.
func Load(path string, current map[string][]float64, logger logging.Logger) (*LoadResult, error) {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open %s: %w", path, err)
	}
	defer f.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("checkpoint: decode %s: %w", path, err)
	}

	result := &LoadResult{
		Model:        make(map[string][]float64, len(current)),
		Optimizer:    snap.Optimizer,
		LearningRate: snap.LearningRate,
		Iteration:    snap.Iteration,
	}
	if result.Iteration == 0 {
		result.Iteration = DefaultIteration
	}
	if result.LearningRate == 0 {
		result.LearningRate = DefaultLearningRate
	}

	for key, value := range current {
		if saved, ok := snap.Model[key]; ok {
			result.Model[key] = saved
			continue
		}
		logger.Warn("parameter not in checkpoint, keeping current value", logging.Fields{
			"key": key,
		})
		result.Missing = append(result.Missing, key)
		result.Model[key] = value
	}

	logger.Info("loaded checkpoint", logging.Fields{
		"path":      path,
		"iteration": result.Iteration,
	})
	return result, nil
}
