package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Load parses a YAML hyperparameter document
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Setup loads the document at path, creates logsRoot/<train.model> if absent,
// copies the source document into it as config.yaml, and injects the resolved
// directory into the returned config.
func Setup(path, logsRoot string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Train.Model == "" {
		return nil, fmt.Errorf("config: %s sets no train.model name", path)
	}

	modelDir := filepath.Join(logsRoot, cfg.Train.Model)
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return nil, fmt.Errorf("config: create model dir %s: %w", modelDir, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reread %s: %w", path, err)
	}
	savePath := filepath.Join(modelDir, "config.yaml")
	if err := os.WriteFile(savePath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("config: copy config to %s: %w", savePath, err)
	}

	cfg.ModelDir = modelDir
	return cfg, nil
}
