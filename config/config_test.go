package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testDoc = `train:
  model: base-32k
  epochs: 500
  learning_rate: 0.0001
  batch_size: 8
data:
  training_files: files/train.txt
  sampling_rate: 32000
  mel_channels: 100
model:
  hidden_channels: 256
`

func writeDoc(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "base.yaml")
	if err := os.WriteFile(path, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeDoc(t, t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Train.Model != "base-32k" {
		t.Errorf("Train.Model = %q, want base-32k", cfg.Train.Model)
	}
	if cfg.Train.Epochs != 500 {
		t.Errorf("Train.Epochs = %d, want 500", cfg.Train.Epochs)
	}
	if cfg.Data.MelChannels != 100 {
		t.Errorf("Data.MelChannels = %d, want 100", cfg.Data.MelChannels)
	}
	// Absent keys keep defaults
	if cfg.Train.Seed != 1234 {
		t.Errorf("Train.Seed = %d, want default 1234", cfg.Train.Seed)
	}
	if cfg.Data.HopLength != 256 {
		t.Errorf("Data.HopLength = %d, want default 256", cfg.Data.HopLength)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("train: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir)
	logsRoot := filepath.Join(dir, "logs")

	cfg, err := Setup(path, logsRoot)
	if err != nil {
		t.Fatal(err)
	}

	wantDir := filepath.Join(logsRoot, "base-32k")
	if cfg.ModelDir != wantDir {
		t.Errorf("ModelDir = %q, want %q", cfg.ModelDir, wantDir)
	}
	if fi, err := os.Stat(wantDir); err != nil || !fi.IsDir() {
		t.Fatalf("model dir not created: %v", err)
	}

	copied, err := os.ReadFile(filepath.Join(wantDir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(copied) != testDoc {
		t.Error("copied config differs from source")
	}
}

func TestSetupIdempotentDir(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir)
	logsRoot := filepath.Join(dir, "logs")

	if _, err := Setup(path, logsRoot); err != nil {
		t.Fatal(err)
	}
	if _, err := Setup(path, logsRoot); err != nil {
		t.Fatalf("second Setup over existing dir: %v", err)
	}
}

func TestSetupUnnamedModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anon.yaml")
	if err := os.WriteFile(path, []byte("train:\n  model: \"\"\n  epochs: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Setup(path, filepath.Join(dir, "logs")); err == nil {
		t.Error("expected error for unnamed model")
	}
}
