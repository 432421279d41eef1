package wavio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	const sampleRate = 22050
	samples := make([]float64, 2048)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/sampleRate)
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := Save(path, samples, sampleRate); err != nil {
		t.Fatal(err)
	}

	got, sr, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if sr != sampleRate {
		t.Errorf("sample rate = %d, want %d", sr, sampleRate)
	}
	if len(got) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got), len(samples))
	}
	// 16-bit quantization bounds the round-trip error
	for i := range samples {
		if math.Abs(got[i]-samples[i]) > 1.0/32768*2 {
			t.Fatalf("sample %d = %v, want ~%v", i, got[i], samples[i])
		}
	}
}

func TestLoadPreservesAmplitude(t *testing.T) {
	const sampleRate = 16000
	const peak = 0.9
	samples := make([]float64, 1024)
	for i := range samples {
		samples[i] = peak * math.Sin(2*math.Pi*100*float64(i)/sampleRate)
	}

	path := filepath.Join(t.TempDir(), "peak.wav")
	if err := Save(path, samples, sampleRate); err != nil {
		t.Fatal(err)
	}
	got, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	var gotPeak float64
	for _, v := range got {
		if a := math.Abs(v); a > gotPeak {
			gotPeak = a
		}
	}
	// An encode/decode scale mismatch shows up here as a halved peak
	if math.Abs(gotPeak-peak) > 0.01 {
		t.Errorf("peak after round trip = %v, want ~%v", gotPeak, peak)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("this is not a wav file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); err == nil {
		t.Error("expected error for non-WAV data")
	}
}

func TestSaveBadSampleRate(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "x.wav"), []float64{0}, 0); err == nil {
		t.Error("expected error for zero sample rate")
	}
}
