package spectrogram

import (
	"math"
	"testing"
)

func testSine(freq float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return out
}

func TestMagnitudeShape(t *testing.T) {
	params := STFTParams{WindowSize: 512, HopSize: 128}
	signal := testSine(440, 16000, 4096)
	spec, err := Magnitude(signal, params)
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := spec.Dims()
	if rows != 257 {
		t.Errorf("freq bins = %d, want 257", rows)
	}
	wantFrames := (4096-512)/128 + 1
	if cols != wantFrames {
		t.Errorf("frames = %d, want %d", cols, wantFrames)
	}
}

func TestMagnitudePeakBin(t *testing.T) {
	const (
		sampleRate = 16000
		freq       = 1000.0
	)
	params := STFTParams{WindowSize: 1024, HopSize: 256}
	spec, err := Magnitude(testSine(freq, sampleRate, 8192), params)
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := spec.Dims()

	wantBin := int(freq*float64(params.WindowSize)/float64(sampleRate) + 0.5)
	for c := 0; c < cols; c++ {
		peak := 0
		for r := 1; r < rows; r++ {
			if spec.At(r, c) > spec.At(peak, c) {
				peak = r
			}
		}
		if peak < wantBin-1 || peak > wantBin+1 {
			t.Fatalf("frame %d: peak bin %d, want ~%d", c, peak, wantBin)
		}
	}
}

func TestMagnitudeValidation(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		params STFTParams
	}{
		{"empty signal", nil, DefaultSTFTParams()},
		{"zero window", testSine(440, 16000, 4096), STFTParams{WindowSize: 0, HopSize: 128}},
		{"zero hop", testSine(440, 16000, 4096), STFTParams{WindowSize: 512, HopSize: 0}},
		{"short signal", testSine(440, 16000, 100), DefaultSTFTParams()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Magnitude(tt.signal, tt.params); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLogMelShape(t *testing.T) {
	params := DefaultMelParams(16000)
	params.NumMels = 80
	spec, err := LogMel(testSine(440, 16000, 8192), params)
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := spec.Dims()
	if rows != 80 {
		t.Errorf("mel channels = %d, want 80", rows)
	}
	if cols != (8192-1024)/256+1 {
		t.Errorf("frames = %d, want %d", cols, (8192-1024)/256+1)
	}
}

func TestLogMelSilenceIsFloored(t *testing.T) {
	params := DefaultMelParams(16000)
	spec, err := LogMel(make([]float64, 4096), params)
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := spec.Dims()
	want := math.Log(logFloor)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if spec.At(r, c) != want {
				t.Fatalf("at (%d,%d) = %v, want log floor %v", r, c, spec.At(r, c), want)
			}
		}
	}
}

func TestLogMelValidation(t *testing.T) {
	signal := testSine(440, 16000, 8192)

	params := DefaultMelParams(16000)
	params.NumMels = 0
	if _, err := LogMel(signal, params); err == nil {
		t.Error("expected error for zero mels")
	}

	params = DefaultMelParams(16000)
	params.FMax = params.FMin
	if _, err := LogMel(signal, params); err == nil {
		t.Error("expected error for empty mel range")
	}

	params = DefaultMelParams(0)
	params.SampleRate = 0
	if _, err := LogMel(signal, params); err == nil {
		t.Error("expected error for zero sample rate")
	}
}
