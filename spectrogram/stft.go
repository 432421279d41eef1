package spectrogram

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/mat"

	"github.com/ShadowLoveElysia/Whisper-vits-svc-LargeV3/logging"
)

// STFTParams contains framing parameters for short-time analysis
type STFTParams struct {
	WindowSize int `json:"window_size"` // FFT window size
	HopSize    int `json:"hop_size"`    // Hop size between frames
}

// DefaultSTFTParams returns the framing used by the trainer's mel frontend
func DefaultSTFTParams() STFTParams {
	return STFTParams{
		WindowSize: 1024,
		HopSize:    256,
	}
}

// Magnitude computes a Hann-windowed magnitude STFT. The result has
// WindowSize/2+1 rows (frequency bins) and one column per frame.
func Magnitude(signal []float64, params STFTParams) (*mat.Dense, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("spectrogram: empty signal")
	}
	if params.WindowSize <= 0 {
		return nil, fmt.Errorf("spectrogram: window size must be positive")
	}
	if params.HopSize <= 0 {
		return nil, fmt.Errorf("spectrogram: hop size must be positive")
	}

	numFrames := (len(signal)-params.WindowSize)/params.HopSize + 1
	if numFrames <= 0 {
		return nil, fmt.Errorf("spectrogram: signal too short for window size %d", params.WindowSize)
	}
	freqBins := params.WindowSize/2 + 1

	window := hannWindow(params.WindowSize)
	out := mat.NewDense(freqBins, numFrames, nil)
	frame := make([]float64, params.WindowSize)

	for i := 0; i < numFrames; i++ {
		start := i * params.HopSize
		for j := 0; j < params.WindowSize; j++ {
			frame[j] = signal[start+j] * window[j]
		}
		spectrum := fft.FFTReal(frame)
		for k := 0; k < freqBins; k++ {
			out.Set(k, i, cmplx.Abs(spectrum[k]))
		}
	}

	logging.Debug("magnitude STFT computed", logging.Fields{
		"frames":    numFrames,
		"freq_bins": freqBins,
	})
	return out, nil
}
