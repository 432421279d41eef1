package pitch

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/ShadowLoveElysia/Whisper-vits-svc-LargeV3/logging"
)

// TrackerParams contains parameters for frame-wise f0 estimation
type TrackerParams struct {
	SampleRate int     `json:"sample_rate"`
	WindowSize int     `json:"window_size"`
	HopSize    int     `json:"hop_size"`
	MinFreq    float64 `json:"min_freq"` // Minimum frequency (Hz)
	MaxFreq    float64 `json:"max_freq"` // Maximum frequency (Hz)

	// VoicingThreshold is the minimum normalized autocorrelation peak for a
	// frame to count as voiced; unvoiced frames yield f0 = 0
	VoicingThreshold float64 `json:"voicing_threshold"`
}

// DefaultTrackerParams returns sensible defaults for speech at the given rate
func DefaultTrackerParams(sampleRate int) TrackerParams {
	return TrackerParams{
		SampleRate:       sampleRate,
		WindowSize:       1024,
		HopSize:          256,
		MinFreq:          F0Min,
		MaxFreq:          F0Max,
		VoicingThreshold: 0.3,
	}
}

// Tracker estimates a fundamental-frequency contour from raw samples using
// FFT-based autocorrelation with parabolic peak interpolation. The contour it
// produces (one value per hop, 0 marking unvoiced frames) is the expected
// input of QuantizeAll.
type Tracker struct {
	params TrackerParams
	logger logging.Logger
}

// NewTracker creates a new f0 tracker
func NewTracker(params TrackerParams) *Tracker {
	return &Tracker{
		params: params,
		logger: logging.WithFields(logging.Fields{
			"component":   "pitch_tracker",
			"sample_rate": params.SampleRate,
		}),
	}
}

// Track estimates one f0 value per frame of samples
func (t *Tracker) Track(samples []float64) ([]float64, error) {
	p := t.params
	if p.SampleRate <= 0 {
		return nil, fmt.Errorf("pitch: sample rate must be positive, got %d", p.SampleRate)
	}
	if p.WindowSize <= 0 || p.HopSize <= 0 {
		return nil, fmt.Errorf("pitch: window size and hop size must be positive")
	}
	if p.MinFreq <= 0 || p.MaxFreq <= p.MinFreq {
		return nil, fmt.Errorf("pitch: invalid frequency range [%v, %v]", p.MinFreq, p.MaxFreq)
	}
	if len(samples) < p.WindowSize {
		return nil, fmt.Errorf("pitch: signal too short for window size %d", p.WindowSize)
	}

	minLag := int(float64(p.SampleRate) / p.MaxFreq)
	maxLag := int(math.Ceil(float64(p.SampleRate) / p.MinFreq))
	if maxLag >= p.WindowSize {
		return nil, fmt.Errorf("pitch: window size %d too small for min frequency %v Hz", p.WindowSize, p.MinFreq)
	}
	if minLag < 1 {
		minLag = 1
	}

	numFrames := (len(samples)-p.WindowSize)/p.HopSize + 1
	contour := make([]float64, numFrames)

	frame := make([]float64, p.WindowSize)
	voiced := 0
	for i := 0; i < numFrames; i++ {
		copy(frame, samples[i*p.HopSize:i*p.HopSize+p.WindowSize])
		f0 := t.framePitch(frame, minLag, maxLag)
		if f0 > 0 {
			voiced++
		}
		contour[i] = f0
	}

	t.logger.Debug("f0 tracking completed", logging.Fields{
		"frames":        numFrames,
		"voiced_frames": voiced,
	})
	return contour, nil
}

// framePitch estimates the pitch of a single frame, or 0 when unvoiced
func (t *Tracker) framePitch(frame []float64, minLag, maxLag int) float64 {
	n := len(frame)

	// Remove DC so silence does not correlate with itself
	mean := 0.0
	for _, v := range frame {
		mean += v
	}
	mean /= float64(n)

	// Zero-pad to 2n for linear (non-circular) autocorrelation
	padded := make([]float64, 2*n)
	for i, v := range frame {
		padded[i] = v - mean
	}

	spectrum := fft.FFTReal(padded)
	for i, c := range spectrum {
		re := real(c)
		im := imag(c)
		spectrum[i] = complex(re*re+im*im, 0)
	}
	acf := fft.IFFT(spectrum)

	r0 := real(acf[0])
	if r0 <= 1e-10 {
		return 0
	}

	bestLag := 0
	bestVal := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		v := real(acf[lag]) / r0
		if v > bestVal {
			bestVal = v
			bestLag = lag
		}
	}
	if bestLag == 0 || bestVal < t.params.VoicingThreshold {
		return 0
	}

	// Parabolic interpolation around the peak for sub-sample lag accuracy
	lag := float64(bestLag)
	if bestLag > minLag && bestLag < maxLag {
		left := real(acf[bestLag-1]) / r0
		right := real(acf[bestLag+1]) / r0
		denom := left - 2*bestVal + right
		if math.Abs(denom) > 1e-12 {
			lag += 0.5 * (left - right) / denom
		}
	}

	return float64(t.params.SampleRate) / lag
}
