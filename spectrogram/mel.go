package spectrogram

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ShadowLoveElysia/Whisper-vits-svc-LargeV3/pitch"
)

// logFloor keeps the log compression out of -Inf on silent bins
const logFloor = 1e-5

// MelParams configures the mel frontend
type MelParams struct {
	STFT       STFTParams `json:"stft"`
	SampleRate int        `json:"sample_rate"`
	NumMels    int        `json:"num_mels"`
	FMin       float64    `json:"f_min"`
	FMax       float64    `json:"f_max"`
}

// DefaultMelParams returns the trainer's mel frontend configuration
func DefaultMelParams(sampleRate int) MelParams {
	return MelParams{
		STFT:       DefaultSTFTParams(),
		SampleRate: sampleRate,
		NumMels:    80,
		FMin:       0,
		FMax:       float64(sampleRate) / 2,
	}
}

// LogMel computes a log-compressed mel spectrogram with NumMels rows and one
// column per frame.
func LogMel(signal []float64, params MelParams) (*mat.Dense, error) {
	if params.SampleRate <= 0 {
		return nil, fmt.Errorf("spectrogram: sample rate must be positive, got %d", params.SampleRate)
	}
	if params.NumMels <= 0 {
		return nil, fmt.Errorf("spectrogram: num mels must be positive, got %d", params.NumMels)
	}
	if params.FMax <= params.FMin {
		return nil, fmt.Errorf("spectrogram: invalid mel range [%v, %v]", params.FMin, params.FMax)
	}

	magnitude, err := Magnitude(signal, params.STFT)
	if err != nil {
		return nil, err
	}

	filters := melFilterBank(params.NumMels, params.STFT.WindowSize, params.SampleRate, params.FMin, params.FMax)

	freqBins, numFrames := magnitude.Dims()
	out := mat.NewDense(params.NumMels, numFrames, nil)
	for m := 0; m < params.NumMels; m++ {
		for i := 0; i < numFrames; i++ {
			sum := 0.0
			for k := 0; k < freqBins; k++ {
				if filters[m][k] != 0 {
					sum += filters[m][k] * magnitude.At(k, i)
				}
			}
			if sum < logFloor {
				sum = logFloor
			}
			out.Set(m, i, math.Log(sum))
		}
	}
	return out, nil
}

// melFilterBank builds triangular mel filters over the positive FFT bins
func melFilterBank(numFilters, fftSize, sampleRate int, lowFreq, highFreq float64) [][]float64 {
	lowMel := pitch.HzToMel(lowFreq)
	highMel := pitch.HzToMel(highFreq)

	melPoints := make([]float64, numFilters+2)
	melStep := (highMel - lowMel) / float64(numFilters+1)
	for i := range melPoints {
		melPoints[i] = lowMel + float64(i)*melStep
	}

	freqBins := fftSize/2 + 1
	binPoints := make([]int, len(melPoints))
	for i, mel := range melPoints {
		hz := pitch.MelToHz(mel)
		bin := int(math.Floor(float64(fftSize)*hz/float64(sampleRate) + 0.5))
		if bin > freqBins-1 {
			bin = freqBins - 1
		}
		binPoints[i] = bin
	}

	filterBank := make([][]float64, numFilters)
	for m := 1; m <= numFilters; m++ {
		filterBank[m-1] = make([]float64, freqBins)
		left := binPoints[m-1]
		center := binPoints[m]
		right := binPoints[m+1]

		if center != left {
			for k := left; k < center; k++ {
				filterBank[m-1][k] = float64(k-left) / float64(center-left)
			}
		}
		if right != center {
			for k := center; k < right; k++ {
				filterBank[m-1][k] = float64(right-k) / float64(right-center)
			}
		}
	}
	return filterBank
}
