// Package pitch quantizes fundamental frequencies onto a coarse mel-warped
// bin scale and estimates f0 contours from raw audio.
package pitch

import (
	"fmt"
	"math"
)

// Coarse pitch quantization constants. Fundamental frequencies are mapped onto
// a mel-warped scale bounded by the voiced-speech range and discretized into
// F0Bins bins, of which only [1, F0Bins-1] are ever produced. Bin 0 is reserved.
const (
	// F0Min is the lowest fundamental frequency of interest in Hz
	F0Min = 50.0

	// F0Max is the highest fundamental frequency of interest in Hz
	F0Max = 1100.0

	// F0Bins is the total number of coarse pitch bins, including the unused bin 0
	F0Bins = 256
)

var (
	f0MelMin = HzToMel(F0Min)
	f0MelMax = HzToMel(F0Max)
)

// HzToMel converts frequency in Hz to the mel scale
func HzToMel(hz float64) float64 {
	return 1127.0 * math.Log(1.0+hz/700.0)
}

// MelToHz converts a mel value back to frequency in Hz
func MelToHz(mel float64) float64 {
	return 700.0 * (math.Exp(mel/1127.0) - 1.0)
}

// Quantize maps a fundamental frequency in Hz onto a coarse mel-scale bin in
// [1, F0Bins-1]. An f0 of 0 marks unvoiced frames and maps to bin 1, as do
// positive frequencies below F0Min; frequencies above F0Max saturate at
// F0Bins-1. The returned error signals an internal-consistency failure: it can
// only trigger when the input is not a valid frequency (e.g. NaN or negative
// beyond the log domain).
func Quantize(f0 float64) (int, error) {
	bin := coarse(f0)
	if !(bin >= 1 && bin <= F0Bins-1) {
		return 0, fmt.Errorf("pitch: coarse bin %v out of range [1, %d] for f0 %v", bin, F0Bins-1, f0)
	}
	return int(bin), nil
}

// QuantizeAll is the vectorized form of Quantize. Element i of the result
// equals Quantize(f0[i]); the first invalid element aborts with an error.
func QuantizeAll(f0 []float64) ([]int, error) {
	bins := make([]int, len(f0))
	for i, v := range f0 {
		bin := coarse(v)
		if !(bin >= 1 && bin <= F0Bins-1) {
			return nil, fmt.Errorf("pitch: coarse bin %v out of range [1, %d] for f0[%d] %v", bin, F0Bins-1, i, v)
		}
		bins[i] = int(bin)
	}
	return bins, nil
}

// coarse applies the mel warp, rescale, clamp and round steps. The rounding is
// floor(x + 0.5) to stay bit-exact with models trained against the same
// quantization.
func coarse(f0 float64) float64 {
	mel := HzToMel(f0)
	if mel > 0 {
		mel = (mel-f0MelMin)*(F0Bins-2)/(f0MelMax-f0MelMin) + 1
	}
	if mel <= 1 {
		mel = 1
	}
	if mel > F0Bins-1 {
		mel = F0Bins - 1
	}
	return math.Floor(mel + 0.5)
}
