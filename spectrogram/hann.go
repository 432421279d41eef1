package spectrogram

import "math"

// hannWindow generates periodic Hann window coefficients
func hannWindow(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(size)))
	}
	return w
}
