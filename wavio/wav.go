// Package wavio reads and writes mono PCM WAV files as float64 sample slices.
package wavio

import (
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// decodeScale undoes the asymmetry between beep's 16-bit decoder, which
// divides by 65535, and its encoder, which multiplies by 32767. Applying it on
// read keeps full-scale PCM at ±1 and makes Save→Load amplitude-preserving.
const decodeScale = 65535.0 / 32767.0

// Load reads a PCM WAV file and returns its samples as floats in [-1, 1]
// along with the sample rate. Multi-channel files yield the first channel.
func Load(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: open %s: %w", path, err)
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: decode %s: %w", path, err)
	}
	defer stream.Close()

	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0]*decodeScale)
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, 0, fmt.Errorf("wavio: read %s: %w", path, err)
	}
	return out, int(format.SampleRate), nil
}

// Save writes samples as a 16-bit mono PCM WAV file
func Save(path string, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be positive, got %d", sampleRate)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %s: %w", path, err)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(f, &sliceStreamer{samples: samples}, format); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("wavio: encode %s: %w", path, err)
	}
	return f.Close()
}

// sliceStreamer streams a sample slice as a beep source, duplicating the mono
// signal on both channels
type sliceStreamer struct {
	samples []float64
	pos     int
}

func (s *sliceStreamer) Stream(buf [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := 0
	for i := range buf {
		if s.pos >= len(s.samples) {
			break
		}
		v := s.samples[s.pos]
		buf[i][0], buf[i][1] = v, v
		s.pos++
		n++
	}
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }
