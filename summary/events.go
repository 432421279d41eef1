package summary

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// EventKind discriminates the payload carried by an Event
type EventKind string

const (
	KindScalar    EventKind = "scalar"
	KindHistogram EventKind = "histogram"
	KindImage     EventKind = "image"
	KindAudio     EventKind = "audio"
)

// Event is one record of the run's event stream
type Event struct {
	Run  string    `msgpack:"run"`
	Kind EventKind `msgpack:"kind"`
	Tag  string    `msgpack:"tag"`
	Step int64     `msgpack:"step"`
	Wall int64     `msgpack:"wall"` // unix nanoseconds

	Scalar    float64    `msgpack:"scalar,omitempty"`
	Histogram *Histogram `msgpack:"histogram,omitempty"`
	Image     *Image     `msgpack:"image,omitempty"`
	Audio     *Audio     `msgpack:"audio,omitempty"`
}

// Histogram summarizes a tensor's value distribution
type Histogram struct {
	Min    float64   `msgpack:"min"`
	Max    float64   `msgpack:"max"`
	Mean   float64   `msgpack:"mean"`
	StdDev float64   `msgpack:"std_dev"`
	Count  int64     `msgpack:"count"`
	Edges  []float64 `msgpack:"edges"`  // len(Counts)+1 bin edges
	Counts []int64   `msgpack:"counts"` // samples per bin
}

// Image is an HWC-layout RGB pixel buffer
type Image struct {
	Height int    `msgpack:"height"`
	Width  int    `msgpack:"width"`
	Pixels []byte `msgpack:"pixels"` // Height*Width*3 bytes, row-major
}

// Audio is a float sample buffer with its sample rate
type Audio struct {
	SampleRate int       `msgpack:"sample_rate"`
	Samples    []float64 `msgpack:"samples"`
}

// histogramBins is the fixed bin count used for histogram events
const histogramBins = 30

// newHistogram bins values into a fixed-width histogram with summary moments
func newHistogram(values []float64) (*Histogram, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("summary: histogram of empty slice")
	}

	min := floats.Min(values)
	max := floats.Max(values)
	h := &Histogram{
		Min:    min,
		Max:    max,
		Mean:   stat.Mean(values, nil),
		StdDev: stat.StdDev(values, nil),
		Count:  int64(len(values)),
		Edges:  make([]float64, histogramBins+1),
		Counts: make([]int64, histogramBins),
	}

	width := (max - min) / histogramBins
	if width == 0 {
		// Constant data: a single degenerate bin still sums to Count
		width = 1
	}
	for i := range h.Edges {
		h.Edges[i] = min + width*float64(i)
	}
	for _, v := range values {
		bin := int((v - min) / width)
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		if bin < 0 {
			bin = 0
		}
		h.Counts[bin]++
	}
	return h, nil
}

// validate checks the HWC contract before an image event is written
func (im *Image) validate() error {
	if im == nil {
		return fmt.Errorf("summary: nil image")
	}
	if im.Height <= 0 || im.Width <= 0 {
		return fmt.Errorf("summary: image dims %dx%d must be positive", im.Height, im.Width)
	}
	if len(im.Pixels) != im.Height*im.Width*3 {
		return fmt.Errorf("summary: pixel buffer has %d bytes, want %d (HWC RGB)",
			len(im.Pixels), im.Height*im.Width*3)
	}
	return nil
}
