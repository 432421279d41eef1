package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ShadowLoveElysia/Whisper-vits-svc-LargeV3/logging"
)

// Writer appends msgpack-framed events to a run file inside a log directory.
// It is safe for concurrent use; events for one run share a monotonic step
// counter supplied by the caller.
type Writer struct {
	mu     sync.Mutex
	f      *os.File
	enc    *msgpack.Encoder
	run    string
	logger logging.Logger
}

// NewWriter opens a fresh event stream in dir, creating the directory if
// needed. Each writer gets its own run ID and file.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("summary: create log dir %s: %w", dir, err)
	}

	run := uuid.NewString()
	path := filepath.Join(dir, "events-"+run+".msgpack")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("summary: create event file: %w", err)
	}

	w := &Writer{
		f:   f,
		enc: msgpack.NewEncoder(f),
		run: run,
		logger: logging.WithFields(logging.Fields{
			"component": "summary_writer",
			"run":       run,
		}),
	}
	w.logger.Debug("event stream opened", logging.Fields{"path": path})
	return w, nil
}

// Run returns the writer's run ID
func (w *Writer) Run() string { return w.run }

// Close flushes and closes the event file
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

func (w *Writer) write(ev *Event) error {
	ev.Run = w.run
	ev.Wall = time.Now().UnixNano()

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(ev); err != nil {
		return fmt.Errorf("summary: write %s event %q: %w", ev.Kind, ev.Tag, err)
	}
	return nil
}

// AddScalar records a named scalar at a step
func (w *Writer) AddScalar(tag string, value float64, step int64) error {
	return w.write(&Event{Kind: KindScalar, Tag: tag, Step: step, Scalar: value})
}

// AddHistogram records the distribution of values at a step
func (w *Writer) AddHistogram(tag string, values []float64, step int64) error {
	h, err := newHistogram(values)
	if err != nil {
		return err
	}
	return w.write(&Event{Kind: KindHistogram, Tag: tag, Step: step, Histogram: h})
}

// AddImage records an HWC RGB image at a step
func (w *Writer) AddImage(tag string, img *Image, step int64) error {
	if err := img.validate(); err != nil {
		return err
	}
	return w.write(&Event{Kind: KindImage, Tag: tag, Step: step, Image: img})
}

// AddAudio records an audio clip at a step
func (w *Writer) AddAudio(tag string, samples []float64, sampleRate int, step int64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("summary: sample rate must be positive, got %d", sampleRate)
	}
	return w.write(&Event{
		Kind: KindAudio,
		Tag:  tag,
		Step: step,
		Audio: &Audio{
			SampleRate: sampleRate,
			Samples:    samples,
		},
	})
}

// Summarize writes a batch of values tagged with the same step, mirroring the
// trainer's per-interval logging call. Audio clips carry their own sample
// rates. Any nil map is skipped.
func (w *Writer) Summarize(step int64, scalars map[string]float64, histograms map[string][]float64, images map[string]*Image, audios map[string]*Audio) error {
	for tag, v := range scalars {
		if err := w.AddScalar(tag, v, step); err != nil {
			return err
		}
	}
	for tag, v := range histograms {
		if err := w.AddHistogram(tag, v, step); err != nil {
			return err
		}
	}
	for tag, v := range images {
		if err := w.AddImage(tag, v, step); err != nil {
			return err
		}
	}
	for tag, v := range audios {
		if err := w.AddAudio(tag, v.Samples, v.SampleRate, step); err != nil {
			return err
		}
	}
	return nil
}
