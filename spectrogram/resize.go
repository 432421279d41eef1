package spectrogram

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Resize scales a spectrogram to the given shape with bilinear interpolation.
// Rows are mel channels, columns are time frames.
func Resize(m *mat.Dense, rows, cols int) (*mat.Dense, error) {
	srcRows, srcCols := m.Dims()
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("spectrogram: resize target %dx%d must be positive", rows, cols)
	}
	if srcRows == 0 || srcCols == 0 {
		return nil, fmt.Errorf("spectrogram: cannot resize empty matrix")
	}

	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		srcR := samplePos(r, rows, srcRows)
		r0 := int(srcR)
		r1 := r0 + 1
		if r1 > srcRows-1 {
			r1 = srcRows - 1
		}
		fr := srcR - float64(r0)

		for c := 0; c < cols; c++ {
			srcC := samplePos(c, cols, srcCols)
			c0 := int(srcC)
			c1 := c0 + 1
			if c1 > srcCols-1 {
				c1 = srcCols - 1
			}
			fc := srcC - float64(c0)

			top := m.At(r0, c0)*(1-fc) + m.At(r0, c1)*fc
			bottom := m.At(r1, c0)*(1-fc) + m.At(r1, c1)*fc
			out.Set(r, c, top*(1-fr)+bottom*fr)
		}
	}
	return out, nil
}

// samplePos maps an output index onto a fractional source coordinate using
// half-pixel alignment, clamped to the valid range
func samplePos(i, dst, src int) float64 {
	pos := (float64(i)+0.5)*float64(src)/float64(dst) - 0.5
	if pos < 0 {
		pos = 0
	}
	if pos > float64(src-1) {
		pos = float64(src - 1)
	}
	return pos
}

// ResizeHeight rescales the channel axis to height and restores the original
// channel count: when growing, the result is cropped back; when shrinking, the
// bottom is padded with copies of the last resized row plus Gaussian noise
// scaled by 1/10. The output always has the same shape as the input. Used as a
// pitch-ish augmentation during training.
func ResizeHeight(m *mat.Dense, height int, rng *rand.Rand) (*mat.Dense, error) {
	srcRows, srcCols := m.Dims()
	if height <= 0 {
		return nil, fmt.Errorf("spectrogram: height %d must be positive", height)
	}

	resized, err := Resize(m, height, srcCols)
	if err != nil {
		return nil, err
	}
	if height >= srcRows {
		out := mat.NewDense(srcRows, srcCols, nil)
		for r := 0; r < srcRows; r++ {
			for c := 0; c < srcCols; c++ {
				out.Set(r, c, resized.At(r, c))
			}
		}
		return out, nil
	}

	out := mat.NewDense(srcRows, srcCols, nil)
	for r := 0; r < height; r++ {
		for c := 0; c < srcCols; c++ {
			out.Set(r, c, resized.At(r, c))
		}
	}
	for r := height; r < srcRows; r++ {
		for c := 0; c < srcCols; c++ {
			out.Set(r, c, resized.At(height-1, c)+rng.NormFloat64()/10)
		}
	}
	return out, nil
}

// Stretch rescales the time axis to width, leaving the channel count unchanged
func Stretch(m *mat.Dense, width int) (*mat.Dense, error) {
	rows, _ := m.Dims()
	return Resize(m, rows, width)
}
