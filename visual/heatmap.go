// Package visual renders 2-D training diagnostics (spectrograms, attention
// alignments) to RGB pixel buffers suitable for image summaries.
package visual

import (
	"fmt"
	"image"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Image is an HWC-layout RGB pixel buffer
type Image struct {
	Width  int
	Height int
	Pixels []uint8 // Height*Width*3 bytes, row-major
}

// ToRGBA converts the buffer back to a standard library image
func (im *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			src := (y*im.Width + x) * 3
			dst := out.PixOffset(x, y)
			out.Pix[dst+0] = im.Pixels[src+0]
			out.Pix[dst+1] = im.Pixels[src+1]
			out.Pix[dst+2] = im.Pixels[src+2]
			out.Pix[dst+3] = 0xff
		}
	}
	return out
}

// colorBarWidth is the strip reserved for the color bar on the right
const colorBarWidth = vg.Inch

// SpectrogramRGB renders a spectrogram (rows = channels, cols = frames) as a
// 10x2 inch heat map with a color bar.
func SpectrogramRGB(spec [][]float64) (*Image, error) {
	return render(spec, 10*vg.Inch, 2*vg.Inch, "Frames", "Channels")
}

// AlignmentRGB renders an attention alignment (rows = decoder timesteps,
// cols = encoder timesteps) as a 6x4 inch heat map, transposed so the encoder
// axis runs vertically. info, when non-empty, is appended to the x label.
func AlignmentRGB(align [][]float64, info string) (*Image, error) {
	transposed, err := transpose(align)
	if err != nil {
		return nil, err
	}
	xlabel := "Decoder timestep"
	if info != "" {
		xlabel += " - " + info
	}
	return render(transposed, 6*vg.Inch, 4*vg.Inch, xlabel, "Encoder timestep")
}

func transpose(data [][]float64) ([][]float64, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, fmt.Errorf("visual: empty alignment")
	}
	rows, cols := len(data), len(data[0])
	out := make([][]float64, cols)
	for c := range out {
		out[c] = make([]float64, rows)
		for r := 0; r < rows; r++ {
			out[c][r] = data[r][c]
		}
	}
	return out, nil
}

func render(data [][]float64, width, height vg.Length, xlabel, ylabel string) (*Image, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, fmt.Errorf("visual: empty matrix")
	}
	cols := len(data[0])
	for r, row := range data {
		if len(row) != cols {
			return nil, fmt.Errorf("visual: ragged matrix, row %d has %d values, want %d", r, len(row), cols)
		}
	}

	g := matrixGrid{rows: len(data), cols: cols, data: data}
	cm := moreland.ExtendedBlackBody()
	cm.SetMin(g.min())
	if max := g.max(); max > cm.Min() {
		cm.SetMax(max)
	} else {
		cm.SetMax(cm.Min() + 1)
	}

	p := plot.New()
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	hm := plotter.NewHeatMap(g, cm.Palette(255))
	hm.Min = cm.Min()
	hm.Max = cm.Max()
	p.Add(hm)

	bar := plot.New()
	bar.HideX()
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})

	canvas := vgimg.NewWith(vgimg.UseWH(width, height))
	dc := draw.New(canvas)
	p.Draw(draw.Crop(dc, 0, -colorBarWidth, 0, 0))
	bar.Draw(draw.Crop(dc, width-colorBarWidth, 0, 0, 0))

	return fromImage(canvas.Image()), nil
}

func fromImage(src image.Image) *Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := &Image{Width: w, Height: h, Pixels: make([]uint8, w*h*3)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 3
			out.Pixels[i+0] = uint8(r >> 8)
			out.Pixels[i+1] = uint8(g >> 8)
			out.Pixels[i+2] = uint8(b >> 8)
		}
	}
	return out
}

// matrixGrid adapts a row-major matrix to the plotter grid interface
type matrixGrid struct {
	rows, cols int
	data       [][]float64
}

func (g matrixGrid) Dims() (c, r int)   { return g.cols, g.rows }
func (g matrixGrid) Z(c, r int) float64 { return g.data[r][c] }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

func (g matrixGrid) min() float64 {
	m := g.data[0][0]
	for _, row := range g.data {
		for _, v := range row {
			if v < m {
				m = v
			}
		}
	}
	return m
}

func (g matrixGrid) max() float64 {
	m := g.data[0][0]
	for _, row := range g.data {
		for _, v := range row {
			if v > m {
				m = v
			}
		}
	}
	return m
}
