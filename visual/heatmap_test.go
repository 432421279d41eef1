package visual

import (
	"math"
	"testing"
)

func testMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for r := range m {
		m[r] = make([]float64, cols)
		for c := range m[r] {
			m[r][c] = math.Sin(float64(r)) * math.Cos(float64(c))
		}
	}
	return m
}

func TestSpectrogramRGB(t *testing.T) {
	img, err := SpectrogramRGB(testMatrix(80, 200))
	if err != nil {
		t.Fatal(err)
	}
	if img.Width <= 0 || img.Height <= 0 {
		t.Fatalf("dims = %dx%d", img.Width, img.Height)
	}
	if len(img.Pixels) != img.Width*img.Height*3 {
		t.Errorf("pixel buffer has %d bytes, want %d", len(img.Pixels), img.Width*img.Height*3)
	}
	// 10x2 inch figure: wider than tall
	if img.Width <= img.Height {
		t.Errorf("spectrogram figure %dx%d not landscape", img.Width, img.Height)
	}

	// Not a blank canvas
	first := img.Pixels[0]
	uniform := true
	for _, p := range img.Pixels {
		if p != first {
			uniform = false
			break
		}
	}
	if uniform {
		t.Error("rendered image is uniform")
	}
}

func TestAlignmentRGB(t *testing.T) {
	img, err := AlignmentRGB(testMatrix(40, 60), "iter 2000")
	if err != nil {
		t.Fatal(err)
	}
	if len(img.Pixels) != img.Width*img.Height*3 {
		t.Errorf("pixel buffer has %d bytes, want %d", len(img.Pixels), img.Width*img.Height*3)
	}
}

func TestRenderConstantMatrix(t *testing.T) {
	m := [][]float64{{1, 1}, {1, 1}}
	if _, err := SpectrogramRGB(m); err != nil {
		t.Fatalf("constant matrix should render: %v", err)
	}
}

func TestRenderValidation(t *testing.T) {
	if _, err := SpectrogramRGB(nil); err == nil {
		t.Error("expected error for nil matrix")
	}
	if _, err := SpectrogramRGB([][]float64{}); err == nil {
		t.Error("expected error for empty matrix")
	}
	if _, err := SpectrogramRGB([][]float64{{1, 2}, {3}}); err == nil {
		t.Error("expected error for ragged matrix")
	}
	if _, err := AlignmentRGB(nil, ""); err == nil {
		t.Error("expected error for empty alignment")
	}
}

func TestImageToRGBA(t *testing.T) {
	im := &Image{Width: 2, Height: 1, Pixels: []uint8{10, 20, 30, 40, 50, 60}}
	rgba := im.ToRGBA()
	if got := rgba.Bounds().Dx(); got != 2 {
		t.Fatalf("width = %d, want 2", got)
	}
	r, g, b, a := rgba.At(1, 0).RGBA()
	if uint8(r>>8) != 40 || uint8(g>>8) != 50 || uint8(b>>8) != 60 || a != 0xffff {
		t.Errorf("pixel (1,0) = %d,%d,%d,%d", r>>8, g>>8, b>>8, a)
	}
}
