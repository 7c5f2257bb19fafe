package raster

import (
	"image/color"
	"testing"

	"github.com/pdftools/contentstream/canvas"
)

func TestPreviewSinkFillsBoundingBox(t *testing.T) {
	s := NewPreviewSink(10, 10)
	s.FillPaint(canvas.Paint{Color: []float64{1, 0, 0}})

	var p canvas.Path
	p.Rect(2, 2, 4, 4)
	s.Path(p, canvas.PaintFillNonZero, canvas.ClipNone)

	// PDF y runs up, image rows run down: the box at y 2..6 covers
	// image rows 4..7 of the 10-row canvas.
	r, g, b, _ := s.Image().At(3, 5).RGBA()
	got := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
	if got.R < 200 || got.G > 50 || got.B > 50 {
		t.Errorf("expected red-ish pixel inside filled box, got %v", got)
	}

	wr, wg, wb, _ := s.Image().At(8, 8).RGBA()
	if wr>>8 < 200 || wg>>8 < 200 || wb>>8 < 200 {
		t.Errorf("expected untouched pixel outside box to remain near white, got (%d,%d,%d)", wr>>8, wg>>8, wb>>8)
	}
}

func TestColorOfDecodesGrayRGBCMYK(t *testing.T) {
	if _, ok := colorOf(canvas.Paint{Color: []float64{0.5}}); !ok {
		t.Error("want gray to decode")
	}
	if _, ok := colorOf(canvas.Paint{Color: []float64{1, 0, 0}}); !ok {
		t.Error("want rgb to decode")
	}
	if _, ok := colorOf(canvas.Paint{Color: []float64{1, 2, 3, 4}}); !ok {
		t.Error("want cmyk to decode")
	}
	if _, ok := colorOf(canvas.Paint{Color: "not-a-float-slice"}); ok {
		t.Error("want non-[]float64 color to fail")
	}
}
