// Package raster provides PreviewSink, a deliberately crude
// canvas.Sink implementation: it rasterizes the bounding box of each
// painted path as a flat-filled rectangle rather than tracing its
// actual outline, and ignores clipping, dashing, and text entirely.
// It exists so the interpreter has one working end-to-end demo sink
// to run `cmd/pdfcs preview` against; it is explicitly not the
// "concrete rasterizer/renderer" the spec excludes as an external
// collaborator — a real renderer is expected to implement canvas.Sink
// itself, with proper scan conversion.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/pdftools/contentstream/canvas"
	"github.com/pdftools/contentstream/object"
)

// PreviewSink accumulates painted bounding boxes onto an *image.RGBA
// canvas of the given pixel size, using the current fill/stroke color
// (best-effort: only plain, non-pattern colors with 1, 3, or 4
// components are understood — Gray, RGB, CMYK).
type PreviewSink struct {
	img *image.RGBA

	ctm         object.Matrix
	ctmStack    []object.Matrix
	fillColor   color.Color
	strokeColor color.Color
}

// NewPreviewSink returns a PreviewSink painting into a width×height
// canvas, initially filled white.
func NewPreviewSink(width, height int) *PreviewSink {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return &PreviewSink{
		img:         img,
		ctm:         object.Identity,
		fillColor:   color.Black,
		strokeColor: color.Black,
	}
}

// Image returns the accumulated raster; valid after Finish.
func (s *PreviewSink) Image() *image.RGBA { return s.img }

func (s *PreviewSink) Push() {
	s.ctmStack = append(s.ctmStack, s.ctm)
}

func (s *PreviewSink) Pop() {
	if n := len(s.ctmStack); n > 0 {
		s.ctm = s.ctmStack[n-1]
		s.ctmStack = s.ctmStack[:n-1]
	}
}

func (s *PreviewSink) Xform(m canvas.Affine) {
	s.ctm = m.Mul(s.ctm)
}

func (s *PreviewSink) StrokeWidth(float64)      {}
func (s *PreviewSink) EndCap(int)               {}
func (s *PreviewSink) LineJoin(int)             {}
func (s *PreviewSink) MiterLimit(float64)       {}
func (s *PreviewSink) Dash([]float64, float64)  {}
func (s *PreviewSink) StrokeAlpha(float64)      {}
func (s *PreviewSink) FillAlpha(float64)        {}

func (s *PreviewSink) StrokePaint(p canvas.Paint) {
	if c, ok := colorOf(p); ok {
		s.strokeColor = c
	}
}

func (s *PreviewSink) FillPaint(p canvas.Paint) {
	if c, ok := colorOf(p); ok {
		s.fillColor = c
	}
}

func (s *PreviewSink) Path(path canvas.Path, mode canvas.PaintMode, _ canvas.ClipMode) {
	if mode == canvas.PaintNone {
		return
	}
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, seg := range path.Segments {
		for i := 0; i+1 < len(seg.Points); i += 2 {
			x, y := s.ctm.Apply(seg.Points[i], seg.Points[i+1])
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	if math.IsInf(minX, 1) {
		return
	}
	bounds := s.img.Bounds()
	r := image.Rect(int(minX), bounds.Dy()-int(maxY), int(maxX), bounds.Dy()-int(minY)).Intersect(bounds)
	if r.Empty() {
		return
	}
	c := s.fillColor
	switch mode {
	case canvas.PaintStroke:
		c = s.strokeColor
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func (s *PreviewSink) ShadeCommand(canvas.Paint, object.Rectangle, bool) {}

func (s *PreviewSink) Image(canvas.Image) {
	// Decoding and compositing actual pixel data is the image
	// collaborator's concern; this demo sink only traces geometry.
}

func (s *PreviewSink) Commands(sub []func(canvas.Sink)) {
	for _, f := range sub {
		f(s)
	}
}

func (s *PreviewSink) Finish() {}

// colorOf extracts a color.Color from a Paint's plain (non-pattern)
// color value, as produced by the device color spaces in package
// interp: []float64 of length 1 (gray), 3 (rgb), or 4 (cmyk).
func colorOf(p canvas.Paint) (color.Color, bool) {
	comps, ok := p.Color.([]float64)
	if !ok {
		return nil, false
	}
	clamp := func(f float64) uint8 {
		if f < 0 {
			f = 0
		}
		if f > 1 {
			f = 1
		}
		return uint8(f * 255)
	}
	switch len(comps) {
	case 1:
		g := clamp(comps[0])
		return color.RGBA{g, g, g, 255}, true
	case 3:
		return color.RGBA{clamp(comps[0]), clamp(comps[1]), clamp(comps[2]), 255}, true
	case 4:
		c, m, y, k := comps[0], comps[1], comps[2], comps[3]
		r := clamp((1 - c) * (1 - k))
		g := clamp((1 - m) * (1 - k))
		b := clamp((1 - y) * (1 - k))
		return color.RGBA{r, g, b, 255}, true
	default:
		return nil, false
	}
}
