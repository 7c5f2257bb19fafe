package interp

import (
	"github.com/pdftools/contentstream/canvas"
	"github.com/pdftools/contentstream/collab"
	"github.com/pdftools/contentstream/object"
)

// TextState holds the text formatter's mutable parameters (§6: "the
// text formatter... carries mutable matrices and spacing parameters").
// It is a plain value type, so a GraphicsState struct copy already
// gives it the deep clone §4.6 calls for — no pointer fields, no
// extra Clone method needed.
type TextState struct {
	CharSpace  float64
	WordSpace  float64
	HScale     float64 // Tz, percent; 100 = unscaled
	Leading    float64
	Rise       float64
	RenderMode int

	Font     collab.Font
	FontSize float64

	Matrix     object.Matrix // Tm: current text matrix
	LineMatrix object.Matrix // Tlm: text line matrix
}

func newTextState() TextState {
	return TextState{HScale: 100, Matrix: object.Identity, LineMatrix: object.Identity}
}

// GraphicsState is the mutable state `q`/`Q` save and restore (§4.6).
// Color-space handles are interfaces (shared, immutable once
// resolved); embedding TextState by value gives it the required deep
// clone for free on every Go struct copy.
type GraphicsState struct {
	CTM object.Matrix

	StrokeSpace collab.ColorSpace
	FillSpace   collab.ColorSpace
	StrokePaint canvas.Paint
	FillPaint   canvas.Paint

	LineWidth  float64
	LineCap    int
	LineJoin   int
	MiterLimit float64
	Dash       object.DashPattern

	StrokeAlpha float64
	FillAlpha   float64

	Text TextState
}

// newGraphicsState returns the initial state for a fresh interpreter:
// identity CTM, full opacity, miter joins, and both fill and stroke
// color spaces defaulted to DeviceGray (§3: "Setup allocates...the
// initial GraphicsState (both color spaces = DeviceGray...)").
func newGraphicsState() GraphicsState {
	return GraphicsState{
		CTM:         object.Identity,
		StrokeSpace: deviceGray,
		FillSpace:   deviceGray,
		LineWidth:   1,
		MiterLimit:  10,
		StrokeAlpha: 1,
		FillAlpha:   1,
		Text:        newTextState(),
	}
}

// Clone returns a copy of gs suitable for pushing onto the `q` stack.
func (gs GraphicsState) Clone() GraphicsState {
	return gs
}
