// Package canvas defines the command sink interface the interpreter
// drives (§6) and the value types (paths, paints) passed to it. It
// also provides SinkHolder, the strong-reference box a host keeps
// alive while the interpreter's driver holds only a weak pointer to
// it, so the sink can be garbage-collected out from under an
// in-progress, externally-stepped interpretation (§4.10, §5).
package canvas

import "github.com/pdftools/contentstream/object"

// PaintMode selects which of fill/stroke a path-painting operator
// performs, and with which winding rule.
type PaintMode uint8

const (
	PaintNone PaintMode = iota
	PaintStroke
	PaintFillNonZero
	PaintFillEvenOdd
	PaintFillStrokeNonZero
	PaintFillStrokeEvenOdd
)

// ClipMode indicates whether a painted path also becomes the new
// clipping path (`W`/`W*`), and with which winding rule.
type ClipMode uint8

const (
	ClipNone ClipMode = iota
	ClipNonZero
	ClipEvenOdd
)

// SegmentOp identifies one path construction command.
type SegmentOp uint8

const (
	OpMoveTo SegmentOp = iota
	OpLineTo
	OpCurveTo // two control points + endpoint (6 floats)
	OpClose
)

// Segment is one element of a Path, in the raw, untransformed
// coordinates the path-construction operators were called with; the
// CTM in effect at construction time is reported to the sink
// separately via Xform, and it is the sink's responsibility to
// combine the two (per §4.4's "commit encodes path...and hands the
// completed path to the sink").
type Segment struct {
	Op     SegmentOp
	Points []float64 // len 2 for MoveTo/LineTo, 6 for CurveTo, 0 for Close
}

// Path is an ordered sequence of subpaths built by `m`/`l`/`c`/`v`/`y`/`h`/`re`.
type Path struct {
	Segments []Segment
}

// Reset empties the path in place, for reuse across `q`/`Q` clone
// boundaries without reallocating.
func (p *Path) Reset() { p.Segments = p.Segments[:0] }

// MoveTo, LineTo, CurveTo and Close append to the path; Rect appends
// a closed four-line subpath equivalent to the `re` operator.
func (p *Path) MoveTo(x, y float64) { p.Segments = append(p.Segments, Segment{Op: OpMoveTo, Points: []float64{x, y}}) }
func (p *Path) LineTo(x, y float64) { p.Segments = append(p.Segments, Segment{Op: OpLineTo, Points: []float64{x, y}}) }
func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	p.Segments = append(p.Segments, Segment{Op: OpCurveTo, Points: []float64{x1, y1, x2, y2, x3, y3}})
}
func (p *Path) Close() { p.Segments = append(p.Segments, Segment{Op: OpClose}) }

// CurrentPoint returns the endpoint of the last MoveTo/LineTo/CurveTo
// segment, used by `v`/`y` (curves that reuse the current point as a
// control point) and by `h` (implicit return to the subpath start is
// the sink's concern, not this package's).
func (p *Path) CurrentPoint() (x, y float64, ok bool) {
	for i := len(p.Segments) - 1; i >= 0; i-- {
		seg := p.Segments[i]
		switch seg.Op {
		case OpMoveTo, OpLineTo:
			return seg.Points[0], seg.Points[1], true
		case OpCurveTo:
			return seg.Points[4], seg.Points[5], true
		}
	}
	return 0, 0, false
}

// Rect appends a closed rectangle subpath, starting at (x, y) and
// proceeding counter-clockwise as the PDF `re` operator defines.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Paint is an opaque color or pattern value, produced by a
// collab.ColorSpace or collab.Pattern and consumed only by the sink.
type Paint struct {
	// Color is set for a plain (non-pattern) paint, built via
	// collab.ColorSpace.Color.
	Color any
	// Pattern is set when the current color space is a Pattern space
	// (SCN/scn with a trailing name); mutually exclusive with Color.
	Pattern any
}

// Image wraps a resolved collab.Image (or, for an image mask, just
// the mask semantics) for the Image sink command.
type Image struct {
	Handle    any // the collab.Image instance
	ImageMask bool
}

// Affine is the six coefficients of a `cm`/`Tm` matrix, passed to
// Xform as object.Matrix to avoid this package importing collab.
type Affine = object.Matrix

// Sink is the polymorphic command sink the interpreter drives (§6).
// Every method corresponds to one line of the spec's command list;
// a host's concrete renderer/rasterizer implements this interface and
// is otherwise opaque to the interpreter.
type Sink interface {
	Push()
	Pop()
	Xform(m Affine)
	StrokeWidth(w float64)
	EndCap(style int)
	LineJoin(style int)
	MiterLimit(limit float64)
	Dash(array []float64, phase float64)
	StrokeAlpha(alpha float64)
	FillAlpha(alpha float64)
	StrokePaint(p Paint)
	FillPaint(p Paint)
	// Path hands a completed path to the sink together with how it
	// should be painted and/or turned into the new clip (mode and
	// clip are independent per §4.4: `n` uses PaintNone with a
	// possibly-set clip).
	Path(path Path, mode PaintMode, clip ClipMode)
	ShadeCommand(p Paint, bbox object.Rectangle, hasBBox bool)
	Image(img Image)
	// Commands inlines a previously recorded sub-command list (a Form
	// XObject replay, §4.8); the driver never calls the sub-commands'
	// methods directly, it calls Commands once with the closures it
	// collected.
	Commands(sub []func(Sink))
	Finish()
}
