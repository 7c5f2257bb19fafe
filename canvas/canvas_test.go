package canvas

import (
	"reflect"
	"runtime"
	"testing"

	"github.com/pdftools/contentstream/object"
)

func TestPathBuildersAppendSegments(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.CurveTo(10, 5, 5, 10, 0, 10)
	p.Close()

	if len(p.Segments) != 4 {
		t.Fatalf("want 4 segments, got %d", len(p.Segments))
	}
	want := []SegmentOp{OpMoveTo, OpLineTo, OpCurveTo, OpClose}
	for i, seg := range p.Segments {
		if seg.Op != want[i] {
			t.Errorf("segment %d: want %v, got %v", i, want[i], seg.Op)
		}
	}
}

func TestRectProducesClosedFourLineSubpath(t *testing.T) {
	var p Path
	p.Rect(1, 2, 3, 4)
	ops := make([]SegmentOp, len(p.Segments))
	for i, seg := range p.Segments {
		ops[i] = seg.Op
	}
	want := []SegmentOp{OpMoveTo, OpLineTo, OpLineTo, OpLineTo, OpClose}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("want %v, got %v", want, ops)
	}
}

func TestCurrentPoint(t *testing.T) {
	var p Path
	if _, _, ok := p.CurrentPoint(); ok {
		t.Fatal("empty path should report no current point")
	}
	p.MoveTo(1, 2)
	p.LineTo(3, 4)
	x, y, ok := p.CurrentPoint()
	if !ok || x != 3 || y != 4 {
		t.Errorf("want (3,4), got (%v,%v,%v)", x, y, ok)
	}
	p.CurveTo(0, 0, 0, 0, 9, 9)
	x, y, ok = p.CurrentPoint()
	if !ok || x != 9 || y != 9 {
		t.Errorf("after CurveTo want (9,9), got (%v,%v,%v)", x, y, ok)
	}
}

func TestResetClearsSegmentsWithoutReallocating(t *testing.T) {
	var p Path
	p.MoveTo(1, 1)
	p.LineTo(2, 2)
	before := cap(p.Segments)
	p.Reset()
	if len(p.Segments) != 0 {
		t.Fatalf("want empty after Reset, got %d", len(p.Segments))
	}
	if cap(p.Segments) != before {
		t.Errorf("Reset should preserve capacity: want %d, got %d", before, cap(p.Segments))
	}
}

// fakeSink is a minimal canvas.Sink used only to confirm the
// interface's method set is satisfiable by a plain struct.
type fakeSink struct{ pushes int }

func (f *fakeSink) Push()                                       { f.pushes++ }
func (f *fakeSink) Pop()                                        { f.pushes-- }
func (*fakeSink) Xform(Affine)                                  {}
func (*fakeSink) StrokeWidth(float64)                           {}
func (*fakeSink) EndCap(int)                                    {}
func (*fakeSink) LineJoin(int)                                  {}
func (*fakeSink) MiterLimit(float64)                            {}
func (*fakeSink) Dash([]float64, float64)                       {}
func (*fakeSink) StrokeAlpha(float64)                           {}
func (*fakeSink) FillAlpha(float64)                             {}
func (*fakeSink) StrokePaint(Paint)                             {}
func (*fakeSink) FillPaint(Paint)                               {}
func (*fakeSink) Path(Path, PaintMode, ClipMode)                {}
func (*fakeSink) ShadeCommand(Paint, object.Rectangle, bool)     {}
func (*fakeSink) Image(Image)                                   {}
func (*fakeSink) Commands([]func(Sink))                         {}
func (*fakeSink) Finish()                                       {}

func TestFakeSinkSatisfiesInterface(t *testing.T) {
	var s Sink = &fakeSink{}
	s.Push()
	s.Pop()
}

func TestSinkHolderWeakUpgradesWhileStronglyReferenced(t *testing.T) {
	holder := NewSinkHolder(&fakeSink{})
	wp := holder.Weak()
	got := wp.Value()
	if got == nil {
		t.Fatal("expected strong holder to upgrade")
	}
	runtime.KeepAlive(holder)
}
