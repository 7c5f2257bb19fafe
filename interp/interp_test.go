package interp

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pdftools/contentstream/canvas"
	"github.com/pdftools/contentstream/collab"
	"github.com/pdftools/contentstream/object"
)

// recSink records every call made to it, for assertions, and embeds
// recordingSink's append-based method bodies by reuse. Commands
// replays the sub-commands into recSink itself, as a rendering sink
// would.
type recSink struct {
	recordingSink
	pushes, pops int
	paths        []pathCall
	lastPath     canvas.Path
	images       int
	finished     bool
}

type pathCall struct {
	mode canvas.PaintMode
	clip canvas.ClipMode
	segN int
}

func newRecSink() *recSink { return &recSink{} }

func (r *recSink) Push() { r.pushes++ }
func (r *recSink) Pop()  { r.pops++ }
func (r *recSink) Path(p canvas.Path, mode canvas.PaintMode, clip canvas.ClipMode) {
	r.paths = append(r.paths, pathCall{mode: mode, clip: clip, segN: len(p.Segments)})
	r.lastPath = canvas.Path{Segments: append([]canvas.Segment(nil), p.Segments...)}
}
func (r *recSink) Commands(sub []func(canvas.Sink)) {
	for _, f := range sub {
		f(r)
	}
}
func (r *recSink) Image(canvas.Image) { r.images++ }
func (r *recSink) Finish()            { r.finished = true }

type fakeFont struct{}

func (fakeFont) Width(rune) float64 { return 600 }

func testFactories() collab.Factories {
	return collab.Factories{
		Font: func(obj object.PdfObject, res object.Resources) (collab.Font, error) {
			return fakeFont{}, nil
		},
	}
}

func testResources() object.Resources {
	fonts := object.Dict{"F1": object.NewLiteral(object.Str{Bytes: []byte("Helvetica"), IsName: true})}
	root := object.Dict{"Font": object.NewLiteral(fonts)}
	return object.Resources{Dict: object.NewLiteral(root)}
}

func run(t *testing.T, content string, sink canvas.Sink) *Interpreter {
	t.Helper()
	ip, err := New([]byte(content), testResources(), sink, Options{Factories: testFactories()})
	if err != nil {
		t.Fatal(err)
	}
	if err := ip.Run(); err != nil {
		t.Fatalf("Run: %s", err)
	}
	return ip
}

func TestMinimalFill(t *testing.T) {
	s := newRecSink()
	run(t, "1 0 0 rg 0 0 100 100 re f", s)
	if len(s.paths) != 1 {
		t.Fatalf("want 1 path commit, got %d", len(s.paths))
	}
	if s.paths[0].mode != canvas.PaintFillNonZero {
		t.Errorf("want PaintFillNonZero, got %v", s.paths[0].mode)
	}
	if s.paths[0].segN != 5 {
		t.Errorf("want 5 segments (re = 4 lines + close), got %d", s.paths[0].segN)
	}
}

func TestSaveRestorePairing(t *testing.T) {
	s := newRecSink()
	ip := run(t, "q 1 0 0 1 10 10 cm Q", s)
	if s.pushes != 1 || s.pops != 1 {
		t.Errorf("want 1 push and 1 pop, got %d/%d", s.pushes, s.pops)
	}
	if len(ip.gsStack) != 0 {
		t.Errorf("want empty gs stack after balanced q/Q, got %d", len(ip.gsStack))
	}
	if ip.gs.CTM != object.Identity {
		t.Errorf("want CTM restored to identity after Q, got %v", ip.gs.CTM)
	}
}

func TestEvenOddFillAndStroke(t *testing.T) {
	s := newRecSink()
	run(t, "0 0 100 100 re B*", s)
	if len(s.paths) != 1 || s.paths[0].mode != canvas.PaintFillStrokeEvenOdd {
		t.Fatalf("want PaintFillStrokeEvenOdd, got %v", s.paths)
	}
}

func TestClipThenPaint(t *testing.T) {
	s := newRecSink()
	run(t, "0 0 50 50 re W n", s)
	if len(s.paths) != 1 {
		t.Fatalf("want 1 path commit, got %d", len(s.paths))
	}
	if s.paths[0].mode != canvas.PaintNone {
		t.Errorf("want PaintNone for `n`, got %v", s.paths[0].mode)
	}
	if s.paths[0].clip != canvas.ClipNonZero {
		t.Errorf("want ClipNonZero pending from W, got %v", s.paths[0].clip)
	}
}

func TestTextLineWithKerning(t *testing.T) {
	s := newRecSink()
	ip := run(t, `BT /F1 12 Tf (Hi) Tj [10 (there)] TJ ET`, s)
	if ip.gs.Text.FontSize != 12 {
		t.Errorf("want FontSize 12, got %v", ip.gs.Text.FontSize)
	}
	if ip.gs.Text.Matrix == object.Identity {
		t.Error("expected text matrix to have advanced past identity")
	}
}

func TestToleratedUnknownOperatorInsideBXEX(t *testing.T) {
	s := newRecSink()
	ip, err := New([]byte("BX /Bogus xyz EX"), testResources(), s, Options{Factories: testFactories()})
	if err != nil {
		t.Fatal(err)
	}
	if err := ip.Run(); err != nil {
		t.Fatalf("expected BX/EX to suppress unknown operator, got %s", err)
	}
}

func TestUnknownOperatorOutsideBXIsFatal(t *testing.T) {
	s := newRecSink()
	ip, err := New([]byte("xyz"), testResources(), s, Options{Factories: testFactories()})
	if err != nil {
		t.Fatal(err)
	}
	if err := ip.Run(); err == nil {
		t.Fatal("expected unknown operator outside BX/EX to be fatal")
	}
}

func TestOperandStackClearedAfterEachOperator(t *testing.T) {
	s := newRecSink()
	ip, err := New([]byte("1 0 0 rg 0 0 100 100 re f q Q"), testResources(), s, Options{Factories: testFactories()})
	if err != nil {
		t.Fatal(err)
	}
	for {
		status, err := ip.Step()
		if err != nil {
			t.Fatal(err)
		}
		if status == StatusCompleted {
			if ip.stack.Len() != 0 {
				t.Errorf("want empty stack at stream end, got len %d", ip.stack.Len())
			}
			return
		}
	}
}

func TestPathConstructionOperatorsBuildExpectedSegments(t *testing.T) {
	s := newRecSink()
	run(t, "10 10 m 20 10 l 20 20 30 30 40 20 c h f", s)

	want := canvas.Path{
		Segments: []canvas.Segment{
			{Op: canvas.OpMoveTo, Points: []float64{10, 10}},
			{Op: canvas.OpLineTo, Points: []float64{20, 10}},
			{Op: canvas.OpCurveTo, Points: []float64{20, 20, 30, 30, 40, 20}},
			{Op: canvas.OpClose},
		},
	}
	if diff := cmp.Diff(want, s.lastPath); diff != "" {
		t.Errorf("path segments mismatch (-want +got):\n%s", diff)
	}
}

func TestPathResetAfterPainting(t *testing.T) {
	s := newRecSink()
	ip := run(t, "0 0 10 10 re f 0 0 20 20 re f", s)
	if len(ip.path.Segments) != 0 {
		t.Errorf("want path reset after painting, got %d segments left", len(ip.path.Segments))
	}
	if len(s.paths) != 2 {
		t.Fatalf("want 2 separate path commits, got %d", len(s.paths))
	}
}
