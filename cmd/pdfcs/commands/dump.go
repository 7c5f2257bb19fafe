package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdftools/contentstream/canvas"
	"github.com/pdftools/contentstream/interp"
	"github.com/pdftools/contentstream/object"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <content-stream-file>",
	Short: "Print every sink call the interpreter would emit",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		sink := &dumpSink{}
		ip, err := interp.New(data, object.Resources{}, sink, demoOptions())
		if err != nil {
			return fmt.Errorf("constructing interpreter: %w", err)
		}
		if err := ip.Run(); err != nil {
			return fmt.Errorf("interpreting %s: %w", args[0], err)
		}
		return nil
	},
}

// dumpSink implements canvas.Sink by logging a one-line description
// of every call it receives, in argument order.
type dumpSink struct {
	depth int
}

func (s *dumpSink) indent() string {
	return fmt.Sprintf("%*s", s.depth*2, "")
}

func (s *dumpSink) Push() { log.Printf("%sPush", s.indent()) }
func (s *dumpSink) Pop()  { log.Printf("%sPop", s.indent()) }
func (s *dumpSink) Xform(m canvas.Affine) {
	log.Printf("%sXform %v", s.indent(), m)
}
func (s *dumpSink) StrokeWidth(w float64) { log.Printf("%sStrokeWidth %g", s.indent(), w) }
func (s *dumpSink) EndCap(style int)      { log.Printf("%sEndCap %d", s.indent(), style) }
func (s *dumpSink) LineJoin(style int)    { log.Printf("%sLineJoin %d", s.indent(), style) }
func (s *dumpSink) MiterLimit(limit float64) {
	log.Printf("%sMiterLimit %g", s.indent(), limit)
}
func (s *dumpSink) Dash(array []float64, phase float64) {
	log.Printf("%sDash %v %g", s.indent(), array, phase)
}
func (s *dumpSink) StrokeAlpha(alpha float64) { log.Printf("%sStrokeAlpha %g", s.indent(), alpha) }
func (s *dumpSink) FillAlpha(alpha float64)   { log.Printf("%sFillAlpha %g", s.indent(), alpha) }
func (s *dumpSink) StrokePaint(p canvas.Paint) {
	log.Printf("%sStrokePaint %v", s.indent(), p.Color)
}
func (s *dumpSink) FillPaint(p canvas.Paint) {
	log.Printf("%sFillPaint %v", s.indent(), p.Color)
}
func (s *dumpSink) Path(path canvas.Path, mode canvas.PaintMode, clip canvas.ClipMode) {
	log.Printf("%sPath segments=%d mode=%d clip=%d", s.indent(), len(path.Segments), mode, clip)
}
func (s *dumpSink) ShadeCommand(p canvas.Paint, bbox object.Rectangle, hasBBox bool) {
	log.Printf("%sShadeCommand bbox=%v (present=%v)", s.indent(), bbox, hasBBox)
}
func (s *dumpSink) Image(img canvas.Image) {
	log.Printf("%sImage mask=%v", s.indent(), img.ImageMask)
}
func (s *dumpSink) Commands(sub []func(canvas.Sink)) {
	log.Printf("%sCommands (%d sub-commands)", s.indent(), len(sub))
	s.depth++
	for _, f := range sub {
		f(s)
	}
	s.depth--
}
func (s *dumpSink) Finish() { log.Printf("%sFinish", s.indent()) }
