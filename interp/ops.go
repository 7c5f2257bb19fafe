package interp

import (
	"fmt"

	"github.com/pdftools/contentstream/canvas"
	"github.com/pdftools/contentstream/object"
)

// execOperator runs the operator named op, popping its operands from
// ip.stack. This is the authoritative operator set of §4.4, grouped
// by concern in the same order as the spec.
func (ip *Interpreter) execOperator(op string) error {
	switch op {

	// Combined operators some encoders emit as a single token (§4.4's
	// "Combined operators"): run each component in sequence.
	case "QBT":
		if err := ip.execOperator("Q"); err != nil {
			return err
		}
		return ip.execOperator("BT")
	case "Qq":
		if err := ip.execOperator("Q"); err != nil {
			return err
		}
		return ip.execOperator("q")
	case "qBT":
		if err := ip.execOperator("q"); err != nil {
			return err
		}
		return ip.execOperator("BT")

	// Graphics-state save/restore.
	case "q":
		ip.gsStack = append(ip.gsStack, ip.gs.Clone())
		ip.sink.Push()
		return nil
	case "Q":
		ip.sink.Pop()
		if n := len(ip.gsStack); n > 0 {
			ip.gs = ip.gsStack[n-1]
			ip.gsStack = ip.gsStack[:n-1]
		}
		return nil

	// Transform & stroke parameters.
	case "cm":
		nums, err := ip.stack.PopNFloats(6)
		if err != nil {
			return err
		}
		m := object.Matrix{nums[0], nums[1], nums[2], nums[3], nums[4], nums[5]}
		ip.gs.CTM = m.Mul(ip.gs.CTM)
		ip.sink.Xform(m)
		return nil
	case "w":
		f, err := ip.stack.PopFloat()
		if err != nil {
			return err
		}
		ip.gs.LineWidth = f
		ip.sink.StrokeWidth(f)
		return nil
	case "J":
		n, err := ip.stack.PopInt()
		if err != nil {
			return err
		}
		ip.gs.LineCap = n
		ip.sink.EndCap(n)
		return nil
	case "j":
		n, err := ip.stack.PopInt()
		if err != nil {
			return err
		}
		ip.gs.LineJoin = n
		ip.sink.LineJoin(n)
		return nil
	case "M":
		f, err := ip.stack.PopFloat()
		if err != nil {
			return err
		}
		ip.gs.MiterLimit = f
		ip.sink.MiterLimit(f)
		return nil
	case "d":
		phase, err := ip.stack.PopFloat()
		if err != nil {
			return err
		}
		arr, err := ip.stack.PopFloatArray()
		if err != nil {
			return err
		}
		ip.gs.Dash = object.DashPattern{Array: arr, Phase: phase}
		ip.sink.Dash(arr, phase)
		return nil
	case "ri":
		// Rendering intent: consumed and ignored.
		_, err := ip.stack.PopName()
		return err
	case "i":
		// Flatness tolerance: consumed and ignored.
		_, err := ip.stack.PopFloat()
		return err
	case "gs":
		name, err := ip.stack.PopName()
		if err != nil {
			return err
		}
		return ip.applyExtGState(name)

	// Path construction.
	case "m":
		x, y, err := ip.pop2()
		if err != nil {
			return err
		}
		ip.path.MoveTo(x, y)
		return nil
	case "l":
		x, y, err := ip.pop2()
		if err != nil {
			return err
		}
		ip.path.LineTo(x, y)
		return nil
	case "c":
		n, err := ip.stack.PopNFloats(6)
		if err != nil {
			return err
		}
		ip.path.CurveTo(n[0], n[1], n[2], n[3], n[4], n[5])
		return nil
	case "v":
		n, err := ip.stack.PopNFloats(4)
		if err != nil {
			return err
		}
		cx, cy, ok := ip.path.CurrentPoint()
		if !ok {
			cx, cy = n[0], n[1]
		}
		ip.path.CurveTo(cx, cy, n[0], n[1], n[2], n[3])
		return nil
	case "y":
		n, err := ip.stack.PopNFloats(4)
		if err != nil {
			return err
		}
		ip.path.CurveTo(n[0], n[1], n[2], n[3], n[2], n[3])
		return nil
	case "h":
		ip.path.Close()
		return nil
	case "re":
		n, err := ip.stack.PopNFloats(4)
		if err != nil {
			return err
		}
		ip.path.Rect(n[0], n[1], n[2], n[3])
		return nil

	// Path painting: reset CurrentPath and ClipFlag after each.
	case "S":
		return ip.paint(canvas.PaintStroke)
	case "s":
		ip.path.Close()
		return ip.paint(canvas.PaintStroke)
	case "f", "F":
		return ip.paint(canvas.PaintFillNonZero)
	case "f*":
		return ip.paint(canvas.PaintFillEvenOdd)
	case "B":
		return ip.paint(canvas.PaintFillStrokeNonZero)
	case "B*":
		return ip.paint(canvas.PaintFillStrokeEvenOdd)
	case "b":
		ip.path.Close()
		return ip.paint(canvas.PaintFillStrokeNonZero)
	case "b*":
		ip.path.Close()
		return ip.paint(canvas.PaintFillStrokeEvenOdd)
	case "n":
		return ip.paint(canvas.PaintNone)
	case "W":
		ip.pendingClip = canvas.ClipNonZero
		return nil
	case "W*":
		ip.pendingClip = canvas.ClipEvenOdd
		return nil

	// Color.
	case "CS":
		return ip.setColorSpace(false)
	case "cs":
		return ip.setColorSpace(true)
	case "SC":
		return ip.setColor(false, false)
	case "sc":
		return ip.setColor(true, false)
	case "SCN":
		return ip.setColor(false, true)
	case "scn":
		return ip.setColor(true, true)
	case "G":
		return ip.setDeviceColor(false, deviceGray)
	case "g":
		return ip.setDeviceColor(true, deviceGray)
	case "RG":
		return ip.setDeviceColor(false, deviceRGB)
	case "rg":
		return ip.setDeviceColor(true, deviceRGB)
	case "K":
		return ip.setDeviceColor(false, deviceCMYK)
	case "k":
		return ip.setDeviceColor(true, deviceCMYK)

	// External objects.
	case "Do":
		name, err := ip.stack.PopName()
		if err != nil {
			return err
		}
		return ip.invokeXObject(name)
	case "sh":
		name, err := ip.stack.PopName()
		if err != nil {
			return err
		}
		ip.execShading(name)
		return nil
	case "BI":
		return ip.execInlineImage()

	// Text.
	case "BT":
		ip.gs.Text.Matrix = object.Identity
		ip.gs.Text.LineMatrix = object.Identity
		return nil
	case "ET":
		return nil
	case "Tc":
		f, err := ip.stack.PopFloat()
		if err != nil {
			return err
		}
		ip.gs.Text.CharSpace = f
		return nil
	case "Tw":
		f, err := ip.stack.PopFloat()
		if err != nil {
			return err
		}
		ip.gs.Text.WordSpace = f
		return nil
	case "Tz":
		f, err := ip.stack.PopFloat()
		if err != nil {
			return err
		}
		ip.gs.Text.HScale = f
		return nil
	case "TL":
		f, err := ip.stack.PopFloat()
		if err != nil {
			return err
		}
		ip.gs.Text.Leading = f
		return nil
	case "Ts":
		f, err := ip.stack.PopFloat()
		if err != nil {
			return err
		}
		ip.gs.Text.Rise = f
		return nil
	case "Tf":
		size, err := ip.stack.PopFloat()
		if err != nil {
			return err
		}
		name, err := ip.stack.PopName()
		if err != nil {
			return err
		}
		font, err := ip.resolveFont(name)
		if err != nil {
			return err
		}
		ip.gs.Text.Font = font
		ip.gs.Text.FontSize = size
		return nil
	case "Tr":
		n, err := ip.stack.PopInt()
		if err != nil {
			return err
		}
		ip.gs.Text.RenderMode = n
		return nil
	case "Td":
		x, y, err := ip.pop2()
		if err != nil {
			return err
		}
		ip.textNewLine(x, y)
		return nil
	case "TD":
		x, y, err := ip.pop2()
		if err != nil {
			return err
		}
		ip.gs.Text.Leading = -y
		ip.textNewLine(x, y)
		return nil
	case "Tm":
		n, err := ip.stack.PopNFloats(6)
		if err != nil {
			return err
		}
		m := object.Matrix{n[0], n[1], n[2], n[3], n[4], n[5]}
		ip.gs.Text.Matrix = m
		ip.gs.Text.LineMatrix = m
		return nil
	case "T*":
		ip.textNewLine(0, -ip.gs.Text.Leading)
		return nil
	case "Tj":
		b, err := ip.stack.PopString()
		if err != nil {
			return err
		}
		return ip.showText(b)
	case "'":
		b, err := ip.stack.PopString()
		if err != nil {
			return err
		}
		ip.textNewLine(0, -ip.gs.Text.Leading)
		return ip.showText(b)
	case `"`:
		b, err := ip.stack.PopString()
		if err != nil {
			return err
		}
		ac, err := ip.stack.PopFloat()
		if err != nil {
			return err
		}
		aw, err := ip.stack.PopFloat()
		if err != nil {
			return err
		}
		ip.gs.Text.WordSpace = aw
		ip.gs.Text.CharSpace = ac
		ip.textNewLine(0, -ip.gs.Text.Leading)
		return ip.showText(b)
	case "TJ":
		arr, err := ip.stack.PopArray()
		if err != nil {
			return err
		}
		return ip.showTextSpaced(arr)

	// Marked content & misc: consume declared operands, otherwise ignored.
	case "MP":
		_, err := ip.stack.PopName()
		return err
	case "DP":
		if _, err := ip.stack.PopValue(); err != nil {
			return err
		}
		_, err := ip.stack.PopName()
		return err
	case "BMC":
		_, err := ip.stack.PopName()
		return err
	case "BDC":
		if _, err := ip.stack.PopValue(); err != nil {
			return err
		}
		_, err := ip.stack.PopName()
		return err
	case "EMC":
		return nil
	case "d0":
		_, err := ip.stack.PopNFloats(2)
		return err
	case "d1":
		_, err := ip.stack.PopNFloats(6)
		return err

	// Error-suppression bracket.
	case "BX":
		ip.catchExceptions = true
		return nil
	case "EX":
		ip.catchExceptions = false
		return nil

	default:
		return unknownOperatorError(op)
	}
}

func (ip *Interpreter) pop2() (float64, float64, error) {
	n, err := ip.stack.PopNFloats(2)
	if err != nil {
		return 0, 0, err
	}
	return n[0], n[1], nil
}

// paint hands the completed path to the sink per the committed mode
// and any pending clip, then resets path construction state (§4.4:
// "after each, reset CurrentPath and ClipFlag").
func (ip *Interpreter) paint(mode canvas.PaintMode) error {
	ip.sink.Path(ip.path, mode, ip.pendingClip)
	ip.path.Reset()
	ip.pendingClip = canvas.ClipNone
	return nil
}

func (ip *Interpreter) setColorSpace(fill bool) error {
	name, err := ip.stack.PopName()
	if err != nil {
		return err
	}
	cs, err := ip.resolveColorSpace(name)
	if err != nil {
		return err
	}
	if fill {
		ip.gs.FillSpace = cs
	} else {
		ip.gs.StrokeSpace = cs
	}
	return nil
}

// setColor implements SC/sc/SCN/scn. pattern indicates whether a
// trailing pattern name may be present (SCN/scn); for SC/sc the
// source never expects one, but a defensively-tolerant trailing name
// is still accepted per §9's open question.
func (ip *Interpreter) setColor(fill, pattern bool) error {
	cs := ip.gs.StrokeSpace
	if fill {
		cs = ip.gs.FillSpace
	}
	if cs == nil {
		return fmt.Errorf("no color space set before %s", opName(fill, "SC"))
	}

	if cs.IsPattern() && pattern {
		patName, err := ip.stack.PopName()
		if err != nil {
			return err
		}
		underlying, err := ip.stack.PopNFloats(ip.stack.Len())
		if err != nil {
			return err
		}
		pat, err := ip.resolvePattern(patName)
		if err != nil {
			return err
		}
		paint := canvas.Paint{Pattern: pat, Color: floatsOrNil(underlying)}
		ip.setPaint(fill, paint)
		return nil
	}

	if top, ok := ip.stack.Peek(); ok {
		if s, isStr := top.(object.Str); isStr && s.IsName {
			name, _ := ip.stack.PopName()
			ip.debugf(1, "%s: trailing pattern name %q present in non-Pattern color space", opName(fill, "SC"), name)
		}
	}
	n := cs.NumComponents()
	comps, err := ip.stack.PopNFloats(n)
	if err != nil {
		return err
	}
	color, err := cs.Color(comps)
	if err != nil {
		return &CollaboratorError{Kind: "colorspace", Err: err}
	}
	ip.setPaint(fill, canvas.Paint{Color: color})
	return nil
}

func floatsOrNil(f []float64) any {
	if len(f) == 0 {
		return nil
	}
	return f
}

func opName(fill bool, stroke string) string {
	if fill {
		return "s" + stroke[1:]
	}
	return stroke
}

func (ip *Interpreter) setPaint(fill bool, p canvas.Paint) {
	if fill {
		ip.gs.FillPaint = p
		ip.sink.FillPaint(p)
	} else {
		ip.gs.StrokePaint = p
		ip.sink.StrokePaint(p)
	}
}

func (ip *Interpreter) setDeviceColor(fill bool, cs deviceColorSpace) error {
	comps, err := ip.stack.PopNFloats(cs.n)
	if err != nil {
		return err
	}
	color, _ := cs.Color(comps)
	if fill {
		ip.gs.FillSpace = cs
	} else {
		ip.gs.StrokeSpace = cs
	}
	ip.setPaint(fill, canvas.Paint{Color: color})
	return nil
}

func (ip *Interpreter) textNewLine(tx, ty float64) {
	translate := object.Matrix{1, 0, 0, 1, tx, ty}
	m := translate.Mul(ip.gs.Text.LineMatrix)
	ip.gs.Text.LineMatrix = m
	ip.gs.Text.Matrix = m
}

func (ip *Interpreter) execShading(name object.Name) {
	shader, err := ip.resolveShading(name)
	if err != nil {
		ip.debugf(1, "sh %q: %s", name, err)
		return
	}
	bbox, hasBBox := shader.BBox()
	ip.sink.ShadeCommand(canvas.Paint{Pattern: shader}, bbox, hasBBox)
}
