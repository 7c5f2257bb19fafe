package interp

import "github.com/pdftools/contentstream/object"

// applyExtGState reads the named ExtGState dictionary and applies the
// subset of entries §4.7 lists, emitting the corresponding sink
// command for each one present. Unknown entries are ignored.
func (ip *Interpreter) applyExtGState(name object.Name) error {
	obj, err := ip.resolveExtGState(name)
	if err != nil {
		return err
	}

	if v, ok := obj.DictGet("LW"); ok {
		if f, ok := v.AsFloat(); ok {
			ip.gs.LineWidth = f
			ip.sink.StrokeWidth(f)
		}
	}
	if v, ok := obj.DictGet("LC"); ok {
		if f, ok := v.AsFloat(); ok {
			ip.gs.LineCap = int(f)
			ip.sink.EndCap(int(f))
		}
	}
	if v, ok := obj.DictGet("LJ"); ok {
		if f, ok := v.AsFloat(); ok {
			ip.gs.LineJoin = int(f)
			ip.sink.LineJoin(int(f))
		}
	}
	if v, ok := obj.DictGet("ML"); ok {
		if f, ok := v.AsFloat(); ok {
			ip.gs.MiterLimit = f
			ip.sink.MiterLimit(f)
		}
	}
	if v, ok := obj.DictGet("D"); ok && v.ArrayLen() == 2 {
		arrObj, _ := v.ArrayGet(0)
		phaseObj, _ := v.ArrayGet(1)
		arr := make([]float64, arrObj.ArrayLen())
		for i := range arr {
			el, _ := arrObj.ArrayGet(i)
			arr[i], _ = el.AsFloat()
		}
		phase, _ := phaseObj.AsFloat()
		ip.gs.Dash = object.DashPattern{Array: arr, Phase: phase}
		ip.sink.Dash(arr, phase)
	}
	if v, ok := obj.DictGet("Font"); ok && v.ArrayLen() == 2 {
		fontObj, _ := v.ArrayGet(0)
		sizeObj, _ := v.ArrayGet(1)
		size, _ := sizeObj.AsFloat()
		if ip.factories.Font != nil {
			if font, ferr := ip.factories.Font(fontObj, ip.resources); ferr == nil {
				ip.gs.Text.Font = font
				ip.gs.Text.FontSize = size
			} else {
				ip.debugf(1, "gs %q: ExtGState Font entry: %s", name, ferr)
			}
		}
	}
	if v, ok := obj.DictGet("CA"); ok {
		if f, ok := v.AsFloat(); ok {
			ip.gs.StrokeAlpha = f
			ip.sink.StrokeAlpha(f)
		}
	}
	if v, ok := obj.DictGet("ca"); ok {
		if f, ok := v.AsFloat(); ok {
			ip.gs.FillAlpha = f
			ip.sink.FillAlpha(f)
		}
	}
	return nil
}
