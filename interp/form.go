package interp

import (
	"fmt"

	"github.com/pdftools/contentstream/canvas"
	"github.com/pdftools/contentstream/object"
)

// invokeXObject implements `Do` (§4.4): resolve the named XObject and
// dispatch on its Subtype.
func (ip *Interpreter) invokeXObject(name object.Name) error {
	obj, err := ip.resolveXObject(name)
	if err != nil {
		return err
	}
	subtypeObj, ok := obj.DictGet("Subtype")
	if !ok {
		return fmt.Errorf("XObject %q: missing /Subtype", name)
	}
	subtype, _ := subtypeObj.AsName()
	switch subtype {
	case "Image":
		return ip.invokeImageXObject(obj)
	case "Form":
		return ip.invokeForm(obj)
	default:
		return fmt.Errorf("XObject %q: unsupported Subtype %q", name, subtype)
	}
}

func (ip *Interpreter) invokeImageXObject(obj object.PdfObject) error {
	if ip.factories.Image == nil {
		return &CollaboratorError{Kind: "image", Err: errNoImageFactory}
	}
	img, err := ip.factories.Image(obj, nil, nil, ip.resources)
	if err != nil {
		return &CollaboratorError{Kind: "image", Err: err}
	}
	mask := false
	if v, ok := obj.DictGet("ImageMask"); ok {
		mask, _ = v.AsBool()
	}
	ip.sink.Image(canvas.Image{Handle: img, ImageMask: mask})
	return nil
}

// invokeForm implements §4.8: consult the Form's cache slot; on miss,
// build and drive a sub-interpreter over its stream with merged
// resources, recording the sub-commands instead of emitting them
// directly, and memoize the result. Either way, wrap the (possibly
// cached) sub-commands in Push/Xform(Matrix)/clip-to-BBox/Commands/Pop.
func (ip *Interpreter) invokeForm(obj object.PdfObject) error {
	if limit := ip.opts.maxFormDepth(); ip.formDepth >= limit {
		return fmt.Errorf("form XObject recursion exceeds depth %d", limit)
	}

	cache := obj.Cache()
	cmds, err := ip.formCommands(obj, cache)
	if err != nil {
		return err
	}

	matrix := readFormMatrix(obj)
	bbox, hasBBox := readFormBBox(obj)

	ip.sink.Push()
	ip.sink.Xform(matrix)
	if hasBBox {
		var clipPath canvas.Path
		clipPath.Rect(bbox.LLx, bbox.LLy, bbox.URx-bbox.LLx, bbox.URy-bbox.LLy)
		ip.sink.Path(clipPath, canvas.PaintNone, canvas.ClipNonZero)
	}
	ip.sink.Commands(cmds)
	ip.sink.Pop()
	return nil
}

// formCommands returns the form's replay command list, from cache if
// present, otherwise by interpreting it — deduplicating concurrent
// misses for the same cache slot via singleflight.
func (ip *Interpreter) formCommands(obj object.PdfObject, cache *object.FormCache) ([]func(canvas.Sink), error) {
	if cached, ok := cache.Get(); ok {
		cmds, ok := cached.([]func(canvas.Sink))
		if !ok {
			return nil, fmt.Errorf("form cache: cached value of unexpected type %T", cached)
		}
		return cmds, nil
	}

	key := fmt.Sprintf("%p", cache)
	v, err, _ := ip.sf.Do(key, func() (any, error) {
		if cached, ok := cache.Get(); ok {
			return cached, nil
		}
		cmds, err := ip.interpretFormBody(obj)
		if err != nil {
			return nil, err
		}
		cache.Set(cmds)
		return cmds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]func(canvas.Sink)), nil
}

// interpretFormBody drives a fresh sub-interpreter over the form's
// decoded stream, recording its sink calls instead of emitting them.
func (ip *Interpreter) interpretFormBody(obj object.PdfObject) ([]func(canvas.Sink), error) {
	data, ok := obj.StreamBytes()
	if !ok {
		return nil, fmt.Errorf("form XObject: no stream data")
	}

	var formRes object.Resources
	if resObj, ok := obj.DictGet("Resources"); ok {
		formRes = object.Resources{Dict: resObj}
	}
	merged := object.Merge(ip.resources, formRes)

	rec := &recordingSink{}
	sub, err := New(data, merged, rec, ip.opts)
	if err != nil {
		return nil, err
	}
	sub.sf = ip.sf
	sub.formDepth = ip.formDepth + 1

	if err := sub.Run(); err != nil {
		return nil, err
	}
	return rec.cmds, nil
}

func readFormMatrix(obj object.PdfObject) object.Matrix {
	v, ok := obj.DictGet("Matrix")
	if !ok || v.ArrayLen() != 6 {
		return object.Identity
	}
	var m object.Matrix
	for i := range m {
		el, _ := v.ArrayGet(i)
		m[i], _ = el.AsFloat()
	}
	return m
}

func readFormBBox(obj object.PdfObject) (object.Rectangle, bool) {
	v, ok := obj.DictGet("BBox")
	if !ok || v.ArrayLen() != 4 {
		return object.Rectangle{}, false
	}
	vals := make([]float64, 4)
	for i := range vals {
		el, _ := v.ArrayGet(i)
		vals[i], _ = el.AsFloat()
	}
	return object.NewRectangle(vals[0], vals[1], vals[2]-vals[0], vals[3]-vals[1]), true
}

// recordingSink implements canvas.Sink by appending a replay closure
// for every call instead of acting on it immediately; used to capture
// a Form XObject's command sequence for caching (§4.8).
type recordingSink struct {
	cmds []func(canvas.Sink)
}

func (r *recordingSink) record(f func(canvas.Sink)) { r.cmds = append(r.cmds, f) }

func (r *recordingSink) Push() { r.record(func(s canvas.Sink) { s.Push() }) }
func (r *recordingSink) Pop()  { r.record(func(s canvas.Sink) { s.Pop() }) }
func (r *recordingSink) Xform(m canvas.Affine) {
	r.record(func(s canvas.Sink) { s.Xform(m) })
}
func (r *recordingSink) StrokeWidth(w float64) {
	r.record(func(s canvas.Sink) { s.StrokeWidth(w) })
}
func (r *recordingSink) EndCap(style int) { r.record(func(s canvas.Sink) { s.EndCap(style) }) }
func (r *recordingSink) LineJoin(style int) {
	r.record(func(s canvas.Sink) { s.LineJoin(style) })
}
func (r *recordingSink) MiterLimit(limit float64) {
	r.record(func(s canvas.Sink) { s.MiterLimit(limit) })
}
func (r *recordingSink) Dash(array []float64, phase float64) {
	cp := append([]float64(nil), array...)
	r.record(func(s canvas.Sink) { s.Dash(cp, phase) })
}
func (r *recordingSink) StrokeAlpha(alpha float64) {
	r.record(func(s canvas.Sink) { s.StrokeAlpha(alpha) })
}
func (r *recordingSink) FillAlpha(alpha float64) {
	r.record(func(s canvas.Sink) { s.FillAlpha(alpha) })
}
func (r *recordingSink) StrokePaint(p canvas.Paint) {
	r.record(func(s canvas.Sink) { s.StrokePaint(p) })
}
func (r *recordingSink) FillPaint(p canvas.Paint) {
	r.record(func(s canvas.Sink) { s.FillPaint(p) })
}
func (r *recordingSink) Path(path canvas.Path, mode canvas.PaintMode, clip canvas.ClipMode) {
	cp := path
	cp.Segments = append([]canvas.Segment(nil), path.Segments...)
	r.record(func(s canvas.Sink) { s.Path(cp, mode, clip) })
}
func (r *recordingSink) ShadeCommand(p canvas.Paint, bbox object.Rectangle, hasBBox bool) {
	r.record(func(s canvas.Sink) { s.ShadeCommand(p, bbox, hasBBox) })
}
func (r *recordingSink) Image(img canvas.Image) {
	r.record(func(s canvas.Sink) { s.Image(img) })
}
func (r *recordingSink) Commands(sub []func(canvas.Sink)) {
	cp := append([]func(canvas.Sink)(nil), sub...)
	r.record(func(s canvas.Sink) { s.Commands(cp) })
}
func (r *recordingSink) Finish() { r.record(func(s canvas.Sink) { s.Finish() }) }
