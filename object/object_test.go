package object

import "testing"

func TestLiteralAccessors(t *testing.T) {
	dict := Dict{
		"Width":  NewLiteral(Number(10)),
		"Name":   NewLiteral(Str{Bytes: []byte("DeviceGray"), IsName: true}),
		"Mask":   NewLiteral(Bool(true)),
		"Points": NewLiteral(Array{Number(1), Number(2)}),
	}
	obj := NewLiteral(dict)

	w, ok := obj.DictGet("Width")
	if !ok {
		t.Fatal("missing Width")
	}
	if f, ok := w.AsFloat(); !ok || f != 10 {
		t.Errorf("Width: got %v, %v", f, ok)
	}

	n, ok := obj.DictGet("Name")
	if !ok {
		t.Fatal("missing Name")
	}
	if nm, ok := n.AsName(); !ok || nm != "DeviceGray" {
		t.Errorf("Name: got %v, %v", nm, ok)
	}

	m, ok := obj.DictGet("Mask")
	if !ok {
		t.Fatal("missing Mask")
	}
	if b, ok := m.AsBool(); !ok || !b {
		t.Errorf("Mask: got %v, %v", b, ok)
	}

	pts, ok := obj.DictGet("Points")
	if !ok {
		t.Fatal("missing Points")
	}
	if pts.ArrayLen() != 2 {
		t.Fatalf("Points: want len 2, got %d", pts.ArrayLen())
	}
	p0, _ := pts.ArrayGet(0)
	if f, _ := p0.AsFloat(); f != 1 {
		t.Errorf("Points[0]: want 1, got %v", f)
	}

	if _, ok := obj.DictGet("Missing"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestFormCacheSetOnce(t *testing.T) {
	var c FormCache
	if _, ok := c.Get(); ok {
		t.Fatal("zero-value FormCache should report unset")
	}
	c.Set("replay")
	got, ok := c.Get()
	if !ok || got != "replay" {
		t.Fatalf("Set/Get roundtrip failed: %v, %v", got, ok)
	}
}

func TestResourcesFind(t *testing.T) {
	fonts := Dict{"F1": NewLiteral(Str{Bytes: []byte("Helvetica"), IsName: true})}
	root := Dict{"Font": NewLiteral(fonts)}
	r := Resources{Dict: NewLiteral(root)}

	obj, ok := r.Find(CategoryFont, "F1")
	if !ok {
		t.Fatal("expected to find F1")
	}
	if name, _ := obj.AsName(); name != "Helvetica" {
		t.Errorf("want Helvetica, got %v", name)
	}

	if _, ok := r.Find(CategoryFont, "F2"); ok {
		t.Error("expected miss for absent name")
	}
	if _, ok := r.Find(CategoryExtGState, "GS1"); ok {
		t.Error("expected miss for absent category")
	}
}

func TestMergeResourcesOverridesByKey(t *testing.T) {
	callerFonts := Dict{
		"F1": NewLiteral(Str{Bytes: []byte("Caller1"), IsName: true}),
		"F2": NewLiteral(Str{Bytes: []byte("Caller2"), IsName: true}),
	}
	formFonts := Dict{
		"F1": NewLiteral(Str{Bytes: []byte("Form1"), IsName: true}),
	}
	caller := Resources{Dict: NewLiteral(Dict{"Font": NewLiteral(callerFonts)})}
	form := Resources{Dict: NewLiteral(Dict{"Font": NewLiteral(formFonts)})}

	merged := Merge(caller, form)

	f1, ok := merged.Find(CategoryFont, "F1")
	if !ok {
		t.Fatal("expected F1")
	}
	if name, _ := f1.AsName(); name != "Form1" {
		t.Errorf("F1 should be overridden by form, got %v", name)
	}

	f2, ok := merged.Find(CategoryFont, "F2")
	if !ok {
		t.Fatal("expected F2 to be inherited from caller")
	}
	if name, _ := f2.AsName(); name != "Caller2" {
		t.Errorf("F2 should be inherited from caller, got %v", name)
	}
}

func TestRectangleNormalization(t *testing.T) {
	r := NewRectangle(10, 10, -5, -5)
	if r.LLx != 5 || r.LLy != 5 || r.URx != 10 || r.URy != 10 {
		t.Errorf("unexpected normalization: %+v", r)
	}
}

func TestMatrixMul(t *testing.T) {
	scale := Matrix{2, 0, 0, 2, 0, 0}
	translate := Matrix{1, 0, 0, 1, 5, 5}
	m := scale.Mul(translate)
	x, y := m.Apply(1, 1)
	if x != 7 || y != 7 {
		t.Errorf("want (7,7), got (%v,%v)", x, y)
	}
}
