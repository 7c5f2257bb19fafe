package parser

import (
	"reflect"
	"testing"

	"github.com/pdftools/contentstream/object"
)

func TestParseNumbersAndStrings(t *testing.T) {
	p := New([]byte(`1 2.5 (hi) /Foo`))

	res, err := p.ParseObject()
	if err != nil || res.Value != object.Number(1) {
		t.Fatalf("want Number(1), got %v, %v", res, err)
	}
	res, _ = p.ParseObject()
	if res.Value != object.Number(2.5) {
		t.Fatalf("want Number(2.5), got %v", res)
	}
	res, _ = p.ParseObject()
	str, ok := res.Value.(object.Str)
	if !ok || string(str.Bytes) != "hi" || str.IsName {
		t.Fatalf("want Str{hi}, got %v", res)
	}
	res, _ = p.ParseObject()
	str, ok = res.Value.(object.Str)
	if !ok || string(str.Bytes) != "Foo" || !str.IsName {
		t.Fatalf("want Str{Foo,IsName}, got %v", res)
	}
}

func TestParseArrayAndDict(t *testing.T) {
	p := New([]byte(`[1 2 (x)] << /A 1 /B (y) >>`))

	res, err := p.ParseObject()
	if err != nil {
		t.Fatal(err)
	}
	arr, ok := res.Value.(object.Array)
	if !ok || len(arr) != 3 {
		t.Fatalf("want 3-element array, got %v", res.Value)
	}
	if arr[0] != object.Number(1) {
		t.Errorf("arr[0]: want Number(1), got %v", arr[0])
	}

	res, err = p.ParseObject()
	if err != nil {
		t.Fatal(err)
	}
	dict, ok := res.Value.(object.Dict)
	if !ok || len(dict) != 2 {
		t.Fatalf("want 2-entry dict, got %v", res.Value)
	}
	a, ok := dict["A"]
	if !ok {
		t.Fatal("missing key A")
	}
	if f, _ := a.AsFloat(); f != 1 {
		t.Errorf("A: want 1, got %v", f)
	}
}

func TestParseOperator(t *testing.T) {
	p := New([]byte(`1 0 0 1 0 0 cm`))
	var res ParseResult
	var err error
	for i := 0; i < 6; i++ {
		res, err = p.ParseObject()
		if err != nil {
			t.Fatal(err)
		}
	}
	res, err = p.ParseObject()
	if err != nil {
		t.Fatal(err)
	}
	if res.Operator != "cm" {
		t.Fatalf("want operator cm, got %v", res)
	}
}

func TestParseObjectEOFIsNoObject(t *testing.T) {
	p := New([]byte(``))
	res, err := p.ParseObject()
	if err != nil {
		t.Fatal(err)
	}
	if !res.NoObject {
		t.Fatalf("want NoObject at EOF, got %v", res)
	}
}

func TestMismatchedArrayTerminatorIsError(t *testing.T) {
	p := New([]byte(`[1 2 >>`))
	if _, err := p.ParseObject(); err == nil {
		t.Fatal("expected error for mismatched array terminator")
	}
}

func TestStackPopNFloatsPreservesSourceOrder(t *testing.T) {
	var s Stack
	s.Push(object.Number(1))
	s.Push(object.Number(2))
	s.Push(object.Number(3))
	got, err := s.PopNFloats(3)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
	if s.Len() != 0 {
		t.Errorf("want empty stack after popping all, got len %d", s.Len())
	}
}

func TestStackPopFloatOnEmptyIsDefensiveZero(t *testing.T) {
	var s Stack
	f, err := s.PopFloat()
	if err != nil || f != 0 {
		t.Errorf("want (0, nil), got (%v, %v)", f, err)
	}
}

func TestStackPopIntOnEmptyIsError(t *testing.T) {
	var s Stack
	if _, err := s.PopInt(); err == nil {
		t.Fatal("expected error for pop_int on empty stack")
	}
}

func TestStackTypeMismatchIsTypeError(t *testing.T) {
	var s Stack
	s.Push(object.Str{Bytes: []byte("x")})
	if _, err := s.PopInt(); err == nil {
		t.Fatal("expected type error")
	} else if _, ok := err.(*TypeError); !ok {
		t.Errorf("want *TypeError, got %T", err)
	}
}

func TestParseInlineImageDictExpandsShortKeysAndDefaultsDecode(t *testing.T) {
	p := New([]byte(`/W 2 /H 2 /BPC 8 /CS /G /IM true ID`))
	dict, err := p.ParseInlineImageDict()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []object.Name{"Width", "Height", "BitsPerComponent", "ColorSpace", "ImageMask", "Decode"} {
		if _, ok := dict[want]; !ok {
			t.Errorf("missing expanded/defaulted key %s", want)
		}
	}
	dec, _ := dict["Decode"].ArrayGet(0)
	if f, _ := dec.AsFloat(); f != 0 {
		t.Errorf("Decode[0]: want 0, got %v", f)
	}
}

func TestParseInlineImageDataStopsAtWhitespaceEI(t *testing.T) {
	buf := []byte("ID\n\x01\x02\x03 EI Q")
	p := New(buf)
	if _, err := p.ParseObject(); err != nil {
		t.Fatal(err)
	}
	data, err := p.ParseInlineImageData()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(data, []byte{1, 2, 3}) {
		t.Errorf("want [1 2 3], got %v", data)
	}
	res, err := p.ParseObject()
	if err != nil {
		t.Fatal(err)
	}
	if res.Operator != "Q" {
		t.Fatalf("want next operator Q, got %v", res)
	}
}
