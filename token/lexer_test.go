package token

import (
	"reflect"
	"testing"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	lx := NewLexer([]byte(input))
	var out []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("lexing %q: %s", input, err)
		}
		if tok.Kind == EOF {
			return out
		}
		out = append(out, tok)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"12", 12},
		{"-12.5", -12.5},
		{"+3", 3},
		{"4.", 4},
		{".5", 0.5},
		{"-.5", -0.5},
	}
	for _, tt := range tests {
		toks := lexAll(t, tt.input)
		if len(toks) != 1 || toks[0].Kind != Number {
			t.Fatalf("%q: expected one Number token, got %v", tt.input, toks)
		}
		got, err := toks[0].Float()
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("%q: want %v got %v", tt.input, tt.want, got)
		}
	}
}

func TestNameAndOperator(t *testing.T) {
	toks := lexAll(t, "/DeviceGray cs")
	want := []Token{
		{Kind: Name, Value: []byte("DeviceGray")},
		{Kind: Operator, Value: []byte("cs")},
	}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("want %v got %v", want, toks)
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`(hello)`, "hello"},
		{`(a(b)c)`, "a(b)c"},
		{`(line1\nline2)`, "line1\nline2"},
		{`(\101\102)`, "AB"},
		{`(continu\
ation)`, "continuation"},
	}
	for _, tt := range tests {
		toks := lexAll(t, tt.input)
		if len(toks) != 1 || toks[0].Kind != String {
			t.Fatalf("%q: expected one String token, got %v", tt.input, toks)
		}
		if string(toks[0].Value) != tt.want {
			t.Errorf("%q: want %q got %q", tt.input, tt.want, toks[0].Value)
		}
	}
}

func TestHexString(t *testing.T) {
	tests := []struct {
		input string
		want  []byte
	}{
		{"<4E6F>", []byte("No")},
		{"<4>", []byte{0x40}},
		{"<4E 6F>", []byte("No")},
	}
	for _, tt := range tests {
		toks := lexAll(t, tt.input)
		if len(toks) != 1 || toks[0].Kind != HexString {
			t.Fatalf("%q: expected one HexString token, got %v", tt.input, toks)
		}
		if !reflect.DeepEqual(toks[0].Value, tt.want) {
			t.Errorf("%q: want %v got %v", tt.input, tt.want, toks[0].Value)
		}
	}
}

func TestArrayAndDictDelimiters(t *testing.T) {
	toks := lexAll(t, "[1 2] << /A 1 >>")
	kinds := make([]Kind, len(toks))
	for i, tk := range toks {
		kinds[i] = tk.Kind
	}
	want := []Kind{ArrayBegin, Number, Number, ArrayEnd, DictBegin, Name, Number, DictEnd}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("want %v got %v", want, kinds)
	}
}

func TestComment(t *testing.T) {
	toks := lexAll(t, "1 % a comment\n2")
	if len(toks) != 2 || toks[0].Kind != Number || toks[1].Kind != Number {
		t.Fatalf("unexpected tokens: %v", toks)
	}
}

func TestPeekIsStable(t *testing.T) {
	lx := NewLexer([]byte("1 2"))
	p1, _ := lx.Peek()
	p2, _ := lx.Peek()
	if !reflect.DeepEqual(p1, p2) {
		t.Fatalf("Peek not idempotent: %v != %v", p1, p2)
	}
	n, _ := lx.Next()
	if !reflect.DeepEqual(n, p1) {
		t.Fatalf("Next should return the peeked token")
	}
	n2, _ := lx.Next()
	if n2.Kind != Number {
		t.Fatalf("expected second number, got %v", n2)
	}
}

func TestMushedOperatorIsOneToken(t *testing.T) {
	toks := lexAll(t, "QBT")
	if len(toks) != 1 || toks[0].Kind != Operator || string(toks[0].Value) != "QBT" {
		t.Fatalf("expected single QBT operator token, got %v", toks)
	}
}

func TestUnknownByte(t *testing.T) {
	toks := lexAll(t, "1 ~ 2")
	if len(toks) != 3 || toks[1].Kind != Unknown {
		t.Fatalf("expected Unknown token for '~', got %v", toks)
	}
}
