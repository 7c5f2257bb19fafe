// Package object defines the small value model shared by the content
// stream parser and the interpreter: the literal values that can sit
// on the operand stack (Value), and the interface through which the
// interpreter talks to the (externally owned) PDF object graph
// (PdfObject) — indirect-object resolution, cross-reference tables and
// stream decoding all live on the other side of that interface and are
// out of scope here.
package object

// Name is a PDF name, stored without its leading '/'. No '#xx' escape
// decoding is performed: package token keeps the literal bytes after
// the '/'.
type Name string

func (n Name) String() string { return "/" + string(n) }

// Kind identifies the concrete variant of a Value.
type Kind uint8

const (
	KindNumber Kind = iota
	KindBool
	KindStr
	KindArray
	KindDict
	KindNull
)

// Value is a literal object that can be pushed onto the operand
// stack: a number, a byte string (covering both string and name
// tokens — the dispatcher tells them apart via the IsName field since
// it alone knows whether a given operand position expects one or the
// other), an array, or an inline dictionary.
type Value interface {
	Kind() Kind
}

// Number is a numeric operand. Integer arity coercions (line caps,
// joins, rendering modes...) truncate toward zero.
type Number float64

func (Number) Kind() Kind { return KindNumber }

// Int truncates toward zero.
func (n Number) Int() int { return int(n) }

// Bool is a boolean operand, found in inline image dictionaries
// (ImageMask) and marked-content property lists.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

// Null is the PDF null object; dictionary entries whose value is null
// are equivalent to the entry being absent.
type Null struct{}

func (Null) Kind() Kind { return KindNull }

// Str is a byte string, produced by either a literal string, a hex
// string, or a name token.
type Str struct {
	Bytes  []byte
	IsName bool // true when lexed from a '/name' token
}

func (Str) Kind() Kind { return KindStr }

func (s Str) String() string { return string(s.Bytes) }

// Array is an ordered sequence of operands, as built by '[' ... ']'.
type Array []Value

func (Array) Kind() Kind { return KindArray }

// Dict is an inline dictionary, as built by '<<' ... '>>'. Per the
// data model, its values are resolved PdfObjects rather than raw
// Values: in content-stream mode there are no indirect references, so
// every entry is in fact a Literal (see NewLiteral), but modeling the
// field as PdfObject lets marked-content property dictionaries and
// resource lookups share one accessor surface.
type Dict map[Name]PdfObject

func (Dict) Kind() Kind { return KindDict }

// PdfObject is the interface through which the interpreter consults
// the (externally owned) PDF object graph: named resources, ExtGState
// dictionaries, XObjects, and the dictionaries nested inside them.
// Indirect-object resolution, cross-reference tables and stream
// filters are the responsibility of whatever implements this
// interface — they are explicitly out of scope for this module.
type PdfObject interface {
	// ObjKind reports which of the accessor methods below are valid.
	ObjKind() Kind
	DictGet(name Name) (PdfObject, bool)
	ArrayLen() int
	ArrayGet(i int) (PdfObject, bool)
	AsFloat() (float64, bool)
	AsBool() (bool, bool)
	AsName() (Name, bool)
	AsString() (string, bool)
	// StreamBytes returns the decoded content of a stream object
	// (Form XObjects, inline color tables...); ok is false for
	// non-stream objects.
	StreamBytes() ([]byte, bool)
	// Cache returns the one-slot, set-once memo used to avoid
	// re-interpreting the same Form XObject twice (§4.8, §9). Every
	// PdfObject that can be the target of a `Do` operator must return
	// a non-nil, stable *FormCache.
	Cache() *FormCache
}

// literal adapts a parsed Value (and nothing else) to the PdfObject
// interface. It is what the content-stream parser stores in a Dict's
// values, since content streams never carry indirect references.
type literal struct {
	v     Value
	cache FormCache
}

// NewLiteral wraps v so it can be stored as a Dict value or otherwise
// handed to code expecting a PdfObject.
func NewLiteral(v Value) PdfObject {
	return &literal{v: v}
}

func (l *literal) ObjKind() Kind { return l.v.Kind() }

func (l *literal) DictGet(name Name) (PdfObject, bool) {
	d, ok := l.v.(Dict)
	if !ok {
		return nil, false
	}
	o, ok := d[name]
	return o, ok
}

func (l *literal) ArrayLen() int {
	a, ok := l.v.(Array)
	if !ok {
		return 0
	}
	return len(a)
}

func (l *literal) ArrayGet(i int) (PdfObject, bool) {
	a, ok := l.v.(Array)
	if !ok || i < 0 || i >= len(a) {
		return nil, false
	}
	return NewLiteral(a[i]), true
}

func (l *literal) AsFloat() (float64, bool) {
	n, ok := l.v.(Number)
	return float64(n), ok
}

func (l *literal) AsBool() (bool, bool) {
	b, ok := l.v.(Bool)
	return bool(b), ok
}

func (l *literal) AsName() (Name, bool) {
	s, ok := l.v.(Str)
	if !ok || !s.IsName {
		return "", false
	}
	return Name(s.Bytes), true
}

func (l *literal) AsString() (string, bool) {
	s, ok := l.v.(Str)
	if !ok {
		return "", false
	}
	return s.String(), true
}

func (l *literal) StreamBytes() ([]byte, bool) { return nil, false }

func (l *literal) Cache() *FormCache { return &l.cache }

// FormCache is a one-slot, set-once memo of the command sequence
// produced by interpreting a Form XObject. The interpreter treats a
// zero-value (unset) FormCache as advisory: a miss simply means
// recompute, never an error. The cached value's concrete type
// ([]func(canvas.Sink)) is opaque here to avoid this package
// depending on package canvas; the interp package is the only reader
// and writer and does the type assertion.
type FormCache struct {
	set bool
	cmd any
}

// Get returns the cached replay value and whether it was set.
func (c *FormCache) Get() (any, bool) { return c.cmd, c.set }

// Set stores the replay value. Called at most once per FormCache in a
// well-behaved caller (re-entrant interpretation of the same form from
// two threads is out of scope, per spec §5); a second Set simply
// overwrites, it does not panic.
func (c *FormCache) Set(cmd any) {
	c.cmd = cmd
	c.set = true
}
