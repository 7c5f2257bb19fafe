package parser

import (
	"fmt"

	"github.com/pdftools/contentstream/object"
)

// Stack is the operand stack of §4.3: a LIFO of Values with typed pop
// helpers. The dispatcher pushes every literal ParseObject returns and
// pops operands off this stack to execute an operator.
type Stack struct {
	vals []object.Value
}

// Push appends v to the top of the stack.
func (s *Stack) Push(v object.Value) { s.vals = append(s.vals, v) }

// Len reports the number of operands currently on the stack.
func (s *Stack) Len() int { return len(s.vals) }

// Clear empties the stack, used by the dispatcher's post-operator
// hygiene (§4.4: "if the operand stack is non-empty after any operator
// completes, warn and forcibly clear it").
func (s *Stack) Clear() { s.vals = s.vals[:0] }

// pop removes and returns the top value, or false if the stack is empty.
func (s *Stack) pop() (object.Value, bool) {
	n := len(s.vals)
	if n == 0 {
		return nil, false
	}
	v := s.vals[n-1]
	s.vals = s.vals[:n-1]
	return v, true
}

// PopFloat requires Number; an empty stack defensively yields 0
// rather than erroring, per §4.3.
func (s *Stack) PopFloat() (float64, error) {
	v, ok := s.pop()
	if !ok {
		return 0, nil
	}
	n, ok := v.(object.Number)
	if !ok {
		return 0, typeError("Number", v)
	}
	return float64(n), nil
}

// PopInt requires Number (truncated toward zero); an empty stack is an error.
func (s *Stack) PopInt() (int, error) {
	v, ok := s.pop()
	if !ok {
		return 0, fmt.Errorf("parser: pop_int on empty stack")
	}
	n, ok := v.(object.Number)
	if !ok {
		return 0, typeError("Number", v)
	}
	return n.Int(), nil
}

// PopNFloats fills an array of n floats in reverse pop order, so the
// array reads left-to-right as it appeared in the source.
func (s *Stack) PopNFloats(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		f, err := s.PopFloat()
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// PopFloatArray requires an Array of Number.
func (s *Stack) PopFloatArray() ([]float64, error) {
	v, ok := s.pop()
	if !ok {
		return nil, fmt.Errorf("parser: pop_float_array on empty stack")
	}
	arr, ok := v.(object.Array)
	if !ok {
		return nil, typeError("Array", v)
	}
	out := make([]float64, len(arr))
	for i, el := range arr {
		n, ok := el.(object.Number)
		if !ok {
			return nil, typeError("Number element", el)
		}
		out[i] = float64(n)
	}
	return out, nil
}

// PopString requires string or name bytes.
func (s *Stack) PopString() ([]byte, error) {
	v, ok := s.pop()
	if !ok {
		return nil, fmt.Errorf("parser: pop_string on empty stack")
	}
	str, ok := v.(object.Str)
	if !ok {
		return nil, typeError("string/name", v)
	}
	return str.Bytes, nil
}

// PopName requires a name token specifically (IsName set).
func (s *Stack) PopName() (object.Name, error) {
	v, ok := s.pop()
	if !ok {
		return "", fmt.Errorf("parser: pop_name on empty stack")
	}
	str, ok := v.(object.Str)
	if !ok || !str.IsName {
		return "", typeError("name", v)
	}
	return object.Name(str.Bytes), nil
}

// PopArray requires an Array (of any element kind).
func (s *Stack) PopArray() (object.Array, error) {
	v, ok := s.pop()
	if !ok {
		return nil, fmt.Errorf("parser: pop_array on empty stack")
	}
	arr, ok := v.(object.Array)
	if !ok {
		return nil, typeError("Array", v)
	}
	return arr, nil
}

// Peek returns the top value without removing it, for callers that
// need to inspect its kind before deciding how to pop (SCN/scn's
// tolerant handling of a stray trailing pattern name in a non-Pattern
// color space, §9).
func (s *Stack) Peek() (object.Value, bool) {
	n := len(s.vals)
	if n == 0 {
		return nil, false
	}
	return s.vals[n-1], true
}

// PopValue requires any value, with no type constraint; used for
// marked-content property lists where the value may be a name or an
// inline dict.
func (s *Stack) PopValue() (object.Value, error) {
	v, ok := s.pop()
	if !ok {
		return nil, fmt.Errorf("parser: pop on empty stack")
	}
	return v, nil
}

// TypeError reports a value of the wrong kind popped from the stack
// (§7's Type error category).
type TypeError struct {
	Expected string
	Got      object.Value
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("parser: expected %s operand, got %T", e.Expected, e.Got)
}

func typeError(expected string, got object.Value) error {
	return &TypeError{Expected: expected, Got: got}
}
