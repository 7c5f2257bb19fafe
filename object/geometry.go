package object

import "math"

// Matrix is a PDF transformation matrix [a b c d e f], mapping
// (x, y) to (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Mul returns m concatenated with n, i.e. the transform that applies m
// first and then n (matches the `cm` operator's left-multiply
// semantics: CTM' = m × CTM).
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

// Apply maps the point (x, y) through m.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ApplyVector maps the vector (x, y) through m, ignoring translation;
// used to transform line widths and dash arrays.
func (m Matrix) ApplyVector(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y, m[1]*x + m[3]*y
}

// Scale reports the approximate uniform scale factor of m, used to
// convert a line width in user space to device space when no better
// measure is available.
func (m Matrix) Scale() float64 {
	sx := math.Hypot(m[0], m[1])
	sy := math.Hypot(m[2], m[3])
	return math.Sqrt(sx * sy)
}

// Rectangle is an axis-aligned rectangle, normalized so LLx<=URx and LLy<=URy.
type Rectangle struct {
	LLx, LLy, URx, URy float64
}

// NewRectangle normalizes the four corners of a raw `re` rectangle
// (x, y, width, height), which may have a negative width or height.
func NewRectangle(x, y, w, h float64) Rectangle {
	r := Rectangle{LLx: x, LLy: y, URx: x + w, URy: y + h}
	if r.LLx > r.URx {
		r.LLx, r.URx = r.URx, r.LLx
	}
	if r.LLy > r.URy {
		r.LLy, r.URy = r.URy, r.LLy
	}
	return r
}

// DashPattern is the operand pair of the `d` operator.
type DashPattern struct {
	Array []float64
	Phase float64
}
