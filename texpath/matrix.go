package texpath

import "math"

// Point is a pair of coordinates, in big points.
type Point struct{ X, Y float64 }

// Matrix2D represents the affine transform
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// so that (A, B, C, D) are the (xx, yx, xy, yy) coefficients
// of its linear part and (E, F) its translation.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Shift returns the translation by (x, y).
func Shift(x, y float64) Matrix2D {
	return Matrix2D{1, 0, 0, 1, x, y}
}

// Transform multiplies the input vector by matrix m and outputs the results vector
// components.
func (m Matrix2D) Transform(x, y float64) (x2, y2 float64) {
	return x*m.A + y*m.C + m.E, x*m.B + y*m.D + m.F
}

// TransformPoint applies m to `p`.
func (m Matrix2D) TransformPoint(p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{x, y}
}

// Mult returns a*b
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Scale matrix in x and y dimensions
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: x, D: y})
}

// Translate translates the matrix to the x , y point
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Shift(x, y))
}

// Rotate rotate the matrix by theta (in radians)
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	s, c := math.Sincos(theta)
	return a.Mult(Matrix2D{A: c, B: s, C: -s, D: c})
}
