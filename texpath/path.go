// Implements an abstract representation of
// paths, which can then be consumed
// by the TeX emitter, the raw content writer or the rasterizer.
//
// Coordinates are float64, in big points; they are only converted
// to fixed point when handed to a rasterizer.
package texpath

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Adder is implemented by types that can accumulate path commands,
// such as a Path itself or the raw content writer.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a Point)
	// Line adds a line segment to the path
	Line(b Point)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c Point)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d Point)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

// FixedAdder is the fixed point version of Adder,
// implemented by rasterx.Filler and rasterx.Dasher.
type FixedAdder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

// Operation is one of MoveTo, LineTo, QuadTo, CubicTo or Close.
type Operation interface {
	points() []Point
	letter() byte
}

// MoveTo starts a new subpath.
type MoveTo Point

type LineTo Point

// QuadTo is a quadratic bezier curve: control point, end point.
type QuadTo [2]Point

// CubicTo is a cubic bezier curve: two control points, end point.
type CubicTo [3]Point

// Close joins the current point to the start of the subpath.
type Close struct{}

func (op MoveTo) points() []Point  { return []Point{Point(op)} }
func (op LineTo) points() []Point  { return []Point{Point(op)} }
func (op QuadTo) points() []Point  { return op[:] }
func (op CubicTo) points() []Point { return op[:] }
func (Close) points() []Point      { return nil }

func (MoveTo) letter() byte  { return 'M' }
func (LineTo) letter() byte  { return 'L' }
func (QuadTo) letter() byte  { return 'Q' }
func (CubicTo) letter() byte { return 'C' }
func (Close) letter() byte   { return 'Z' }

// Path describes a sequence of basic operations.
// Higher-level shapes may be reduced to a path.
type Path []Operation

// Fixed converts a point to the nearest fixed point.
func Fixed(p Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(p.X * 64)), Y: fixed.Int26_6(math.Round(p.Y * 64))}
}

// String returns a readable, SVG like representation of the path,
// such as "M0.000,0.000 L10.000,0.000 Z".
func (p Path) String() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		var b strings.Builder
		b.WriteByte(op.letter())
		for j, pt := range op.points() {
			if j != 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%4.3f,%4.3f", pt.X, pt.Y)
		}
		chunks[i] = b.String()
	}
	return strings.Join(chunks, " ")
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) { *p = append(*p, MoveTo(a)) }

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) { *p = append(*p, LineTo(b)) }

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c Point) { *p = append(*p, QuadTo{b, c}) }

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d Point) { *p = append(*p, CubicTo{b, c, d}) }

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// AddTo replays the path p on q.
func (p Path) AddTo(q Adder) {
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			q.Stop(false) // implicit close if currently in path.
			q.Start(Point(op))
		case LineTo:
			q.Line(Point(op))
		case QuadTo:
			q.QuadBezier(op[0], op[1])
		case CubicTo:
			q.CubeBezier(op[0], op[1], op[2])
		case Close:
			q.Stop(true)
		}
	}
	q.Stop(false)
}

// fixedAdder rounds the points for a FixedAdder
type fixedAdder struct{ q FixedAdder }

func (f fixedAdder) Start(a Point)            { f.q.Start(Fixed(a)) }
func (f fixedAdder) Line(b Point)             { f.q.Line(Fixed(b)) }
func (f fixedAdder) QuadBezier(b, c Point)    { f.q.QuadBezier(Fixed(b), Fixed(c)) }
func (f fixedAdder) CubeBezier(b, c, d Point) { f.q.CubeBezier(Fixed(b), Fixed(c), Fixed(d)) }
func (f fixedAdder) Stop(closeLoop bool)      { f.q.Stop(closeLoop) }

// AddToFixed replays the path p on a rasterizer.
func (p Path) AddToFixed(q FixedAdder) { p.AddTo(fixedAdder{q}) }

// Transformed returns a new path, with every point mapped by `m`.
// The receiver is not modified.
func (p Path) Transformed(m Matrix2D) Path {
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(m.TransformPoint(Point(op)))
		case LineTo:
			out[i] = LineTo(m.TransformPoint(Point(op)))
		case QuadTo:
			out[i] = QuadTo{m.TransformPoint(op[0]), m.TransformPoint(op[1])}
		case CubicTo:
			out[i] = CubicTo{m.TransformPoint(op[0]), m.TransformPoint(op[1]), m.TransformPoint(op[2])}
		case Close:
			out[i] = op
		}
	}
	return out
}
