package texpath

import "math"

// BBox is an axis aligned box, in source units (big points).
type BBox struct {
	Left, Bottom, Right, Top float64
}

// EmptyBBox is the neutral element for Union and AddPoint.
var EmptyBBox = BBox{
	Left: math.Inf(1), Bottom: math.Inf(1),
	Right: math.Inf(-1), Top: math.Inf(-1),
}

// Width returns Right - Left
func (b BBox) Width() float64 { return b.Right - b.Left }

// Height returns Top - Bottom
func (b BBox) Height() float64 { return b.Top - b.Bottom }

// Empty is true for degenerate boxes, with zero (or negative) width or height.
func (b BBox) Empty() bool {
	return !(b.Right > b.Left && b.Top > b.Bottom)
}

// Union returns the smallest box containing b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		Left:   math.Min(b.Left, o.Left),
		Bottom: math.Min(b.Bottom, o.Bottom),
		Right:  math.Max(b.Right, o.Right),
		Top:    math.Max(b.Top, o.Top),
	}
}

// AddPoint extends b so that it contains (x, y).
func (b BBox) AddPoint(x, y float64) BBox {
	return b.Union(BBox{Left: x, Bottom: y, Right: x, Top: y})
}

// Shift translates the box by (dx, dy).
func (b BBox) Shift(dx, dy float64) BBox {
	return BBox{Left: b.Left + dx, Bottom: b.Bottom + dy, Right: b.Right + dx, Top: b.Top + dy}
}

// The extent of a bezier curve is reached either at its end points
// or where the derivative of one coordinate vanishes.

// pointAt evaluates the bezier curve with control points `pts`
// (at most 4) at time t, by de Casteljau's algorithm.
func pointAt(pts []Point, t float64) Point {
	var buf [4]Point
	q := buf[:copy(buf[:], pts)]
	for n := len(q) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			q[i] = Point{q[i].X + (q[i+1].X-q[i].X)*t, q[i].Y + (q[i+1].Y-q[i].Y)*t}
		}
	}
	return q[0]
}

// criticalTimes returns the zeros of the derivative of the
// one dimensional quadratic (3 values) or cubic (4 values) bezier curve.
func criticalTimes(c []float64) []float64 {
	switch len(c) {
	case 3: // B' = 2(c0 - 2c1 + c2) t + 2(c1 - c0)
		return linearRoots(2*(c[0]-2*c[1]+c[2]), 2*(c[1]-c[0]))
	case 4: // B' = 3(c3 - 3c2 + 3c1 - c0) t^2 + 6(c0 - 2c1 + c2) t + 3(c1 - c0)
		return quadraticRoots(3*(c[3]-3*c[2]+3*c[1]-c[0]), 6*(c[0]-2*c[1]+c[2]), 3*(c[1]-c[0]))
	}
	return nil
}

// linearRoots solves a t + b = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

// quadraticRoots solves a t^2 + b t + c = 0
func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	switch {
	case d < 0:
		return nil
	case d == 0:
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// curveBBox returns the exact extent of the bezier curve
// with control points `pts`.
func curveBBox(pts ...Point) BBox {
	first, last := pts[0], pts[len(pts)-1]
	box := EmptyBBox.AddPoint(first.X, first.Y).AddPoint(last.X, last.Y)
	xs, ys := make([]float64, len(pts)), make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	for _, t := range append(criticalTimes(xs), criticalTimes(ys)...) {
		if 0 < t && t < 1 {
			p := pointAt(pts, t)
			box = box.AddPoint(p.X, p.Y)
		}
	}
	return box
}

// PathBBox returns the exact extent of the path, or EmptyBBox
// for an empty path.
func PathBBox(p Path) BBox {
	var (
		box            = EmptyBBox
		current, first Point
	)
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current = Point(op)
			first = current
			box = box.AddPoint(current.X, current.Y)
		case LineTo:
			current = Point(op)
			box = box.AddPoint(current.X, current.Y)
		case QuadTo:
			box = box.Union(curveBBox(current, op[0], op[1]))
			current = op[1]
		case CubicTo:
			box = box.Union(curveBBox(current, op[0], op[1], op[2]))
			current = op[2]
		case Close:
			current = first
		}
	}
	return box
}
