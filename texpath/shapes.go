package texpath

import (
	"math"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an ellipse.
const maxDx float64 = math.Pi / 8

// Rect returns the closed rectangle with corners (minX, minY) and (maxX, maxY),
// rotated around its center by rot degrees.
func Rect(minX, minY, maxX, maxY, rot float64) Path {
	rot *= math.Pi / 180
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	m := Identity.Translate(cx, cy).Rotate(rot).Translate(-cx, -cy)
	var p Path
	p.Start(m.TransformPoint(Point{minX, minY}))
	p.Line(m.TransformPoint(Point{maxX, minY}))
	p.Line(m.TransformPoint(Point{maxX, maxY}))
	p.Line(m.TransformPoint(Point{minX, maxY}))
	p.Stop(true)
	return p
}

// Ellipse returns the closed ellipse centered at (cx, cy),
// with radii rx and ry, approximated by cubic bezier curves.
func Ellipse(cx, cy, rx, ry float64) Path {
	var p Path
	p.Start(Point{cx + rx, cy})
	addArc(&p, rx, ry, cx, cy, 0, 2*math.Pi)
	p.Stop(true)
	return p
}

// Circle is a shortcut for Ellipse(cx, cy, r, r)
func Circle(cx, cy, r float64) Path { return Ellipse(cx, cy, r, r) }

// Polyline returns the path joining the given points,
// closed if `closed` is true. An empty slice returns an empty path.
func Polyline(points []Point, closed bool) Path {
	var p Path
	for i, pt := range points {
		if i == 0 {
			p.Start(pt)
			continue
		}
		p.Line(pt)
	}
	if len(points) != 0 {
		p.Stop(closed)
	}
	return p
}

// addArc approximates the elliptical arc from etaStart to etaEnd
// (parametric angles) using cubic bezier curves, by the method of
// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
// or cubic Bezier curves", 2003
// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
func addArc(p *Path, a, b, cx, cy, etaStart, etaEnd float64) {
	deltaEta := etaEnd - etaStart
	// Round up to determine number of cubic splines to approximate bezier curve
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs) // span of each segment
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := ellipsePointAt(a, b, etaStart, cx, cy)
	ldx, ldy := ellipsePrime(a, b, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		px, py := ellipsePointAt(a, b, eta, cx, cy)
		dx, dy := ellipsePrime(a, b, eta)
		p.CubeBezier(Point{lx + alpha*ldx, ly + alpha*ldy},
			Point{px - alpha*dx, py - alpha*dy}, Point{px, py})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter
func ellipsePrime(a, b, eta float64) (px, py float64) {
	return -a * math.Sin(eta), b * math.Cos(eta)
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, eta, cx, cy float64) (px, py float64) {
	return cx + a*math.Cos(eta), cy + b*math.Sin(eta)
}
