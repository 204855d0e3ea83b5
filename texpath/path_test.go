package texpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

func TestPolyline(t *testing.T) {
	p := Polyline([]Point{{0, 0}, {10, 0}, {10, 5}}, true)
	require.Equal(t, "M0.000,0.000 L10.000,0.000 L10.000,5.000 Z", p.String())

	require.Empty(t, Polyline(nil, true))
}

func TestTransformed(t *testing.T) {
	p := Polyline([]Point{{1, 2}, {3, 4}}, false)
	shifted := p.Transformed(Shift(-1, -2))
	require.Equal(t, "M0.000,0.000 L2.000,2.000", shifted.String())
	// the source path is untouched
	require.Equal(t, "M1.000,2.000 L3.000,4.000", p.String())
}

func TestMatrix(t *testing.T) {
	m := Identity.Translate(10, 0).Scale(2, 3)
	x, y := m.Transform(1, 1)
	require.Equal(t, 12., x)
	require.Equal(t, 3., y)

	r := Identity.Rotate(math.Pi / 2)
	p := r.TransformPoint(Point{1, 0})
	require.InDelta(t, 0, p.X, 1e-12)
	require.InDelta(t, 1, p.Y, 1e-12)
}

func TestAddTo(t *testing.T) {
	src := Ellipse(5, 5, 3, 2)
	var dst Path
	src.AddTo(&dst)
	require.Equal(t, src.String(), dst.String())
}

func TestTransformedPrecision(t *testing.T) {
	p := Polyline([]Point{{10.3, 20.7}, {33.33, 1.01}}, false)
	shifted := p.Transformed(Shift(-0.3, -0.1))
	first, second := Point(shifted[0].(MoveTo)), Point(shifted[1].(LineTo))
	require.InDelta(t, 10, first.X, 1e-12)
	require.InDelta(t, 20.6, first.Y, 1e-12)
	require.InDelta(t, 33.03, second.X, 1e-12)
	require.InDelta(t, 0.91, second.Y, 1e-12)
}

func TestFixed(t *testing.T) {
	// rounded to the nearest 1/64
	require.Equal(t, fixed.Point26_6{X: 659, Y: -659}, Fixed(Point{10.3, -10.3}))
	require.Equal(t, fixed.Point26_6{X: 64, Y: 32}, Fixed(Point{1, 0.5}))
}

type fixedRecorder []fixed.Point26_6

func (r *fixedRecorder) Start(a fixed.Point26_6)            { *r = append(*r, a) }
func (r *fixedRecorder) Line(b fixed.Point26_6)             { *r = append(*r, b) }
func (r *fixedRecorder) QuadBezier(b, c fixed.Point26_6)    { *r = append(*r, b, c) }
func (r *fixedRecorder) CubeBezier(b, c, d fixed.Point26_6) { *r = append(*r, b, c, d) }
func (r *fixedRecorder) Stop(bool)                          {}

func TestAddToFixed(t *testing.T) {
	var rec fixedRecorder
	Polyline([]Point{{0, 0}, {1.5, 2.25}}, true).AddToFixed(&rec)
	require.Equal(t, fixedRecorder{{X: 0, Y: 0}, {X: 96, Y: 144}}, rec)
}
