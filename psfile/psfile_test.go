package psfile

import (
	"bytes"
	"testing"

	"github.com/benoitkugler/oktex/texpath"
	"github.com/benoitkugler/oktex/texpen"
	"github.com/stretchr/testify/require"
)

func TestWritePathPostScript(t *testing.T) {
	var buf bytes.Buffer
	p := texpath.Polyline([]texpath.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}, true)
	Writer{}.WritePath(&buf, p, true)
	require.Equal(t, "newpath\n"+
		"0.000000 0.000000 moveto\n"+
		"10.000000 0.000000 lineto\n"+
		"10.000000 5.000000 lineto\n"+
		"closepath\n", buf.String())
}

func TestWritePathPDF(t *testing.T) {
	var buf bytes.Buffer
	p := texpath.Polyline([]texpath.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, false)
	Writer{Dialect: PDF}.WritePath(&buf, p, true) // no newpath in PDF
	require.Equal(t, "1.000000 2.000000 m\n3.000000 4.000000 l\n", buf.String())
}

func TestQuadraticElevation(t *testing.T) {
	var p texpath.Path
	p.Start(texpath.Point{})
	p.QuadBezier(texpath.Point{X: 3, Y: 3}, texpath.Point{X: 6})

	var buf bytes.Buffer
	Writer{}.WritePath(&buf, p, false)
	require.Equal(t, "0.000000 0.000000 moveto\n"+
		"2.000000 2.000000 4.000000 2.000000 6.000000 0.000000 curveto\n", buf.String())
}

func TestSetColor(t *testing.T) {
	for _, test := range []struct {
		w        Writer
		pen      texpen.Pen
		tex      bool
		expected string
	}{
		{Writer{}, texpen.NewGray(0.5), true, "0.500000 setgray"},
		{Writer{}, texpen.NewRGB(1, 0, 0), false, "1.000000 0.000000 0.000000 setrgbcolor\n"},
		{Writer{}, texpen.NewCMYK(0, 0, 0, 1), true, "0.000000 0.000000 0.000000 1.000000 setcmykcolor"},
		{Writer{Dialect: PDF}, texpen.NewGray(0.25), true, "0.250000 g 0.250000 G"},
		{Writer{Dialect: PDF}, texpen.NewRGB(0, 1, 0), true, "0.000000 1.000000 0.000000 rg 0.000000 1.000000 0.000000 RG"},
		{Writer{}, texpen.Pen{}, false, ""},
	} {
		var buf bytes.Buffer
		test.w.SetColor(&buf, test.pen, test.tex)
		require.Equal(t, test.expected, buf.String())
	}
}

func TestGraphicState(t *testing.T) {
	var buf bytes.Buffer
	w := Writer{}
	w.GSave(&buf, true)
	w.GRestore(&buf, false)
	w.Paint(&buf, Fill, false)
	require.Equal(t, "gsavegrestore\nfill\n", buf.String())

	buf.Reset()
	w = Writer{Dialect: PDF}
	w.GSave(&buf, false)
	w.Paint(&buf, EOFill, false)
	w.GRestore(&buf, false)
	require.Equal(t, "q\nf*\nQ\n", buf.String())
}

func TestWritePathOffGrid(t *testing.T) {
	var buf bytes.Buffer
	p := texpath.Polyline([]texpath.Point{{X: 10.3, Y: 20.7}, {X: 33.33, Y: 1.01}}, false)
	Writer{}.WritePath(&buf, p, false)
	require.Equal(t, "10.300000 20.700000 moveto\n33.330000 1.010000 lineto\n", buf.String())
}
