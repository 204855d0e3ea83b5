// Implements the raw graphics content embedded in TeX specials:
// path construction, colors and graphics state, written either
// as PostScript (for DVI engines) or as PDF content operators.
package psfile

import (
	"fmt"
	"io"

	"github.com/benoitkugler/oktex/texpath"
	"github.com/benoitkugler/oktex/texpen"
)

// Dialect selects the operators written.
type Dialect uint8

const (
	PostScript Dialect = iota
	PDF
)

// PaintOp is the painting operation ending a path.
type PaintOp uint8

const (
	Stroke PaintOp = iota
	Fill
	EOFill
	Clip
)

type operators struct {
	newpath                          string
	moveto, lineto, curveto, closing string
	gsave, grestore                  string
	gray, rgb, cmyk                  string
	paint                            [4]string
}

var dialects = [...]operators{
	PostScript: {
		newpath: "newpath",
		moveto:  "moveto", lineto: "lineto", curveto: "curveto", closing: "closepath",
		gsave: "gsave", grestore: "grestore",
		gray: "setgray", rgb: "setrgbcolor", cmyk: "setcmykcolor",
		paint: [4]string{Stroke: "stroke", Fill: "fill", EOFill: "eofill", Clip: "clip"},
	},
	PDF: {
		moveto: "m", lineto: "l", curveto: "c", closing: "h",
		gsave: "q", grestore: "Q",
		// both the stroking and non stroking colors are set
		gray: "g", rgb: "rg", cmyk: "k",
		paint: [4]string{Stroke: "S", Fill: "f", EOFill: "f*", Clip: "W n"},
	},
}

// Writer writes raw content to the stream given to each method.
// When `tex` is true, the output is bracketed in a TeX special by the caller
// and the trailing newline is left to it.
type Writer struct {
	Dialect Dialect
}

func (w Writer) ops() operators { return dialects[w.Dialect] }

func newline(out io.Writer, tex bool) {
	if !tex {
		io.WriteString(out, "\n")
	}
}

// pather writes the path commands, tracking the current
// point to convert quadratic curves.
type pather struct {
	out     io.Writer
	ops     operators
	current texpath.Point
	first   texpath.Point
}

func point(a texpath.Point) string {
	return fmt.Sprintf("%f %f", a.X, a.Y)
}

func (p *pather) Start(a texpath.Point) {
	fmt.Fprintf(p.out, "%s %s\n", point(a), p.ops.moveto)
	p.current, p.first = a, a
}

func (p *pather) Line(b texpath.Point) {
	fmt.Fprintf(p.out, "%s %s\n", point(b), p.ops.lineto)
	p.current = b
}

// QuadBezier is elevated to a cubic curve, since neither PostScript
// nor PDF support quadratic curves.
func (p *pather) QuadBezier(b, c texpath.Point) {
	a := p.current
	c1 := texpath.Point{X: a.X + 2*(b.X-a.X)/3, Y: a.Y + 2*(b.Y-a.Y)/3}
	c2 := texpath.Point{X: c.X + 2*(b.X-c.X)/3, Y: c.Y + 2*(b.Y-c.Y)/3}
	p.CubeBezier(c1, c2, c)
}

func (p *pather) CubeBezier(b, c, d texpath.Point) {
	fmt.Fprintf(p.out, "%s %s %s %s\n", point(b), point(c), point(d), p.ops.curveto)
	p.current = d
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		fmt.Fprintf(p.out, "%s\n", p.ops.closing)
		p.current = p.first
	}
}

// WritePath writes the construction operators for `path`,
// starting with a newpath operator if `newPath` is true (PostScript only).
// Each operator is terminated by a newline.
func (w Writer) WritePath(out io.Writer, path texpath.Path, newPath bool) {
	ops := w.ops()
	if newPath && ops.newpath != "" {
		fmt.Fprintf(out, "%s\n", ops.newpath)
	}
	path.AddTo(&pather{out: out, ops: ops})
}

// SetColor writes the color directive for `p`. Nothing is written
// for a pen without color model.
func (w Writer) SetColor(out io.Writer, p texpen.Pen, tex bool) {
	ops := w.ops()
	var comps, op string
	switch p.Model {
	case texpen.Gray:
		comps, op = fmt.Sprintf("%f", p.Gray), ops.gray
	case texpen.RGB:
		comps, op = fmt.Sprintf("%f %f %f", p.RGB[0], p.RGB[1], p.RGB[2]), ops.rgb
	case texpen.CMYK:
		comps, op = fmt.Sprintf("%f %f %f %f", p.CMYK[0], p.CMYK[1], p.CMYK[2], p.CMYK[3]), ops.cmyk
	default:
		return
	}
	if w.Dialect == PDF { // non stroking, then stroking color
		fmt.Fprintf(out, "%s %s %s %s", comps, op, comps, upper(op))
	} else {
		fmt.Fprintf(out, "%s %s", comps, op)
	}
	newline(out, tex)
}

// upper is enough for the ASCII PDF operators
func upper(op string) string {
	b := []byte(op)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// GSave saves the graphics state.
func (w Writer) GSave(out io.Writer, tex bool) {
	io.WriteString(out, w.ops().gsave)
	newline(out, tex)
}

// GRestore restores the graphics state.
func (w Writer) GRestore(out io.Writer, tex bool) {
	io.WriteString(out, w.ops().grestore)
	newline(out, tex)
}

// Paint writes the painting operator consuming the current path.
func (w Writer) Paint(out io.Writer, op PaintOp, tex bool) {
	io.WriteString(out, w.ops().paint[op])
	newline(out, tex)
}
