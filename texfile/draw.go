package texfile

import (
	"github.com/benoitkugler/oktex/psfile"
	"github.com/benoitkugler/oktex/texpath"
	"github.com/benoitkugler/oktex/texpen"
)

// SetPen updates the color and the font of the document,
// writing only what changed since the last pen.
func (e *Emitter) SetPen(p texpen.Pen) {
	p = p.Normalize(e.cfg.ColorSpace)
	if p.Equal(e.last) {
		return
	}

	if e.cfg.Engine.IsLatex() {
		e.setLatexColor(p)
	} else if p.Model != texpen.Unset && !p.SameColor(e.last) {
		e.print(e.cfg.Engine.BeginSpecial())
		e.raw.SetColor(e.out, p, true)
		e.println(e.cfg.Engine.EndSpecial())
	}

	e.setFont(p)
}

// setLatexColor tries the color models by priority.
func (e *Emitter) setLatexColor(p texpen.Pen) {
	last := e.last
	switch {
	case p.IsCMYK() && (!last.IsCMYK() || p.CMYK != last.CMYK):
		e.printf("\\definecolor{ASYcolor}{cmyk}{%f,%f,%f,%f}\\color{ASYcolor}\n",
			p.CMYK[0], p.CMYK[1], p.CMYK[2], p.CMYK[3])
	case p.IsRGB() && (!last.IsRGB() || p.RGB != last.RGB):
		e.printf("\\definecolor{ASYcolor}{rgb}{%f,%f,%f}\\color{ASYcolor}\n",
			p.RGB[0], p.RGB[1], p.RGB[2])
	case p.IsGray() && (!last.IsGray() || p.Gray != last.Gray):
		e.printf("\\definecolor{ASYcolor}{gray}{%f}\\color{ASYcolor}\n", p.Gray)
	}
}

func (e *Emitter) setFont(p texpen.Pen) {
	if e.cfg.Engine.IsLatex() && (p.Size != e.last.Size || p.LineSkip != e.last.LineSkip) {
		e.printf("\\fontsize{%f}{%f}\\selectfont\n", p.Size, p.LineSkip)
	}
	if p.Font != e.last.Font {
		e.println(p.Font + "%")
	}
	e.last = p
}

// LastPen returns the pen currently in effect.
func (e *Emitter) LastPen() texpen.Pen { return e.last }

// ResetPen forgets the current pen, so that the next
// call to SetPen writes all its settings.
func (e *Emitter) ResetPen() { e.last = texpen.Reset() }

func (e *Emitter) degenerate() bool { return e.box.Empty() }

func (e *Emitter) kern() {
	e.printf("\\kern-%fpt%%\n", e.box.Width()*PS2TeX)
}

// BeginLayer includes the graphic file `name`, covering the picture box.
// Nothing is written for a degenerate box.
func (e *Emitter) BeginLayer(name string) {
	if e.degenerate() {
		return
	}
	e.print(`\includegraphics`)
	if !e.cfg.Engine.IsPDF() {
		e.printf("[bb=%f %f %f %f]", e.box.Left, e.box.Bottom, e.box.Right, e.box.Top)
	}
	e.printf("{%s}%%\n", name)
	if !e.cfg.Inline {
		e.kern()
	}
}

// EndLayer moves back after a layer, in inline mode only;
// otherwise BeginLayer already did.
func (e *Emitter) EndLayer() {
	if e.cfg.Inline && !e.degenerate() {
		e.kern()
	}
}

// WriteShifted writes `path` with the raw writer, relative to the
// origin of the picture.
func (e *Emitter) WriteShifted(path texpath.Path, newPath bool) {
	e.raw.WritePath(e.out, path.Transformed(texpath.Shift(-e.hoffset, -e.box.Bottom)), newPath)
}

// DrawShifted writes `path`, relative to the origin of the picture,
// followed by the painting operator `op`, in one special.
// The operator is omitted if the raw writer does not implement Painter.
func (e *Emitter) DrawShifted(path texpath.Path, op psfile.PaintOp) {
	e.BeginSpecial()
	e.WriteShifted(path, true)
	if painter, ok := e.raw.(Painter); ok {
		painter.Paint(e.out, op, true)
	}
	e.EndSpecial()
}

// GSave saves the graphics state, in a special.
func (e *Emitter) GSave() {
	e.print(e.cfg.Engine.BeginSpecial())
	e.raw.GSave(e.out, true)
	e.println(e.cfg.Engine.EndSpecial())
}

// GRestore restores the graphics state, in a special.
func (e *Emitter) GRestore() {
	e.print(e.cfg.Engine.BeginSpecial())
	e.raw.GRestore(e.out, true)
	e.println(e.cfg.Engine.EndSpecial())
}

// BeginSpecial opens a special, for raw content written by the caller.
func (e *Emitter) BeginSpecial() { e.print(e.cfg.Engine.BeginSpecial()) }

// EndSpecial closes the special and ends the line.
func (e *Emitter) EndSpecial() { e.println(e.cfg.Engine.EndSpecial()) }

// BeginRaw opens an \ASYraw group, on its own line.
func (e *Emitter) BeginRaw() { e.println(`\ASYraw{`) }

// EndRaw closes the \ASYraw group.
func (e *Emitter) EndRaw() { e.println(`}%`) }

// Put writes `label`, placed at `z` with the alignment `align`
// and transformed by the linear part of `T`. The label is
// written as it is: it must be valid TeX.
func (e *Emitter) Put(label string, T texpath.Matrix2D, z, align texpath.Point) {
	if label == "" {
		return
	}
	sign := -1.
	if e.cfg.Engine.IsPDF() {
		sign = 1
	}
	e.printf("\\ASYalign(%f,%f)(%f,%f){%f %f %f %f}{%s}\n",
		(z.X-e.hoffset)*PS2TeX, (z.Y-e.box.Bottom)*PS2TeX,
		align.X, align.Y,
		T.A, sign*T.B, sign*T.C, T.D,
		label)
}
