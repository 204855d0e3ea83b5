// Implements a raster backend to render layers included
// in TeX documents, by wrapping rasterx.
package texraster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/benoitkugler/oktex/texpath"
	"github.com/benoitkugler/oktex/texpen"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// DefaultDPI is the resolution used when none is provided.
const DefaultDPI = 150

// Shape is a path painted with a pen.
type Shape struct {
	Path    texpath.Path
	Pen     texpen.Pen
	Fill    bool
	Stroke  bool
	EvenOdd bool // use the even-odd rule instead of non zero winding
}

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
	scale  float64         // pixels per big point, used for line widths
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		dasher: rasterx.NewDasher(width, height, scanner),
		filler: rasterx.NewFiller(width, height, scanner),
		scale:  1,
	}
}

// Rasterize renders the shapes into an image covering `box`,
// at the given resolution. The y axis is flipped, so that `box.Top`
// is the first row of the image.
func Rasterize(box texpath.BBox, dpi float64, shapes []Shape) *image.RGBA {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	scale := dpi / 72
	w, h := int(math.Ceil(box.Width()*scale)), int(math.Ceil(box.Height()*scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	renderer.scale = scale
	m := texpath.Identity.Scale(scale, -scale).Translate(-box.Left, -box.Top)
	for _, sh := range shapes {
		renderer.Draw(sh.Path.Transformed(m), sh)
	}
	return img
}

// Draw paints the path, already in device space, with the shape settings.
func (rd *Renderer) Draw(path texpath.Path, sh Shape) {
	col := sh.Pen.Color()
	if sh.Fill {
		rd.filler.Clear()
		rd.filler.SetWinding(!sh.EvenOdd)
		path.AddToFixed(rd.filler)
		setColor(col, rd.filler.Scanner)
		rd.filler.Draw()
	}
	if sh.Stroke {
		rd.dasher.Clear()
		rd.SetStrokeOptions(sh.Pen)
		path.AddToFixed(rd.dasher)
		setColor(col, rd.dasher.Scanner)
		rd.dasher.Draw()
	}
}

func setColor(c color.Color, scanner rasterx.Scanner) {
	scanner.SetColor(rasterx.ApplyOpacity(c, 1))
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		texpen.Round: rasterx.Round,
		texpen.Bevel: rasterx.Bevel,
		texpen.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		texpen.ButtCap:   rasterx.ButtCap,
		texpen.SquareCap: rasterx.SquareCap,
		texpen.RoundCap:  rasterx.RoundCap,
	}
)

// SetStrokeOptions configures the dasher from the pen.
func (rd *Renderer) SetStrokeOptions(p texpen.Pen) {
	width := p.LineWidth * rd.scale
	if width <= 0 {
		width = 1
	}
	capF := capToFunc[p.Cap]
	rd.dasher.SetStroke(
		fixed.Int26_6(width*64), fixed.Int26_6(4*64), capF,
		capF, rasterx.FlatGap,
		joinToJoin[p.Join], nil, 0,
	)
}

// WritePNG encodes the image as PNG.
func WritePNG(out io.Writer, img image.Image) error {
	return png.Encode(out, img)
}

// RenderLayer rasterizes the shapes and saves them as a PNG file.
func RenderLayer(filename string, box texpath.BBox, dpi float64, shapes []Shape) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("texraster: can't create layer: %w", err)
	}
	img := Rasterize(box, dpi, shapes)
	if err = WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("texraster: can't encode layer %s: %w", filename, err)
	}
	return f.Close()
}
