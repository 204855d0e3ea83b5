package texraster

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/oktex/texpath"
	"github.com/benoitkugler/oktex/texpen"
	"github.com/stretchr/testify/require"
)

func TestRasterizeSize(t *testing.T) {
	box := texpath.BBox{Left: 0, Bottom: 0, Right: 72, Top: 36}
	img := Rasterize(box, 144, nil)
	require.Equal(t, 144, img.Bounds().Dx())
	require.Equal(t, 72, img.Bounds().Dy())

	img = Rasterize(box, 0, nil) // default resolution
	require.Equal(t, 150, img.Bounds().Dx())
}

func TestRasterizeFill(t *testing.T) {
	box := texpath.BBox{Left: 0, Bottom: 0, Right: 100, Top: 100}
	// red square in the lower left quarter
	shapes := []Shape{{
		Path: texpath.Rect(0, 0, 50, 50, 0),
		Pen:  texpen.NewRGB(1, 0, 0),
		Fill: true,
	}}
	img := Rasterize(box, 72, shapes)

	// the y axis is flipped: the lower left corner is at the bottom of the image
	r, g, b, a := img.At(25, 75).RGBA()
	require.Equal(t, uint32(0xffff), r)
	require.Equal(t, uint32(0), g)
	require.Equal(t, uint32(0), b)
	require.Equal(t, uint32(0xffff), a)

	_, _, _, a = img.At(25, 25).RGBA()
	require.Equal(t, uint32(0), a)
	_, _, _, a = img.At(75, 75).RGBA()
	require.Equal(t, uint32(0), a)
}

func TestRasterizeStroke(t *testing.T) {
	box := texpath.BBox{Left: 0, Bottom: 0, Right: 100, Top: 100}
	pen := texpen.NewGray(0)
	pen.LineWidth = 10
	shapes := []Shape{{
		Path:   texpath.Polyline([]texpath.Point{{X: 0, Y: 50}, {X: 100, Y: 50}}, false),
		Pen:    pen,
		Stroke: true,
	}}
	img := Rasterize(box, 72, shapes)
	require.Equal(t, color.RGBA{A: 0xff}, img.RGBAAt(50, 50))
	require.Equal(t, color.RGBA{}, img.RGBAAt(50, 10))
}

func TestRenderLayer(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "layer_0.png")
	box := texpath.BBox{Left: 10, Bottom: 10, Right: 40, Top: 30}
	shapes := []Shape{{Path: texpath.Circle(25, 20, 5), Pen: texpen.NewCMYK(0, 1, 1, 0), Fill: true}}
	require.NoError(t, RenderLayer(file, box, 72, shapes))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 30, img.Bounds().Dx())
	require.Equal(t, 20, img.Bounds().Dy())

	err = RenderLayer(filepath.Join(dir, "missing", "x.png"), box, 72, shapes)
	require.Error(t, err)
}
