package texscript

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/oktex/texfile"
	"github.com/benoitkugler/oktex/texpath"
	"github.com/benoitkugler/oktex/texpen"
	"github.com/stretchr/testify/require"
)

const sample = `
box: [0, 0, 100, 50]
ops:
  - pen: {rgb: [1, 0, 0], font: '\bfseries'}
  - label: {text: 'A', at: [10, 20], align: [-0.5, -0.5]}
  - pen: {color: navy}
  - path: {polyline: [[0, 0], [10, 10]]}
  - special: 'stroke'
  - raw: '\hrule'
  - gsave: true
  - grestore: true
  - layer: {file: figure.pdf}
`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(sample), "")
	require.NoError(t, err)
	require.Len(t, s.Ops, 9)
	require.Equal(t, texpath.BBox{Right: 100, Top: 50}, s.BBox())
	require.Equal(t, "A", s.Ops[1].Label.Text)
	require.Equal(t, `\bfseries`, *s.Ops[0].Pen.Font)
	require.True(t, *s.Ops[6].GSave)
}

func TestDecodeCharset(t *testing.T) {
	// 'é' in latin1
	input := []byte("encoding: latin1\nops:\n  - label: {text: 'caf\xe9', at: [0, 0]}\n")
	s, err := Decode(bytes.NewReader(input), "")
	require.NoError(t, err)
	require.Equal(t, "café", s.Ops[0].Label.Text)

	input = []byte("ops:\n  - label: {text: 'caf\xe9', at: [0, 0]}\n")
	s, err = Decode(bytes.NewReader(input), "iso-8859-1")
	require.NoError(t, err)
	require.Equal(t, "café", s.Ops[0].Label.Text)

	_, err = Decode(bytes.NewReader(input), "no-such-charset")
	require.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"ops: [{gsave: true, grestore: true}]",
		"ops: [{}]",
		"ops: [{label: {text: a, at: [1]}}]",
		"ops: [{label: {text: a, at: [1, 2], transform: [1, 0]}}]",
		"ops: [{pen: {rgb: [1, 0]}}]",
		"ops: [{pen: {gray: 0, color: red}}]",
		"ops: [{pen: {color: not-a-color}}]",
		"ops: [{pen: {cap: pointy}}]",
		"ops: [{path: {rect: [0, 0, 1]}}]",
		"ops: [{path: {rect: [0, 0, 1, 1], circle: [0, 0, 1]}}]",
		"ops: [{layer: {}}]",
		"ops: [{layer: {shapes: [{circle: [0, 1]}]}}]",
		"box: [0, 1]",
	} {
		_, err := Decode(strings.NewReader(input), "")
		require.True(t, errors.Is(err, ErrInvalidScript), input)
	}

	_, err := Decode(strings.NewReader("unknown: 1"), "")
	require.Error(t, err)

	// false is rejected with its own message, not as a missing operation
	for _, input := range []string{"ops: [{gsave: false}]", "ops: [{grestore: false}]"} {
		_, err = Decode(strings.NewReader(input), "")
		require.True(t, errors.Is(err, ErrInvalidScript), input)
		require.Contains(t, err.Error(), "expects true", input)
	}
}

func TestPenSpec(t *testing.T) {
	gray, font := 0.5, `\it`
	p, err := PenSpec{Gray: &gray, Font: &font, Size: 10, LineWidth: 2, Join: "round"}.apply(texpen.NewRGB(1, 0, 0))
	require.NoError(t, err)
	require.Equal(t, texpen.Gray, p.Model)
	require.Equal(t, 0.5, p.Gray)
	require.Equal(t, `\it`, p.Font)
	require.Equal(t, 10., p.Size)
	require.Equal(t, texpen.DefaultLineSkip, p.LineSkip)
	require.Equal(t, 2., p.LineWidth)
	require.Equal(t, texpen.Round, p.Join)

	// font only: the color is kept
	p2, err := PenSpec{Size: 8}.apply(p)
	require.NoError(t, err)
	require.True(t, p2.SameColor(p))
}

func TestBBoxFromContent(t *testing.T) {
	s, err := Decode(strings.NewReader(`
ops:
  - label: {text: a, at: [-10, 5]}
  - path: {rect: [0, 0, 20, 10]}
  - layer: {shapes: [{circle: [30, 30, 5]}]}
`), "")
	require.NoError(t, err)
	b := s.BBox()
	require.Equal(t, -10., b.Left)
	require.Equal(t, 0., b.Bottom)
	require.InDelta(t, 35, b.Right, 0.05)
	require.InDelta(t, 35, b.Top, 0.05)

	require.Equal(t, texpath.BBox{}, (&Script{}).BBox())
}

func TestRun(t *testing.T) {
	s, err := Decode(strings.NewReader(sample), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	e := texfile.NewWriter(&buf, s.BBox(), texfile.Config{Engine: texfile.LatexPDF})
	require.NoError(t, s.Run(e, Options{}))

	out := buf.String()
	for _, want := range []string{
		`\documentclass[12pt]{article}`,
		`\begin{document}`,
		`\definecolor{ASYcolor}{rgb}{1.000000,0.000000,0.000000}\color{ASYcolor}`,
		`\bfseries%`,
		`\ASYalign(10.037500,20.075000)(-0.500000,-0.500000){1.000000 0.000000 0.000000 1.000000}{A}`,
		`\definecolor{ASYcolor}{rgb}{0.000000,0.000000,0.501961}\color{ASYcolor}`,
		"\\special{pdf:0.000000 0.000000 m\n10.000000 10.000000 l\nS}\n",
		"\\special{pdf:stroke\n}\n",
		"\\ASYraw{\n\\hrule\n}%\n",
		"\\special{pdf:q}\n\\special{pdf:Q}\n",
		"\\includegraphics{figure.pdf}%\n\\kern-100.375000pt%\n",
	} {
		require.Contains(t, out, want)
	}
	require.True(t, strings.HasSuffix(out, "\\end{document}\n"))
}

func TestRunMini(t *testing.T) {
	s := &Script{Mini: true}
	var buf bytes.Buffer
	e := texfile.NewWriter(&buf, s.BBox(), texfile.Config{Engine: texfile.PlainDVI})
	require.NoError(t, s.Run(e, Options{}))
	require.Equal(t, "\\bye\n", buf.String())
}

func TestRunRasterLayer(t *testing.T) {
	dir := t.TempDir()
	s, err := Decode(strings.NewReader(`
box: [0, 0, 40, 20]
ops:
  - pen: {cmyk: [0, 1, 1, 0]}
  - layer: {shapes: [{rect: [0, 0, 10, 10], fill: true}, {circle: [20, 10, 5], pen: {gray: 0.5, linewidth: 2}}]}
  - layer: {shapes: [{polyline: [[0, 0], [40, 20]]}]}
`), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	e := texfile.NewWriter(&buf, s.BBox(), texfile.Config{Engine: texfile.PlainPDF})
	base := filepath.Join(dir, "fig")
	require.NoError(t, s.Run(e, Options{LayerBase: base, DPI: 72}))

	for _, name := range []string{"fig_0.png", "fig_1.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		require.Contains(t, buf.String(), `\includegraphics{`+name+`}%`)
	}
}

func TestRunLayerError(t *testing.T) {
	s, err := Decode(strings.NewReader(`
box: [0, 0, 40, 20]
ops:
  - layer: {shapes: [{rect: [0, 0, 10, 10]}]}
`), "")
	require.NoError(t, err)
	var buf bytes.Buffer
	e := texfile.NewWriter(&buf, s.BBox(), texfile.Config{Engine: texfile.PlainPDF})
	err = s.Run(e, Options{LayerBase: filepath.Join(t.TempDir(), "missing", "fig")})
	require.Error(t, err)
}

func TestReadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(file, []byte(sample), 0o644))
	s, err := ReadFile(file, "")
	require.NoError(t, err)
	require.Len(t, s.Ops, 9)

	_, err = ReadFile(file+".missing", "")
	require.Error(t, err)
}
