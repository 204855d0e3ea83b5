// Package texscript reads drawing scripts, written in YAML,
// and replays them on a texfile.Emitter.
//
// A script is a list of operations, such as
//
//	box: [0, 0, 100, 50]
//	ops:
//	  - pen: {rgb: [1, 0, 0], font: '\bfseries'}
//	  - label: {text: 'A', at: [10, 20], align: [-0.5, -0.5]}
//	  - path: {polyline: [[0, 0], [10, 10]]}
package texscript

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/benoitkugler/oktex/texpath"
	"github.com/benoitkugler/oktex/texpen"
	"golang.org/x/net/html/charset"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScript is wrapped by the errors reporting
// an invalid operation.
var ErrInvalidScript = errors.New("texscript: invalid script")

// Script is a sequence of drawing operations.
type Script struct {
	// Box is the picture box [left, bottom, right, top].
	// When empty, it is computed from the operations.
	Box      []float64 `yaml:"box"`
	Encoding string    `yaml:"encoding"` // charset of the file, UTF-8 by default
	Mini     bool      `yaml:"mini"`     // use the minimal prologue
	Ops      []Op      `yaml:"ops"`
}

// Op is one operation. Exactly one of its fields must be set.
type Op struct {
	Pen      *PenSpec `yaml:"pen"`
	Label    *Label   `yaml:"label"`
	Layer    *Layer   `yaml:"layer"`
	Path     *Shape   `yaml:"path"`
	Special  *string  `yaml:"special"`
	Raw      *string  `yaml:"raw"`
	GSave    *bool    `yaml:"gsave"` // only true is accepted
	GRestore *bool    `yaml:"grestore"`
}

// PenSpec updates the current pen: only the given fields are changed.
// At most one of the color fields may be set.
type PenSpec struct {
	Gray     *float64  `yaml:"gray"`
	RGB      []float64 `yaml:"rgb"`
	CMYK     []float64 `yaml:"cmyk"`
	Color    string    `yaml:"color"` // name or #rrggbb
	Font     *string   `yaml:"font"`
	Size     float64   `yaml:"size"`
	LineSkip float64   `yaml:"lineskip"`

	LineWidth float64 `yaml:"linewidth"`
	Cap       string  `yaml:"cap"`
	Join      string  `yaml:"join"`
}

// Label is a text placed in the picture.
type Label struct {
	Text      string    `yaml:"text"`
	At        []float64 `yaml:"at"`        // x, y
	Align     []float64 `yaml:"align"`     // x, y ; defaults to 0, 0
	Transform []float64 `yaml:"transform"` // xx, yx, xy, yy ; defaults to the identity
}

// Layer is either an existing graphic file, or shapes
// rendered as an image.
type Layer struct {
	File   string  `yaml:"file"`
	Shapes []Shape `yaml:"shapes"`
}

// Shape is a rectangle, a circle or a polyline.
type Shape struct {
	Rect     []float64   `yaml:"rect"`     // minX, minY, maxX, maxY [, rotation in degrees]
	Circle   []float64   `yaml:"circle"`   // cx, cy, r
	Polyline [][]float64 `yaml:"polyline"` // points
	Closed   bool        `yaml:"closed"`
	Fill     bool        `yaml:"fill"`
	EvenOdd  bool        `yaml:"evenodd"`
	Pen      *PenSpec    `yaml:"pen"` // for layers only
}

// sniffEncoding reads the encoding key, ignoring the non ASCII content.
func sniffEncoding(data []byte) string {
	ascii := bytes.Map(func(r rune) rune {
		if r >= utf8.RuneSelf {
			return '?'
		}
		return r
	}, data)
	var header struct {
		Encoding string `yaml:"encoding"`
	}
	_ = yaml.Unmarshal(ascii, &header)
	return header.Encoding
}

// Decode reads a script. The input is converted to UTF-8 according
// to `label` or, if empty, to the `encoding` key of the script.
// Unknown keys are rejected.
func Decode(r io.Reader, label string) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if label == "" {
		label = sniffEncoding(data)
	}
	var in io.Reader = bytes.NewReader(data)
	if label != "" {
		in, err = charset.NewReaderLabel(label, in)
		if err != nil {
			return nil, fmt.Errorf("texscript: %w", err)
		}
	}
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	var script Script
	if err = dec.Decode(&script); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty input", ErrInvalidScript)
		}
		return nil, fmt.Errorf("texscript: invalid YAML: %w", err)
	}
	if err = script.validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

// ReadFile decodes the script stored in `file`.
func ReadFile(file, label string) (*Script, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Decode(f, label)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return s, nil
}

func (s *Script) validate() error {
	if len(s.Box) != 0 && len(s.Box) != 4 {
		return fmt.Errorf("%w: box must have 4 values", ErrInvalidScript)
	}
	for i, op := range s.Ops {
		if err := op.validate(); err != nil {
			return fmt.Errorf("operation %d: %w", i+1, err)
		}
	}
	return nil
}

func (op Op) count() int {
	n := 0
	for _, set := range [...]bool{
		op.Pen != nil, op.Label != nil, op.Layer != nil, op.Path != nil,
		op.Special != nil, op.Raw != nil, op.GSave != nil, op.GRestore != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (op Op) validate() error {
	if n := op.count(); n != 1 {
		return fmt.Errorf("%w: expected exactly one operation, got %d", ErrInvalidScript, n)
	}
	switch {
	case op.GSave != nil && !*op.GSave:
		return fmt.Errorf("%w: gsave expects true", ErrInvalidScript)
	case op.GRestore != nil && !*op.GRestore:
		return fmt.Errorf("%w: grestore expects true", ErrInvalidScript)
	case op.Pen != nil:
		_, err := op.Pen.apply(texpen.NewGray(0))
		return err
	case op.Label != nil:
		_, _, _, err := op.Label.placement()
		return err
	case op.Layer != nil:
		if (op.Layer.File == "") == (len(op.Layer.Shapes) == 0) {
			return fmt.Errorf("%w: layer expects either a file or shapes", ErrInvalidScript)
		}
		for _, sh := range op.Layer.Shapes {
			if _, err := sh.path(); err != nil {
				return err
			}
			if sh.Pen != nil {
				if _, err := sh.Pen.apply(texpen.NewGray(0)); err != nil {
					return err
				}
			}
		}
	case op.Path != nil:
		_, err := op.Path.path()
		return err
	}
	return nil
}

func point(v []float64, what string) (texpath.Point, error) {
	if len(v) != 2 {
		return texpath.Point{}, fmt.Errorf("%w: %s expects 2 values", ErrInvalidScript, what)
	}
	return texpath.Point{X: v[0], Y: v[1]}, nil
}

func (l Label) placement() (T texpath.Matrix2D, at, align texpath.Point, err error) {
	at, err = point(l.At, "label position")
	if err != nil {
		return
	}
	if len(l.Align) != 0 {
		align, err = point(l.Align, "label alignment")
		if err != nil {
			return
		}
	}
	switch len(l.Transform) {
	case 0:
		T = texpath.Identity
	case 4:
		T = texpath.Matrix2D{A: l.Transform[0], B: l.Transform[1], C: l.Transform[2], D: l.Transform[3]}
	default:
		err = fmt.Errorf("%w: label transform expects 4 values", ErrInvalidScript)
	}
	return
}

func (sh Shape) path() (texpath.Path, error) {
	set := 0
	if sh.Rect != nil {
		set++
	}
	if sh.Circle != nil {
		set++
	}
	if sh.Polyline != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: shape expects one of rect, circle or polyline", ErrInvalidScript)
	}
	switch {
	case sh.Rect != nil:
		switch len(sh.Rect) {
		case 4:
			return texpath.Rect(sh.Rect[0], sh.Rect[1], sh.Rect[2], sh.Rect[3], 0), nil
		case 5:
			return texpath.Rect(sh.Rect[0], sh.Rect[1], sh.Rect[2], sh.Rect[3], sh.Rect[4]), nil
		}
		return nil, fmt.Errorf("%w: rect expects 4 or 5 values", ErrInvalidScript)
	case sh.Circle != nil:
		if len(sh.Circle) != 3 {
			return nil, fmt.Errorf("%w: circle expects 3 values", ErrInvalidScript)
		}
		return texpath.Circle(sh.Circle[0], sh.Circle[1], sh.Circle[2]), nil
	default:
		points := make([]texpath.Point, len(sh.Polyline))
		for i, v := range sh.Polyline {
			pt, err := point(v, "polyline point")
			if err != nil {
				return nil, err
			}
			points[i] = pt
		}
		return texpath.Polyline(points, sh.Closed), nil
	}
}

// apply returns `current` updated with the fields of `ps`.
func (ps PenSpec) apply(current texpen.Pen) (texpen.Pen, error) {
	colors := 0
	for _, set := range [...]bool{ps.Gray != nil, ps.RGB != nil, ps.CMYK != nil, ps.Color != ""} {
		if set {
			colors++
		}
	}
	if colors > 1 {
		return current, fmt.Errorf("%w: pen expects at most one color", ErrInvalidScript)
	}

	p := current
	switch {
	case ps.Gray != nil:
		p.Model, p.Gray = texpen.Gray, *ps.Gray
	case ps.RGB != nil:
		if len(ps.RGB) != 3 {
			return current, fmt.Errorf("%w: rgb expects 3 values", ErrInvalidScript)
		}
		p.Model, p.RGB = texpen.RGB, [3]float64{ps.RGB[0], ps.RGB[1], ps.RGB[2]}
	case ps.CMYK != nil:
		if len(ps.CMYK) != 4 {
			return current, fmt.Errorf("%w: cmyk expects 4 values", ErrInvalidScript)
		}
		p.Model, p.CMYK = texpen.CMYK, [4]float64{ps.CMYK[0], ps.CMYK[1], ps.CMYK[2], ps.CMYK[3]}
	case ps.Color != "":
		c, err := texpen.ParseColor(ps.Color)
		if err != nil {
			return current, fmt.Errorf("%w: %s", ErrInvalidScript, err)
		}
		p.Model, p.RGB = c.Model, c.RGB
	}

	if ps.Font != nil {
		p.Font = *ps.Font
	}
	if ps.Size != 0 {
		p.Size = ps.Size
	}
	if ps.LineSkip != 0 {
		p.LineSkip = ps.LineSkip
	}
	if ps.LineWidth != 0 {
		p.LineWidth = ps.LineWidth
	}
	var err error
	if ps.Cap != "" {
		if p.Cap, err = texpen.ParseCap(ps.Cap); err != nil {
			return current, fmt.Errorf("%w: %s", ErrInvalidScript, err)
		}
	}
	if ps.Join != "" {
		if p.Join, err = texpen.ParseJoin(ps.Join); err != nil {
			return current, fmt.Errorf("%w: %s", ErrInvalidScript, err)
		}
	}
	return p, nil
}
