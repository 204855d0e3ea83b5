package texscript

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/benoitkugler/oktex/psfile"
	"github.com/benoitkugler/oktex/texfile"
	"github.com/benoitkugler/oktex/texpath"
	"github.com/benoitkugler/oktex/texpen"
	"github.com/benoitkugler/oktex/texraster"
	"github.com/ledgerwatch/log/v3"
)

// Options configures the replay of a script.
type Options struct {
	// LayerBase prefixes the files of the rendered layers,
	// which are named <LayerBase>_<n>.png.
	// It is usually the output name, without extension.
	LayerBase string
	DPI       float64 // resolution of the rendered layers
	Logger    log.Logger
}

// BBox returns the box of the script, or if not given,
// the extent of the labels positions and shapes.
// An empty script has a zero box.
func (s *Script) BBox() texpath.BBox {
	if len(s.Box) == 4 {
		return texpath.BBox{Left: s.Box[0], Bottom: s.Box[1], Right: s.Box[2], Top: s.Box[3]}
	}
	box := texpath.EmptyBBox
	for _, op := range s.Ops {
		switch {
		case op.Label != nil:
			if _, at, _, err := op.Label.placement(); err == nil {
				box = box.AddPoint(at.X, at.Y)
			}
		case op.Path != nil:
			if p, err := op.Path.path(); err == nil {
				box = box.Union(texpath.PathBBox(p))
			}
		case op.Layer != nil:
			for _, sh := range op.Layer.Shapes {
				if p, err := sh.path(); err == nil {
					box = box.Union(texpath.PathBBox(p))
				}
			}
		}
	}
	if math.IsInf(box.Left, 1) {
		return texpath.BBox{}
	}
	return box
}

// Run writes the prologue, the operations and the epilogue
// of the script to `e`, which is closed when Run returns.
func (s *Script) Run(e *texfile.Emitter, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New()
		logger.SetHandler(log.DiscardHandler())
	}
	if opts.LayerBase == "" {
		opts.LayerBase = "layer"
	}

	if s.Mini {
		e.MiniPrologue()
	} else {
		e.Prologue()
	}

	r := runner{e: e, opts: opts, logger: logger, pen: texpen.NewGray(0)}
	for i, op := range s.Ops {
		if err := r.do(op); err != nil {
			e.Close()
			return fmt.Errorf("operation %d: %w", i+1, err)
		}
	}
	return e.Epilogue()
}

type runner struct {
	e      *texfile.Emitter
	opts   Options
	logger log.Logger

	pen    texpen.Pen // current pen
	layers int        // number of rendered layers
}

func (r *runner) do(op Op) error {
	e := r.e
	switch {
	case op.Pen != nil:
		pen, err := op.Pen.apply(r.pen)
		if err != nil {
			return err
		}
		r.pen = pen
		e.SetPen(pen)
	case op.Label != nil:
		T, at, align, err := op.Label.placement()
		if err != nil {
			return err
		}
		e.Put(op.Label.Text, T, at, align)
	case op.Layer != nil:
		name := op.Layer.File
		if name == "" {
			var err error
			name, err = r.renderLayer(op.Layer.Shapes)
			if err != nil {
				return err
			}
		}
		e.BeginLayer(name)
		e.EndLayer()
	case op.Path != nil:
		p, err := op.Path.path()
		if err != nil {
			return err
		}
		e.DrawShifted(p, op.Path.paintOp())
	case op.Special != nil:
		e.BeginSpecial()
		e.Verbatim(*op.Special)
		e.EndSpecial()
	case op.Raw != nil:
		e.BeginRaw()
		e.Verbatim(*op.Raw)
		e.EndRaw()
	case op.GSave != nil:
		e.GSave()
	case op.GRestore != nil:
		e.GRestore()
	}
	return nil
}

func (sh Shape) paintOp() psfile.PaintOp {
	switch {
	case sh.Fill && sh.EvenOdd:
		return psfile.EOFill
	case sh.Fill:
		return psfile.Fill
	default:
		return psfile.Stroke
	}
}

// renderLayer rasterizes the shapes over the picture box,
// and returns the name of the image, relative to the output directory.
func (r *runner) renderLayer(shapes []Shape) (string, error) {
	file := fmt.Sprintf("%s_%d.png", r.opts.LayerBase, r.layers)
	r.layers++

	box := r.e.Box()
	if box.Empty() {
		r.logger.Debug("Skipping layer of empty picture", "file", file)
		return filepath.Base(file), nil
	}
	if !r.e.Config().Engine.IsPDF() {
		r.logger.Warn("PNG layers are not supported by DVI drivers", "file", file, "engine", r.e.Config().Engine)
	}

	rasterShapes := make([]texraster.Shape, len(shapes))
	for i, sh := range shapes {
		p, err := sh.path()
		if err != nil {
			return "", err
		}
		pen := r.pen
		if sh.Pen != nil {
			if pen, err = sh.Pen.apply(pen); err != nil {
				return "", err
			}
		}
		rasterShapes[i] = texraster.Shape{Path: p, Pen: pen, Fill: sh.Fill, Stroke: !sh.Fill, EvenOdd: sh.EvenOdd}
	}
	if err := texraster.RenderLayer(file, box, r.opts.DPI, rasterShapes); err != nil {
		return "", err
	}
	r.logger.Debug("Rendered layer", "file", file, "shapes", len(shapes))
	return filepath.Base(file), nil
}
