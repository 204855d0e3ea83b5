// Package texfile writes the TeX (or LaTeX) source of a picture:
// labels, pen changes, included layers and raw graphics specials,
// for one of the supported engines.
//
// An Emitter is used in the following order: New, MiniPrologue or Prologue,
// any number of drawing operations, and Epilogue.
package texfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/oktex/psfile"
	"github.com/benoitkugler/oktex/texpath"
	"github.com/benoitkugler/oktex/texpen"
	"github.com/ledgerwatch/log/v3"
)

// PS2TeX converts big points (PostScript units) into TeX points.
const PS2TeX = 72.27 / 72

// ErrCannotWrite is returned when the output can't be created.
var ErrCannotWrite = errors.New("texfile: cannot write")

// RawWriter writes the graphics content embedded in specials.
// When `tex` is true, the content is enclosed in a special by the emitter.
type RawWriter interface {
	WritePath(out io.Writer, path texpath.Path, newPath bool)
	SetColor(out io.Writer, p texpen.Pen, tex bool)
	GSave(out io.Writer, tex bool)
	GRestore(out io.Writer, tex bool)
}

// Painter is implemented by the raw writers able to
// end a path with a painting operator.
type Painter interface {
	Paint(out io.Writer, op psfile.PaintOp, tex bool)
}

var _ RawWriter = psfile.Writer{}

// errWriter remembers the first error
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// Emitter writes a TeX document.
// It is not safe for concurrent use.
type Emitter struct {
	cfg     Config
	box     texpath.BBox
	hoffset float64 // horizontal origin of the labels

	buf    *bufio.Writer
	out    *errWriter // wraps buf
	closer io.Closer  // may be nil
	closed bool

	last texpen.Pen // the pen currently set in the document

	raw      RawWriter
	preamble Preamble
	logger   log.Logger
}

// Option customizes an Emitter.
type Option func(*Emitter)

// WithLogger sets the logger used to report errors.
func WithLogger(logger log.Logger) Option {
	return func(e *Emitter) { e.logger = logger }
}

// WithPreamble replaces DefaultPreamble.
func WithPreamble(pre Preamble) Option {
	return func(e *Emitter) { e.preamble = pre }
}

// WithRawWriter replaces the default psfile.Writer.
func WithRawWriter(raw RawWriter) Option {
	return func(e *Emitter) { e.raw = raw }
}

func discardLogger() log.Logger {
	l := log.New()
	l.SetHandler(log.DiscardHandler())
	return l
}

// New creates the file `texname` and writes the document header.
func New(texname string, box texpath.BBox, cfg Config, opts ...Option) (*Emitter, error) {
	f, err := os.Create(texname)
	if err != nil {
		e := newEmitter(nil, box, cfg, opts)
		e.logger.Error("Cannot write to output", "file", texname, "err", err)
		return nil, fmt.Errorf("%w: %s", ErrCannotWrite, texname)
	}
	e := NewWriter(f, box, cfg, opts...)
	e.logger.Debug("Writing TeX file", "file", texname, "engine", cfg.Engine, "inline", cfg.Inline)
	return e, nil
}

// NewWriter binds the emitter to `w`, which is closed by Epilogue
// or Close when it implements io.Closer.
// A nil `w` yields an emitter which writes nothing and whose
// Err returns an error wrapping ErrCannotWrite.
func NewWriter(w io.Writer, box texpath.BBox, cfg Config, opts ...Option) *Emitter {
	e := newEmitter(w, box, cfg, opts)
	if cfg.Engine.IsLatex() && !cfg.Inline {
		e.println(`\documentclass[12pt]{article}`)
	}
	return e
}

func newEmitter(w io.Writer, box texpath.BBox, cfg Config, opts []Option) *Emitter {
	e := &Emitter{
		cfg:      cfg,
		box:      box,
		hoffset:  box.Left,
		last:     texpen.Reset(),
		preamble: DefaultPreamble{},
	}
	if cfg.Inline {
		e.hoffset = box.Right
	}
	if cfg.Engine.IsPDF() {
		e.raw = psfile.Writer{Dialect: psfile.PDF}
	} else {
		e.raw = psfile.Writer{Dialect: psfile.PostScript}
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = discardLogger()
	}
	if w == nil {
		e.buf = bufio.NewWriter(io.Discard)
		e.out = &errWriter{w: e.buf, err: fmt.Errorf("%w: nil writer", ErrCannotWrite)}
		return e
	}
	e.buf = bufio.NewWriter(w)
	e.out = &errWriter{w: e.buf}
	e.closer, _ = w.(io.Closer)
	return e
}

// Config returns the configuration of the emitter.
func (e *Emitter) Config() Config { return e.cfg }

// Box returns the bounding box of the picture.
func (e *Emitter) Box() texpath.BBox { return e.box }

// Err returns the first error encountered while writing, if any.
func (e *Emitter) Err() error { return e.out.err }

func (e *Emitter) setErr(err error) {
	if e.out.err == nil {
		e.out.err = err
	}
}

func (e *Emitter) print(s string) { io.WriteString(e.out, s) }

func (e *Emitter) println(s string) {
	io.WriteString(e.out, s)
	io.WriteString(e.out, "\n")
}

func (e *Emitter) printf(format string, args ...interface{}) {
	fmt.Fprintf(e.out, format, args...)
}

// Verbatim writes `s` followed by a newline.
func (e *Emitter) Verbatim(s string) { e.println(s) }

// MiniPrologue writes a minimal preamble, without page layout.
func (e *Emitter) MiniPrologue() {
	e.preamble.Macros(e.out, e.cfg.Engine, false)
	if e.cfg.Engine.IsLatex() {
		e.println(`\pagestyle{empty}`)
		e.println(`\begin{document}`)
	}
	e.preamble.Defines(e.out, e.cfg.Engine)
}

// Prologue writes the preamble and the page layout.
// In inline mode, the macros are appended to the preamble file shared
// by the documents of the same output, and only the first document
// writes the emitter definitions.
func (e *Emitter) Prologue() {
	engine := e.cfg.Engine
	if e.cfg.Inline {
		name := PreambleFile(e.cfg.OutName)
		if err := appendPreamble(name, e.preamble, engine); err != nil {
			e.logger.Warn("Cannot write preamble file", "file", name, "err", err)
			e.setErr(fmt.Errorf("texfile: preamble file %s: %w", name, err))
		}
	} else {
		e.preamble.Macros(e.out, engine, true)
	}

	e.preamble.Defines(e.out, engine)

	width, height := e.box.Width(), e.box.Height()
	if engine.IsPDF() && !e.cfg.Inline {
		if width > 0 {
			e.printf("\\pdfpagewidth=%fbp\n", width)
		}
		if height > 0 {
			e.printf("\\pdfpageheight=%fbp\n", height)
		}
	}

	switch engine {
	case LatexDVI, LatexPDF:
		e.println(`\setlength{\unitlength}{1pt}`)
		if !e.cfg.Inline {
			e.println(`\pagestyle{empty}`)
			e.printf("\\textheight=%fbp\n", height+18)
			e.printf("\\textwidth=%fbp\n", width+18)
			if engine == LatexPDF {
				e.println(`\oddsidemargin=-89.9pt`)
				e.println(`\evensidemargin=\oddsidemargin`)
				e.println(`\topmargin=-109.27pt`)
			}
			e.println(`\begin{document}`)
		}
	case PlainPDF:
		e.println(`\hoffset=-92.27pt`)
		e.println(`\voffset=-72.27pt`)
	case PlainDVI:
		e.println(`\hoffset=36.6pt`)
		e.println(`\voffset=54.0pt`)
	}
}

// Epilogue ends the document, then flushes and closes the output.
// It returns the first error encountered.
func (e *Emitter) Epilogue() error {
	if e.closed {
		return e.out.err
	}
	if e.cfg.Engine.IsLatex() {
		if !e.cfg.Inline {
			e.println(`\end{document}`)
		}
	} else {
		e.println(`\bye`)
	}
	return e.Close()
}

// Close flushes and releases the output, without
// ending the document. It is a no-op after the first call.
func (e *Emitter) Close() error {
	if e.closed {
		return e.out.err
	}
	e.closed = true
	if err := e.buf.Flush(); err != nil {
		e.setErr(err)
	}
	if e.closer != nil {
		if err := e.closer.Close(); err != nil {
			e.setErr(err)
		}
	}
	if err := e.out.err; err != nil {
		e.logger.Error("Writing TeX file failed", "err", err)
	}
	return e.out.err
}
