package texfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Preamble provides the macro definitions written by the prologues.
type Preamble interface {
	// Macros writes the preamble. When `internal` is false, the
	// definitions of the macros used by the emitter are omitted,
	// since they have already been written.
	Macros(out io.Writer, engine Engine, internal bool)
	// Defines writes the definitions needed in the main document.
	Defines(out io.Writer, engine Engine)
}

// DefaultPreamble defines the \ASYalign and \ASYraw macros used
// by the emitter.
type DefaultPreamble struct {
	User []string // user preamble, written verbatim, one line per item
}

var _ Preamble = DefaultPreamble{}

const (
	pdfAlign = `\def\ASYalign(#1,#2)(#3,#4)#5#6{\leavevmode%
\setbox\ASYbox=\hbox{#6}%
\setbox\ASYbox\hbox{\ASYdimen=\ht\ASYbox%
\advance\ASYdimen by\dp\ASYbox\kern#3\wd\ASYbox\raise#4\ASYdimen\box\ASYbox}%
\setbox\ASYbox=\hbox{\special{pdf: q #5 0 0 cm}\wd\ASYbox 0pt\dp\ASYbox 0pt\ht\ASYbox 0pt\box\ASYbox\special{pdf: Q}}%
`
	psAlign = `\def\ASYalign(#1,#2)(#3,#4)#5#6{\leavevmode%
\setbox\ASYbox=\hbox{#6}%
\setbox\ASYbox\hbox{\ASYdimen=\ht\ASYbox%
\advance\ASYdimen by\dp\ASYbox\kern#3\wd\ASYbox\raise#4\ASYdimen\box\ASYbox}%
\setbox\ASYbox=\hbox{\special{ps: gsave currentpoint currentpoint translate [#5 0 0] concat neg exch neg exch translate}%
\wd\ASYbox 0pt\dp\ASYbox 0pt\ht\ASYbox 0pt\box\ASYbox%
\special{ps: currentpoint grestore moveto}}%
`
	latexPlace = `\put(#1,#2){\box\ASYbox}}%
`
	plainPlace = `\rlap{\kern#1pt\raise#2pt\box\ASYbox}}%
`
	pdfRaw = `\def\ASYraw#1{#1}%
`
	psRaw = `\def\ASYraw#1{\special{ps: currentpoint currentpoint translate matrix currentmatrix 100 12 div -100 12 div scale}%
#1\special{ps: setmatrix neg exch neg exch translate}}%
`
)

func (d DefaultPreamble) Macros(out io.Writer, engine Engine, internal bool) {
	for _, line := range d.User {
		fmt.Fprintln(out, line)
	}
	if !internal {
		return
	}
	if engine.IsLatex() {
		io.WriteString(out, "\\usepackage{graphicx}\n")
	} else {
		io.WriteString(out, "\\input graphicx.tex\n")
	}
	io.WriteString(out, "\\newbox\\ASYbox\n\\newdimen\\ASYdimen\n")
	if engine.IsPDF() {
		io.WriteString(out, pdfAlign)
	} else {
		io.WriteString(out, psAlign)
	}
	if engine.IsLatex() {
		io.WriteString(out, latexPlace)
	} else {
		io.WriteString(out, plainPlace)
	}
	if engine.IsPDF() {
		io.WriteString(out, pdfRaw)
	} else {
		io.WriteString(out, psRaw)
	}
}

// Defines captures the current font encoding, for LaTeX only.
func (d DefaultPreamble) Defines(out io.Writer, engine Engine) {
	if !engine.IsLatex() {
		return
	}
	io.WriteString(out, `\makeatletter%
\let\ASYencoding\f@encoding%
\let\ASYfamily\f@family%
\let\ASYseries\f@series%
\let\ASYshape\f@shape%
\makeatother%
`)
}

// PreambleFile returns the name of the preamble file shared
// by the inline documents of `outname`.
func PreambleFile(outname string) string {
	return strings.TrimSuffix(outname, filepath.Ext(outname)) + "_.pre"
}

// sideFiles serializes the access to the shared preamble files
// within a process.
var sideFiles struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func lockSideFile(name string) func() {
	key := name
	if abs, err := filepath.Abs(name); err == nil {
		key = abs
	}
	sideFiles.mu.Lock()
	if sideFiles.locks == nil {
		sideFiles.locks = make(map[string]*sync.Mutex)
	}
	l, ok := sideFiles.locks[key]
	if !ok {
		l = new(sync.Mutex)
		sideFiles.locks[key] = l
	}
	sideFiles.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// appendPreamble adds the macros to the shared file `name`.
// The emitter definitions are only written when the file is created.
func appendPreamble(name string, pre Preamble, engine Engine) error {
	unlock := lockSideFile(name)
	defer unlock()

	_, err := os.Stat(name)
	existed := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	ew := &errWriter{w: f}
	pre.Macros(ew, engine, !existed)
	if err := f.Close(); ew.err == nil {
		ew.err = err
	}
	return ew.err
}
