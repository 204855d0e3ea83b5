package texfile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEngine is returned when resolving an unsupported engine name.
var ErrUnknownEngine = errors.New("texfile: unknown TeX engine")

// Engine is the target TeX processor, and its output mode.
type Engine uint8

const (
	PlainDVI Engine = iota // tex
	PlainPDF               // pdftex, luatex
	LatexDVI               // latex
	LatexPDF               // pdflatex, xelatex, lualatex
)

var engineNames = map[string]Engine{
	"tex":      PlainDVI,
	"pdftex":   PlainPDF,
	"luatex":   PlainPDF,
	"latex":    LatexDVI,
	"pdflatex": LatexPDF,
	"xelatex":  LatexPDF,
	"lualatex": LatexPDF,
}

// EngineNames returns the accepted engine names, sorted
// by engine then by name.
func EngineNames() []string {
	return []string{"tex", "luatex", "pdftex", "latex", "lualatex", "pdflatex", "xelatex"}
}

// ParseEngine resolves an engine name, such as "pdflatex".
// The case is ignored.
func ParseEngine(name string) (Engine, error) {
	e, ok := engineNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return e, nil
}

// IsLatex returns true for the LaTeX engines.
func (e Engine) IsLatex() bool { return e == LatexDVI || e == LatexPDF }

// IsPDF returns true for the engines producing PDF.
func (e Engine) IsPDF() bool { return e == PlainPDF || e == LatexPDF }

// BeginSpecial returns the opening of a raw content special.
func (e Engine) BeginSpecial() string {
	if e.IsPDF() {
		return `\special{pdf:`
	}
	return `\special{ps:`
}

// EndSpecial returns the closing of a raw content special.
func (e Engine) EndSpecial() string { return "}" }

func (e Engine) String() string {
	switch e {
	case PlainDVI:
		return "PlainDVI"
	case PlainPDF:
		return "PlainPDF"
	case LatexDVI:
		return "LatexDVI"
	case LatexPDF:
		return "LatexPDF"
	default:
		return "<invalid Engine>"
	}
}
