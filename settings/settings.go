// Package settings holds the user settings of oktex,
// which may be loaded from a TOML file, such as
//
//	tex = "pdflatex"
//	inlinetex = false
//	colorspace = "cmyk"
//	preamble = ['\usepackage{amsmath}']
//	dpi = 300
package settings

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the user settings.
type Settings struct {
	Tex        string   `toml:"tex"`        // engine name
	InlineTex  bool     `toml:"inlinetex"`  // embed the output in a larger document
	OutName    string   `toml:"outname"`    // final output name
	ColorSpace string   `toml:"colorspace"` // "", "gray", "rgb" or "cmyk"
	Preamble   []string `toml:"preamble"`   // user preamble lines
	DPI        float64  `toml:"dpi"`        // resolution of the raster layers
}

// Defaults returns the settings used when no file is given.
func Defaults() Settings {
	return Settings{Tex: "latex", DPI: 150}
}

// Decode reads TOML settings, starting from the defaults.
// Unknown keys are rejected.
func Decode(r io.Reader) (Settings, error) {
	s := Defaults()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("settings: invalid TOML: %w", err)
	}
	return s, nil
}

// Load reads the settings file at `path`.
func Load(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: %w", err)
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// GetString returns the setting named `key`, or the empty string.
func (s Settings) GetString(key string) string {
	switch key {
	case "tex":
		return s.Tex
	case "inlinetex":
		return strconv.FormatBool(s.InlineTex)
	case "outname":
		return s.OutName
	case "colorspace":
		return s.ColorSpace
	case "dpi":
		return strconv.FormatFloat(s.DPI, 'f', -1, 64)
	default:
		return ""
	}
}

// GetBool returns the boolean setting named `key`, or false.
func (s Settings) GetBool(key string) bool {
	switch key {
	case "inlinetex":
		return s.InlineTex
	default:
		return false
	}
}
