package texfile

import (
	"fmt"

	"github.com/benoitkugler/oktex/texpen"
)

// Setting keys queried by ConfigFrom.
const (
	KeyEngine     = "tex"
	KeyInline     = "inlinetex"
	KeyOutName    = "outname"
	KeyColorSpace = "colorspace"
)

// Lookup provides the settings needed by the emitter.
type Lookup interface {
	GetString(key string) string
	GetBool(key string) bool
}

// Config is the engine configuration, resolved once
// before building an Emitter.
type Config struct {
	Engine Engine
	Inline bool // the output is embedded in a larger document
	// OutName is the name of the final output, used in inline mode
	// to locate the shared preamble file.
	OutName string
	// ColorSpace, if not Unset, is the model all pens are converted to.
	ColorSpace texpen.Model
}

// ConfigFrom resolves the configuration from `settings`.
func ConfigFrom(settings Lookup) (Config, error) {
	engine, err := ParseEngine(settings.GetString(KeyEngine))
	if err != nil {
		return Config{}, err
	}
	cs, err := texpen.ParseModel(settings.GetString(KeyColorSpace))
	if err != nil {
		return Config{}, fmt.Errorf("texfile: invalid settings: %w", err)
	}
	return Config{
		Engine:     engine,
		Inline:     settings.GetBool(KeyInline),
		OutName:    settings.GetString(KeyOutName),
		ColorSpace: cs,
	}, nil
}
