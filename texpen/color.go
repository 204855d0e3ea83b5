package texpen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errColorFormat = errors.New("texpen: invalid color")

// ParseColor returns an RGB pen for the given color, which is either
// a SVG color name ("navy"), or an hexadecimal "#rgb" or "#rrggbb" value.
// The case is ignored.
func ParseColor(s string) (Pen, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(v, "#") {
		return parseHex(v[1:])
	}
	c, ok := colornames.Map[v]
	if !ok {
		return Pen{}, fmt.Errorf("%w: unknown color name %q", errColorFormat, s)
	}
	return NewRGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255), nil
}

func parseHex(v string) (Pen, error) {
	switch len(v) {
	case 3: // expand #rgb to #rrggbb
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	case 6:
	default:
		return Pen{}, fmt.Errorf("%w: #%s", errColorFormat, v)
	}
	var comps [3]float64
	for i := range comps {
		n, err := strconv.ParseUint(v[2*i:2*i+2], 16, 8)
		if err != nil {
			return Pen{}, fmt.Errorf("%w: #%s", errColorFormat, v)
		}
		comps[i] = float64(n) / 255
	}
	return NewRGB(comps[0], comps[1], comps[2]), nil
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota // default value
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	default:
		return "<unknown CapMode>"
	}
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Miter JoinMode = iota // default value
	Round
	Bevel
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "round"
	case Bevel:
		return "bevel"
	case Miter:
		return "miter"
	default:
		return "<unknown JoinMode>"
	}
}

// ParseCap accepts "butt", "round" and "square" ; the empty string
// is mapped to ButtCap.
func ParseCap(s string) (CapMode, error) {
	switch s {
	case "", "butt":
		return ButtCap, nil
	case "round":
		return RoundCap, nil
	case "square":
		return SquareCap, nil
	}
	return 0, fmt.Errorf("texpen: invalid line cap %q", s)
}

// ParseJoin accepts "miter", "round" and "bevel" ; the empty string
// is mapped to Miter.
func ParseJoin(s string) (JoinMode, error) {
	switch s {
	case "", "miter":
		return Miter, nil
	case "round":
		return Round, nil
	case "bevel":
		return Bevel, nil
	}
	return 0, fmt.Errorf("texpen: invalid line join %q", s)
}

// ParseModel accepts "gray" (or "grey"), "rgb", "cmyk"; the empty string
// returns Unset.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(s) {
	case "":
		return Unset, nil
	case "gray", "grey":
		return Gray, nil
	case "rgb":
		return RGB, nil
	case "cmyk":
		return CMYK, nil
	}
	return Unset, fmt.Errorf("texpen: invalid color model %q", s)
}
