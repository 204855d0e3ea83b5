// Provides the pen model consumed by the TeX emitter:
// a color in one of the supported color models, a TeX font selection
// and the stroking parameters used by raster layers.
package texpen

import (
	"image/color"
	"math"
)

// Model is the color model of a pen.
type Model uint8

const (
	Unset Model = iota // no color set, also used to keep the pen model when normalizing
	Gray
	RGB
	CMYK

	invalid // used by the reset sentinel only
)

func (m Model) String() string {
	switch m {
	case Unset:
		return "unset"
	case Gray:
		return "gray"
	case RGB:
		return "rgb"
	case CMYK:
		return "cmyk"
	default:
		return "<invalid Model>"
	}
}

// Pen stores the rendering state which is tracked by the emitter.
// Only the components relevant to Model are significant.
type Pen struct {
	Model Model
	Gray  float64
	RGB   [3]float64 // red, green, blue
	CMYK  [4]float64 // cyan, magenta, yellow, black

	Font     string  // raw TeX font selection command, emitted verbatim
	Size     float64 // font size, in points
	LineSkip float64 // leading, in points

	LineWidth float64 // in big points; only used when rasterizing
	Cap       CapMode
	Join      JoinMode
}

// Default font metrics, matching the 12pt article class.
const (
	DefaultSize     = 12
	DefaultLineSkip = 14.4
)

// NewGray returns a gray pen with default font metrics.
func NewGray(g float64) Pen {
	return Pen{Model: Gray, Gray: g, Size: DefaultSize, LineSkip: DefaultLineSkip, LineWidth: 0.5}
}

// NewRGB returns a RGB pen with default font metrics.
func NewRGB(r, g, b float64) Pen {
	return Pen{Model: RGB, RGB: [3]float64{r, g, b}, Size: DefaultSize, LineSkip: DefaultLineSkip, LineWidth: 0.5}
}

// NewCMYK returns a CMYK pen with default font metrics.
func NewCMYK(c, m, y, k float64) Pen {
	return Pen{Model: CMYK, CMYK: [4]float64{c, m, y, k}, Size: DefaultSize, LineSkip: DefaultLineSkip, LineWidth: 0.5}
}

// Reset returns a sentinel pen, which is not equal to any
// pen a caller may build.
func Reset() Pen {
	return Pen{Model: invalid, Size: math.NaN(), LineSkip: math.NaN(), LineWidth: math.NaN()}
}

func (p Pen) IsGray() bool { return p.Model == Gray }
func (p Pen) IsRGB() bool  { return p.Model == RGB }
func (p Pen) IsCMYK() bool { return p.Model == CMYK }

func clamp(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Normalize returns the canonical form of `p`: components are clamped to [0,1],
// the ones irrelevant to the model are zeroed, and the color is converted
// to `target`, unless it is Unset.
func (p Pen) Normalize(target Model) Pen {
	if p.Model == invalid {
		return p
	}
	if target != Unset && target != p.Model && p.Model != Unset {
		p = p.convert(target)
	}
	switch p.Model {
	case Gray:
		p.Gray = clamp(p.Gray)
		p.RGB, p.CMYK = [3]float64{}, [4]float64{}
	case RGB:
		for i := range p.RGB {
			p.RGB[i] = clamp(p.RGB[i])
		}
		p.Gray, p.CMYK = 0, [4]float64{}
	case CMYK:
		for i := range p.CMYK {
			p.CMYK[i] = clamp(p.CMYK[i])
		}
		p.Gray, p.RGB = 0, [3]float64{}
	default:
		p.Gray, p.RGB, p.CMYK = 0, [3]float64{}, [4]float64{}
	}
	return p
}

// convert changes the color model, using the naive
// device conversions.
func (p Pen) convert(target Model) Pen {
	r, g, b := p.rgb()
	switch target {
	case Gray:
		p.Gray = 0.299*r + 0.587*g + 0.114*b
	case RGB:
		p.RGB = [3]float64{r, g, b}
	case CMYK:
		k := 1 - math.Max(r, math.Max(g, b))
		if k == 1 {
			p.CMYK = [4]float64{0, 0, 0, 1}
		} else {
			p.CMYK = [4]float64{(1 - r - k) / (1 - k), (1 - g - k) / (1 - k), (1 - b - k) / (1 - k), k}
		}
	}
	p.Model = target
	return p
}

// rgb returns the RGB components, converting from the pen model.
// An unset color is black.
func (p Pen) rgb() (r, g, b float64) {
	switch p.Model {
	case Gray:
		return p.Gray, p.Gray, p.Gray
	case RGB:
		return p.RGB[0], p.RGB[1], p.RGB[2]
	case CMYK:
		k := p.CMYK[3]
		return (1 - p.CMYK[0]) * (1 - k), (1 - p.CMYK[1]) * (1 - k), (1 - p.CMYK[2]) * (1 - k)
	default:
		return 0, 0, 0
	}
}

// SameColor returns true if `p` and `o` have the same color model
// and the same relevant components.
func (p Pen) SameColor(o Pen) bool {
	if p.Model != o.Model {
		return false
	}
	switch p.Model {
	case Gray:
		return p.Gray == o.Gray
	case RGB:
		return p.RGB == o.RGB
	case CMYK:
		return p.CMYK == o.CMYK
	}
	return true
}

// Equal compares the color and the font settings of the pens.
func (p Pen) Equal(o Pen) bool {
	return p.SameColor(o) &&
		p.Font == o.Font && p.Size == o.Size && p.LineSkip == o.LineSkip &&
		p.LineWidth == o.LineWidth && p.Cap == o.Cap && p.Join == o.Join
}

// Color returns the pen color as an opaque image color.
func (p Pen) Color() color.Color {
	if p.Model == CMYK {
		return color.CMYK{
			C: uint8(clamp(p.CMYK[0])*255 + 0.5), M: uint8(clamp(p.CMYK[1])*255 + 0.5),
			Y: uint8(clamp(p.CMYK[2])*255 + 0.5), K: uint8(clamp(p.CMYK[3])*255 + 0.5),
		}
	}
	r, g, b := p.rgb()
	return color.NRGBA{R: uint8(clamp(r)*255 + 0.5), G: uint8(clamp(g)*255 + 0.5), B: uint8(clamp(b)*255 + 0.5), A: 0xff}
}
