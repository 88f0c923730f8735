package types

import (
	"encoding/json"
	"fmt"
	"math"

	pkgerrors "github.com/pkg/errors"
)

const (
	MinTemperature = 1000
	MaxTemperature = 25000
	MinBrightness  = 0.1
	MaxBrightness  = 1.0
	MinGamma       = 0.1
	MaxGamma       = 10.0

	DefaultTemperature      = 6500
	DefaultTemperatureDay   = 6500
	DefaultTemperatureNight = 4500
	DefaultBrightness       = 1.0
	DefaultGamma            = 1.0
)

// Thresholds above which two color settings are considered very different,
// i.e. a jump between them should be faded.
const (
	VeryDifferentTemperature = 25
	VeryDifferentBrightness  = 0.1
	VeryDifferentGamma       = 0.1
)

// Temperature is a color temperature in Kelvin.
type Temperature struct {
	k int
}

// NewTemperature validates k.
func NewTemperature(k int) (Temperature, error) {
	if k < MinTemperature || k > MaxTemperature {
		return Temperature{}, pkgerrors.Wrapf(ErrOutOfRange, "temperature %dK not in [%d, %d]", k, MinTemperature, MaxTemperature)
	}
	return Temperature{k: k}, nil
}

// Kelvin returns the temperature in Kelvin. The zero value reports the
// default temperature.
func (t Temperature) Kelvin() int {
	if t.k == 0 {
		return DefaultTemperature
	}
	return t.k
}

func (t Temperature) String() string {
	return fmt.Sprintf("%dK", t.Kelvin())
}

// Brightness is a screen brightness multiplier.
type Brightness struct {
	v float64
	// set distinguishes the zero value from a constructed one
	set bool
}

// NewBrightness validates v.
func NewBrightness(v float64) (Brightness, error) {
	if math.IsNaN(v) || v < MinBrightness || v > MaxBrightness {
		return Brightness{}, pkgerrors.Wrapf(ErrOutOfRange, "brightness %g not in [%g, %g]", v, MinBrightness, MaxBrightness)
	}
	return Brightness{v: v, set: true}, nil
}

// Value returns the brightness. The zero value reports the default.
func (b Brightness) Value() float64 {
	if !b.set {
		return DefaultBrightness
	}
	return b.v
}

func (b Brightness) String() string {
	return fmt.Sprintf("%.0f%%", b.Value()*100)
}

// Gamma holds per channel gamma correction.
type Gamma struct {
	rgb [3]float64
	set bool
}

// NewGamma applies the same value to all three channels.
func NewGamma(v float64) (Gamma, error) {
	return NewGammaRGB(v, v, v)
}

// NewGammaRGB validates each channel independently.
func NewGammaRGB(r, g, b float64) (Gamma, error) {
	for i, v := range [3]float64{r, g, b} {
		if math.IsNaN(v) || v < MinGamma || v > MaxGamma {
			return Gamma{}, pkgerrors.Wrapf(ErrOutOfRange, "gamma channel %d value %g not in [%g, %g]", i, v, MinGamma, MaxGamma)
		}
	}
	return Gamma{rgb: [3]float64{r, g, b}, set: true}, nil
}

// RGB returns the three channels. The zero value reports the default.
func (g Gamma) RGB() [3]float64 {
	if !g.set {
		return [3]float64{DefaultGamma, DefaultGamma, DefaultGamma}
	}
	return g.rgb
}

func (g Gamma) String() string {
	v := g.RGB()
	return fmt.Sprintf("%.2f, %.2f, %.2f", v[0], v[1], v[2])
}

// ColorSettings is what gets applied to the display.
type ColorSettings struct {
	Temperature Temperature
	Gamma       Gamma
	Brightness  Brightness
}

// DefaultColorSettings returns neutral settings, i.e. what the display looks
// like without any adjustment.
func DefaultColorSettings() ColorSettings {
	return ColorSettings{
		Temperature: Temperature{k: DefaultTemperature},
		Gamma:       Gamma{rgb: [3]float64{DefaultGamma, DefaultGamma, DefaultGamma}, set: true},
		Brightness:  Brightness{v: DefaultBrightness, set: true},
	}
}

func DefaultDay() ColorSettings {
	cs := DefaultColorSettings()
	cs.Temperature = Temperature{k: DefaultTemperatureDay}
	return cs
}

func DefaultNight() ColorSettings {
	cs := DefaultColorSettings()
	cs.Temperature = Temperature{k: DefaultTemperatureNight}
	return cs
}

// Interpolate blends c (alpha = 0) with other (alpha = 1) component-wise.
func (c ColorSettings) Interpolate(other ColorSettings, alpha Alpha) ColorSettings {
	a := alpha.Value()
	lerp := func(x, y float64) float64 { return (1-a)*x + a*y }

	ga, gb := c.Gamma.RGB(), other.Gamma.RGB()
	var rgb [3]float64
	for i := range rgb {
		rgb[i] = lerp(ga[i], gb[i])
	}

	return ColorSettings{
		Temperature: Temperature{k: int(math.Round(lerp(float64(c.Temperature.Kelvin()), float64(other.Temperature.Kelvin()))))},
		Gamma:       Gamma{rgb: rgb, set: true},
		Brightness:  Brightness{v: lerp(c.Brightness.Value(), other.Brightness.Value()), set: true},
	}
}

// IsVeryDifferent reports whether moving from c to other is a visible jump.
func (c ColorSettings) IsVeryDifferent(other ColorSettings) bool {
	dt := c.Temperature.Kelvin() - other.Temperature.Kelvin()
	if dt < 0 {
		dt = -dt
	}
	if dt > VeryDifferentTemperature {
		return true
	}
	if math.Abs(c.Brightness.Value()-other.Brightness.Value()) > VeryDifferentBrightness {
		return true
	}
	ga, gb := c.Gamma.RGB(), other.Gamma.RGB()
	for i := range ga {
		if math.Abs(ga[i]-gb[i]) > VeryDifferentGamma {
			return true
		}
	}
	return false
}

// round2 keeps two decimal places.
func round2(v float64) float64 {
	return math.Round(v * 100)
}

// Equal compares temperatures exactly and the rest up to two decimals.
func (c ColorSettings) Equal(other ColorSettings) bool {
	if c.Temperature.Kelvin() != other.Temperature.Kelvin() {
		return false
	}
	if round2(c.Brightness.Value()) != round2(other.Brightness.Value()) {
		return false
	}
	ga, gb := c.Gamma.RGB(), other.Gamma.RGB()
	for i := range ga {
		if round2(ga[i]) != round2(gb[i]) {
			return false
		}
	}
	return true
}

func (c ColorSettings) String() string {
	return fmt.Sprintf("temperature: %s, gamma: %s, brightness: %s", c.Temperature, c.Gamma, c.Brightness)
}

type colorSettingsJSON struct {
	Temperature int        `json:"temperature"`
	Gamma       [3]float64 `json:"gamma"`
	Brightness  float64    `json:"brightness"`
}

func (c ColorSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(colorSettingsJSON{
		Temperature: c.Temperature.Kelvin(),
		Gamma:       c.Gamma.RGB(),
		Brightness:  c.Brightness.Value(),
	})
}

// UnmarshalJSON validates every field.
func (c *ColorSettings) UnmarshalJSON(b []byte) error {
	var raw colorSettingsJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t, err := NewTemperature(raw.Temperature)
	if err != nil {
		return err
	}
	g, err := NewGammaRGB(raw.Gamma[0], raw.Gamma[1], raw.Gamma[2])
	if err != nil {
		return err
	}
	br, err := NewBrightness(raw.Brightness)
	if err != nil {
		return err
	}
	*c = ColorSettings{Temperature: t, Gamma: g, Brightness: br}
	return nil
}
