package ambient

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrBadColor is returned by ParseThemeColor for strings that are neither
// hex nor HSL shaped.
var ErrBadColor = errors.New("ambient: unrecognized color")

// FallbackColor is used for any theme token that fails to parse.
var FallbackColor = Color{R: 0.32, G: 0.15, B: 1.0, A: 1}

// Theme holds the three semantic color tokens of the hosting style system.
// Values are CSS-like strings: "#5227ff", "#abc", "262.1 83.3% 57.8%" or
// "hsl(262 83% 58%)". Hex alpha digits are accepted and ignored.
type Theme struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Accent    string `yaml:"accent"`
}

// DefaultTheme matches the dark theme tokens the backgrounds were designed for.
func DefaultTheme() Theme {
	return Theme{
		Primary:   "#5227ff",
		Secondary: "#ff9ffc",
		Accent:    "#b19eef",
	}
}

// Palette resolves the three tokens once, in primary, secondary, accent
// order. Unparseable tokens resolve to FallbackColor.
func (t Theme) Palette() []Color {
	return []Color{
		ResolveThemeColor(t.Primary),
		ResolveThemeColor(t.Secondary),
		ResolveThemeColor(t.Accent),
	}
}

var numberPattern = regexp.MustCompile(`[\d.]+`)

// ParseThemeColor parses a hex or HSL-shaped color string.
func ParseThemeColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(dropHexAlpha(s))
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", ErrBadColor, s, err)
		}
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
	}

	nums := numberPattern.FindAllString(s, 3)
	if len(nums) < 3 {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	var hsl [3]float64
	for i, n := range nums {
		v, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", ErrBadColor, s, err)
		}
		hsl[i] = v
	}
	c := colorful.Hsl(hsl[0], hsl[1]/100, hsl[2]/100)
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// dropHexAlpha trims the alpha digits of "#rrggbbaa" and "#rgba". Theme
// colors are always drawn opaque and the particle opacity applies on top.
func dropHexAlpha(s string) string {
	switch len(s) {
	case 9:
		return s[:7]
	case 5:
		return s[:4]
	}
	return s
}

// ResolveThemeColor is ParseThemeColor with the fallback applied.
func ResolveThemeColor(s string) Color {
	c, err := ParseThemeColor(s)
	if err != nil {
		return FallbackColor
	}
	return c
}
