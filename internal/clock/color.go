package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultColor fills segments when a clock has no color.
const DefaultColor = "#b22222"

var namedColors = map[string]string{
	"aqua":      "#00ffff",
	"black":     "#000000",
	"blue":      "#0000ff",
	"brown":     "#a52a2a",
	"crimson":   "#dc143c",
	"cyan":      "#00ffff",
	"firebrick": "#b22222",
	"fuchsia":   "#ff00ff",
	"gold":      "#ffd700",
	"gray":      "#808080",
	"green":     "#008000",
	"grey":      "#808080",
	"indigo":    "#4b0082",
	"lime":      "#00ff00",
	"magenta":   "#ff00ff",
	"maroon":    "#800000",
	"navy":      "#000080",
	"olive":     "#808000",
	"orange":    "#ffa500",
	"pink":      "#ffc0cb",
	"purple":    "#800080",
	"red":       "#ff0000",
	"silver":    "#c0c0c0",
	"teal":      "#008080",
	"violet":    "#ee82ee",
	"white":     "#ffffff",
	"yellow":    "#ffff00",
}

// ParseColor normalizes an html color name, #rgb or #rrggbb to #rrggbb.
func ParseColor(value string) (string, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if hex, ok := namedColors[value]; ok {
		return hex, true
	}
	if !strings.HasPrefix(value, "#") {
		return "", false
	}
	digits := value[1:]
	if _, err := strconv.ParseUint(digits, 16, 32); err != nil {
		return "", false
	}
	switch len(digits) {
	case 3:
		return fmt.Sprintf("#%c%c%c%c%c%c", digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]), true
	case 6:
		return value, true
	default:
		return "", false
	}
}

// Fill returns the clock's fill color as #rrggbb.
func (c ProgressClock) Fill() string {
	if hex, ok := ParseColor(c.Color); ok {
		return hex
	}
	return DefaultColor
}
