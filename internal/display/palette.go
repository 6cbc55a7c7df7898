package display

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tarediiran-industries.com/tfl-status/internal/status"
)

// Color is a configured color name resolved for both the terminal and HTML.
type Color struct {
	Name string
	Attr color.Attribute
	CSS  string
}

var knownColors = map[string]Color{
	"green":   {Name: "green", Attr: color.FgGreen, CSS: "green"},
	"yellow":  {Name: "yellow", Attr: color.FgYellow, CSS: "gold"},
	"gold":    {Name: "gold", Attr: color.FgYellow, CSS: "gold"},
	"red":     {Name: "red", Attr: color.FgRed, CSS: "red"},
	"orange":  {Name: "orange", Attr: color.FgHiRed, CSS: "orange"},
	"grey":    {Name: "grey", Attr: color.FgHiBlack, CSS: "grey"},
	"gray":    {Name: "gray", Attr: color.FgHiBlack, CSS: "grey"},
	"blue":    {Name: "blue", Attr: color.FgBlue, CSS: "royalblue"},
	"cyan":    {Name: "cyan", Attr: color.FgCyan, CSS: "darkcyan"},
	"magenta": {Name: "magenta", Attr: color.FgMagenta, CSS: "magenta"},
	"white":   {Name: "white", Attr: color.FgWhite, CSS: "white"},
}

func ParseColor(name string) (Color, error) {
	c, ok := knownColors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

// Palette maps each display category to its color.
type Palette map[status.Category]Color

func DefaultPalette() Palette {
	return Palette{
		status.GoodService:    knownColors["green"],
		status.MinorDelay:     knownColors["yellow"],
		status.MajorDelay:     knownColors["red"],
		status.LineClosed:     knownColors["grey"],
		status.SpecialService: knownColors["blue"],
	}
}

// NewPalette resolves color names keyed by category name ("good_service" ...).
// Categories missing from names keep their default.
func NewPalette(names map[string]string) (Palette, error) {
	palette := DefaultPalette()
	for _, category := range status.Categories {
		name, ok := names[category.String()]
		if !ok || name == "" {
			continue
		}
		c, err := ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", category, err)
		}
		palette[category] = c
	}
	return palette, nil
}

func (palette Palette) For(category status.Category) Color {
	if c, ok := palette[category]; ok {
		return c
	}
	return knownColors["white"]
}
