package cinecanvas

import (
	"github.com/dcptools/cinecanvas/internal/ass"
)

// FontProps is the effective typography of one line: the base style
// overlaid with override-tag edits. Colors carry ASS alpha.
type FontProps struct {
	Name         string
	Size         int
	Bold         bool
	Italic       bool
	Primary      ass.Color
	Outline      ass.Color
	OutlineWidth float64
}

// DefaultFontProps is the typography used when no style is available:
// white 42pt Arial with a black border.
func DefaultFontProps() FontProps {
	return FontProps{
		Name:         "Arial",
		Size:         42,
		Primary:      ass.Color{R: 255, G: 255, B: 255},
		Outline:      ass.Color{},
		OutlineWidth: 2,
	}
}

// EffectiveFontProps merges a base style with the override tags found in
// text. Bold and italic are not overlaid here: they vary per segment and
// are resolved by the writer through ParseStyledSegments.
func EffectiveFontProps(text string, style *ass.Style) FontProps {
	props := DefaultFontProps()

	if style != nil {
		props.Name = style.Font
		props.Size = style.FontSize
		props.Bold = style.Bold
		props.Italic = style.Italic
		props.Primary = style.Primary
		props.Outline = style.Outline
		props.OutlineWidth = style.OutlineWidth
	}

	if name, ok := scanFontName(text); ok {
		props.Name = name
	}
	if size, ok := scanFontSize(text); ok {
		props.Size = size
	}
	if c, ok := scanBGRColor(primaryColorTag, text); ok {
		c.A = props.Primary.A
		props.Primary = c
	}
	if c, ok := scanBGRColor(outlineColorTag, text); ok {
		c.A = props.Outline.A
		props.Outline = c
	}
	if a, ok := scanPrimaryAlpha(text); ok {
		props.Primary.A = a
	}

	return props
}
