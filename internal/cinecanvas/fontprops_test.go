package cinecanvas

import (
	"testing"

	"github.com/dcptools/cinecanvas/internal/ass"
)

func TestEffectiveFontPropsNoStyle(t *testing.T) {
	props := EffectiveFontProps("Hello", nil)
	want := DefaultFontProps()
	if props != want {
		t.Errorf("got %+v, want defaults %+v", props, want)
	}
}

func TestEffectiveFontPropsFromStyle(t *testing.T) {
	style := &ass.Style{
		Name:         "Title",
		Font:         "Georgia",
		FontSize:     60,
		Bold:         true,
		Italic:       true,
		Primary:      ass.Color{R: 200, G: 100, B: 50},
		Outline:      ass.Color{R: 1, G: 2, B: 3},
		OutlineWidth: 3,
	}

	props := EffectiveFontProps("no tags here", style)

	if props.Name != "Georgia" || props.Size != 60 {
		t.Errorf("font: %s %d", props.Name, props.Size)
	}
	if !props.Bold || !props.Italic {
		t.Errorf("weight lost: %+v", props)
	}
	if props.Primary != style.Primary || props.Outline != style.Outline {
		t.Errorf("colors lost: %+v", props)
	}
	if props.OutlineWidth != 3 {
		t.Errorf("outline width: %v", props.OutlineWidth)
	}
}

func TestEffectiveFontPropsOverrides(t *testing.T) {
	style := &ass.Style{Name: "Default", Font: "Arial", FontSize: 42, Primary: ass.Color{R: 255, G: 255, B: 255}}

	text := `{\fnHelvetica\fs30\1c&H0000FF&\3c&H00FF00&\1a&H40&}styled`
	props := EffectiveFontProps(text, style)

	if props.Name != "Helvetica" {
		t.Errorf("font name: %q", props.Name)
	}
	if props.Size != 30 {
		t.Errorf("size: %d", props.Size)
	}
	// \1c&H0000FF& is BGR: red
	if props.Primary.R != 255 || props.Primary.G != 0 || props.Primary.B != 0 {
		t.Errorf("primary: %+v", props.Primary)
	}
	if props.Primary.A != 0x40 {
		t.Errorf("alpha: %#x", props.Primary.A)
	}
	// \3c&H00FF00& is BGR: green
	if props.Outline != (ass.Color{G: 255}) {
		t.Errorf("outline: %+v", props.Outline)
	}
}

func TestEffectiveFontPropsIgnoresBoldItalic(t *testing.T) {
	style := &ass.Style{Name: "Default", Font: "Arial", FontSize: 42}

	props := EffectiveFontProps(`{\b1\i1}loud`, style)

	// bold and italic vary per segment and are resolved by the writer
	if props.Bold || props.Italic {
		t.Errorf("bold/italic must not be overlaid: %+v", props)
	}
}
