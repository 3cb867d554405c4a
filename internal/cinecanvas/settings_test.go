package cinecanvas

import (
	"strings"
	"testing"

	"github.com/dcptools/cinecanvas/internal/ass"
	"github.com/dcptools/cinecanvas/internal/vfr"
)

func TestNewSettingsDefaults(t *testing.T) {
	s := NewSettings("/movies/My Film.xml", vfr.Framerate{})

	if s.MovieTitle != "My Film" {
		t.Errorf("title should come from the filename stem, got %q", s.MovieTitle)
	}
	if s.FrameRate != 24 {
		t.Errorf("unloaded fps should default to 24, got %v", s.FrameRate)
	}
	if s.ReelNumber != 1 || s.LanguageCode != "en" {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.IncludeFontReference || s.FontURI != "" {
		t.Errorf("font reference should default off: %+v", s)
	}
}

func TestNewSettingsClosestFrameRate(t *testing.T) {
	tests := []struct {
		fps  vfr.Framerate
		want float64
	}{
		{vfr.New(24, 1), 24},
		{vfr.New(24000, 1001), 23.976},
		{vfr.New(25, 1), 25},
		{vfr.New(30000, 1001), 29.97},
		{vfr.New(60000, 1001), 59.94},
		{vfr.New(120, 1), 24}, // unsupported: default
	}
	for _, tt := range tests {
		s := NewSettings("out.xml", tt.fps)
		if s.FrameRate != tt.want {
			t.Errorf("fps %v: got %v, want %v", tt.fps.FPS(), s.FrameRate, tt.want)
		}
	}
}

func TestSettingsFramerate(t *testing.T) {
	s := Settings{FrameRate: 23.976}
	fps := s.Framerate()
	if got := fps.TimeAtFrame(24); got != 1001 {
		t.Errorf("23.976 must be the exact 24000/1001 rational, TimeAtFrame(24) = %d", got)
	}

	s = Settings{FrameRate: 0}
	if s.Framerate().FPS() != 24 {
		t.Errorf("unknown rate must fall back to 24, got %v", s.Framerate().FPS())
	}
}

func TestValidateFrameRate(t *testing.T) {
	if got := ValidateFrameRate(25); got != 25 {
		t.Errorf("25 is supported, got %v", got)
	}
	if got := ValidateFrameRate(26); got != 24 {
		t.Errorf("26 must fall back to 24, got %v", got)
	}
}

func TestValidateMovieTitle(t *testing.T) {
	if got := ValidateMovieTitle("  My Film  "); got != "My Film" {
		t.Errorf("got %q", got)
	}
	if got := ValidateMovieTitle("   "); got != "Untitled" {
		t.Errorf("got %q", got)
	}
	if got := ValidateMovieTitle(""); got != "Untitled" {
		t.Errorf("got %q", got)
	}
}

func TestValidateReelNumber(t *testing.T) {
	if got := ValidateReelNumber(3); got != 3 {
		t.Errorf("got %d", got)
	}
	if got := ValidateReelNumber(0); got != 1 {
		t.Errorf("got %d", got)
	}
	if got := ValidateReelNumber(-5); got != 1 {
		t.Errorf("got %d", got)
	}
}

func TestValidateLanguageCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"EN", "en"},
		{"de", "de"},
		{"deu", "deu"},
		{"xyzzy", "en"},
		{"zz", "zz"}, // unknown but well-shaped
		{"a1", "en"},
		{"", "en"},
	}
	for _, tt := range tests {
		if got := ValidateLanguageCode(tt.in); got != tt.want {
			t.Errorf("ValidateLanguageCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateFontSize(t *testing.T) {
	if got := ValidateFontSize(36); got != 36 {
		t.Errorf("got %d", got)
	}
	if got := ValidateFontSize(9); got != 42 {
		t.Errorf("got %d", got)
	}
	if got := ValidateFontSize(73); got != 42 {
		t.Errorf("got %d", got)
	}
}

func TestValidateFadeDuration(t *testing.T) {
	if got := ValidateFadeDuration(0); got != 0 {
		t.Errorf("got %d", got)
	}
	if got := ValidateFadeDuration(-1); got != 20 {
		t.Errorf("got %d", got)
	}
}

func TestValidateWarnings(t *testing.T) {
	doc := ass.NewDocument()
	doc.LoadDefault()
	doc.Events = append(doc.Events,
		&ass.Event{Text: `{\move(0,0,10,10)}slide`},
		&ass.Event{Text: `{\blur2}soft`},
		&ass.Event{Text: `{\p1}m 0 0 l 10 10{\p0}`},
		&ass.Event{Text: strings.Repeat("x", 100)},
	)

	s := Settings{IncludeFontReference: true}
	warnings := s.Validate(doc)

	for _, want := range []string{
		"Animations",
		"Complex effects",
		"Vector drawings",
		"very long",
		"no font file selected",
		"XYZ color space",
	} {
		if !strings.Contains(warnings, want) {
			t.Errorf("missing %q in warnings:\n%s", want, warnings)
		}
	}
}

func TestValidateAlwaysNotesColorSpace(t *testing.T) {
	doc := ass.NewDocument()
	doc.LoadDefault()
	doc.Events = append(doc.Events, &ass.Event{Text: "fine"})

	warnings := Settings{}.Validate(doc)
	if !strings.Contains(warnings, "XYZ color space") {
		t.Errorf("color space note must always be present:\n%s", warnings)
	}
	if strings.Contains(warnings, "Animations") {
		t.Errorf("unexpected animation warning:\n%s", warnings)
	}
}

func TestValidateCountsOnlyDialogue(t *testing.T) {
	doc := ass.NewDocument()
	doc.LoadDefault()
	for i := 0; i < 501; i++ {
		doc.Events = append(doc.Events, &ass.Event{Text: "x", Comment: true})
	}

	warnings := Settings{}.Validate(doc)
	if strings.Contains(warnings, "501") {
		t.Errorf("comments must not count toward the reel limit:\n%s", warnings)
	}
}
