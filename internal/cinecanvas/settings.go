package cinecanvas

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dcptools/cinecanvas/internal/ass"
	"github.com/dcptools/cinecanvas/internal/vfr"
)

// SupportedFrameRates lists the discrete DCP frame rates an export may
// target.
var SupportedFrameRates = []float64{23.976, 24, 25, 29.97, 30, 48, 50, 59.94, 60}

const (
	DefaultFrameRate    = 24.0
	DefaultMovieTitle   = "Untitled"
	DefaultReelNumber   = 1
	DefaultLanguageCode = "en"
	DefaultFontSize     = 42
	DefaultFadeDuration = 20

	MinReelNumber   = 1
	MinFontSize     = 10
	MaxFontSize     = 72
	MinFadeDuration = 0
)

// Common ISO 639-1 and 639-2 codes for cinema. Not exhaustive; unknown
// 2-3 letter alphabetic codes are accepted too.
var validLanguageCodes = map[string]bool{
	"en": true, "fr": true, "de": true, "es": true, "it": true,
	"pt": true, "ru": true, "ja": true, "zh": true, "ko": true,
	"ar": true, "he": true, "hi": true, "nl": true, "pl": true,
	"sv": true, "da": true, "no": true, "fi": true, "cs": true,
	"el": true, "tr": true, "th": true, "vi": true, "id": true,
	"ms": true, "tl": true, "uk": true, "ro": true, "hu": true,

	"eng": true, "fra": true, "deu": true, "spa": true, "ita": true,
	"por": true, "rus": true, "jpn": true, "zho": true, "kor": true,
	"ara": true, "heb": true, "hin": true, "nld": true, "pol": true,
	"swe": true, "dan": true, "nor": true, "fin": true, "ces": true,
	"ell": true, "tur": true, "tha": true, "vie": true, "ind": true,
	"msa": true, "tgl": true, "ukr": true, "ron": true, "hun": true,

	// bibliographic variants
	"ger": true, "fre": true, "chi": true, "cze": true, "dut": true,
	"gre": true, "per": true, "rum": true, "slo": true, "wel": true,
}

var alphaLanguageCode = regexp.MustCompile(`^[a-z]{2,3}$`)

// Settings is the export configuration for one write.
type Settings struct {
	FrameRate            float64
	MovieTitle           string
	ReelNumber           int
	LanguageCode         string
	IncludeFontReference bool
	FontURI              string
}

// NewSettings derives defaults for an export: the movie title comes from
// the output filename stem, and the frame rate from the closest supported
// rate to the video's (0.1 fps tolerance), defaulting to 24.
func NewSettings(outputPath string, videoFPS vfr.Framerate) Settings {
	base := filepath.Base(outputPath)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	return Settings{
		FrameRate:    closestFrameRate(videoFPS),
		MovieTitle:   ValidateMovieTitle(title),
		ReelNumber:   DefaultReelNumber,
		LanguageCode: DefaultLanguageCode,
	}
}

func closestFrameRate(fps vfr.Framerate) float64 {
	if !fps.IsLoaded() {
		return DefaultFrameRate
	}
	rate := fps.FPS()
	best := DefaultFrameRate
	bestDiff := 0.1
	for _, r := range SupportedFrameRates {
		if d := math.Abs(rate - r); d < bestDiff {
			best, bestDiff = r, d
		}
	}
	return best
}

// Framerate returns the exact rational rate for the chosen frame rate.
// NTSC-family rates use their 1001-denominator forms.
func (s Settings) Framerate() vfr.Framerate {
	switch s.FrameRate {
	case 23.976:
		return vfr.New(24000, 1001)
	case 24:
		return vfr.New(24, 1)
	case 25:
		return vfr.New(25, 1)
	case 29.97:
		return vfr.New(30000, 1001)
	case 30:
		return vfr.New(30, 1)
	case 48:
		return vfr.New(48, 1)
	case 50:
		return vfr.New(50, 1)
	case 59.94:
		return vfr.New(60000, 1001)
	case 60:
		return vfr.New(60, 1)
	default:
		return vfr.New(24, 1)
	}
}

// ValidateFrameRate accepts only the supported discrete rates, falling
// back to 24.
func ValidateFrameRate(rate float64) float64 {
	for _, r := range SupportedFrameRates {
		if rate == r {
			return rate
		}
	}
	return DefaultFrameRate
}

// ValidateMovieTitle trims surrounding whitespace; an empty title becomes
// "Untitled".
func ValidateMovieTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return DefaultMovieTitle
	}
	return trimmed
}

// ValidateReelNumber clamps reel numbers below 1 to 1.
func ValidateReelNumber(reel int) int {
	if reel >= MinReelNumber {
		return reel
	}
	return DefaultReelNumber
}

// ValidateLanguageCode lowercases the code and accepts it when it is a
// known ISO 639 code or any 2-3 letter alphabetic string; anything else
// becomes "en".
func ValidateLanguageCode(code string) string {
	lower := strings.ToLower(code)
	if IsValidLanguageCode(lower) {
		return lower
	}
	return DefaultLanguageCode
}

// IsValidLanguageCode reports whether code has the shape of an ISO 639
// language code.
func IsValidLanguageCode(code string) bool {
	if validLanguageCodes[code] {
		return true
	}
	return alphaLanguageCode.MatchString(code)
}

// ValidateFontSize keeps sizes within 10..72, falling back to 42.
func ValidateFontSize(size int) int {
	if size >= MinFontSize && size <= MaxFontSize {
		return size
	}
	return DefaultFontSize
}

// ValidateFadeDuration keeps durations non-negative, falling back to 20.
func ValidateFadeDuration(duration int) int {
	if duration >= MinFadeDuration {
		return duration
	}
	return DefaultFadeDuration
}

// Validate scans the document for ASS features a DCP cannot carry and
// returns the warnings joined with newlines. Warnings never block an
// export.
func (s Settings) Validate(doc *ass.Document) string {
	if doc == nil {
		return ""
	}

	var hasAnimations, hasComplexEffects, hasDrawings bool
	subtitleCount := 0
	maxLineLength := 0

	for _, line := range doc.Events {
		if line.Comment {
			continue
		}
		subtitleCount++

		text := line.Text
		if strings.Contains(text, `\t`) || strings.Contains(text, `\move`) {
			hasAnimations = true
		}
		if strings.Contains(text, `\blur`) || strings.Contains(text, `\be`) ||
			strings.Contains(text, `\fscx`) || strings.Contains(text, `\fscy`) {
			hasComplexEffects = true
		}
		if strings.Contains(text, `\p`) {
			hasDrawings = true
		}
		if len(text) > maxLineLength {
			maxLineLength = len(text)
		}
	}

	var warnings []string
	if subtitleCount > 500 {
		warnings = append(warnings, fmt.Sprintf(
			"Warning: File contains %d subtitles. DCP typically limits to ~500 per reel.", subtitleCount))
	}
	if hasAnimations {
		warnings = append(warnings, `Warning: Animations (\t, \move) will be lost in export.`)
	}
	if hasComplexEffects {
		warnings = append(warnings, `Warning: Complex effects (\blur, \be, scaling) will be lost in export.`)
	}
	if hasDrawings {
		warnings = append(warnings, `Warning: Vector drawings (\p) are not supported and will be lost.`)
	}
	if maxLineLength > 80 {
		warnings = append(warnings, "Warning: Some lines are very long. Cinema subtitles typically use 40-50 characters per line.")
	}
	if s.IncludeFontReference && s.FontURI == "" {
		warnings = append(warnings, "Warning: Font reference enabled but no font file selected.")
	}
	warnings = append(warnings, "Note: DCP uses XYZ color space. Color appearance may differ from ASS preview.")

	return strings.Join(warnings, "\n")
}
