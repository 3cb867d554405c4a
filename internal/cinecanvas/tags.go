package cinecanvas

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dcptools/cinecanvas/internal/ass"
)

// StyledSegment is a maximal run of visible text sharing one bold/italic
// state within a line.
type StyledSegment struct {
	Text   string
	Bold   bool
	Italic bool
}

// The override-tag language is deliberately not parsed as a whole; each
// supported command gets its own scanner and the last occurrence wins.
var (
	fontNameTag     = regexp.MustCompile(`\\fn([^\\}]+)`)
	fontSizeTag     = regexp.MustCompile(`\\fs(\d+)`)
	primaryColorTag = regexp.MustCompile(`\\1?c&H([0-9A-Fa-f]{6})&?`)
	outlineColorTag = regexp.MustCompile(`\\3c&H([0-9A-Fa-f]{6})&?`)
	primaryAlphaTag = regexp.MustCompile(`\\1?a&H([0-9A-Fa-f]{2})&?`)
	fadeTag         = regexp.MustCompile(`\\fade?\(\s*(\d+)\s*(?:,\s*(\d+))?`)
)

func lastSubmatch(re *regexp.Regexp, text string) (string, bool) {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	return matches[len(matches)-1][1], true
}

// scanFontName extracts the last \fn override, if any.
func scanFontName(text string) (string, bool) {
	return lastSubmatch(fontNameTag, text)
}

// scanFontSize extracts the last \fs override, if any.
func scanFontSize(text string) (int, bool) {
	m, ok := lastSubmatch(fontSizeTag, text)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// scanBGRColor extracts the last color override matched by re. ASS colors
// are &HBBGGRR&; the result is converted to RGB.
func scanBGRColor(re *regexp.Regexp, text string) (ass.Color, bool) {
	m, ok := lastSubmatch(re, text)
	if !ok {
		return ass.Color{}, false
	}
	n, err := strconv.ParseUint(m, 16, 32)
	if err != nil {
		return ass.Color{}, false
	}
	return ass.Color{
		B: uint8(n >> 16),
		G: uint8(n >> 8),
		R: uint8(n),
	}, true
}

// scanPrimaryAlpha extracts the last \1a override as an ASS alpha byte.
func scanPrimaryAlpha(text string) (uint8, bool) {
	m, ok := lastSubmatch(primaryAlphaTag, text)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(m, 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n), true
}

// FadeTimes extracts fade-in and fade-out durations in milliseconds from
// the last \fad or \fade tag. A single-argument \fad applies to both.
// Lines without a fade tag fade for 0 ms.
func FadeTimes(text string) (fadeIn, fadeOut int) {
	matches := fadeTag.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, 0
	}
	m := matches[len(matches)-1]
	fadeIn, _ = strconv.Atoi(m[1])
	if m[2] == "" {
		return fadeIn, fadeIn
	}
	fadeOut, _ = strconv.Atoi(m[2])
	return fadeIn, fadeOut
}

// ParseStyledSegments splits an ASS line into styled segments. The walk
// starts from the style's bold/italic state and flips it on every \b0/\b1
// and \i0/\i1 inside {...} blocks; within one block the last toggle wins.
// Tag blocks never contribute visible text, and a '{' with no closing '}'
// is skipped as a single character. Empty segments are dropped.
func ParseStyledSegments(text string, defaultBold, defaultItalic bool) []StyledSegment {
	var segments []StyledSegment

	bold := defaultBold
	italic := defaultItalic
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			segments = append(segments, StyledSegment{Text: current.String(), Bold: bold, Italic: italic})
			current.Reset()
		}
	}

	i := 0
	for i < len(text) {
		if text[i] != '{' {
			current.WriteByte(text[i])
			i++
			continue
		}

		flush()

		end := strings.IndexByte(text[i:], '}')
		if end < 0 {
			i++
			continue
		}
		block := text[i+1 : i+end]

		for pos := 0; ; {
			rel := strings.Index(block[pos:], `\b`)
			if rel < 0 {
				break
			}
			pos += rel
			if pos+2 < len(block) {
				switch block[pos+2] {
				case '0':
					bold = false
				case '1':
					bold = true
				}
			}
			pos += 2
		}
		for pos := 0; ; {
			rel := strings.Index(block[pos:], `\i`)
			if rel < 0 {
				break
			}
			pos += rel
			if pos+2 < len(block) {
				switch block[pos+2] {
				case '0':
					italic = false
				case '1':
					italic = true
				}
			}
			pos += 2
		}

		i += end + 1
	}

	flush()
	return segments
}

// StripTags returns the visible text of an ASS line with tag blocks
// removed, preserving interior whitespace.
func StripTags(text string) string {
	var sb strings.Builder
	for _, seg := range ParseStyledSegments(text, false, false) {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}
