package cinecanvas

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/dcptools/cinecanvas/internal/ass"
	"github.com/dcptools/cinecanvas/internal/vfr"
)

const (
	baseVPosition = 10.0
	lineSpacing   = 6.5
)

// normalizeEvents prepares a copy of the event list for export: sorted,
// comments dropped, overlaps recombined, identical neighbors merged.
// Override tags are NOT stripped here: the per-subtitle pass still needs
// \fad times and styling tags from the raw text.
func normalizeEvents(events []*ass.Event) []*ass.Event {
	evs := ass.CloneEvents(events)
	ass.SortEvents(evs)
	evs = ass.StripComments(evs)
	evs = ass.RecombineOverlaps(evs)
	evs = ass.MergeIdentical(evs)
	return evs
}

// writeHeader emits the DCSubtitle metadata children.
func writeHeader(root *etree.Element, settings Settings, subtitleID string) {
	root.CreateElement("SubtitleID").SetText(subtitleID)
	root.CreateElement("MovieTitle").SetText(settings.MovieTitle)
	root.CreateElement("ReelNumber").SetText(strconv.Itoa(settings.ReelNumber))
	root.CreateElement("Language").SetText(settings.LanguageCode)

	loadFont := root.CreateElement("LoadFont")
	loadFont.CreateAttr("Id", "Font1")
	uri := ""
	if settings.IncludeFontReference && settings.FontURI != "" {
		uri = filepath.Base(settings.FontURI)
	}
	loadFont.CreateAttr("URI", uri)
}

// writeContainerFont emits the top-level <Font> that carries the default
// style's typography.
func writeContainerFont(root *etree.Element, defaultStyle *ass.Style) *etree.Element {
	fontEl := root.CreateElement("Font")
	fontEl.CreateAttr("Id", "Font1")

	if defaultStyle != nil {
		fontEl.CreateAttr("Script", defaultStyle.Font)
		fontEl.CreateAttr("Size", strconv.Itoa(defaultStyle.FontSize))
		fontEl.CreateAttr("Weight", weightValue(defaultStyle.Bold))
		fontEl.CreateAttr("Italic", italicValue(defaultStyle.Italic))
		fontEl.CreateAttr("Color", FormatColor(opaque(defaultStyle.Primary)))
		if defaultStyle.OutlineWidth > 0 {
			fontEl.CreateAttr("Effect", "border")
			fontEl.CreateAttr("EffectColor", FormatColor(opaque(defaultStyle.Outline)))
		} else {
			fontEl.CreateAttr("Effect", "none")
			fontEl.CreateAttr("EffectColor", "FF000000")
		}
	} else {
		fontEl.CreateAttr("Script", "Arial")
		fontEl.CreateAttr("Size", "42")
		fontEl.CreateAttr("Weight", "normal")
		fontEl.CreateAttr("Italic", "no")
		fontEl.CreateAttr("Color", "FFFFFFFF")
		fontEl.CreateAttr("Effect", "border")
		fontEl.CreateAttr("EffectColor", "FF000000")
	}

	return fontEl
}

func weightValue(bold bool) string {
	if bold {
		return "bold"
	}
	return "normal"
}

func italicValue(italic bool) string {
	if italic {
		return "yes"
	}
	return "no"
}

// opaque strips the alpha from a style color; container and outline
// colors are always written fully opaque.
func opaque(c ass.Color) ass.Color {
	c.A = 0
	return c
}

// splitRawLines splits dialogue text on \N, falling back to \n when no
// \N is present. Override tags stay attached to their line.
func splitRawLines(text string) []string {
	if strings.Contains(text, `\N`) {
		return strings.Split(text, `\N`)
	}
	return strings.Split(text, `\n`)
}

func createTextAttrs(textEl *etree.Element, vpos float64) {
	textEl.CreateAttr("VAlign", "bottom")
	textEl.CreateAttr("HAlign", "center")
	textEl.CreateAttr("VPosition", strconv.FormatFloat(vpos, 'f', 1, 64))
	textEl.CreateAttr("HPosition", "0.0")
	textEl.CreateAttr("Direction", "horizontal")
}

// createLineFont emits the per-line <Font> under a <Subtitle>.
func createLineFont(subtitleEl *etree.Element, props FontProps, bold, italic bool) *etree.Element {
	fontEl := subtitleEl.CreateElement("Font")
	fontEl.CreateAttr("Script", props.Name)
	fontEl.CreateAttr("Size", strconv.Itoa(props.Size))
	fontEl.CreateAttr("Weight", weightValue(bold))
	fontEl.CreateAttr("Italic", italicValue(italic))
	fontEl.CreateAttr("Color", FormatColor(props.Primary))
	if props.OutlineWidth > 0 {
		fontEl.CreateAttr("Effect", "border")
		fontEl.CreateAttr("EffectColor", FormatColor(opaque(props.Outline)))
	} else {
		fontEl.CreateAttr("Effect", "none")
	}
	return fontEl
}

// writeSubtitle emits one <Subtitle> with per-line <Font>/<Text> children.
func writeSubtitle(fontEl *etree.Element, line *ass.Event, style *ass.Style, spotNumber int, fps vfr.Framerate) {
	props := EffectiveFontProps(line.Text, style)

	subtitleEl := fontEl.CreateElement("Subtitle")
	subtitleEl.CreateAttr("SpotNumber", strconv.Itoa(spotNumber))
	subtitleEl.CreateAttr("TimeIn", FormatTime(line.Start, fps))
	subtitleEl.CreateAttr("TimeOut", FormatTime(line.End, fps))

	fadeIn, fadeOut := FadeTimes(line.Text)
	subtitleEl.CreateAttr("FadeUpTime", strconv.Itoa(fadeIn))
	subtitleEl.CreateAttr("FadeDownTime", strconv.Itoa(fadeOut))

	defaultBold := false
	defaultItalic := false
	if style != nil {
		defaultBold = style.Bold
		defaultItalic = style.Italic
	}

	rawLines := splitRawLines(line.Text)

	nonEmpty := 0
	for _, raw := range rawLines {
		if strings.Trim(StripTags(raw), " \t") != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		nonEmpty = 1
	}

	validIndex := 0
	for _, raw := range rawLines {
		segments := ParseStyledSegments(raw, defaultBold, defaultItalic)

		var visible strings.Builder
		for _, seg := range segments {
			visible.WriteString(seg.Text)
		}
		lineText := strings.Trim(visible.String(), " \t")
		if lineText == "" {
			continue
		}

		// bottom line gets the base position, lines above step up
		vpos := baseVPosition + float64(nonEmpty-1-validIndex)*lineSpacing
		validIndex++

		uniform := true
		firstBold, firstItalic := defaultBold, defaultItalic
		if len(segments) > 0 {
			firstBold, firstItalic = segments[0].Bold, segments[0].Italic
		}
		for _, seg := range segments {
			if seg.Bold != firstBold || seg.Italic != firstItalic {
				uniform = false
				break
			}
		}

		if uniform {
			lineFont := createLineFont(subtitleEl, props, firstBold, firstItalic)
			textEl := lineFont.CreateElement("Text")
			createTextAttrs(textEl, vpos)
			textEl.SetText(lineText)
			continue
		}

		// mixed runs: neutral segments become plain character data,
		// styled segments inline <Font> children
		lineFont := createLineFont(subtitleEl, props, false, false)
		textEl := lineFont.CreateElement("Text")
		createTextAttrs(textEl, vpos)

		for _, seg := range segments {
			if seg.Text == "" {
				continue
			}
			if seg.Bold || seg.Italic {
				inline := textEl.CreateElement("Font")
				if seg.Bold {
					inline.CreateAttr("Weight", "bold")
				}
				if seg.Italic {
					inline.CreateAttr("Italic", "yes")
				}
				inline.SetText(seg.Text)
			} else {
				textEl.CreateText(seg.Text)
			}
		}
	}

	// entirely empty text still yields one placeholder line
	if validIndex == 0 {
		lineFont := createLineFont(subtitleEl, props, false, false)
		textEl := lineFont.CreateElement("Text")
		createTextAttrs(textEl, baseVPosition)
		textEl.SetText("")
	}
}

// buildDocument constructs the complete DCSubtitle tree for a document.
func buildDocument(src *ass.Document, settings Settings, fps vfr.Framerate, subtitleID string) *etree.Document {
	events := normalizeEvents(src.Events)

	styleMap := make(map[string]*ass.Style, len(src.Styles))
	for _, s := range src.Styles {
		styleMap[s.Name] = s
	}

	defaultStyle := styleMap["Default"]
	if defaultStyle == nil && len(src.Styles) > 0 {
		defaultStyle = src.Styles[0]
	}

	xdoc := etree.NewDocument()
	xdoc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := xdoc.CreateElement("DCSubtitle")
	root.CreateAttr("Version", "1.0")

	writeHeader(root, settings, subtitleID)
	containerFont := writeContainerFont(root, defaultStyle)

	spotNumber := 1
	for _, line := range events {
		if line.Comment {
			continue
		}
		style := styleMap[line.Style]
		if style == nil {
			style = defaultStyle
		}
		writeSubtitle(containerFont, line, style, spotNumber, fps)
		spotNumber++
	}

	return xdoc
}
