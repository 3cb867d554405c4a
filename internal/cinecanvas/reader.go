package cinecanvas

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/dcptools/cinecanvas/internal/ass"
)

// parseFontElement reads the typography attributes of a <Font> element.
// Missing or malformed attributes take their documented defaults.
func parseFontElement(el *etree.Element) FontProps {
	props := DefaultFontProps()
	if el == nil {
		return props
	}

	if size, err := strconv.Atoi(el.SelectAttrValue("Size", "42")); err == nil {
		props.Size = size
	}
	props.Bold = strings.EqualFold(el.SelectAttrValue("Weight", "normal"), "bold")
	props.Italic = strings.EqualFold(el.SelectAttrValue("Italic", "no"), "yes")
	props.Primary = ParseColor(el.SelectAttrValue("Color", "FFFFFFFF"))
	if name := el.SelectAttrValue("Script", ""); name != "" {
		props.Name = name
	}

	switch strings.ToLower(el.SelectAttrValue("Effect", "none")) {
	case "border":
		props.OutlineWidth = 2
		props.Outline = ParseColor(el.SelectAttrValue("EffectColor", "FF000000"))
	default:
		// "shadow" and unknown effects have no ASS outline analog
		props.OutlineWidth = 0
	}

	return props
}

// elementText collects the visible text of an element in document order,
// descending into inline children such as mixed-run <Font> elements.
func elementText(el *etree.Element) string {
	var sb strings.Builder
	for _, tok := range el.Child {
		switch c := tok.(type) {
		case *etree.CharData:
			sb.WriteString(c.Data)
		case *etree.Element:
			sb.WriteString(elementText(c))
		}
	}
	return sb.String()
}

type textLine struct {
	vpos    float64
	content string
	valign  string
	halign  string
}

func collectTextLines(container *etree.Element) []textLine {
	var lines []textLine
	for _, textEl := range container.FindElements(".//Text") {
		vpos := 10.0
		if v, err := strconv.ParseFloat(textEl.SelectAttrValue("VPosition", "10.0"), 64); err == nil {
			vpos = v
		}
		content := elementText(textEl)
		if strings.TrimSpace(content) == "" {
			continue
		}
		lines = append(lines, textLine{
			vpos:    vpos,
			content: content,
			valign:  textEl.SelectAttrValue("VAlign", "bottom"),
			halign:  textEl.SelectAttrValue("HAlign", "center"),
		})
	}
	return lines
}

// AlignmentToASS maps CineCanvas VAlign/HAlign values onto an ASS numpad
// alignment code.
func AlignmentToASS(vAlign, hAlign string) int {
	base := 2
	switch vAlign {
	case "top":
		base = 8
	case "center":
		base = 5
	}

	switch hAlign {
	case "left":
		return base - 1
	case "right":
		return base + 1
	default:
		return base
	}
}

// readDocument converts a loaded DCSubtitle tree into an ASS document with
// a single synthesized "CineCanvas" style.
func readDocument(xdoc *etree.Document) (*ass.Document, error) {
	root := xdoc.Root()
	if root == nil || root.Tag != "DCSubtitle" {
		return nil, fmt.Errorf("missing DCSubtitle root element")
	}

	target := ass.NewDocument()
	target.LoadDefault()

	var containerFont *etree.Element
	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "MovieTitle":
			if title := strings.TrimSpace(child.Text()); title != "" {
				target.SetScriptInfo("Title", title)
			}
		case "Language":
			if lang := strings.TrimSpace(child.Text()); lang != "" {
				target.SetScriptInfo("Language", lang)
			}
		case "Font":
			if containerFont == nil {
				containerFont = child
			}
		}
	}

	containerProps := parseFontElement(containerFont)

	target.RemoveStyle("Default")
	target.Styles = append(target.Styles, &ass.Style{
		Name:         "CineCanvas",
		Font:         containerProps.Name,
		FontSize:     containerProps.Size,
		Bold:         containerProps.Bold,
		Italic:       containerProps.Italic,
		Primary:      containerProps.Primary,
		Outline:      containerProps.Outline,
		OutlineWidth: containerProps.OutlineWidth,
		Alignment:    2,
		MarginL:      10,
		MarginR:      10,
		MarginV:      10,
	})

	for _, fontEl := range root.ChildElements() {
		if fontEl.Tag != "Font" {
			continue
		}

		for _, subEl := range fontEl.ChildElements() {
			if subEl.Tag != "Subtitle" {
				continue
			}

			timeIn := ParseTime(subEl.SelectAttrValue("TimeIn", "00:00:00:000"))
			timeOut := ParseTime(subEl.SelectAttrValue("TimeOut", "00:00:05:000"))

			fadeUp, _ := strconv.Atoi(subEl.SelectAttrValue("FadeUpTime", "0"))
			fadeDown, _ := strconv.Atoi(subEl.SelectAttrValue("FadeDownTime", "0"))

			// Text elements live under a lone inline <Font> when present;
			// with several per-line fonts (or none) the <Subtitle> itself
			// is the container and Text descendants are collected from it.
			var inlineFonts []*etree.Element
			for _, c := range subEl.ChildElements() {
				if c.Tag == "Font" {
					inlineFonts = append(inlineFonts, c)
				}
			}
			textContainer := subEl
			if len(inlineFonts) == 1 {
				textContainer = inlineFonts[0]
			}

			lines := collectTextLines(textContainer)
			if len(lines) == 0 && textContainer != subEl {
				lines = collectTextLines(subEl)
			}

			// higher VPosition = higher on screen, so descending order
			// restores top-to-bottom reading order
			sort.SliceStable(lines, func(i, j int) bool {
				return lines[i].vpos > lines[j].vpos
			})

			contents := make([]string, len(lines))
			for i, l := range lines {
				contents[i] = l.content
			}
			combined := strings.Join(contents, `\N`)
			if combined == "" {
				continue
			}

			if fadeUp > 0 || fadeDown > 0 {
				combined = fmt.Sprintf(`{\fad(%d,%d)}%s`, fadeUp, fadeDown, combined)
			}

			target.Events = append(target.Events, &ass.Event{
				Start: timeIn,
				End:   timeOut,
				Style: "CineCanvas",
				Text:  combined,
			})
		}
	}

	// the editor model requires at least one event
	if len(target.Events) == 0 {
		target.Events = append(target.Events, ass.NewDefaultEvent())
	}

	return target, nil
}
