package ass

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	styleFormatLine = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"
	eventFormatLine = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"
)

// Parse reads an .ass file into a Document. Unknown sections and
// unrecognized lines are skipped; an event line with fewer fields than
// its Format line is an error.
func Parse(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ASS file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	doc := NewDocument()

	var section string
	var styleColumns, eventColumns []string

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]"))
			continue
		}

		switch section {
		case "script info":
			key, value, ok := strings.Cut(trimmed, ":")
			if ok {
				doc.SetScriptInfo(strings.TrimSpace(key), strings.TrimSpace(value))
			}
		case "v4+ styles", "v4 styles", "v4+styles":
			if cols, ok := formatColumns(trimmed); ok {
				styleColumns = cols
				continue
			}
			if rest, ok := strings.CutPrefix(trimmed, "Style:"); ok && styleColumns != nil {
				doc.Styles = append(doc.Styles, parseStyleLine(rest, styleColumns))
			}
		case "events":
			if cols, ok := formatColumns(trimmed); ok {
				eventColumns = cols
				continue
			}
			comment := false
			rest, ok := strings.CutPrefix(trimmed, "Dialogue:")
			if !ok {
				rest, ok = strings.CutPrefix(trimmed, "Comment:")
				comment = true
			}
			if !ok || eventColumns == nil {
				continue
			}
			ev, err := parseEventLine(rest, eventColumns)
			if err != nil {
				return nil, fmt.Errorf("failed to parse event at line %d: %w", lineNum, err)
			}
			ev.Comment = comment
			doc.Events = append(doc.Events, ev)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASS file: %w", err)
	}

	if len(doc.Styles) == 0 {
		doc.Styles = append(doc.Styles, NewDefaultStyle())
	}

	return doc, nil
}

func formatColumns(line string) ([]string, bool) {
	rest, ok := strings.CutPrefix(line, "Format:")
	if !ok {
		return nil, false
	}
	cols := strings.Split(rest, ",")
	for i, c := range cols {
		cols[i] = strings.TrimSpace(c)
	}
	return cols, true
}

// splitFields splits a style or event line into at most numFields fields,
// so a Text field keeps any commas it contains.
func splitFields(content string, numFields int) []string {
	if numFields <= 0 {
		return nil
	}

	parts := make([]string, 0, numFields)
	remaining := content

	for i := 0; i < numFields-1; i++ {
		idx := strings.Index(remaining, ",")
		if idx == -1 {
			parts = append(parts, remaining)
			remaining = ""
			break
		}
		parts = append(parts, remaining[:idx])
		remaining = remaining[idx+1:]
	}
	parts = append(parts, remaining)

	return parts
}

func parseStyleLine(content string, columns []string) *Style {
	fields := splitFields(strings.TrimSpace(content), len(columns))
	style := NewDefaultStyle()

	for i, col := range columns {
		if i >= len(fields) {
			break
		}
		value := strings.TrimSpace(fields[i])
		switch strings.ToLower(col) {
		case "name":
			style.Name = value
		case "fontname":
			style.Font = value
		case "fontsize":
			if n, err := strconv.Atoi(value); err == nil {
				style.FontSize = n
			}
		case "primarycolour":
			style.Primary = parseStyleColor(value)
		case "outlinecolour":
			style.Outline = parseStyleColor(value)
		case "bold":
			style.Bold = value != "0"
		case "italic":
			style.Italic = value != "0"
		case "outline":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				style.OutlineWidth = f
			}
		case "alignment":
			if n, err := strconv.Atoi(value); err == nil {
				style.Alignment = n
			}
		case "marginl":
			if n, err := strconv.Atoi(value); err == nil {
				style.MarginL = n
			}
		case "marginr":
			if n, err := strconv.Atoi(value); err == nil {
				style.MarginR = n
			}
		case "marginv":
			if n, err := strconv.Atoi(value); err == nil {
				style.MarginV = n
			}
		}
	}

	return style
}

func parseEventLine(content string, columns []string) (*Event, error) {
	fields := splitFields(strings.TrimSpace(content), len(columns))
	if len(fields) < len(columns) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(columns), len(fields))
	}

	ev := &Event{}
	for i, col := range columns {
		value := fields[i]
		switch strings.ToLower(col) {
		case "start":
			ev.Start = parseTimestamp(strings.TrimSpace(value))
		case "end":
			ev.End = parseTimestamp(strings.TrimSpace(value))
		case "style":
			ev.Style = strings.TrimSpace(value)
		case "text":
			ev.Text = value
		}
	}

	return ev, nil
}

// parseTimestamp reads H:MM:SS.CC, returning 0 on anything malformed.
func parseTimestamp(ts string) time.Duration {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}

	secParts := strings.Split(parts[2], ".")
	if len(secParts) != 2 {
		return 0
	}
	seconds, err := strconv.Atoi(secParts[0])
	if err != nil {
		return 0
	}
	centis, err := strconv.Atoi(secParts[1])
	if err != nil {
		return 0
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(centis)*10*time.Millisecond
}

// parseStyleColor reads &HAABBGGRR& or &HBBGGRR& style colors.
func parseStyleColor(s string) Color {
	s = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(s, "&H"), "&h"), "&")
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{R: 255, G: 255, B: 255}
	}
	return Color{
		A: uint8(n >> 24),
		B: uint8(n >> 16),
		G: uint8(n >> 8),
		R: uint8(n),
	}
}

func formatStyleColor(c Color) string {
	return fmt.Sprintf("&H%02X%02X%02X%02X", c.A, c.B, c.G, c.R)
}

func formatTimestamp(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

func boolField(b bool) string {
	if b {
		return "-1"
	}
	return "0"
}

// Write serializes the document to an .ass file.
func (d *Document) Write(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ASS file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	w := bufio.NewWriter(file)

	fmt.Fprintln(w, "[Script Info]")
	for _, key := range d.infoKeys {
		fmt.Fprintf(w, "%s: %s\n", key, d.info[key])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[V4+ Styles]")
	fmt.Fprintln(w, styleFormatLine)
	for _, s := range d.Styles {
		fmt.Fprintf(w, "Style: %s,%s,%d,%s,&H000000FF,%s,&H00000000,%s,%s,0,0,100,100,0,0,1,%g,0,%d,%d,%d,%d,1\n",
			s.Name, s.Font, s.FontSize,
			formatStyleColor(s.Primary), formatStyleColor(s.Outline),
			boolField(s.Bold), boolField(s.Italic),
			s.OutlineWidth, s.Alignment, s.MarginL, s.MarginR, s.MarginV)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[Events]")
	fmt.Fprintln(w, eventFormatLine)
	for _, e := range d.Events {
		kind := "Dialogue"
		if e.Comment {
			kind = "Comment"
		}
		fmt.Fprintf(w, "%s: 0,%s,%s,%s,,0,0,0,,%s\n",
			kind, formatTimestamp(e.Start), formatTimestamp(e.End), e.Style, e.Text)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write ASS file: %w", err)
	}
	return nil
}
