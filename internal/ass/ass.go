package ass

import (
	"time"
)

// style or override color with alpha in ASS convention (0 = opaque, 255 = transparent)
type Color struct {
	R, G, B, A uint8
}

// single style definition from the [V4+ Styles] section
type Style struct {
	Name         string
	Font         string
	FontSize     int
	Bold         bool
	Italic       bool
	Primary      Color
	Outline      Color
	OutlineWidth float64
	Alignment    int
	MarginL      int
	MarginR      int
	MarginV      int
}

// single Dialogue or Comment line from the [Events] section; Text keeps
// override tag blocks and \N separators verbatim
type Event struct {
	Start   time.Duration
	End     time.Duration
	Style   string
	Text    string
	Comment bool
}

// in-memory ASS document: script info, styles and events
type Document struct {
	infoKeys []string
	info     map[string]string
	Styles   []*Style
	Events   []*Event
}

func NewDocument() *Document {
	return &Document{info: make(map[string]string)}
}

// NewDefaultStyle returns the style a fresh document starts with.
func NewDefaultStyle() *Style {
	return &Style{
		Name:         "Default",
		Font:         "Arial",
		FontSize:     42,
		Primary:      Color{R: 255, G: 255, B: 255},
		Outline:      Color{},
		OutlineWidth: 2,
		Alignment:    2,
		MarginL:      10,
		MarginR:      10,
		MarginV:      10,
	}
}

// NewDefaultEvent returns an empty five second dialogue line.
func NewDefaultEvent() *Event {
	return &Event{End: 5 * time.Second, Style: "Default"}
}

// LoadDefault resets the document to the minimal valid ASS structure:
// standard script info and a single "Default" style, no events.
func (d *Document) LoadDefault() {
	d.infoKeys = nil
	d.info = make(map[string]string)
	d.SetScriptInfo("ScriptType", "v4.00+")
	d.SetScriptInfo("Collisions", "Normal")
	d.SetScriptInfo("PlayDepth", "0")
	d.Styles = []*Style{NewDefaultStyle()}
	d.Events = nil
}

// SetScriptInfo sets a [Script Info] key, preserving first-seen key order.
func (d *Document) SetScriptInfo(key, value string) {
	if d.info == nil {
		d.info = make(map[string]string)
	}
	if _, ok := d.info[key]; !ok {
		d.infoKeys = append(d.infoKeys, key)
	}
	d.info[key] = value
}

// ScriptInfo returns a [Script Info] value, or "" when unset.
func (d *Document) ScriptInfo(key string) string {
	return d.info[key]
}

// ScriptInfoKeys returns the info keys in insertion order.
func (d *Document) ScriptInfoKeys() []string {
	keys := make([]string, len(d.infoKeys))
	copy(keys, d.infoKeys)
	return keys
}

// StyleByName returns the named style, or nil.
func (d *Document) StyleByName(name string) *Style {
	for _, s := range d.Styles {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// RemoveStyle erases every style with the given name.
func (d *Document) RemoveStyle(name string) {
	kept := d.Styles[:0]
	for _, s := range d.Styles {
		if s.Name != name {
			kept = append(kept, s)
		}
	}
	d.Styles = kept
}

// CloneEvents deep-copies an event slice so normalization passes can
// rewrite timing and text without touching the source document.
func CloneEvents(events []*Event) []*Event {
	out := make([]*Event, len(events))
	for i, e := range events {
		c := *e
		out[i] = &c
	}
	return out
}
