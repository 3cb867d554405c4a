// Package cinecanvas reads and writes CineCanvas XML, the DCP subtitle
// format, against the ASS document model.
package cinecanvas

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/dcptools/cinecanvas/internal/ass"
	"github.com/dcptools/cinecanvas/internal/vfr"
)

// PlaceholderSubtitleID is written when no UUID source is wired in.
const PlaceholderSubtitleID = "urn:uuid:00000000-0000-0000-0000-000000000000"

// ParseError is a failure to load or interpret a CineCanvas file after
// the codec was selected for reading.
type ParseError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cinecanvas: parse %s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("cinecanvas: parse %s: %s", e.Path, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError is a serialization or I/O failure on export.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cinecanvas: write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Codec is the CineCanvas XML subtitle format.
type Codec struct {
	// NewSubtitleID supplies SubtitleID values for written documents.
	// When nil, a fixed placeholder urn is used; hosts should wire an
	// RFC 4122 generator.
	NewSubtitleID func() string
}

func New() *Codec {
	return &Codec{}
}

func (c *Codec) Name() string { return "CineCanvas XML" }

func (c *Codec) ReadWildcards() []string { return []string{"xml"} }

func (c *Codec) WriteWildcards() []string { return []string{"xml"} }

// CanRead reports whether path is a CineCanvas file: extension xml and a
// DCSubtitle root element. It never returns an error; unreadable or
// foreign XML files simply decline selection.
func (c *Codec) CanRead(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".xml") {
		return false
	}

	xdoc := etree.NewDocument()
	if err := xdoc.ReadFromFile(path); err != nil {
		return false
	}
	root := xdoc.Root()
	return root != nil && root.Tag == "DCSubtitle"
}

// CanWrite reports whether the document can be exported. The format has
// no capability gating; lossy conversions are reported through
// Settings.Validate instead.
func (c *Codec) CanWrite(doc *ass.Document) bool { return true }

// Read loads a CineCanvas file into a fresh ASS document with a single
// synthesized "CineCanvas" style.
func (c *Codec) Read(path string, fps vfr.Framerate) (*ass.Document, error) {
	xdoc := etree.NewDocument()
	if err := xdoc.ReadFromFile(path); err != nil {
		return nil, &ParseError{Path: path, Msg: "failed to load CineCanvas XML file", Err: err}
	}

	doc, err := readDocument(xdoc)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: err.Error()}
	}
	return doc, nil
}

// Write exports the document to path with settings derived from the
// output filename and frame rate, like an unattended host would.
func (c *Codec) Write(doc *ass.Document, path string, fps vfr.Framerate) error {
	settings := NewSettings(path, fps)
	return c.WriteWithSettings(doc, path, settings)
}

// WriteWithSettings exports the document using explicit settings. The
// frame rate used for quantization is the settings' chosen rate. The
// source document is never mutated; normalization runs on a copy of the
// event list and the file is produced by one final serialize.
func (c *Codec) WriteWithSettings(doc *ass.Document, path string, settings Settings) error {
	subtitleID := PlaceholderSubtitleID
	if c.NewSubtitleID != nil {
		subtitleID = c.NewSubtitleID()
	}

	xdoc := buildDocument(doc, settings, settings.Framerate(), subtitleID)
	if err := xdoc.WriteToFile(path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
