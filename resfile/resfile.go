// Package resfile implements reading and writing of xmlres resource files.
//
// A resource file is a flat list of string entries under a <strings> root:
//
//	<strings>
//	    <string key="Greeting" comment="shown on startup">Hello</string>
//	</strings>
//
// The key attribute is required; comment is optional; the element text is
// the value and may be empty. Entries keep document order, with an index
// by key for fast lookup.
package resfile

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ---------------------------------------------------------------------------
// Data model
// ---------------------------------------------------------------------------

// Entry represents a single <string> element.
type Entry struct {
	// Key is the entry identifier (attribute key="…"), unique per file.
	Key string
	// Comment is the optional comment attribute. Empty means absent; the
	// attribute is not written back for empty comments.
	Comment string
	// Text is the element's text content. May be empty.
	Text string
}

// File represents a parsed resource file.
type File struct {
	// Entries in document order.
	Entries []*Entry
	// byKey maps entry key to index in Entries.
	byKey map[string]int
}

// NewFile returns an empty resource file.
func NewFile() *File {
	return &File{byKey: make(map[string]int)}
}

// MissingKeyError reports a <string> element without the required key
// attribute. Index is the zero-based position of the offending element in
// document order.
type MissingKeyError struct {
	Index int
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("string element #%d has no key attribute", e.Index+1)
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a resource file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse parses resource file data. A <string> element without a key
// attribute fails the whole parse with a *MissingKeyError.
func Parse(data []byte) (*File, error) {
	f := NewFile()

	dec := xml.NewDecoder(strings.NewReader(string(data)))
	inRoot := false
	rootName := ""
	elemIdx := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			// The first element is the root; its name is not validated,
			// the only structural requirement is the key attribute below.
			if !inRoot {
				inRoot = true
				rootName = t.Name.Local
				continue
			}

			if t.Name.Local != entryElement {
				// Unknown element, skip entirely.
				dec.Skip()
				continue
			}

			e, err := parseEntry(dec, t)
			if err != nil {
				return nil, err
			}
			if e.Key == "" {
				return nil, &MissingKeyError{Index: elemIdx}
			}
			f.append(e)
			elemIdx++

		case xml.EndElement:
			if t.Name.Local == rootName {
				inRoot = false
			}
		}
	}

	return f, nil
}

// parseEntry reads a <string> element already opened.
func parseEntry(dec *xml.Decoder, elem xml.StartElement) (*Entry, error) {
	e := &Entry{}
	for _, attr := range elem.Attr {
		switch attr.Name.Local {
		case keyAttribute:
			e.Key = attr.Value
		case commentAttribute:
			e.Comment = attr.Value
		}
	}

	var text strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading <%s key=%q>: %w", entryElement, e.Key, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.WriteString(string(t))
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	e.Text = text.String()
	return e, nil
}

// append adds an entry and registers it in the key index.
func (f *File) append(e *Entry) {
	f.byKey[e.Key] = len(f.Entries)
	f.Entries = append(f.Entries, e)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Get returns the entry for a key, or nil if not present.
func (f *File) Get(key string) *Entry {
	idx, ok := f.byKey[key]
	if !ok {
		return nil
	}
	return f.Entries[idx]
}

// Upsert returns the entry for a key, appending a new empty entry when the
// key is not present yet. Existing entries keep their document position;
// new keys go to the end.
func (f *File) Upsert(key string) *Entry {
	if e := f.Get(key); e != nil {
		return e
	}
	e := &Entry{Key: key}
	f.append(e)
	return e
}

// Keys returns all entry keys in document order.
func (f *File) Keys() []string {
	keys := make([]string, 0, len(f.Entries))
	for _, e := range f.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Len returns the number of entries.
func (f *File) Len() int { return len(f.Entries) }

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

const (
	rootElement      = "strings"
	entryElement     = "string"
	keyAttribute     = "key"
	commentAttribute = "comment"
)

// Marshal produces the resource file XML, one <string> line per entry in
// document order.
func (f *File) Marshal() []byte {
	var b strings.Builder
	b.WriteString("<" + rootElement + ">\n")
	for _, e := range f.Entries {
		b.WriteString("  <" + entryElement + " " + keyAttribute + "=\"")
		b.WriteString(escapeAttr(e.Key))
		b.WriteString("\"")
		if e.Comment != "" {
			b.WriteString(" " + commentAttribute + "=\"")
			b.WriteString(escapeAttr(e.Comment))
			b.WriteString("\"")
		}
		b.WriteString(">")
		b.WriteString(escapeText(e.Text))
		b.WriteString("</" + entryElement + ">\n")
	}
	b.WriteString("</" + rootElement + ">\n")
	return []byte(b.String())
}

// WriteFile writes the resource file to disk, creating parent directories
// as needed.
func (f *File) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, f.Marshal(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// escapeAttr escapes a string for use inside a double-quoted XML attribute.
func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

// escapeText escapes a string for use as XML element text.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
