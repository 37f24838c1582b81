// File: confstore/render/render.go

// Package render displays a configuration document in one of six output
// formats: plain text, JSON, XML, YAML, HTML, or CSV. A Manager holds the
// currently selected format; the store does not own the selection.
package render

import (
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"confstore/value"
)

// Format selects an output representation.
type Format int

const (
	PlainText Format = iota
	JSON
	XML
	YAML
	HTML
	CSV
)

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case PlainText:
		return "Plain Text"
	case JSON:
		return "JSON"
	case XML:
		return "XML"
	case YAML:
		return "YAML"
	case HTML:
		return "HTML"
	case CSV:
		return "CSV"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat converts a display name back to a Format.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("render: unknown format %q", s)
}

// Formats lists every supported format.
func Formats() []Format {
	return []Format{PlainText, JSON, XML, YAML, HTML, CSV}
}

// Manager holds the current output format selection. The zero value is not
// usable; construct with NewManager. Safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	current Format
}

// NewManager creates a manager with PlainText selected.
func NewManager() *Manager {
	return &Manager{current: PlainText}
}

// SetFormat selects the current output format.
func (m *Manager) SetFormat(f Format) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = f
}

// Format returns the currently selected output format.
func (m *Manager) Format() Format {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Render writes doc to w in the manager's current format.
func (m *Manager) Render(w io.Writer, doc *value.Map) error {
	return Render(w, doc, m.Format())
}

// Render writes doc to w in the given format.
func Render(w io.Writer, doc *value.Map, f Format) error {
	switch f {
	case PlainText:
		return renderPlainText(w, doc)
	case JSON:
		data, err := value.EncodeJSON(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case XML:
		return renderXML(w, doc)
	case YAML:
		data, err := value.EncodeYAML(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case HTML:
		return renderHTML(w, doc)
	case CSV:
		return renderCSV(w, doc)
	default:
		return fmt.Errorf("render: unsupported format %s", f)
	}
}

func renderPlainText(w io.Writer, doc *value.Map) error {
	for _, key := range doc.Keys() {
		v, _ := doc.Get(key)
		if _, err := fmt.Fprintf(w, "%s: %s\n", key, value.CompactJSON(v)); err != nil {
			return err
		}
	}
	return nil
}

func renderXML(w io.Writer, doc *value.Map) error {
	var b strings.Builder
	b.WriteString("<config>\n")
	for _, key := range doc.Keys() {
		v, _ := doc.Get(key)
		writeXMLEntry(&b, key, v, 1)
	}
	b.WriteString("</config>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeXMLEntry(b *strings.Builder, key string, v value.Value, depth int) {
	indent := strings.Repeat("  ", depth)
	switch t := v.(type) {
	case *value.Map:
		fmt.Fprintf(b, "%s<entry key=%q>\n", indent, key)
		for _, child := range t.Keys() {
			cv, _ := t.Get(child)
			writeXMLEntry(b, child, cv, depth+1)
		}
		fmt.Fprintf(b, "%s</entry>\n", indent)
	case value.List:
		fmt.Fprintf(b, "%s<entry key=%q>\n", indent, key)
		for _, item := range t {
			fmt.Fprintf(b, "%s  <item>%s</item>\n", indent, html.EscapeString(value.CompactJSON(item)))
		}
		fmt.Fprintf(b, "%s</entry>\n", indent)
	default:
		fmt.Fprintf(b, "%s<entry key=%q>%s</entry>\n", indent, key, html.EscapeString(scalarText(v)))
	}
}

func renderHTML(w io.Writer, doc *value.Map) error {
	var b strings.Builder
	b.WriteString("<table>\n  <tr><th>Key</th><th>Value</th></tr>\n")
	for _, key := range doc.Keys() {
		v, _ := doc.Get(key)
		fmt.Fprintf(&b, "  <tr><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(key), html.EscapeString(value.CompactJSON(v)))
	}
	b.WriteString("</table>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func renderCSV(w io.Writer, doc *value.Map) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "value"}); err != nil {
		return err
	}
	for _, key := range doc.Keys() {
		v, _ := doc.Get(key)
		if err := cw.Write([]string{key, value.CompactJSON(v)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// scalarText renders a scalar without JSON quoting; containers fall back to
// compact JSON.
func scalarText(v value.Value) string {
	switch t := v.(type) {
	case value.String:
		return string(t)
	case nil, value.Null:
		return "null"
	default:
		return value.CompactJSON(t)
	}
}
