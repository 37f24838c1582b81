// File: confstore/output.go
package confstore

import (
	"io"

	"confstore/render"
	"confstore/value"
)

// Document returns the store's contents as an ordered map with keys sorted,
// suitable for rendering or external serialization. The result is a deep
// copy.
func (s *Store) Document() *value.Map {
	doc := value.NewMap()
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range s.sortedKeys() {
		doc.Set(key, value.Clone(s.entries[key]))
	}
	return doc
}

// OutputConfig writes the full configuration to w in the manager's
// currently selected format.
func (s *Store) OutputConfig(w io.Writer, m *render.Manager) error {
	return m.Render(w, s.Document())
}
