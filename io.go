// File: confstore/io.go
package confstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"confstore/value"
)

// versionKey is the reserved top-level field carrying the document version
// in versioned save files. It is metadata, never merged as a config key.
const versionKey = "version"

type codec struct {
	name   string
	encode func(*value.Map) ([]byte, error)
	decode func([]byte) (*value.Map, error)
}

var (
	jsonCodec = codec{
		name:   "json",
		encode: func(m *value.Map) ([]byte, error) { return value.EncodeJSON(m) },
		decode: value.DecodeJSONObject,
	}
	yamlCodec = codec{
		name:   "yaml",
		encode: func(m *value.Map) ([]byte, error) { return value.EncodeYAML(m) },
		decode: value.DecodeYAMLMapping,
	}
)

// codecFor dispatches on the file extension: .json selects the JSON codec,
// .yaml and .yml the YAML codec. Anything else is unsupported.
func codecFor(path string) (codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return jsonCodec, nil
	case ".yaml", ".yml":
		return yamlCodec, nil
	default:
		return codec{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// LoadFile loads the document at path with version DefaultVersion.
func (s *Store) LoadFile(path string) error {
	return s.LoadFileVersion(path, DefaultVersion)
}

// LoadFileVersion parses the whole document at path and merges every key
// into the store: same-named keys are overwritten, new keys added. The
// given version is recorded on the store; a top-level "version" field in
// the file is skipped as metadata. On any failure the store is left
// unchanged and the error is both logged and returned.
func (s *Store) LoadFileVersion(path, version string) error {
	doc, err := s.readDocument(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range doc.Keys() {
		if key == versionKey {
			continue
		}
		v, _ := doc.Get(key)
		s.entries[key] = v
	}
	s.version = version
	return nil
}

// SaveFile saves the full map to path with version DefaultVersion.
func (s *Store) SaveFile(path string) error {
	return s.SaveFileVersion(path, DefaultVersion)
}

// SaveFileVersion serializes the full current map plus a "version" field to
// the format selected by the path's extension, overwriting the file. The
// write is atomic: data goes to a temp file first and is renamed into
// place. The version is recorded on the store only once the file is on disk,
// so a failed save never claims a version that was not persisted.
func (s *Store) SaveFileVersion(path, version string) error {
	c, err := codecFor(path)
	if err != nil {
		s.logger.Warn("cannot save configuration", "path", path, "error", err)
		return err
	}

	doc := value.NewMap()
	doc.Set(versionKey, value.String(version))
	s.mu.Lock()
	for _, key := range s.sortedKeys() {
		doc.Set(key, value.Clone(s.entries[key]))
	}
	s.mu.Unlock()

	data, err := c.encode(doc)
	if err != nil {
		s.logger.Error("cannot encode configuration", "path", path, "format", c.name, "error", err)
		return err
	}
	if err := s.writeFile(path, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.version = version
	s.mu.Unlock()
	return nil
}

// LoadPartial loads only the given keys from the document at path: a key is
// merged when present in both the file and the requested set. No version
// handling applies.
func (s *Store) LoadPartial(path string, keys []string) error {
	doc, err := s.readDocument(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		if v, ok := doc.Get(key); ok {
			s.entries[key] = v
		}
	}
	return nil
}

// SavePartial writes only the given keys to path, in the format selected by
// the extension. Keys absent from the store are skipped; no version field
// is emitted.
func (s *Store) SavePartial(path string, keys []string) error {
	c, err := codecFor(path)
	if err != nil {
		s.logger.Warn("cannot save partial configuration", "path", path, "error", err)
		return err
	}

	doc := value.NewMap()
	s.mu.Lock()
	for _, key := range keys {
		if v, ok := s.entries[key]; ok {
			doc.Set(key, value.Clone(v))
		}
	}
	s.mu.Unlock()

	data, err := c.encode(doc)
	if err != nil {
		s.logger.Error("cannot encode partial configuration", "path", path, "format", c.name, "error", err)
		return err
	}
	return s.writeFile(path, data)
}

// Backup serializes the full map as JSON to path, regardless of extension.
// No version field is emitted.
func (s *Store) Backup(path string) error {
	doc := value.NewMap()
	s.mu.Lock()
	for _, key := range s.sortedKeys() {
		doc.Set(key, value.Clone(s.entries[key]))
	}
	s.mu.Unlock()

	data, err := value.EncodeJSON(doc)
	if err != nil {
		s.logger.Error("cannot encode backup", "path", path, "error", err)
		return err
	}
	return s.writeFile(path, data)
}

// readDocument opens, reads, and decodes a whole document without touching
// store state, so a failed load is a no-op for the caller's data.
func (s *Store) readDocument(path string) (*value.Map, error) {
	c, err := codecFor(path)
	if err != nil {
		s.logger.Warn("cannot load configuration", "path", path, "error", err)
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFileOpen, err)
		s.logger.Warn("cannot read configuration file", "path", path, "error", err)
		return nil, err
	}

	doc, err := c.decode(data)
	if err != nil {
		err = fmt.Errorf("%w: %q: %w", ErrParse, path, err)
		s.logger.Error("cannot parse configuration file", "path", path, "format", c.name, "error", err)
		return nil, err
	}
	return doc, nil
}

// writeFile writes data to path atomically: the bytes land in a temp file
// in the target directory, are synced, and the temp file is renamed over
// the destination. On failure the original file is left as it was.
func (s *Store) writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		err = fmt.Errorf("%w: %w", ErrFileOpen, err)
		s.logger.Warn("cannot create configuration directory", "dir", dir, "error", err)
		return err
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFileOpen, err)
		s.logger.Warn("cannot create temporary file", "dir", dir, "error", err)
		return err
	}

	tempPath := tempFile.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return s.writeFailed(path, fmt.Errorf("%w: write %q: %w", ErrFileOpen, tempPath, err))
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return s.writeFailed(path, fmt.Errorf("%w: sync %q: %w", ErrFileOpen, tempPath, err))
	}
	if err := tempFile.Close(); err != nil {
		return s.writeFailed(path, fmt.Errorf("%w: close %q: %w", ErrFileOpen, tempPath, err))
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return s.writeFailed(path, fmt.Errorf("%w: chmod %q: %w", ErrFileOpen, tempPath, err))
	}
	if err := os.Rename(tempPath, path); err != nil {
		return s.writeFailed(path, fmt.Errorf("%w: rename %q: %w", ErrFileOpen, tempPath, err))
	}
	renamed = true

	return nil
}

// writeFailed logs a write failure on the diagnostic channel and returns the
// already wrapped error.
func (s *Store) writeFailed(path string, err error) error {
	s.logger.Warn("cannot write configuration file", "path", path, "error", err)
	return err
}
