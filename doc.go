// File: confstore/doc.go

// Package confstore provides a thread-safe, in-process configuration store
// that unifies structured files (JSON, YAML), environment variables, and
// programmatic key/value assignment behind one API, with partial
// persistence, versioned snapshots, and synchronous change notification.
//
// Quick Start:
//
//	registry := confstore.NewRegistry()
//	cfg := registry.Instance("default")
//
//	cfg.Set("name", value.String("example"))
//	cfg.AddChangeListener(func(key string, v value.Value) {
//	    log.Printf("changed: %s = %s", key, value.CompactJSON(v))
//	})
//
//	if err := cfg.SaveFileVersion("config.yaml", "1.0.0"); err != nil {
//	    log.Fatal(err)
//	}
//
// Persistence dispatches on the file extension: ".json" selects the JSON
// codec, ".yaml"/".yml" the YAML codec, and anything else fails with
// ErrUnsupportedFormat. JSON and YAML round-trip losslessly through the
// common value model in the value package; partial variants restrict a
// load or save to a caller-supplied key subset, and Backup always writes
// JSON.
//
// Thread Safety:
// Each store serializes all reads and writes behind a single mutex, so a
// reader never observes a half-applied mutation. Change listeners are
// invoked after the mutation's lock is released, in registration order;
// they may safely call back into the store, but may observe state newer
// than the value they were handed.
//
// Environment Precedence:
// LoadFromEnv makes environment values win unconditionally. A stored key
// that shares its name with an environment variable is replaced by that
// variable's string, even if the key previously held a number or a nested
// map. This is deliberate and worth keeping in mind when typed values and
// environment variables share names.
package confstore
