// File: confstore/scan.go
package confstore

import (
	"fmt"
	"reflect"

	"confstore/value"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the current configuration map into target, which must be a
// non-nil pointer to a struct or map. Field mapping uses the "config"
// struct tag; string values convert weakly into the target's field types,
// including time.Duration and comma-separated slices.
func (s *Store) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	s.mu.Lock()
	snapshot := make(map[string]any, len(s.entries))
	for key, v := range s.entries {
		snapshot[key] = value.ToGo(v)
	}
	s.mu.Unlock()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(snapshot); err != nil {
		return fmt.Errorf("failed to scan configuration into %T: %w", target, err)
	}
	return nil
}
