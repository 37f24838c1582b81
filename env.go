// File: confstore/env.go
package confstore

import (
	"os"
	"strings"

	"confstore/value"
)

// LoadFromEnv merges the process environment into the store under a single
// lock acquisition, in two phases. First every key already present in the
// store is re-resolved against the environment: a same-named variable
// overwrites the stored value with its string and is recorded in the
// override set. Then every NAME=VALUE entry of the full environment becomes
// a string-valued key, including names the store has never seen.
//
// Environment values always win, so a pre-existing key sharing a name with
// an environment variable is silently coerced to a string even if it
// previously held a different type. No listeners fire.
func (s *Store) LoadFromEnv() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Override pass: existing keys first, so the override set records them
	// even when the import pass would write the same value anyway.
	for key := range s.entries {
		if v, ok := os.LookupEnv(key); ok {
			s.entries[key] = value.String(v)
			s.envOverrides[key] = v
		}
	}

	// Import pass: the whole environment, no prefix filtering.
	for _, pair := range os.Environ() {
		name, v, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			continue
		}
		s.entries[name] = value.String(v)
	}

	s.logger.Debug("environment merged into configuration", "overrides", len(s.envOverrides))
}
