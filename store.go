// File: confstore/store.go
package confstore

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"confstore/value"
)

// DefaultVersion is the version recorded on a store that has never been
// loaded or saved with an explicit version.
const DefaultVersion = "1.0.0"

// Listener receives change notifications from Set. Callbacks run after the
// store's lock has been released, in registration order; see
// AddChangeListener for the delivery contract.
type Listener func(key string, v value.Value)

// Validator is a per-key predicate checked by Set and Validate.
type Validator func(v value.Value) bool

// Store is one named, mutex-guarded key/value mapping plus its listeners,
// per-key validators, and version string. All methods are safe for
// concurrent use; operations on different stores never contend.
type Store struct {
	mu           sync.Mutex
	entries      map[string]value.Value
	version      string
	envOverrides map[string]string
	listeners    []Listener
	validators   map[string]Validator
	logger       *slog.Logger
}

// StoreOption customizes a Store at construction time.
type StoreOption func(*Store)

// WithLogger sets the diagnostic logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVersion sets the initial version string.
func WithVersion(version string) StoreOption {
	return func(s *Store) {
		s.version = version
	}
}

// WithValidator registers a per-key validator; see RegisterValidator.
func WithValidator(key string, fn Validator) StoreOption {
	return func(s *Store) {
		s.validators[key] = fn
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entries:      make(map[string]value.Value),
		version:      DefaultVersion,
		envOverrides: make(map[string]string),
		validators:   make(map[string]Validator),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the value stored under key. An absent key is an
// error, never a default.
func (s *Store) Get(key string) (value.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return value.Clone(v), nil
}

// Set stores v under key, overwriting any existing value. Empty keys are
// rejected. If a validator is registered for the key, the value must
// satisfy it. Every registered listener is then invoked once with
// (key, value) in registration order; delivery happens after the store
// lock is released, so a concurrent Set may be applied before an earlier
// notification is delivered.
func (s *Store) Set(key string, v value.Value) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}

	s.mu.Lock()
	if fn, ok := s.validators[key]; ok && !fn(v) {
		s.mu.Unlock()
		return fmt.Errorf("%w: key %q rejected value %s", ErrValidationFailed, key, value.CompactJSON(v))
	}
	s.entries[key] = value.Clone(v)
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	if len(listeners) > 0 {
		s.notify(listeners, key, value.Clone(v))
	}
	return nil
}

// notify invokes each listener in order. A panicking listener is recovered
// and logged; the remaining listeners still run.
func (s *Store) notify(listeners []Listener, key string, v value.Value) {
	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("change listener panicked", "key", key, "panic", r)
				}
			}()
			fn(key, v)
		}()
	}
}

// GetAll returns a deep copy of the full key/value mapping. Mutating the
// result does not affect the store.
func (s *Store) GetAll() map[string]value.Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]value.Value, len(s.entries))
	for key, v := range s.entries {
		out[key] = value.Clone(v)
	}
	return out
}

// Remove deletes key from the store. Removing an absent key is an error.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	delete(s.entries, key)
	return nil
}

// Exists reports whether key is present.
func (s *Store) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[key]
	return ok
}

// Clear empties the key/value map. Listeners, validators, and the version
// string are untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]value.Value)
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Keys returns all stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedKeys()
}

// sortedKeys must be called with s.mu held.
func (s *Store) sortedKeys() []string {
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks each key in validators: the key must exist and its value
// must satisfy the predicate. The first violation is reported with the key
// and, for a predicate failure, the offending value. Keys are checked in
// sorted order so the reported violation is deterministic.
func (s *Store) Validate(validators map[string]Validator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(validators))
	for key := range validators {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v, ok := s.entries[key]
		if !ok {
			return fmt.Errorf("%w: key not found: %q", ErrValidationFailed, key)
		}
		if !validators[key](v) {
			return fmt.Errorf("%w: key %q with value %s", ErrValidationFailed, key, value.CompactJSON(v))
		}
	}
	return nil
}

// Inspect returns one value per requested key, in input order. A missing
// key yields an empty map placeholder rather than an error. The store lock
// is acquired per key, so a concurrent mutation may be observed between
// successive elements of one call; Inspect is not an atomic snapshot.
func (s *Store) Inspect(keys []string) []value.Value {
	out := make([]value.Value, 0, len(keys))
	for _, key := range keys {
		v, err := s.Get(key)
		if err != nil {
			v = value.NewMap()
		}
		out = append(out, v)
	}
	return out
}

// UpdateMultiple applies Set for each pair. Iteration order over the input
// is unspecified; each individual Set fires listeners and respects per-key
// validators. Failures do not stop the remaining updates and are joined
// into the returned error.
func (s *Store) UpdateMultiple(entries map[string]value.Value) error {
	var errs []error
	for key, v := range entries {
		if err := s.Set(key, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AddChangeListener appends a callback invoked once per Set, in
// registration order, with the exact key and value passed to Set. There is
// no removal. Callbacks run outside the store's lock, so they may call back
// into the store; a panicking callback is isolated and logged, and later
// callbacks still run. Because delivery happens after the lock is released,
// a listener may observe store state newer than the value it was handed.
func (s *Store) AddChangeListener(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, fn)
}

// RegisterValidator installs a predicate that Set checks for the given key.
// Registering again for the same key replaces the previous predicate.
func (s *Store) RegisterValidator(key string, fn Validator) {
	if key == "" || fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.validators[key] = fn
}

// Version returns the version string recorded by the most recent load or
// save, or DefaultVersion.
func (s *Store) Version() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.version
}

// EnvOverrides returns a copy of the keys whose last known value came from
// the environment, mapped to that environment string.
func (s *Store) EnvOverrides() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.envOverrides))
	for key, v := range s.envOverrides {
		out[key] = v
	}
	return out
}
