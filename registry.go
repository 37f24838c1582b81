// File: confstore/registry.go
package confstore

import (
	"fmt"
	"log/slog"
	"sync"

	"confstore/value"
)

// DefaultInstance is the name used when an instance name is empty.
const DefaultInstance = "default"

// Registry owns named store instances. An instance is created lazily on
// first reference to its name and lives for the registry's lifetime; the
// same *Store is returned on every subsequent lookup of that name. The
// registry's lock guards only its name table, never an individual store's
// data, so creating or fetching an instance cannot contend with store
// operations.
//
// There is no package-level registry: callers construct one and pass it to
// whoever needs name-keyed stores.
type Registry struct {
	mu        sync.Mutex
	stores    map[string]*Store
	logger    *slog.Logger
	storeOpts []StoreOption
}

// RegistryOption customizes a Registry at construction time.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the registry's diagnostic logger. Defaults to
// slog.Default().
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStoreOptions sets options applied to every store the registry creates.
func WithStoreOptions(opts ...StoreOption) RegistryOption {
	return func(r *Registry) {
		r.storeOpts = opts
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		stores: make(map[string]*Store),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Instance returns the store registered under name, creating it if absent.
// An empty name selects DefaultInstance.
func (r *Registry) Instance(name string) *Store {
	if name == "" {
		name = DefaultInstance
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[name]
	if !ok {
		s = NewStore(r.storeOpts...)
		r.stores[name] = s
		r.logger.Debug("configuration instance created", "name", name)
	}
	return s
}

// Names returns the names of all instances created so far.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	return names
}

// Create is the plain factory: it returns the named instance, creating it
// if needed.
func (r *Registry) Create(name string) *Store {
	return r.Instance(name)
}

// CreateThreadSafe returns the named instance. It exists to document the
// guarantee: all registry lookups, with identical or different names, are
// safe under concurrent calls from multiple goroutines.
func (r *Registry) CreateThreadSafe(name string) *Store {
	return r.Instance(name)
}

// CreateFromFile returns the named instance loaded from the given file.
// On load failure no instance is returned; the registry entry still exists
// and its state is unchanged, so the failure is recoverable.
func (r *Registry) CreateFromFile(name, path string) (*Store, error) {
	s := r.Instance(name)
	if err := s.LoadFile(path); err != nil {
		r.logger.Error("cannot create configuration from file", "name", name, "path", path, "error", err)
		return nil, err
	}
	return s, nil
}

// CreateWithDefaults returns the named instance with the given initial
// key/value set applied through Set, so validators run and listeners fire.
func (r *Registry) CreateWithDefaults(name string, defaults map[string]value.Value) (*Store, error) {
	s := r.Instance(name)
	if err := s.UpdateMultiple(defaults); err != nil {
		r.logger.Error("cannot apply defaults", "name", name, "error", err)
		return nil, err
	}
	return s, nil
}

// CreateForEnvironment returns the named instance populated with the fixed
// preset for one of the known environment names: "development",
// "production", or "testing". Unknown names are rejected.
func (r *Registry) CreateForEnvironment(name, environment string) (*Store, error) {
	preset, ok := environmentPresets[environment]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEnvironment, environment)
	}
	return r.CreateWithDefaults(name, preset())
}

// CreateFromProcessEnv returns the named instance with the full process
// environment merged in. Reading the environment cannot fail in-process,
// so unlike the file-backed factory there is no absent-instance outcome.
func (r *Registry) CreateFromProcessEnv(name string) *Store {
	s := r.Instance(name)
	s.LoadFromEnv()
	return s
}

// environmentPresets builds the fixed key set for each named environment.
// Each call returns fresh values so callers cannot alias preset state.
var environmentPresets = map[string]func() map[string]value.Value{
	"development": func() map[string]value.Value {
		return map[string]value.Value{
			"db_host":           value.String("localhost"),
			"db_port":           value.Int(5432),
			"api_endpoint":      value.String("https://dev.api.example.com"),
			"log_level":         value.String("debug"),
			"feature_x_enabled": value.Bool(true),
		}
	},
	"production": func() map[string]value.Value {
		return map[string]value.Value{
			"db_host":           value.String("prod.db.server"),
			"db_port":           value.Int(5432),
			"api_endpoint":      value.String("https://api.example.com"),
			"log_level":         value.String("error"),
			"feature_x_enabled": value.Bool(false),
		}
	},
	"testing": func() map[string]value.Value {
		return map[string]value.Value{
			"db_host":           value.String("test.db.server"),
			"db_port":           value.Int(5432),
			"api_endpoint":      value.String("https://test.api.example.com"),
			"log_level":         value.String("info"),
			"feature_x_enabled": value.Bool(true),
		}
	},
}

// Pool caches shared store handles under its own lock, independent of any
// registry bookkeeping, so hot call sites can reuse one instance per name
// without touching the registry lock after first use.
type Pool struct {
	mu       sync.Mutex
	registry *Registry
	stores   map[string]*Store
}

// NewPool creates a pool backed by the given registry.
func NewPool(registry *Registry) *Pool {
	return &Pool{
		registry: registry,
		stores:   make(map[string]*Store),
	}
}

// Get returns the pooled store for name, fetching it from the registry on
// first use. An empty name selects DefaultInstance.
func (p *Pool) Get(name string) *Store {
	if name == "" {
		name = DefaultInstance
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.stores[name]
	if !ok {
		s = p.registry.Instance(name)
		p.stores[name] = s
		p.registry.logger.Debug("configuration instance pooled", "name", name)
	}
	return s
}

// Len returns the number of pooled entries.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.stores)
}
