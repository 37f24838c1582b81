// File: confstore/registry_test.go
package confstore

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"confstore/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietRegistry() *Registry {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRegistry(
		WithRegistryLogger(logger),
		WithStoreOptions(WithLogger(logger)),
	)
}

func TestRegistryIdentity(t *testing.T) {
	r := quietRegistry()

	a := r.Instance("app")
	b := r.Instance("app")
	assert.Same(t, a, b, "the same name must yield the same store")

	// A write through one handle is visible through the other.
	require.NoError(t, a.Set("name", value.String("example")))
	v, err := b.Get("name")
	require.NoError(t, err)
	assert.Equal(t, value.String("example"), v)

	other := r.Instance("other")
	assert.NotSame(t, a, other)
	assert.False(t, other.Exists("name"), "instances are isolated")
}

func TestRegistryDefaultName(t *testing.T) {
	r := quietRegistry()
	assert.Same(t, r.Instance(""), r.Instance(DefaultInstance))
}

func TestRegistryNames(t *testing.T) {
	r := quietRegistry()
	r.Instance("alpha")
	r.Instance("beta")
	assert.ElementsMatch(t, []string{"alpha", "beta"}, r.Names())
}

func TestRegistryConcurrentInstance(t *testing.T) {
	r := quietRegistry()
	const goroutines = 32

	stores := make([]*Store, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i] = r.CreateThreadSafe("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, stores[0], stores[i])
	}
}

func TestCreateWithDefaults(t *testing.T) {
	r := quietRegistry()
	s, err := r.CreateWithDefaults("app", map[string]value.Value{
		"name": value.String("example"),
		"port": value.Int(8080),
	})
	require.NoError(t, err)
	v, err := s.Get("port")
	require.NoError(t, err)
	assert.Equal(t, value.Int(8080), v)
}

func TestCreateForEnvironment(t *testing.T) {
	r := quietRegistry()

	tests := []struct {
		environment string
		dbHost      string
		logLevel    string
		featureX    bool
	}{
		{"development", "localhost", "debug", true},
		{"production", "prod.db.server", "error", false},
		{"testing", "test.db.server", "info", true},
	}
	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			s, err := r.CreateForEnvironment(tt.environment, tt.environment)
			require.NoError(t, err)

			v, err := s.Get("db_host")
			require.NoError(t, err)
			assert.Equal(t, value.String(tt.dbHost), v)
			v, err = s.Get("db_port")
			require.NoError(t, err)
			assert.Equal(t, value.Int(5432), v)
			v, err = s.Get("log_level")
			require.NoError(t, err)
			assert.Equal(t, value.String(tt.logLevel), v)
			v, err = s.Get("feature_x_enabled")
			require.NoError(t, err)
			assert.Equal(t, value.Bool(tt.featureX), v)
			assert.True(t, s.Exists("api_endpoint"))
		})
	}

	t.Run("UnknownEnvironment", func(t *testing.T) {
		_, err := r.CreateForEnvironment("app", "staging")
		require.ErrorIs(t, err, ErrUnsupportedEnvironment)
		assert.Contains(t, err.Error(), "staging")
	})
}

func TestCreateFromFile(t *testing.T) {
	r := quietRegistry()
	dir := t.TempDir()

	t.Run("Success", func(t *testing.T) {
		path := filepath.Join(dir, "seed.json")
		seed := quietStore()
		require.NoError(t, seed.Set("name", value.String("example")))
		require.NoError(t, seed.SaveFile(path))

		s, err := r.CreateFromFile("filed", path)
		require.NoError(t, err)
		v, err := s.Get("name")
		require.NoError(t, err)
		assert.Equal(t, value.String("example"), v)
	})

	t.Run("Failure", func(t *testing.T) {
		s, err := r.CreateFromFile("broken", filepath.Join(dir, "missing.json"))
		require.ErrorIs(t, err, ErrFileOpen)
		assert.Nil(t, s)

		// The registry entry survives and stays usable.
		assert.Contains(t, r.Names(), "broken")
		assert.Equal(t, 0, r.Instance("broken").Len())
	})
}

func TestCreateFromProcessEnv(t *testing.T) {
	r := quietRegistry()
	t.Setenv("CONFSTORE_TEST_REGISTRY", "from_env")

	s := r.CreateFromProcessEnv("envd")
	v, err := s.Get("CONFSTORE_TEST_REGISTRY")
	require.NoError(t, err)
	assert.Equal(t, value.String("from_env"), v)
}

func TestPool(t *testing.T) {
	r := quietRegistry()
	p := NewPool(r)

	a := p.Get("app")
	b := p.Get("app")
	assert.Same(t, a, b)
	assert.Same(t, a, r.Instance("app"), "the pool hands out registry instances")
	assert.Equal(t, 1, p.Len())

	p.Get("")
	assert.Same(t, p.Get(DefaultInstance), p.Get(""))
	assert.Equal(t, 2, p.Len())
}
