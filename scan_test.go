// File: confstore/scan_test.go
package confstore

import (
	"testing"
	"time"

	"confstore/value"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanStruct(t *testing.T) {
	r := quietRegistry()
	cfg, err := r.CreateForEnvironment("app", "development")
	require.NoError(t, err)

	type appConfig struct {
		DBHost      string `config:"db_host"`
		DBPort      int    `config:"db_port"`
		APIEndpoint string `config:"api_endpoint"`
		LogLevel    string `config:"log_level"`
		FeatureX    bool   `config:"feature_x_enabled"`
	}

	var out appConfig
	require.NoError(t, cfg.Scan(&out))
	assert.Equal(t, appConfig{
		DBHost:      "localhost",
		DBPort:      5432,
		APIEndpoint: "https://dev.api.example.com",
		LogLevel:    "debug",
		FeatureX:    true,
	}, out)
}

func TestScanWeakTyping(t *testing.T) {
	cfg := quietStore()
	require.NoError(t, cfg.Set("port", value.String("8080")))
	require.NoError(t, cfg.Set("timeout", value.String("2s")))
	require.NoError(t, cfg.Set("hosts", value.String("a,b,c")))
	require.NoError(t, cfg.Set("verbose", value.String("true")))

	type netConfig struct {
		Port    int           `config:"port"`
		Timeout time.Duration `config:"timeout"`
		Hosts   []string      `config:"hosts"`
		Verbose bool          `config:"verbose"`
	}

	var out netConfig
	require.NoError(t, cfg.Scan(&out))
	assert.Equal(t, 8080, out.Port)
	assert.Equal(t, 2*time.Second, out.Timeout)
	assert.Equal(t, []string{"a", "b", "c"}, out.Hosts)
	assert.True(t, out.Verbose)
}

func TestScanNested(t *testing.T) {
	cfg := quietStore()
	db := value.NewMap()
	db.Set("host", value.String("localhost"))
	db.Set("port", value.Int(5432))
	require.NoError(t, cfg.Set("database", db))

	type dbConfig struct {
		Host string `config:"host"`
		Port int    `config:"port"`
	}
	type rootConfig struct {
		Database dbConfig `config:"database"`
	}

	var out rootConfig
	require.NoError(t, cfg.Scan(&out))
	assert.Equal(t, "localhost", out.Database.Host)
	assert.Equal(t, 5432, out.Database.Port)
}

func TestScanRejectsNonPointer(t *testing.T) {
	cfg := quietStore()

	type empty struct{}
	err := cfg.Scan(empty{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-nil pointer")

	var nilTarget *empty
	err = cfg.Scan(nilTarget)
	require.Error(t, err)
}

func TestScanIntoMap(t *testing.T) {
	cfg := quietStore()
	require.NoError(t, cfg.Set("a", value.Int(1)))
	require.NoError(t, cfg.Set("b", value.String("two")))

	out := map[string]any{}
	require.NoError(t, cfg.Scan(&out))
	assert.Equal(t, int64(1), out["a"])
	assert.Equal(t, "two", out["b"])
}
