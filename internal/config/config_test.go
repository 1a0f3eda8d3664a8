package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv evita que el entorno del host se cuele en los tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, envs := range envBindings {
		for _, e := range envs {
			t.Setenv(e, "")
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "mongodb://localhost/simpleMVCExample", cfg.Store.MongoURI)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("NODE_PORT", "4000")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.HTTP.Port)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "json", cfg.Log.Format)

	// PORT tiene prioridad sobre NODE_PORT
	t.Setenv("PORT", "5000")
	cfg, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.HTTP.Port)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "5000")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("port", 0, "")
	fs.String("store", "", "")
	require.NoError(t, fs.Parse([]string{"--port", "6000", "--store", "memory"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.HTTP.Port)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  driver: sqlite
  dsn: /tmp/pets.db
http:
  write_timeout: 30s
`), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/pets.db", cfg.Store.DSN)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "cassandra")
	_, err := Load("", nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("STORE_DRIVER", "postgres")
	_, err = Load("", nil)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "store.dsn", cerr.Field)
}

func TestLoadHTTP_IgnoresStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("PORT", "4100")

	// Load exige dsn para sqlite; LoadHTTP no mira el store
	_, err := Load("", nil)
	require.ErrorIs(t, err, ErrInvalidConfig)

	h, err := LoadHTTP("", nil)
	require.NoError(t, err)
	assert.Equal(t, 4100, h.Port)

	t.Setenv("PORT", "70000")
	_, err = LoadHTTP("", nil)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "http.port", cerr.Field)
}
