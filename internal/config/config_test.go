package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alp4ka/keysetpager"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "keysetd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func Test_Load_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Encoding)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.Equal(t, "keysetd", cfg.Database.Name)
	assert.Equal(t, keysetpager.MaxLimit, cfg.Paging.MaxSize)
}

func Test_Load_File_And_Env(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
log:
  level: debug
  encoding: console
database:
  driver: Postgres
  dsn: postgres://localhost/orders
paging:
  max_size: 50
`)

	t.Setenv("KEYSETD_PAGING_MAX_SIZE", "25")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver, "driver is case insensitive")
	assert.Equal(t, "postgres://localhost/orders", cfg.Database.DSN)
	assert.Equal(t, 25, cfg.Paging.MaxSize, "env overrides the file")
}

func Test_Load_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{
			name: "unknown driver",
			body: "database:\n  driver: oracle\n",
		},
		{
			name: "missing dsn",
			body: "database:\n  driver: pgx\n  dsn: \"\"\n",
		},
		{
			name: "non-positive max size",
			body: "paging:\n  max_size: 0\n",
		},
		{
			name: "env driver",
			body: "server:\n  addr: \":8080\"\n",
			env:  map[string]string{"KEYSETD_DATABASE_DRIVER": "cassandra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func Test_Load_MemoryWithoutDSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, "database:\n  driver: memory\n  dsn: \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
}
