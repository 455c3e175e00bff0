package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/config"
)

func runRoot(t *testing.T, args ...string) (*RootCommand, string, error) {
	t.Helper()
	root := NewRootCommand("1.2.3")
	var out bytes.Buffer
	root.Command().SetOut(&out)
	root.Command().SetErr(&out)
	root.Command().SetArgs(args)
	err := root.Execute()
	return root, out.String(), err
}

func TestVersionCommand(t *testing.T) {
	_, out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "todos 1.2.3\n", out)
}

func TestVersionCommand_IgnoresBadConfig(t *testing.T) {
	t.Setenv("TODOS_LOG_LEVEL", "shout")

	_, _, err := runRoot(t, "version")
	assert.NoError(t, err)
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand("dev")

	names := map[string]bool{}
	for _, cmd := range root.Command().Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["version"])
}

func TestRootCommand_FlagOverrides(t *testing.T) {
	root := NewRootCommand("dev")
	require.NoError(t, root.Command().ParseFlags([]string{
		"--addr", ":9999",
		"--storage", "sqlite",
		"--sqlite-path", "/tmp/todos-test.db",
		"--db-query-timeout", "2s",
		"--seed=false",
		"--log-level", "debug",
	}))

	overrides := root.getOverridesFromFlags()
	require.NotNil(t, overrides.Addr)
	assert.Equal(t, ":9999", *overrides.Addr)
	assert.Equal(t, "sqlite", *overrides.Backend)
	assert.Equal(t, "/tmp/todos-test.db", *overrides.SQLitePath)
	assert.Equal(t, 2*time.Second, *overrides.QueryTimeout)
	assert.False(t, *overrides.Seed)
	assert.Equal(t, "debug", *overrides.LogLevel)
	assert.Nil(t, overrides.PostgresDSN, "unset flags do not override")
	assert.Nil(t, overrides.LogFormat)
	assert.Nil(t, overrides.ShutdownTimeout)
}

func TestRootCommand_LoadConfigFromFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \":4000\"\n[logging]\nformat = \"json\"\n"), 0o644))

	root := NewRootCommand("dev")
	require.NoError(t, root.Command().ParseFlags([]string{"--config", path, "--log-level", "warn"}))
	require.NoError(t, root.loadConfig())

	cfg := root.Config()
	assert.Equal(t, ":4000", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, config.BackendMemory, cfg.Storage.Backend)
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	_, _, err := runRoot(t, "serve", "--storage", "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "storage.postgres_dsn")
}
