package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_AppliesOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_url = \"http://file:8000\"\nlog_level = \"warn\"\n"), 0o600))

	env, err := Setup(Options{ConfigPath: path, APIURL: " http://flag:9000 ", LogLevel: "debug"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = env.Close() })

	assert.Equal(t, "http://flag:9000", env.Config.APIURL)
	assert.Equal(t, "debug", env.Config.LogLevel)
	assert.Equal(t, "http://flag:9000", env.Controller.Address())
	assert.NotNil(t, env.Store)
}

func TestSetup_BadConfigFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`probe_timeout = "soon"`), 0o600))

	_, err := Setup(Options{ConfigPath: path})
	assert.ErrorContains(t, err, "load config")
}

func TestEnvCloseNil(t *testing.T) {
	var env *Env
	assert.NoError(t, env.Close())
}
