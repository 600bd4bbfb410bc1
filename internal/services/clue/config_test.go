package clue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/codenames/internal/dependencies/random"
	"github.com/mcoot/codenames/internal/testutil"
)

func TestBuildDefaultIsRetryingAssociation(t *testing.T) {
	provider, closer, err := Build(DefaultConfig(), random.New(), testutil.NopLogger())
	require.NoError(t, err)
	defer closer()

	retrying, ok := provider.(*Retrying)
	require.True(t, ok)
	assert.IsType(t, &AssociationProvider{}, retrying.next)
}

func TestBuildWithoutRetries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetryAttempts = 1

	provider, _, err := Build(cfg, random.New(), testutil.NopLogger())
	require.NoError(t, err)
	assert.IsType(t, &AssociationProvider{}, provider)
}

func TestBuildProviders(t *testing.T) {
	dir := t.TempDir()
	luaPath := filepath.Join(dir, "spymaster.lua")
	require.NoError(t, os.WriteFile(luaPath, []byte(countingScript), 0o644))
	tablePath := filepath.Join(dir, "table.yaml")
	require.NoError(t, os.WriteFile(tablePath, []byte(testTable), 0o644))

	cases := map[string]struct {
		cfg  func(*Config)
		want Provider
	}{
		"association file": {func(c *Config) { c.AssociationsPath = tablePath }, &AssociationProvider{}},
		"script":           {func(c *Config) { c.Provider = ProviderScript; c.ScriptCommand = "/bin/true" }, &ScriptProvider{}},
		"lua":              {func(c *Config) { c.Provider = ProviderLua; c.LuaScript = luaPath }, &LuaProvider{}},
		"http":             {func(c *Config) { c.Provider = ProviderHTTP; c.HTTPURL = "http://localhost:1" }, &HTTPProvider{}},
	}

	for name, tc := range cases {
		cfg := DefaultConfig()
		cfg.RetryAttempts = 1
		tc.cfg(&cfg)

		provider, closer, err := Build(cfg, random.New(), testutil.NopLogger())
		require.NoError(t, err, name)
		assert.IsType(t, tc.want, provider, name)
		closer()
	}
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown provider": func(c *Config) { c.Provider = "oracle" },
		"bad risk":         func(c *Config) { c.Risk = "reckless" },
		"script command":   func(c *Config) { c.Provider = ProviderScript },
		"lua script":       func(c *Config) { c.Provider = ProviderLua },
		"missing lua file": func(c *Config) { c.Provider = ProviderLua; c.LuaScript = "/nonexistent/x.lua" },
		"http url":         func(c *Config) { c.Provider = ProviderHTTP },
		"missing table":    func(c *Config) { c.AssociationsPath = "/nonexistent/table.yaml" },
	}

	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)

		_, _, err := Build(cfg, random.New(), testutil.NopLogger())
		assert.Error(t, err, name)
	}
}
