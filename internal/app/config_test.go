package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"udwallet/internal/store"
)

func TestLoadConfig_ExpandsEnvAndResolvesPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("UDWALLET_TEST_PASSPHRASE", "s3cret")
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
caches_dir: /var/tmp/udwallet-caches
vault:
  passphrase: ${UDWALLET_TEST_PASSPHRASE}
  scrypt:
    n: 1024
    r: 8
    p: 1
logging:
  level: debug
`), 0o600))

	cfg, err := LoadConfig(path, home)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Vault.Passphrase)
	assert.Equal(t, 1024, cfg.Vault.Scrypt.N)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format, "unset fields keep defaults")

	dirs := cfg.Directories()
	assert.Equal(t, filepath.Join(home, "documents"), dirs[store.Documents])
	assert.Equal(t, "/var/tmp/udwallet-caches", dirs[store.Caches])
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig(t.TempDir())
		cfg.Vault.Passphrase = "pw"
		return cfg
	}
	require.NoError(t, valid().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no home", func(c *Config) { c.Home = "" }},
		{"no passphrase", func(c *Config) { c.Vault.Passphrase = "" }},
		{"scrypt n not a power of two", func(c *Config) { c.Vault.Scrypt.N = 1000 }},
		{"scrypt r zero", func(c *Config) { c.Vault.Scrypt.R = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), "/tmp")
	assert.Error(t, err)
}
