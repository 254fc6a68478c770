package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"udwallet/internal/store"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home         string            `yaml:"home"`          // root directory, e.g. $HOME/.udwallet
	DocumentsDir string            `yaml:"documents_dir"` // durable caches; relative to Home
	CachesDir    string            `yaml:"caches_dir"`    // evictable caches; relative to Home
	Vault        VaultConfig       `yaml:"vault"`
	Preferences  PreferencesConfig `yaml:"preferences"`
	Password     PasswordConfig    `yaml:"password"`
	Logging      LoggingConfig     `yaml:"logging"`
	Metrics      MetricsConfig     `yaml:"metrics"`
	Signatures   SignaturesConfig  `yaml:"signatures"`
}

// VaultConfig configures the two encrypted vaults.
type VaultConfig struct {
	LocalDir   string             `yaml:"local_dir"`
	CloudDir   string             `yaml:"cloud_dir"` // point at a synced folder to share backups
	Passphrase string             `yaml:"passphrase"`
	Scrypt     store.ScryptParams `yaml:"scrypt"`
}

// PreferencesConfig locates the preferences database.
type PreferencesConfig struct {
	Path string `yaml:"path"`
}

// PasswordConfig tunes password hashing.
type PasswordConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig toggles store metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SignaturesConfig controls signature housekeeping.
type SignaturesConfig struct {
	PurgeOnStart bool `yaml:"purge_on_start"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig(home string) *Config {
	return &Config{
		Home:         home,
		DocumentsDir: "documents",
		CachesDir:    "caches",
		Vault: VaultConfig{
			LocalDir:   "vault",
			CloudDir:   "cloud",
			Passphrase: os.Getenv("UDWALLET_PASSPHRASE"),
			Scrypt:     store.DefaultScryptParams(),
		},
		Preferences: PreferencesConfig{Path: "preferences"},
		Logging:     LoggingConfig{Level: "info", Format: "console"},
		Signatures:  SignaturesConfig{PurgeOnStart: true},
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig(home).
// Environment variables in the form ${VAR_NAME} are expanded.
func LoadConfig(path, home string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig(home)
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} with the variable's value, or "" when unset.
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envPattern.FindStringSubmatch(match)[1])
	})
}

// Validate checks the fields NewWire depends on.
func (c *Config) Validate() error {
	if c.Home == "" {
		return errors.New("home is required")
	}
	if c.Vault.Passphrase == "" {
		return errors.New("vault.passphrase is required")
	}
	if n := c.Vault.Scrypt.N; n < 2 || n&(n-1) != 0 {
		return fmt.Errorf("vault.scrypt.n must be a power of two > 1, got %d", n)
	}
	if c.Vault.Scrypt.R < 1 || c.Vault.Scrypt.P < 1 {
		return errors.New("vault.scrypt.r and vault.scrypt.p must be positive")
	}
	return nil
}

// resolve returns p, made absolute against Home when relative.
func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Home, p)
}

// Directories returns the file storage roots.
func (c *Config) Directories() map[store.Directory]string {
	return map[store.Directory]string{
		store.Documents: c.resolve(c.DocumentsDir),
		store.Caches:    c.resolve(c.CachesDir),
	}
}
