package config

import "time"

// Storage backend names accepted in StorageBackend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Credential scheme names accepted in CredentialScheme.
const (
	SchemeLegacy = "legacy"
	SchemeBcrypt = "bcrypt"
)

// Logger names accepted in Logger.
const (
	LoggerSlog = "slog"
	LoggerZap  = "zap"
)

// Config holds runtime settings for the Testoria CLI.
//
// Fields:
//   - StorageBackend: which Storage implementation backs the account store.
//   - DataDir: directory for the file backend.
//   - DatabasePath: sqlite database file for the sqlite backend.
//   - RedisAddr / RedisTimeout: connection settings for the redis backend.
//   - CredentialScheme: "legacy" (base64, compatible with the web client's
//     data) or "bcrypt".
//   - Logger: which logging implementation to use, "slog" or "zap".
//   - BootstrapDefaults: seed the default accounts on an empty collection.
//   - DefaultTheme: theme reported before the user saves a preference.
type Config struct {
	StorageBackend    string
	DataDir           string
	DatabasePath      string
	RedisAddr         string
	RedisTimeout      time.Duration
	CredentialScheme  string
	Logger            string
	BootstrapDefaults bool
	DefaultTheme      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageBackend = BackendSQLite
	c.DataDir = "testoria-data"
	c.DatabasePath = "testoria.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisTimeout = 3 * time.Second
	c.CredentialScheme = SchemeLegacy
	c.Logger = LoggerSlog
	c.BootstrapDefaults = false
	c.DefaultTheme = "light"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
