package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmorozov/testoria/internal/flagx"
	"github.com/dmorozov/testoria/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "3s" or
// as integer nanoseconds. Pointer fields distinguish "absent" from "zero":
// only keys present in the file overlay the runtime Config.
type JsonConfig struct {
	StorageBackend    *string         `json:"storage_backend"`
	DataDir           *string         `json:"data_dir"`
	DatabasePath      *string         `json:"database_path"`
	RedisAddr         *string         `json:"redis_addr"`
	RedisTimeout      *timex.Duration `json:"redis_timeout"`
	CredentialScheme  *string         `json:"credential_scheme"`
	Logger            *string         `json:"logger"`
	BootstrapDefaults *bool           `json:"bootstrap_defaults"`
	DefaultTheme      *string         `json:"default_theme"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.ConfigFileFlag().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies present fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StorageBackend != nil {
		cfg.StorageBackend = *jc.StorageBackend
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RedisAddr != nil {
		cfg.RedisAddr = *jc.RedisAddr
	}
	if jc.RedisTimeout != nil {
		cfg.RedisTimeout = time.Duration(jc.RedisTimeout.Duration)
	}
	if jc.CredentialScheme != nil {
		cfg.CredentialScheme = *jc.CredentialScheme
	}
	if jc.Logger != nil {
		cfg.Logger = *jc.Logger
	}
	if jc.BootstrapDefaults != nil {
		cfg.BootstrapDefaults = *jc.BootstrapDefaults
	}
	if jc.DefaultTheme != nil {
		cfg.DefaultTheme = *jc.DefaultTheme
	}
}
