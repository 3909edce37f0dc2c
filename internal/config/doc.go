// Package config loads runtime configuration for the Testoria CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string    storage backend (memory|file|sqlite|redis)
//	-d string    data directory for the file backend
//	-b string    sqlite database path
//	-r string    redis address host:port
//	-p string    credential scheme (legacy|bcrypt)
//	-l string    logger (slog|zap)
//	-seed        seed default accounts on first start
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "storage_backend": "sqlite",
//	  "database_path": "testoria.db",
//	  "redis_timeout": "3s",
//	  "credential_scheme": "legacy",
//	  "bootstrap_defaults": true
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
