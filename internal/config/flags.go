package config

import (
	"flag"
	"os"

	"github.com/dmorozov/testoria/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string    storage backend: memory, file, sqlite or redis
//	-d string    data directory (file backend)
//	-b string    sqlite database path
//	-r string    redis address host:port
//	-p string    credential scheme: legacy or bcrypt
//	-l string    logger: slog or zap
//	-seed        seed default accounts when the collection is empty
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-b", "-r", "-p", "-l", "-seed"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend (memory|file|sqlite|redis)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the file backend")
	fs.StringVar(&cfg.DatabasePath, "b", cfg.DatabasePath, "sqlite database path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address host:port")
	fs.StringVar(&cfg.CredentialScheme, "p", cfg.CredentialScheme, "credential scheme (legacy|bcrypt)")
	fs.StringVar(&cfg.Logger, "l", cfg.Logger, "logger (slog|zap)")
	fs.BoolVar(&cfg.BootstrapDefaults, "seed", cfg.BootstrapDefaults, "seed default accounts on first start")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
