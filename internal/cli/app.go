// Package cli implements the interactive Testoria terminal client. It plays
// the role the header, profile page and toast scripts play in the web
// client: a pure consumer of the account store's public contract.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dmorozov/testoria/internal/accounts"
	"github.com/dmorozov/testoria/internal/config"
	"github.com/dmorozov/testoria/internal/logging"
	"github.com/dmorozov/testoria/internal/results"
	"github.com/dmorozov/testoria/internal/storage"
	"github.com/dmorozov/testoria/internal/theme"
)

type App struct {
	config   *config.Config
	accounts *accounts.Manager
	themes   *theme.Manager
	results  *results.Log
	log      logging.Logger
	reader   *bufio.Reader

	// header is the prompt fragment showing who is logged in. It is
	// refreshed through the session-change observer, never computed inline.
	header string
}

// NewApp wires the storage backend, the account store and its collaborators.
// The returned cleanup function releases backend resources and must be
// called when the app exits.
func NewApp(ctx context.Context, c *config.Config) (*App, func(), error) {
	logger, err := newLogger(c)
	if err != nil {
		return nil, nil, err
	}

	store, cleanup, err := openStorage(ctx, c)
	if err != nil {
		return nil, nil, fmt.Errorf("storage init error: %w", err)
	}

	manager, err := accounts.NewManager(ctx, store, credentialCodec(c), logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("account store init error: %w", err)
	}

	if c.BootstrapDefaults {
		if err := manager.BootstrapDefaults(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("bootstrap error: %w", err)
		}
	}

	app := &App{
		config:   c,
		accounts: manager,
		themes:   theme.NewManager(store, theme.Theme(c.DefaultTheme)),
		results:  results.NewLog(store),
		log:      logger,
		reader:   bufio.NewReader(os.Stdin),
	}

	app.refreshHeader(manager.Current())
	manager.OnSessionChange(app.refreshHeader)

	return app, cleanup, nil
}

// refreshHeader is the observer keeping the prompt in sync with the session,
// like the web client's header manager.
func (a *App) refreshHeader(account *accounts.Account) {
	if account == nil {
		a.header = "not signed in"
		return
	}
	a.header = account.Name
}

func (a *App) isLoggedIn() bool {
	return a.accounts.IsAuthenticated()
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, func() string { return a.header }, scanner)
}

// openStorage builds the Storage named by the configuration.
func openStorage(ctx context.Context, c *config.Config) (storage.Storage, func(), error) {
	switch c.StorageBackend {
	case config.BackendMemory:
		return storage.NewMemory(), func() {}, nil

	case config.BackendFile:
		f, err := storage.NewFile(c.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return f, func() {}, nil

	case config.BackendSQLite:
		s, db, err := storage.OpenSQLite(ctx, c.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = db.Close() }, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:        c.RedisAddr,
			DialTimeout: c.RedisTimeout,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping error: %w", err)
		}
		return storage.NewRedis(client), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

// newLogger builds the Logger implementation named by the configuration.
func newLogger(c *config.Config) (logging.Logger, error) {
	switch c.Logger {
	case config.LoggerZap:
		zl, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("zap init error: %w", err)
		}
		return logging.NewZapLogger(zl), nil

	case config.LoggerSlog, "":
		return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))), nil

	default:
		return nil, fmt.Errorf("unknown logger %q", c.Logger)
	}
}

func credentialCodec(c *config.Config) accounts.Codec {
	if c.CredentialScheme == config.SchemeBcrypt {
		return accounts.BcryptCodec{}
	}
	return accounts.LegacyCodec{}
}
