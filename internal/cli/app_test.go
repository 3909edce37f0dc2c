package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmorozov/testoria/internal/accounts"
	"github.com/dmorozov/testoria/internal/config"
	"github.com/dmorozov/testoria/internal/logging"
	"github.com/dmorozov/testoria/internal/storage"
)

func TestOpenStorage_Memory(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageBackend = config.BackendMemory

	s, cleanup, err := openStorage(context.Background(), c)
	if err != nil {
		t.Fatalf("openStorage err: %v", err)
	}
	defer cleanup()

	if _, ok := s.(*storage.Memory); !ok {
		t.Fatalf("want *storage.Memory, got %T", s)
	}
}

func TestOpenStorage_File(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageBackend = config.BackendFile
	c.DataDir = t.TempDir()

	s, cleanup, err := openStorage(context.Background(), c)
	if err != nil {
		t.Fatalf("openStorage err: %v", err)
	}
	defer cleanup()

	if _, ok := s.(*storage.File); !ok {
		t.Fatalf("want *storage.File, got %T", s)
	}
}

func TestOpenStorage_SQLite(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageBackend = config.BackendSQLite
	c.DatabasePath = filepath.Join(t.TempDir(), "testoria.db")

	s, cleanup, err := openStorage(context.Background(), c)
	if err != nil {
		t.Fatalf("openStorage err: %v", err)
	}
	defer cleanup()

	if _, ok := s.(*storage.SQLite); !ok {
		t.Fatalf("want *storage.SQLite, got %T", s)
	}
}

func TestOpenStorage_Unknown(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageBackend = "cassandra"

	_, _, err := openStorage(context.Background(), c)
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestNewLogger_Selection(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()

	l, err := newLogger(c)
	if err != nil {
		t.Fatalf("newLogger err: %v", err)
	}
	if _, ok := l.(*logging.SlogLogger); !ok {
		t.Fatalf("default should map to *logging.SlogLogger, got %T", l)
	}

	c.Logger = config.LoggerZap
	l, err = newLogger(c)
	if err != nil {
		t.Fatalf("newLogger err: %v", err)
	}
	if _, ok := l.(*logging.ZapLogger); !ok {
		t.Fatalf("zap should map to *logging.ZapLogger, got %T", l)
	}

	c.Logger = "syslog"
	if _, err := newLogger(c); err == nil {
		t.Fatal("expected error for unknown logger")
	}
}

func TestCredentialCodec_Selection(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()

	if _, ok := credentialCodec(c).(accounts.LegacyCodec); !ok {
		t.Fatalf("default scheme should map to LegacyCodec")
	}

	c.CredentialScheme = config.SchemeBcrypt
	if _, ok := credentialCodec(c).(accounts.BcryptCodec); !ok {
		t.Fatalf("bcrypt scheme should map to BcryptCodec")
	}
}
