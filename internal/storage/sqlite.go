package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmorozov/testoria/internal/dbx"
	"github.com/dmorozov/testoria/internal/storage/migrations"

	_ "modernc.org/sqlite"
)

// SQLite stores values in a single-table key/value schema. It works over
// dbx.DBTX so the same code serves both plain connections and transactions.
type SQLite struct {
	db dbx.DBTX
}

// NewSQLite returns a SQLite store bound to the given DBTX. The schema must
// already exist; use OpenSQLite to open a file and apply migrations.
func NewSQLite(db dbx.DBTX) *SQLite {
	return &SQLite{db: db}
}

// OpenSQLite opens (creating if necessary) the database at dsn, applies the
// embedded migrations, and returns a ready-to-use store together with the
// underlying handle so the caller can close it.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db migration error: %w", err)
	}

	return NewSQLite(db), db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func setKV(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func deleteKV(ctx context.Context, q dbx.DBTX, key string) error {
	_, err := q.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	return setKV(ctx, s.db, key, value)
}

// SetMany writes all values in one transaction when bound to a plain
// connection. When bound to a transaction the writes are already atomic
// and run on it directly.
func (s *SQLite) SetMany(ctx context.Context, values map[string][]byte) error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		for key, value := range values {
			if err := setKV(ctx, s.db, key, value); err != nil {
				return err
			}
		}
		return nil
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range values {
			if err := setKV(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	return deleteKV(ctx, s.db, key)
}

// DeleteMany removes the keys in one transaction, same rules as SetMany.
func (s *SQLite) DeleteMany(ctx context.Context, keys ...string) error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		for _, key := range keys {
			if err := deleteKV(ctx, s.db, key); err != nil {
				return err
			}
		}
		return nil
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range keys {
			if err := deleteKV(ctx, tx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}

	return result, nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv`)
	if err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}
