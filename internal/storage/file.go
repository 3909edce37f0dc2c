package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File persists each key as a separate file inside a data directory.
// It is the closest analog of the original client's localStorage: human
// readable, easy to inspect and wipe by hand.
type File struct {
	dir string
}

// NewFile creates the data directory if needed and returns a File store.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// path maps a key to a file path, rejecting keys that would escape the
// data directory.
func (f *File) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.dir, key), nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	// Write-then-rename so readers never observe a half-written value.
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, value, 0o660); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// SetMany writes the values one file at a time. Each individual write is
// atomic but the group is not; a failure can leave earlier keys updated.
func (f *File) SetMany(ctx context.Context, values map[string][]byte) error {
	for key, value := range values {
		if err := f.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (f *File) DeleteMany(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := f.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) List(_ context.Context) (map[string][]byte, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", f.dir, err)
	}

	result := make(map[string][]byte)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".tmp") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(f.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		result[entry.Name()] = data
	}
	return result, nil
}

func (f *File) Clear(ctx context.Context) error {
	all, err := f.List(ctx)
	if err != nil {
		return err
	}
	for key := range all {
		if err := f.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
