// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// validKey restricts file keys to names that cannot escape the directory.
var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidFileKey reports whether key can be stored by the file backend:
// letters, digits, dot, underscore and dash only.
func ValidFileKey(key string) bool {
	return validKey.MatchString(key)
}

// File stores each key as <dir>/<key>.json. Writes go to a temporary file
// in the same directory and are renamed into place, so a crash mid-write
// leaves the previous value intact.
type File struct {
	dir string
}

// NewFile returns a file backend rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// Path returns the file that holds key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get reads the file for key.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	if !ValidFileKey(key) {
		return nil, fmt.Errorf("invalid key %q", key)
	}
	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Put atomically replaces the file for key.
func (f *File) Put(_ context.Context, key string, value []byte) error {
	if !ValidFileKey(key) {
		return fmt.Errorf("invalid key %q", key)
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
