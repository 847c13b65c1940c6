// Package localstore keeps a browser-style local storage profile on disk: one
// file per key inside a profile directory.
package localstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidKey is returned for keys that cannot be mapped to a file name.
var ErrInvalidKey = errors.New("invalid storage key")

// Dir is a profile directory. It implements guard.Storage.
type Dir struct {
	path string
}

// Open returns a Dir rooted at path. The directory does not need to exist;
// a missing directory reads as an empty profile.
func Open(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the profile directory.
func (d *Dir) Path() string { return d.path }

func (d *Dir) itemPath(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(d.path, key), nil
}

// GetItem reads key. Trailing newlines and spaces are trimmed so files written
// by an editor or `echo` read back as the stored value.
func (d *Dir) GetItem(key string) (string, bool, error) {
	p, err := d.itemPath(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return strings.TrimRight(string(b), "\r\n\t "), true, nil
}
