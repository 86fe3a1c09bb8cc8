// Package filex contains filesystem helpers for the local session database
// and for reading receipt files picked by the user.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrTooLarge is returned by ReadLimited when the file exceeds the limit.
var ErrTooLarge = errors.New("file too large")

// EnsureParentDir creates the directory that will hold path, if needed.
// Paths without a directory component (or SQLite ":memory:") are left alone.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ReadLimited reads the whole file at path, failing with ErrTooLarge when it
// holds more than limit bytes. It returns the base name with the content.
func ReadLimited(path string, limit int64) (string, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return "", nil, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	return filepath.Base(path), data, nil
}
