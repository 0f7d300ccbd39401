// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/apex/log"
)

// Dir resolves the base data directory.
// Precedence:
//  1. CARTCTL_DATA_DIR, if set and non-empty
//  2. os.UserConfigDir()/cartctl
//
// Returns ("", false) if a base cannot be resolved.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("CARTCTL_DATA_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "cartctl"), true
	}
	return "", false
}

// EnsureBaseDir creates the base data directory if a base path can be
// resolved. Returns the path, whether it is usable, and an error if creation
// failed.
func EnsureBaseDir() (string, bool, error) {
	base, ok := Dir()
	if !ok {
		return "", false, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create data directory: %w", err)
	}
	return base, true, nil
}

// File keeps the slot in a file beneath base/profile. The filename is the
// hashed key.
type File struct {
	Key     string
	Profile string
	Path    string
}

func NewFile(base, profile, key string) *File {
	return &File{
		Key:     key,
		Profile: profile,
		Path:    filepath.Join(base, profile, encodeKey(key)),
	}
}

func (f *File) Get(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}
	return b, nil
}

// Set writes data to a temp file in the same directory and renames it over
// the slot, so readers see either the old or the new value.
func (f *File) Set(_ context.Context, data []byte) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create slot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".slot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("failed to write slot: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil { //nolint:mnd
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("failed to write slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("failed to replace slot: %w", err)
	}

	log.Debugf("wrote %d bytes to %s", len(data), f.Path)
	return nil
}

func (f *File) Delete(_ context.Context) error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}

func (f *File) String() string {
	return fmt.Sprintf("file:%s/%s", f.Profile, f.Key)
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
