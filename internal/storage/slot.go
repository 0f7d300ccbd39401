// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultKey is the slot key used when none is configured.
const DefaultKey = "vali_cart"

// DefaultProfile is the profile used when none is configured.
const DefaultProfile = "default"

// ErrNotFound is returned by Get when nothing has been stored yet.
var ErrNotFound = errors.New("slot is empty")

// Slot is a single persisted value. Set overwrites the whole value.
type Slot interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
	String() string
}

// Options selects and parameterizes a Slot.
type Options struct {
	// Driver is "file" (default) or "memory".
	Driver  string
	Profile string
	Key     string
	// Dir overrides the base directory of the file driver.
	Dir string
}

// Open returns the Slot described by opts.
func Open(opts Options) (Slot, error) {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Profile == "" {
		opts.Profile = DefaultProfile
	}

	switch strings.ToLower(opts.Driver) {
	case "", "file":
		base := opts.Dir
		if base == "" {
			var ok bool
			if base, ok = Dir(); !ok {
				return nil, errors.New("unable to resolve a data directory; set CARTCTL_DATA_DIR")
			}
		}
		return NewFile(base, opts.Profile, opts.Key), nil
	case "memory":
		return NewMemory(opts.Key), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
