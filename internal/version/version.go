// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package version carries the build version, set with
// -ldflags "-X github.com/staranto/cartctl/internal/version.Version=...".
package version

var Version = "dev"
