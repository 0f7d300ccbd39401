// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the cartctl CLI: the cart page commands, the
// interactive page and the debug namespace.
package command
