// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// cartctl is the entry point of the cartctl command line tool. It wires the
// CLI and delegates to the internal packages.
package main
