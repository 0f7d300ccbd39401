// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const qtyPage = "# cartctl qty\n\n" +
	"## Short description\n\n" +
	"Set the quantity of a line item.\n" +
	"Invalid input reads as 1.\n\n" +
	"## Quick examples\n\n" +
	"```sh\n" +
	"# Buy three shirts\n" +
	"cartctl qty 1   3\n\n" +
	"# Set any line item\n" +
	"cartctl qty <id> <quantity>\n" +
	"```\n"

func TestParsePage(t *testing.T) {
	p := parsePage(qtyPage)

	assert.Equal(t, "cartctl qty", p.Title)
	assert.Equal(t, "Set the quantity of a line item. Invalid input reads as 1.", p.Short)
	require.Len(t, p.Examples, 2)
	assert.Equal(t, example{Desc: "Buy three shirts", Cmd: "cartctl qty 1 3"}, p.Examples[0])
}

func TestTLDR(t *testing.T) {
	out := parsePage(qtyPage).tldr("qty")

	assert.Contains(t, out, "# cartctl-qty\n")
	assert.Contains(t, out, "> Set the quantity of a line item.")
	assert.Contains(t, out, "`cartctl qty {{id}} {{quantity}}`")

	fallback := page{}.tldr("show")
	assert.Contains(t, fallback, "> cartctl show\n")
	assert.Contains(t, fallback, "`cartctl show --help`")
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "docs", "commands")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "qty.md"), []byte(qtyPage), 0o644))

	n, err := generate(root, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.FileExists(t, filepath.Join(root, "docs", "man", "share", "man1", "cartctl-qty.1"))
	tldr, err := os.ReadFile(filepath.Join(root, "docs", "tldr", "cartctl-qty.md"))
	require.NoError(t, err)
	assert.Contains(t, string(tldr), "Buy three shirts")

	_, err = generate(t.TempDir(), true)
	assert.Error(t, err)
}
