// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/cartctl/internal/config"
	"github.com/staranto/cartctl/internal/interact"
	"github.com/staranto/cartctl/internal/meta"
	"github.com/staranto/cartctl/internal/session"
)

const testCatalog = "../catalog/testdata/vali.hcl"

type harness struct {
	t   *testing.T
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CARTCTL_DATA_DIR", dir)
	t.Setenv("CARTCTL_CFG", "testdata/cartctl.yaml")

	loaded, err := config.Load()
	require.NoError(t, err)
	cfg = loaded

	return &harness{t: t, dir: dir}
}

// run executes cartctl with args and returns what it wrote to stdout and
// stderr.
func (h *harness) run(args ...string) (string, string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	ctx := context.Background()
	argv := append([]string{"cartctl"}, args...)
	app := NewApp(meta.Meta{
		Args:    argv,
		Config:  cfg,
		Context: ctx,
		Stdout:  &out,
		Stderr:  &errOut,
	})
	err := app.Run(ctx, argv)
	return out.String(), errOut.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, _, err := h.run(args...)
	require.NoError(h.t, err, "args: %v", args)
	return out
}

func (h *harness) items() gjson.Result {
	h.t.Helper()
	return gjson.Parse(h.mustRun("debug", "items"))
}

func TestAdd_FromCatalog(t *testing.T) {
	h := newHarness(t)

	_, notices, err := h.run("--catalog", testCatalog, "add", "shirt")
	require.NoError(t, err)
	assert.Contains(t, notices, "Added: Shirt")

	h.mustRun("--catalog", testCatalog, "add", "1")

	items := h.items()
	require.Len(t, items.Array(), 1)
	assert.Equal(t, int64(1), items.Get("0.id").Int())
	assert.Equal(t, int64(2), items.Get("0.qty").Int())
	assert.Equal(t, "Shirt", items.Get("0.title").String())
}

func TestAdd_Errors(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("add", "--id", "7")
	assert.ErrorIs(t, err, errMissingArg)

	_, _, err = h.run("add", "shirt")
	assert.ErrorIs(t, err, session.ErrNoCatalog)

	_, _, err = h.run("--catalog", testCatalog, "add", "nope")
	assert.Error(t, err)
}

func TestRowControls(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--id", "7", "--title", "Mug", "--price", "10")

	tests := []struct {
		args []string
		qty  int64
	}{
		{[]string{"inc", "7"}, 2},
		{[]string{"qty", "7", "5"}, 5},
		{[]string{"dec", "7"}, 4},
		{[]string{"qty", "7", "abc"}, 1},
		{[]string{"dec", "7"}, 1},
	}

	for _, tt := range tests {
		h.mustRun(tt.args...)
		assert.Equal(t, tt.qty, h.items().Get("0.qty").Int(), "args: %v", tt.args)
	}

	h.mustRun("rm", "7")
	assert.Empty(t, h.items().Array())
}

func TestRowControls_MissingArgs(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("inc")
	assert.ErrorIs(t, err, errMissingArg)

	_, _, err = h.run("qty", "7")
	assert.ErrorIs(t, err, errMissingArg)
}

func TestClear_Yes(t *testing.T) {
	h := newHarness(t)
	h.mustRun("--catalog", testCatalog, "add", "hat")
	require.Len(t, h.items().Array(), 1)

	h.mustRun("clear", "--yes")
	assert.Empty(t, h.items().Array())
}

func TestCheckout(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("checkout", "--name", "Ana", "--email", "ana@example.com")
	assert.ErrorIs(t, err, interact.ErrEmptyCart)

	h.mustRun("--catalog", testCatalog, "add", "shirt")

	_, _, err = h.run("checkout", "--name", "Ana")
	assert.ErrorIs(t, err, interact.ErrMissingContact)
	assert.Len(t, h.items().Array(), 1)

	_, notices, err := h.run("checkout", "--name", "Ana", "--email", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, notices, "Thanks for your purchase!")
	assert.Contains(t, notices, "ana@example.com")
	assert.Empty(t, h.items().Array())
}

func TestShow_JSON(t *testing.T) {
	h := newHarness(t)

	empty := gjson.Parse(h.mustRun("show", "-o", "json"))
	assert.True(t, empty.Get("empty").Bool())
	assert.Equal(t, int64(0), empty.Get("count").Int())

	h.mustRun("--catalog", testCatalog, "add", "shirt")
	h.mustRun("--catalog", testCatalog, "add", "shirt")

	v := gjson.Parse(h.mustRun("show", "-o", "json"))
	assert.False(t, v.Get("empty").Bool())
	assert.Equal(t, int64(2), v.Get("count").Int())
	assert.Equal(t, "Shirt", v.Get("rows.0.title").String())
	assert.Contains(t, v.Get("shipping").String(), "75")
}

func TestShow_Raw(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--id", "3", "--title", "Sticker", "--price", "40")

	raw := gjson.Parse(h.mustRun("show", "-o", "raw"))
	assert.Equal(t, "Sticker", raw.Get("0.title").String())
}

func TestLs_JSON(t *testing.T) {
	h := newHarness(t)
	h.mustRun("--catalog", testCatalog, "add", "shirt")
	h.mustRun("--catalog", testCatalog, "add", "hat")
	h.mustRun("qty", "2", "3")

	rows := gjson.Parse(h.mustRun("ls", "-o", "json", "--sort=-qty"))
	require.Len(t, rows.Array(), 2)
	assert.Equal(t, "Hat", rows.Get("0.title").String())
	assert.Equal(t, int64(3), rows.Get("0.qty").Int())

	rows = gjson.Parse(h.mustRun("ls", "-o", "json", "--filter", "title=Shirt"))
	require.Len(t, rows.Array(), 1)
	assert.Equal(t, "Shirt", rows.Get("0.title").String())
}

func TestCatalog_List(t *testing.T) {
	h := newHarness(t)

	rows := gjson.Parse(h.mustRun("--catalog", testCatalog, "catalog", "-o", "json", "--sort", "sku"))
	require.Len(t, rows.Array(), 3)
	assert.Equal(t, "hat", rows.Get("0.sku").String())
	assert.Equal(t, "sticker", rows.Get("2.sku").String())

	// Listing the catalog leaves the cart alone.
	assert.Empty(t, h.items().Array())

	_, _, err := h.run("catalog")
	assert.ErrorIs(t, err, session.ErrNoCatalog)
}

func TestProfiles_AreIsolated(t *testing.T) {
	h := newHarness(t)
	h.mustRun("-p", "alpha", "add", "--id", "1", "--price", "5")

	assert.Len(t, gjson.Parse(h.mustRun("-p", "alpha", "debug", "items")).Array(), 1)
	assert.Empty(t, gjson.Parse(h.mustRun("-p", "beta", "debug", "items")).Array())
}

func TestDebug_ExportAndDiff(t *testing.T) {
	h := newHarness(t)
	h.mustRun("debug", "add", `{"id":4,"title":"Pin","price":12}`)

	snap := filepath.Join(t.TempDir(), "cart.json")
	h.mustRun("debug", "export", snap)

	data, err := os.ReadFile(snap)
	require.NoError(t, err)
	assert.Equal(t, "Pin", gjson.GetBytes(data, "0.title").String())

	assert.Contains(t, h.mustRun("debug", "diff", snap), "No differences.")

	h.mustRun("inc", "4")
	out := h.mustRun("debug", "diff", snap)
	assert.NotContains(t, out, "No differences.")
	assert.Contains(t, out, "qty")

	h.mustRun("debug", "clear")
	assert.Empty(t, h.items().Array())
}

func TestDebug_AddInvalid(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("debug", "add")
	assert.ErrorIs(t, err, errMissingArg)

	_, _, err = h.run("debug", "add", "[1,2]")
	assert.Error(t, err)
}

func TestRootFlags_Validation(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown storage", []string{"--storage", "redis", "show"}},
		{"negative shipping", []string{"--shipping=-1", "show"}},
		{"jammed profile", []string{"--profile", "--storage", "show"}},
		{"bad output", []string{"show", "-o", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := h.run(tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestBrokenCatalog_CartStillWorks(t *testing.T) {
	h := newHarness(t)
	broken := "../catalog/testdata/invalid.hcl"

	_, notices, err := h.run("--catalog", broken, "add", "--id", "5", "--price", "20", "--title", "Cap")
	require.NoError(t, err)
	assert.Contains(t, notices, "Catalog unavailable")
	assert.Contains(t, notices, "Added: Cap")

	h.mustRun("--catalog", broken, "inc", "5")
	v := gjson.Parse(h.mustRun("--catalog", broken, "show", "-o", "json"))
	assert.Equal(t, int64(2), v.Get("count").Int())

	_, _, err = h.run("--catalog", broken, "add", "shirt")
	assert.ErrorIs(t, err, session.ErrCatalog)

	_, _, err = h.run("--catalog", broken, "catalog")
	assert.ErrorIs(t, err, session.ErrCatalog)
}
