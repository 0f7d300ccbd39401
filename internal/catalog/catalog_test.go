// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package catalog

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/cartctl/internal/cart"
)

func TestLoad_File(t *testing.T) {
	c, err := Load(context.Background(), "testdata/vali.hcl", Options{CDN: "https://cdn.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "testdata/vali.hcl", c.Source)
	assert.Equal(t, 3, c.Len())

	products := c.Products()
	require.Len(t, products, 3)
	assert.Equal(t, cart.Product{ID: "1", Title: "Shirt", Price: "500", Image: "https://cdn.example.com/shirt.png"}, products[0])
	assert.Equal(t, cart.Product{ID: "2", Title: "Hat", Price: "250.5", Image: "https://cdn.example.com/hat.png"}, products[1])
	assert.Equal(t, "", products[2].Image)

	entries := c.Entries()
	assert.Equal(t, []string{"shirt", "hat", "sticker"}, []string{entries[0].SKU, entries[1].SKU, entries[2].SKU})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target error
	}{
		{name: "missing", source: "testdata/nope.hcl", target: os.ErrNotExist},
		{name: "duplicate", source: "testdata/duplicate.hcl", target: ErrDuplicate},
		{name: "invalid", source: "testdata/invalid.hcl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.source, Options{})
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	c, err := Load(context.Background(), "testdata/vali.hcl", Options{})
	require.NoError(t, err)

	tests := []struct {
		ref   string
		title string
		ok    bool
	}{
		{ref: "shirt", title: "Shirt", ok: true},
		{ref: " hat ", title: "Hat", ok: true},
		{ref: "3", title: "Sticker", ok: true},
		{ref: "3.0", title: "Sticker", ok: true},
		{ref: "9", ok: false},
		{ref: "socks", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			p, ok := c.Lookup(tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.title, p.Title)
		})
	}
}

func TestLookup_NilCatalog(t *testing.T) {
	var c *Catalog
	_, ok := c.Lookup("shirt")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
	assert.Nil(t, c.Products())
}

func TestProductsNormalize(t *testing.T) {
	c, err := Load(context.Background(), "testdata/vali.hcl", Options{})
	require.NoError(t, err)

	for _, p := range c.Products() {
		it, err := p.Normalize()
		require.NoError(t, err)
		assert.Equal(t, 1, it.Qty)
	}
}

type fakeGetter struct {
	body string
	err  error
}

func (f fakeGetter) GetObject(_ context.Context, _ *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestLoad_S3(t *testing.T) {
	src, err := os.ReadFile("testdata/vali.hcl")
	require.NoError(t, err)

	c, err := Load(context.Background(), "s3://shop/catalogs/vali", Options{
		CDN:    "https://cdn",
		Getter: fakeGetter{body: string(src)},
	})
	require.NoError(t, err)
	assert.Equal(t, "s3://shop/catalogs/vali", c.Source)
	assert.Equal(t, 3, c.Len())

	p, ok := c.Lookup("hat")
	require.True(t, ok)
	assert.Equal(t, "https://cdn/hat.png", p.Image)

	_, err = Load(context.Background(), "s3://shop/vali.hcl", Options{Getter: fakeGetter{err: errors.New("access denied")}})
	assert.ErrorContains(t, err, "access denied")

	_, err = Load(context.Background(), "s3://shop", Options{Getter: fakeGetter{}})
	assert.Error(t, err)
}
