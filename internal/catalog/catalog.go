// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"

	"github.com/staranto/cartctl/internal/aws"
	"github.com/staranto/cartctl/internal/cart"
)

// ErrDuplicate is returned when two products share a sku or an id.
var ErrDuplicate = errors.New("duplicate product")

type fileSpec struct {
	Products []productSpec `hcl:"product,block"`
}

type productSpec struct {
	SKU   string  `hcl:"sku,label"`
	ID    int     `hcl:"id"`
	Title string  `hcl:"title"`
	Price float64 `hcl:"price"`
	Image string  `hcl:"image,optional"`
}

// Entry is one product as declared in the catalog file.
type Entry struct {
	SKU   string  `json:"sku" yaml:"sku"`
	ID    int     `json:"id" yaml:"id"`
	Title string  `json:"title" yaml:"title"`
	Price float64 `json:"price" yaml:"price"`
	Image string  `json:"image" yaml:"image"`
}

// Product returns the add trigger attributes for the entry.
func (e Entry) Product() cart.Product {
	return cart.Product{
		ID:    strconv.Itoa(e.ID),
		Title: e.Title,
		Price: strconv.FormatFloat(e.Price, 'f', -1, 64),
		Image: e.Image,
	}
}

// Catalog is an ordered, indexed set of products.
type Catalog struct {
	Source  string
	entries []Entry
	bySKU   map[string]int
	byID    map[int]int
}

// Options controls how a catalog source is fetched and evaluated.
type Options struct {
	// CDN is exposed to the catalog file as the variable cdn.
	CDN string

	// Getter reads s3:// sources. When nil a client is built from the
	// shared AWS config.
	Getter     aws.ObjectGetter
	AWSProfile string
	Region     string
	Endpoint   string
}

// Load reads a catalog from a local path or an s3://bucket/key URI.
func Load(ctx context.Context, source string, opts Options) (*Catalog, error) {
	log.Debugf("catalog source: %s", source)

	var (
		name string
		src  []byte
		err  error
	)

	if strings.HasPrefix(source, "s3://") {
		name, src, err = fetchS3(ctx, source, opts)
	} else {
		name = source
		src, err = os.ReadFile(source)
		if err != nil {
			err = fmt.Errorf("failed to read catalog: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	c, err := Parse(name, src, opts.CDN)
	if err != nil {
		return nil, err
	}
	c.Source = source
	return c, nil
}

func fetchS3(ctx context.Context, source string, opts Options) (string, []byte, error) {
	bucket, key, err := aws.ParseURI(source)
	if err != nil {
		return "", nil, err
	}

	getter := opts.Getter
	if getter == nil {
		var awsOpts []aws.Option
		if opts.AWSProfile != "" {
			awsOpts = append(awsOpts, aws.WithProfile(opts.AWSProfile))
		}
		if opts.Region != "" {
			awsOpts = append(awsOpts, aws.WithRegion(opts.Region))
		}
		cfg, err := aws.LoadAWSConfig(ctx, awsOpts...)
		if err != nil {
			return "", nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		getter = aws.NewS3(cfg, aws.WithEndpoint(opts.Endpoint))
	}

	data, err := aws.ReadObject(ctx, getter, bucket, key)
	if err != nil {
		return "", nil, err
	}

	// hclsimple picks the syntax from the file suffix.
	name := path.Base(key)
	if !strings.HasSuffix(name, ".hcl") && !strings.HasSuffix(name, ".json") {
		name += ".hcl"
	}
	return name, data, nil
}

// Parse decodes catalog source. filename decides between native HCL and
// JSON syntax and is used in diagnostics.
func Parse(filename string, src []byte, cdn string) (*Catalog, error) {
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cdn": cty.StringVal(strings.TrimSuffix(cdn, "/")),
		},
	}

	var spec fileSpec
	if err := hclsimple.Decode(filename, src, evalCtx, &spec); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := &Catalog{
		Source: filename,
		bySKU:  make(map[string]int, len(spec.Products)),
		byID:   make(map[int]int, len(spec.Products)),
	}
	for _, p := range spec.Products {
		if _, ok := c.bySKU[p.SKU]; ok {
			return nil, fmt.Errorf("%w: sku %q", ErrDuplicate, p.SKU)
		}
		if _, ok := c.byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicate, p.ID)
		}
		c.bySKU[p.SKU] = len(c.entries)
		c.byID[p.ID] = len(c.entries)
		c.entries = append(c.entries, Entry(p))
	}

	log.Debugf("catalog products: %d", len(c.entries))
	return c, nil
}

// Entries returns the products in declaration order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Products returns the add trigger attributes in declaration order.
func (c *Catalog) Products() []cart.Product {
	if c == nil {
		return nil
	}
	out := make([]cart.Product, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Product())
	}
	return out
}

// Lookup finds a product by sku, falling back to its numeric id.
func (c *Catalog) Lookup(ref string) (cart.Product, bool) {
	if c == nil {
		return cart.Product{}, false
	}
	ref = strings.TrimSpace(ref)
	if i, ok := c.bySKU[ref]; ok {
		return c.entries[i].Product(), true
	}
	if id, err := cart.ParseID(ref); err == nil {
		if i, ok := c.byID[id]; ok {
			return c.entries[i].Product(), true
		}
	}
	return cart.Product{}, false
}

// Len is the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
