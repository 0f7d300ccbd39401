// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/meta"
	"github.com/staranto/cartctl/internal/session"
)

var productDefaultAttrs = []string{"sku", ".id", "title", "price::$"}

// CatalogCommandAction lists the products that can be added to the cart.
func CatalogCommandAction(ctx context.Context, cmd *cli.Command) error {
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(ProductRow{})) {
		return nil
	}

	al, err := BuildAttrs(cmd, productDefaultAttrs...)
	if err != nil {
		return err
	}

	s, err := OpenSession(ctx, cmd, func(o *session.Options) {
		// Listing the catalog never touches the cart.
		o.Slot = nil
		o.Storage.Driver = "memory"
	})
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.Products()
	if err != nil {
		return err
	}

	return EmitJSONAPISlice(productRows(c.Entries()), al, OutputOptions(cmd, s.Formatter), stdout(cmd))
}

func CatalogCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "catalog",
		Usage:     "list catalog products",
		UsageText: "cartctl catalog [options]",
		Flags:     append(NewGlobalFlags("catalog"), newSchemaFlag()),
		Action:    CatalogCommandAction,
		Meta:      meta,
	}
	return b.Build()
}
