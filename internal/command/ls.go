// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/meta"
)

var lineItemDefaultAttrs = []string{".id", "title", "price::$", "qty", "subtotal::$"}

// LsCommandAction lists the cart's line items through the filter, sort and
// output pipeline.
func LsCommandAction(ctx context.Context, cmd *cli.Command) error {
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(LineItemRow{})) {
		return nil
	}

	al, err := BuildAttrs(cmd, lineItemDefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	s, err := OpenSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	return EmitJSONAPISlice(lineItemRows(s.Store.Items()), al, OutputOptions(cmd, s.Formatter), stdout(cmd))
}

func LsCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "ls",
		Usage:     "list line items",
		UsageText: "cartctl ls [options]",
		Flags:     append(NewGlobalFlags("ls"), newSchemaFlag()),
		Action:    LsCommandAction,
		Meta:      meta,
	}
	return b.Build()
}
