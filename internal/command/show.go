// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/meta"
)

// ShowCommandAction renders the cart page: rows, subtotal, shipping and
// total. --output raw prints the persisted slot value as is.
func ShowCommandAction(ctx context.Context, cmd *cli.Command) error {
	s, err := OpenSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	w := stdout(cmd)
	if cmd.String("output") == "raw" {
		snap, err := s.Store.Snapshot()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(snap))
		return err
	}

	return s.Render(w, cmd.String("output"), TextOptions(cmd))
}

func ShowCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "show",
		Usage:     "show the cart with its totals",
		UsageText: "cartctl show [options]",
		Flags:     NewOutputFlags("show"),
		Action:    ShowCommandAction,
		Meta:      meta,
	}
	return b.Build()
}
