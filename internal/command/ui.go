// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/meta"
	"github.com/staranto/cartctl/internal/tui"
)

// UiCommandAction opens the interactive cart page.
func UiCommandAction(ctx context.Context, cmd *cli.Command) error {
	m, err := tui.Open(ctx, SessionOptions(cmd))
	if err != nil {
		return err
	}
	return tui.Run(ctx, m)
}

func UiCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "ui",
		Usage:     "interactive cart page",
		UsageText: "cartctl ui [--catalog <file|s3://bucket/key>]",
		Action:    UiCommandAction,
		Meta:      meta,
	}
	return b.Build()
}
