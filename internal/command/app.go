// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/config"
	"github.com/staranto/cartctl/internal/meta"
	"github.com/staranto/cartctl/internal/version"
)

// InitApp builds the cartctl command tree for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg immediately following the binary is the subcommand and also the
	// namespace used when retrieving config values. It could be -h/--help, so
	// ignore it if it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	loaded, _ := config.Load(ns)
	cfg = loaded

	m := meta.Meta{
		Args:    args,
		Config:  loaded,
		Context: ctx,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}

	return NewApp(m), nil
}

// NewApp assembles the commands around m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:    "cartctl",
		Usage:   "Shopping cart control",
		Version: version.Version,
		Flags:   NewSessionFlags(),
		Metadata: map[string]any{
			"meta": m,
		},
		Writer:    m.Stdout,
		ErrWriter: m.Stderr,
	}

	app.Commands = append(app.Commands,
		ShowCommandBuilder(m),
		LsCommandBuilder(m),
		AddCommandBuilder(m),
		IncCommandBuilder(m),
		DecCommandBuilder(m),
		RmCommandBuilder(m),
		QtyCommandBuilder(m),
		ClearCommandBuilder(m),
		CheckoutCommandBuilder(m),
		CatalogCommandBuilder(m),
		UiCommandBuilder(m),
		DebugCommandBuilder(m),
		CompletionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	sortFlags(app)

	return app
}

func sortFlags(cmd *cli.Command) {
	sort.Slice(cmd.Flags, func(i, j int) bool {
		return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
	})
	for _, sub := range cmd.Commands {
		sortFlags(sub)
	}
}
