// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/differ"
	"github.com/staranto/cartctl/internal/meta"
)

// DebugItemsAction prints the line items as stored.
func DebugItemsAction(ctx context.Context, cmd *cli.Command) error {
	s, err := OpenSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := s.Store.Snapshot()
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, snap, "", "  "); err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout(cmd), pretty.String())
	return err
}

// DebugClearAction empties the cart without confirmation or notices.
func DebugClearAction(ctx context.Context, cmd *cli.Command) error {
	s, err := OpenSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Store.Clear(ctx)
}

// DebugAddAction adds the product described by a JSON object, the same
// attributes an add trigger carries.
func DebugAddAction(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.Args().First()
	if raw == "" {
		return fmt.Errorf("%w: product JSON", errMissingArg)
	}
	if !gjson.Valid(raw) || !gjson.Parse(raw).IsObject() {
		return fmt.Errorf("%w: not a JSON object", cart.ErrInvalidProduct)
	}

	doc := gjson.Parse(raw)
	p := cart.Product{
		ID:    doc.Get("id").String(),
		Title: doc.Get("title").String(),
		Price: doc.Get("price").String(),
		Image: doc.Get("image").String(),
	}

	s, err := OpenSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.AddProduct(ctx, p)
}

// DebugDiffAction compares a saved snapshot with the current cart.
func DebugDiffAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("%w: snapshot file", errMissingArg)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	s, err := OpenSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	after, err := s.Store.Snapshot()
	if err != nil {
		return err
	}

	_, err = differ.Diff(stdout(cmd), before, after, cmd.Bool("color"))
	return err
}

// DebugExportAction writes the current snapshot to a file, or stdout.
func DebugExportAction(ctx context.Context, cmd *cli.Command) error {
	s, err := OpenSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := s.Store.Snapshot()
	if err != nil {
		return err
	}

	path := strings.TrimSpace(cmd.Args().First())
	if path == "" || path == "-" {
		_, err = fmt.Fprintln(stdout(cmd), string(snap))
		return err
	}
	if err := os.WriteFile(path, snap, 0o600); err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}
	return nil
}

func DebugCommandBuilder(meta meta.Meta) *cli.Command {
	sub := func(name, usage, argsUsage string, action func(context.Context, *cli.Command) error, flags ...cli.Flag) *cli.Command {
		b := CommandBuilder{
			Name:      name,
			Usage:     usage,
			UsageText: strings.TrimSpace("cartctl debug " + name + " " + argsUsage),
			ArgsUsage: argsUsage,
			Flags:     flags,
			Action:    action,
			Meta:      meta,
		}
		return b.Build()
	}

	b := CommandBuilder{
		Name:      "debug",
		Usage:     "inspect and manipulate the raw cart",
		UsageText: "cartctl debug <items|clear|add|diff|export>",
		Commands: []*cli.Command{
			sub("items", "print the stored line items", "", DebugItemsAction),
			sub("clear", "empty the cart without asking", "", DebugClearAction),
			sub("add", "add a product given as JSON", "<json>", DebugAddAction),
			sub("diff", "compare a snapshot file with the cart", "<file>", DebugDiffAction,
				&cli.BoolFlag{Name: "color", Aliases: []string{"c"}, Usage: "color the diff"}),
			sub("export", "write the cart snapshot to a file", "[file]", DebugExportAction),
		},
		Meta: meta,
	}
	return b.Build()
}
