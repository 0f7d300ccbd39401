// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/interact"
	"github.com/staranto/cartctl/internal/meta"
	"github.com/staranto/cartctl/internal/notify"
	"github.com/staranto/cartctl/internal/session"
)

var errMissingArg = errors.New("missing argument")

func newShowFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "show",
		Usage: "show the cart after the change",
	}
}

// dispatchAndShow opens a session, dispatches ev and, with --show, renders
// the resulting view.
func dispatchAndShow(ctx context.Context, cmd *cli.Command, ev interact.Event, mutate ...func(*session.Options)) error {
	s, err := OpenSession(ctx, cmd, mutate...)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Dispatch(ctx, ev); err != nil {
		return err
	}
	return showIfRequested(cmd, s)
}

func showIfRequested(cmd *cli.Command, s *session.Session) error {
	if !cmd.Bool("show") {
		return nil
	}
	return s.Render(stdout(cmd), "text", TextOptions(cmd))
}

func idArg(cmd *cli.Command) (int, error) {
	if cmd.Args().Len() < 1 {
		return 0, fmt.Errorf("%w: line item id", errMissingArg)
	}
	return cart.ParseID(cmd.Args().First())
}

// AddCommandAction adds a catalog product by sku or id, or a product given
// entirely by flags.
func AddCommandAction(ctx context.Context, cmd *cli.Command) error {
	s, err := OpenSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if ref := cmd.Args().First(); ref != "" {
		err = s.AddRef(ctx, ref)
	} else {
		if !cmd.IsSet("id") || !cmd.IsSet("price") {
			return fmt.Errorf("%w: a catalog sku or --id and --price", errMissingArg)
		}
		err = s.AddProduct(ctx, cart.Product{
			ID:    cmd.String("id"),
			Title: cmd.String("title"),
			Price: cmd.String("price"),
			Image: cmd.String("image"),
		})
	}
	if err != nil {
		return err
	}
	return showIfRequested(cmd, s)
}

func AddCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "add",
		Usage:     "add a product to the cart",
		UsageText: "cartctl add <sku|id> [options]\ncartctl add --id <id> --price <price> [--title <title>] [--image <url>]",
		ArgsUsage: "[sku|id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "product id"},
			&cli.StringFlag{Name: "title", Usage: "product title"},
			&cli.StringFlag{Name: "price", Usage: "unit price"},
			&cli.StringFlag{Name: "image", Usage: "image URL"},
			newShowFlag(),
		},
		Action: AddCommandAction,
		Meta:   meta,
	}
	return b.Build()
}

// rowCommandBuilder builds the single-row controls: inc, dec and rm.
func rowCommandBuilder(meta meta.Meta, name, usage string, role interact.Role) *cli.Command {
	b := CommandBuilder{
		Name:      name,
		Usage:     usage,
		UsageText: fmt.Sprintf("cartctl %s <id> [options]", name),
		ArgsUsage: "<id>",
		Flags:     []cli.Flag{newShowFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := idArg(cmd)
			if err != nil {
				return err
			}
			return dispatchAndShow(ctx, cmd, interact.Event{Role: role, ID: id})
		},
		Meta: meta,
	}
	return b.Build()
}

func IncCommandBuilder(meta meta.Meta) *cli.Command {
	return rowCommandBuilder(meta, "inc", "increase a line item's quantity by one", interact.RoleIncrement)
}

func DecCommandBuilder(meta meta.Meta) *cli.Command {
	return rowCommandBuilder(meta, "dec", "decrease a line item's quantity by one, never below one", interact.RoleDecrement)
}

func RmCommandBuilder(meta meta.Meta) *cli.Command {
	return rowCommandBuilder(meta, "rm", "remove a line item", interact.RoleRemove)
}

// QtyCommandAction sets a line item's quantity. Invalid input reads as 1.
func QtyCommandAction(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("%w: quantity", errMissingArg)
	}
	return dispatchAndShow(ctx, cmd, interact.Event{
		Role:  interact.RoleQuantity,
		ID:    id,
		Value: cmd.Args().Get(1),
	})
}

func QtyCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "qty",
		Usage:     "set a line item's quantity",
		UsageText: "cartctl qty <id> <quantity> [options]",
		ArgsUsage: "<id> <quantity>",
		Flags:     []cli.Flag{newShowFlag()},
		Action:    QtyCommandAction,
		Meta:      meta,
	}
	return b.Build()
}

// ClearCommandAction empties the cart, asking first on a terminal unless
// --yes is given.
func ClearCommandAction(ctx context.Context, cmd *cli.Command) error {
	var confirmer notify.Confirmer
	if cmd.Bool("yes") {
		confirmer = notify.Fixed(true)
	} else {
		confirmer = notify.NewTerminalConfirmer()
	}
	return dispatchAndShow(ctx, cmd, interact.Event{Role: interact.RoleClear}, func(o *session.Options) {
		o.Confirmer = confirmer
	})
}

func ClearCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "clear",
		Usage:     "empty the cart",
		UsageText: "cartctl clear [--yes]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "do not ask for confirmation",
			},
			newShowFlag(),
		},
		Action: ClearCommandAction,
		Meta:   meta,
	}
	return b.Build()
}

// CheckoutCommandAction completes the purchase: the cart must not be empty
// and both name and email are required.
func CheckoutCommandAction(ctx context.Context, cmd *cli.Command) error {
	return dispatchAndShow(ctx, cmd, interact.Event{
		Role: interact.RoleCheckout,
		Fields: map[string]string{
			"name":  cmd.String("name"),
			"email": cmd.String("email"),
		},
	})
}

func CheckoutCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "checkout",
		Usage:     "check out the cart",
		UsageText: "cartctl checkout --name <name> --email <email>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Usage:   "buyer name",
				Sources: cli.EnvVars("CARTCTL_NAME"),
			},
			&cli.StringFlag{
				Name:    "email",
				Usage:   "buyer email, where the receipt is sent",
				Sources: cli.EnvVars("CARTCTL_EMAIL"),
			},
			newShowFlag(),
		},
		Action: CheckoutCommandAction,
		Meta:   meta,
	}
	return b.Build()
}
