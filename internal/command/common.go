// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"

	"github.com/apex/log"
	"github.com/hashicorp/jsonapi"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/cartctl/internal/attrs"
	"github.com/staranto/cartctl/internal/catalog"
	"github.com/staranto/cartctl/internal/config"
	"github.com/staranto/cartctl/internal/meta"
	"github.com/staranto/cartctl/internal/notify"
	"github.com/staranto/cartctl/internal/output"
	"github.com/staranto/cartctl/internal/session"
	"github.com/staranto/cartctl/internal/storage"
	"github.com/staranto/cartctl/internal/view"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr cartctl-<subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if !cmd.Bool("tldr") {
		return false
	}
	if _, err := exec.LookPath("tldr"); err == nil {
		c := exec.CommandContext(ctx, "tldr", "cartctl-"+subcmd)
		c.Stdout = stdout(cmd)
		c.Stderr = stderr(cmd)
		_ = c.Run()
	}
	return true
}

// DumpSchemaIfRequested prints the attributes of t when --schema is set, and
// returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(stdout(cmd), t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	al.SetGlobalTransformSpec()
	return al, nil
}

// EmitJSONAPISlice marshals a slice as JSON:API and passes it to the common
// output routine.
func EmitJSONAPISlice(results any, al attrs.AttrList, opts output.Options, w io.Writer) error {
	var raw bytes.Buffer
	if err := jsonapi.MarshalPayload(&raw, results); err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return output.SliceDiceSpit(raw, al, opts, "data", w)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

func stdout(cmd *cli.Command) io.Writer {
	if w := GetMeta(cmd).Stdout; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := GetMeta(cmd).Stderr; w != nil {
		return w
	}
	return os.Stderr
}

// Notifier picks the styled notifier for a terminal and plain lines
// otherwise.
func Notifier(cmd *cli.Command) notify.Notifier {
	w := stderr(cmd)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return notify.Styled{W: w}
	}
	return notify.Alert{W: w}
}

// SessionOptions maps the root flags onto session options.
func SessionOptions(cmd *cli.Command) session.Options {
	pricing := view.Pricing{ShippingFee: cmd.Float("shipping")}
	return session.Options{
		Storage: storage.Options{
			Driver:  cmd.String("storage"),
			Profile: cmd.String("profile"),
			Key:     cmd.String("key"),
		},
		Locale:   cmd.String("locale"),
		Currency: cmd.String("currency"),
		Pricing:  &pricing,
		Catalog:  cmd.String("catalog"),
		CatalogOptions: catalog.Options{
			CDN:        cmd.String("cdn"),
			AWSProfile: cmd.String("aws-profile"),
			Region:     cmd.String("aws-region"),
			Endpoint:   cmd.String("s3-endpoint"),
		},
		Notifier: Notifier(cmd),
	}
}

// OpenSession opens the cart selected by the root flags. mutate adjusts the
// options before the session is opened.
func OpenSession(ctx context.Context, cmd *cli.Command, mutate ...func(*session.Options)) (*session.Session, error) {
	opts := SessionOptions(cmd)
	for _, fn := range mutate {
		fn(&opts)
	}
	s, err := session.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	log.Debugf("session: slot=%s catalog=%q", s.Slot, opts.Catalog)
	return s, nil
}

// TextOptions collects the text rendering flags and config.
func TextOptions(cmd *cli.Command) view.TextOptions {
	pad, _ := config.GetInt("padding", 0)
	return view.TextOptions{
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: pad,
		Colors:  getColors("colors"),
	}
}

// OutputOptions collects the list output flags and config.
func OutputOptions(cmd *cli.Command, money attrs.Formatter) output.Options {
	text := TextOptions(cmd)
	return output.Options{
		Output:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Color:   text.Color,
		Titles:  text.Titles,
		Padding: text.Padding,
		Colors:  text.Colors,
		Money:   money,
	}
}

// getColors returns configured color values for table rendering.
func getColors(key string) view.Colors {
	var c view.Colors
	c.Title, _ = config.GetString(key+".title", view.DefaultColors.Title)
	c.Even, _ = config.GetString(key+".even", view.DefaultColors.Even)
	c.Odd, _ = config.GetString(key+".odd", view.DefaultColors.Odd)
	return c
}

// CommandBuilder constructs a cli.Command using a consistent pattern: meta
// wiring, the tldr flag and sorted flags.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	ArgsUsage string
	Flags     []cli.Flag
	Commands  []*cli.Command
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *CommandBuilder) Build() *cli.Command {
	c := &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		ArgsUsage: b.ArgsUsage,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags:    append(b.Flags, newTLDRFlag()),
		Commands: b.Commands,
		Action:   b.Action,
	}
	if b.Action != nil {
		name := b.Name
		action := b.Action
		c.Action = func(ctx context.Context, cmd *cli.Command) error {
			log.Debugf("Executing action for %s %v", name, cmd.Args().Slice())
			if ShortCircuitTLDR(ctx, cmd, name) {
				return nil
			}
			return action(ctx, cmd)
		}
	}
	return c
}
