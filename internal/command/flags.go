// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/config"
	"github.com/staranto/cartctl/internal/money"
	"github.com/staranto/cartctl/internal/storage"
	"github.com/staranto/cartctl/internal/view"
)

func init() {
	cfg, _ = config.Load("")
}

var cfg config.Type

// Flags hold their parsed value, so every command gets its own instance.
func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the attributes available to --attrs",
		HideDefault: true,
	}
}

func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewSessionFlags are the root flags that select the cart and how it is
// priced and displayed.
func NewSessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "cart profile; each profile keeps its own cart",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CARTCTL_PROFILE"),
				yaml.YAML("profile", altsrc.StringSourcer(cfg.Source)),
			),
			Value: storage.DefaultProfile,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.StringFlag{
			Name:  "storage",
			Usage: "cart storage driver (file, memory)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CARTCTL_STORAGE"),
				yaml.YAML("storage.driver", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "file",
			Validator: func(value string) error {
				return FlagValidators(value, StorageValidator)
			},
		},
		&cli.StringFlag{
			Name:  "key",
			Usage: "storage key of the cart slot",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CARTCTL_KEY"),
				yaml.YAML("storage.key", altsrc.StringSourcer(cfg.Source)),
			),
			Value: storage.DefaultKey,
		},
		&cli.StringFlag{
			Name:  "locale",
			Usage: "locale used to format amounts",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CARTCTL_LOCALE"),
				yaml.YAML("locale", altsrc.StringSourcer(cfg.Source)),
			),
			Value: money.DefaultLocale,
		},
		&cli.StringFlag{
			Name:  "currency",
			Usage: "ISO 4217 currency code, derived from the locale when empty",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("currency.code", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.FloatFlag{
			Name:  "shipping",
			Usage: "flat shipping fee charged on a non-empty cart",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("shipping.fee", altsrc.StringSourcer(cfg.Source)),
			),
			Value: view.DefaultShippingFee,
			Validator: func(value float64) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.StringFlag{
			Name:  "catalog",
			Usage: "product catalog, a local .hcl file or s3://bucket/key",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CARTCTL_CATALOG"),
				yaml.YAML("catalog", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.StringFlag{
			Name:  "cdn",
			Usage: "base URL exposed to the catalog as ${cdn}",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("catalog_cdn", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.StringFlag{
			Name:   "aws-profile",
			Usage:  "shared AWS config profile for s3:// catalogs",
			Hidden: true,
			Sources: cli.NewValueSourceChain(
				yaml.YAML("catalog_aws.profile", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.StringFlag{
			Name:   "aws-region",
			Usage:  "AWS region for s3:// catalogs",
			Hidden: true,
			Sources: cli.NewValueSourceChain(
				yaml.YAML("catalog_aws.region", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.StringFlag{
			Name:   "s3-endpoint",
			Usage:  "S3 compatible endpoint for s3:// catalogs",
			Hidden: true,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("CARTCTL_S3_ENDPOINT"),
				yaml.YAML("catalog_endpoint", altsrc.StringSourcer(cfg.Source)),
			),
		},
	}
}

// NewOutputFlags are the presentation flags, namespaced to a command in the
// config file.
func NewOutputFlags(ns string, outputs ...string) []cli.Flag {
	if len(outputs) == 0 {
		outputs = validOutputFlagValues
	}
	return []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator(outputs...))
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}
}

// NewDatasetFlags are the column, filter and sort flags of list commands.
func NewDatasetFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
	}
}

// NewGlobalFlags are all flags of a list command.
func NewGlobalFlags(ns string) []cli.Flag {
	return append(NewDatasetFlags(ns), NewOutputFlags(ns)...)
}

// pathHas reports whether target is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
