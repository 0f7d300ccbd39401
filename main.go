// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/cartctl/internal/command"
	"github.com/staranto/cartctl/internal/config"
	mylog "github.com/staranto/cartctl/internal/log"
	"github.com/staranto/cartctl/internal/storage"
	"github.com/staranto/cartctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	// Best-effort: the file driver creates its profile directories beneath it.
	if _, ok, err := storage.EnsureBaseDir(); err != nil && !ok {
		fmt.Fprintln(os.Stderr, err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an argument set. "@name" anywhere after the
// subcommand is replaced by the list configured at <subcommand>.<name>. With
// no "@name", <subcommand>.defaults is inserted right after the subcommand.
func mangleArguments(args []string) []string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args
	}

	// We know the first two args are going to be the executable and command.
	preamble := slices.Clone(args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args[2:] {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	rest := slices.Clone(args[2:])
	idx := 0
	set := "defaults"
	explicit := false
	for i, a := range rest {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			idx = i
			explicit = true
			rest = slices.Delete(rest, i, i+1)
			break
		}
	}

	key := args[1] + "." + set
	setArgs, err := config.GetStringSlice(key)
	if err != nil && explicit {
		log.Warnf("argument set %s not found in config", key)
	}

	var expanded []string
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}
	rest = slices.Insert(rest, idx, expanded...)

	args = append(preamble, rest...)
	log.Debugf("set=%s, args=%v", set, args)
	return args
}
