// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/meta"
)

const bashCompletionScript = `# bash completion for cartctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_cartctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    local session="--profile -p --storage --key --locale --currency --shipping --catalog --cdn"

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "show ls add inc dec rm qty clear checkout catalog ui debug completion $session --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local output="--color -c --output -o --titles -t --tldr"
    local dataset="--attrs -a --filter -f --sort -s --schema"

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --storage)
            COMPREPLY=( $(compgen -W "file memory" -- "$cur") )
            return 0
            ;;
        --catalog)
            COMPREPLY=( $(compgen -f -X '!*.hcl' -- "$cur") )
            return 0
            ;;
    esac

    case "$cmd" in
        show)
            local opts="$output"
            ;;
        ls|catalog)
            local opts="$output $dataset"
            ;;
        add)
            local opts="--id --title --price --image --show"
            ;;
        inc|dec|rm|qty)
            local opts="--show"
            ;;
        clear)
            local opts="--yes -y --show"
            ;;
        checkout)
            local opts="--name --email --show"
            ;;
        debug)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "items clear add diff export" -- "$cur") )
                return 0
            fi
            local opts="--color -c"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts $session" -- "$cur") )
    return 0
}

complete -F _cartctl cartctl
`

const zshCompletionScript = `#compdef cartctl

_cartctl() {
  local -a cmds
  cmds=(
    'show:show the cart with its totals'
    'ls:list line items'
    'add:add a product to the cart'
    'inc:increase a line item quantity'
    'dec:decrease a line item quantity'
    'rm:remove a line item'
    'qty:set a line item quantity'
    'clear:empty the cart'
    'checkout:check out the cart'
    'catalog:list catalog products'
    'ui:interactive cart page'
    'debug:inspect and manipulate the raw cart'
    'completion:generate shell completion script'
  )

  local -a session
  session=(
  '(-p --profile)'{-p,--profile}'[cart profile]:profile'
  '--storage[storage driver]:driver:(file memory)'
  '--key[storage key]:key'
  '--locale[locale]:locale'
  '--currency[currency code]:code'
  '--shipping[shipping fee]:fee'
  '--catalog[product catalog]:catalog:_files -g "*.hcl"'
  '--cdn[catalog cdn]:url'
  )

  local -a output
  output=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  local -a dataset
  dataset=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '--schema[dump schema]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'cartctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    show)
      _arguments -C $session $output
      ;;
    ls|catalog)
      _arguments -C $session $output $dataset
      ;;
    add)
      _arguments -C $session \
        '--id[product id]:id' \
        '--title[product title]:title' \
        '--price[unit price]:price' \
        '--image[image url]:url' \
        '--show[show the cart]' \
        '1::sku'
      ;;
    inc|dec|rm)
      _arguments -C $session '--show[show the cart]' '1:id'
      ;;
    qty)
      _arguments -C $session '--show[show the cart]' '1:id' '2:quantity'
      ;;
    clear)
      _arguments -C $session '(-y --yes)'{-y,--yes}'[do not ask]' '--show[show the cart]'
      ;;
    checkout)
      _arguments -C $session '--name[buyer name]:name' '--email[buyer email]:email' '--show[show the cart]'
      ;;
    debug)
      _arguments -C $session '1:action:(items clear add diff export)' '*::arg:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $session
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _cartctl cartctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := cmd.Args().First()
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(stdout(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout(cmd), zshCompletionScript)
	default:
		fmt.Fprintln(stderr(cmd), "usage: cartctl completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "cartctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
