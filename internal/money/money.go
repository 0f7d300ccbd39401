// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package money formats currency amounts for the configured storefront locale.
package money

import (
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// DefaultLocale is the storefront locale when none is configured.
const DefaultLocale = "es-UY"

// style describes how one locale writes an amount. Pattern is a
// humanize.FormatFloat pattern.
type style struct {
	Symbol  string
	Pattern string
	Suffix  bool
	Tight   bool
}

// The first entry is also the fallback for unsupported locales.
var (
	supported = []language.Tag{
		language.MustParse("es-UY"),
		language.MustParse("en-US"),
		language.MustParse("es-ES"),
		language.MustParse("pt-BR"),
	}
	styles = []style{
		{Symbol: "$", Pattern: "#.###,##"},
		{Symbol: "$", Pattern: "#,###.##", Tight: true},
		{Symbol: "€", Pattern: "#.###,##", Suffix: true},
		{Symbol: "R$", Pattern: "#.###,##"},
	}
	matcher = language.NewMatcher(supported)
)

// Formatter renders amounts in one locale and currency.
type Formatter struct {
	Locale string
	Code   string
	style  style
}

// New returns a Formatter for locale. An empty code derives the currency from
// the locale's region.
func New(locale string, code string) Formatter {
	if locale == "" {
		locale = DefaultLocale
	}

	tag, err := language.Parse(locale)
	if err != nil {
		log.Warnf("unknown locale %q, using %s", locale, DefaultLocale)
		tag = supported[0]
	}
	_, idx, _ := matcher.Match(tag)

	if code == "" {
		code = "XXX"
		if unit, conf := currency.FromTag(supported[idx]); conf != language.No {
			code = unit.String()
		}
	}

	return Formatter{
		Locale: supported[idx].String(),
		Code:   strings.ToUpper(code),
		style:  styles[idx],
	}
}

// Format renders amount with two decimals, grouping and the currency symbol.
func (f Formatter) Format(amount float64) string {
	st := f.style
	if st.Pattern == "" {
		st = styles[0]
	}

	// The sign leads the symbol: -$ 5,00.
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := humanize.FormatFloat(st.Pattern, amount)
	switch {
	case st.Suffix:
		return sign + digits + " " + st.Symbol
	case st.Tight:
		return sign + st.Symbol + digits
	}
	return sign + st.Symbol + " " + digits
}
