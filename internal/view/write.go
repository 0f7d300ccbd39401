// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v2"

	"github.com/staranto/cartctl/internal/money"
)

// TextOptions tunes the text rendering.
type TextOptions struct {
	Color   bool
	Titles  bool
	Padding int
	Colors  Colors
}

// Colors are the title, even-row and odd-row foregrounds used when Color is
// set.
type Colors struct {
	Title string
	Even  string
	Odd   string
}

// DefaultColors matches the storefront palette.
var DefaultColors = Colors{Title: "#f6be00", Even: "#ffffff", Odd: "#00c8f0"}

// Formatted is View with every amount rendered as currency text.
type Formatted struct {
	Currency    string         `json:"currency" yaml:"currency"`
	Empty       bool           `json:"empty" yaml:"empty"`
	Placeholder string         `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Rows        []FormattedRow `json:"rows" yaml:"rows"`
	Count       int            `json:"count" yaml:"count"`
	Subtotal    string         `json:"subtotal" yaml:"subtotal"`
	Shipping    string         `json:"shipping" yaml:"shipping"`
	Total       string         `json:"total" yaml:"total"`
}

type FormattedRow struct {
	ID        int    `json:"id" yaml:"id"`
	Image     string `json:"image" yaml:"image"`
	Title     string `json:"title" yaml:"title"`
	UnitPrice string `json:"unit_price" yaml:"unit_price"`
	Qty       int    `json:"qty" yaml:"qty"`
	LineTotal string `json:"line_total" yaml:"line_total"`
}

// Format renders every amount of v with f.
func Format(v View, f money.Formatter) Formatted {
	out := Formatted{
		Currency:    f.Code,
		Empty:       v.Empty,
		Placeholder: v.Placeholder,
		Rows:        make([]FormattedRow, 0, len(v.Rows)),
		Count:       v.Count,
		Subtotal:    f.Format(v.Subtotal),
		Shipping:    f.Format(v.Shipping),
		Total:       f.Format(v.Total),
	}
	for _, r := range v.Rows {
		out.Rows = append(out.Rows, FormattedRow{
			ID:        r.ID,
			Image:     r.Image,
			Title:     r.Title,
			UnitPrice: f.Format(r.UnitPrice),
			Qty:       r.Qty,
			LineTotal: f.Format(r.LineTotal),
		})
	}
	return out
}

func WriteJSON(w io.Writer, v View, f money.Formatter) error {
	b, err := json.MarshalIndent(Format(v, f), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func WriteYAML(w io.Writer, v View, f money.Formatter) error {
	b, err := yaml.Marshal(Format(v, f))
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// WriteText renders the rows as a table followed by the totals block.
func WriteText(w io.Writer, v View, f money.Formatter, opts TextOptions) error {
	fv := Format(v, f)

	var rows [][]string
	if fv.Empty {
		rows = append(rows, []string{"", fv.Placeholder, "", "", "", ""})
	}
	for _, r := range fv.Rows {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Title,
			r.UnitPrice,
			strconv.Itoa(r.Qty),
			r.LineTotal,
			r.Image,
		})
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		colors := opts.Colors
		if colors == (Colors{}) {
			colors = DefaultColors
		}
		headerStyle = headerStyle.Foreground(lipgloss.Color(colors.Title))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(colors.Even))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(colors.Odd))
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(opts.Padding)
			}
			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		t = t.Headers("id", "title", "price", "qty", "subtotal", "image").BorderHeader(false)
	}

	if _, err := fmt.Fprintln(w, t); err != nil {
		return err
	}

	totals := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		Rows(
			[]string{"Items", strconv.Itoa(fv.Count)},
			[]string{"Subtotal", fv.Subtotal},
			[]string{"Shipping", fv.Shipping},
			[]string{"Total", fv.Total},
		)

	_, err := fmt.Fprintln(w, totals)
	return err
}
