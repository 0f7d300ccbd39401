// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package view turns cart contents into the cart page: rows, subtotal,
// shipping and total, and writes it as text, JSON or YAML.
package view

import (
	"github.com/staranto/cartctl/internal/cart"
)

// DefaultShippingFee is charged whenever the subtotal is positive.
const DefaultShippingFee = 190

// EmptyPlaceholder is the single row shown for an empty cart.
const EmptyPlaceholder = "Your cart is empty."

// Pricing carries the pricing rules applied on top of the line items.
type Pricing struct {
	ShippingFee float64
}

type Row struct {
	ID        int     `json:"id" yaml:"id"`
	Image     string  `json:"image" yaml:"image"`
	Title     string  `json:"title" yaml:"title"`
	UnitPrice float64 `json:"unit_price" yaml:"unit_price"`
	Qty       int     `json:"qty" yaml:"qty"`
	LineTotal float64 `json:"line_total" yaml:"line_total"`
}

// View is the rendered cart page.
type View struct {
	Empty       bool    `json:"empty" yaml:"empty"`
	Placeholder string  `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Rows        []Row   `json:"rows" yaml:"rows"`
	Count       int     `json:"count" yaml:"count"`
	Subtotal    float64 `json:"subtotal" yaml:"subtotal"`
	Shipping    float64 `json:"shipping" yaml:"shipping"`
	Total       float64 `json:"total" yaml:"total"`
}

// Build derives the page from items. It has no side effects, so the same
// items always produce the same View.
func Build(items []cart.LineItem, pricing Pricing) View {
	if len(items) == 0 {
		return View{
			Empty:       true,
			Placeholder: EmptyPlaceholder,
			Rows:        []Row{},
		}
	}

	v := View{Rows: make([]Row, 0, len(items))}
	for _, it := range items {
		line := it.Subtotal()
		v.Rows = append(v.Rows, Row{
			ID:        it.ID,
			Image:     it.Image,
			Title:     it.Title,
			UnitPrice: it.Price,
			Qty:       it.Qty,
			LineTotal: line,
		})
		v.Subtotal += line
		v.Count += it.Qty
	}

	if v.Subtotal > 0 {
		v.Shipping = pricing.ShippingFee
	}
	v.Total = v.Subtotal + v.Shipping

	return v
}
