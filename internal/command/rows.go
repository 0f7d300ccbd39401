// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/catalog"
)

// LineItemRow is the JSON:API resource emitted by ls.
type LineItemRow struct {
	ID       int     `jsonapi:"primary,line-items"`
	Title    string  `jsonapi:"attr,title"`
	Price    float64 `jsonapi:"attr,price"`
	Qty      int     `jsonapi:"attr,qty"`
	Subtotal float64 `jsonapi:"attr,subtotal"`
	Image    string  `jsonapi:"attr,image"`
}

func lineItemRows(items []cart.LineItem) []*LineItemRow {
	rows := make([]*LineItemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, &LineItemRow{
			ID:       it.ID,
			Title:    it.Title,
			Price:    it.Price,
			Qty:      it.Qty,
			Subtotal: it.Subtotal(),
			Image:    it.Image,
		})
	}
	return rows
}

// ProductRow is the JSON:API resource emitted by catalog.
type ProductRow struct {
	ID    int     `jsonapi:"primary,products"`
	SKU   string  `jsonapi:"attr,sku"`
	Title string  `jsonapi:"attr,title"`
	Price float64 `jsonapi:"attr,price"`
	Image string  `jsonapi:"attr,image"`
}

func productRows(entries []catalog.Entry) []*ProductRow {
	rows := make([]*ProductRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &ProductRow{
			ID:    e.ID,
			SKU:   e.SKU,
			Title: e.Title,
			Price: e.Price,
			Image: e.Image,
		})
	}
	return rows
}
