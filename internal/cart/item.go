// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidProduct is returned when an add trigger carries an id or price
// that is not a number.
var ErrInvalidProduct = errors.New("invalid product")

// LineItem is one product entry in the cart. Qty is never below 1.
type LineItem struct {
	ID    int     `json:"id" yaml:"id"`
	Title string  `json:"title" yaml:"title"`
	Price float64 `json:"price" yaml:"price"`
	Image string  `json:"image" yaml:"image"`
	Qty   int     `json:"qty" yaml:"qty"`
}

// Subtotal is price times quantity.
func (it LineItem) Subtotal() float64 {
	return it.Price * float64(it.Qty)
}

// Product is the raw attribute data carried by an add trigger, before
// normalization.
type Product struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
	Image string `json:"image"`
}

// Normalize turns the raw attributes into a LineItem with Qty 1.
func (p Product) Normalize() (LineItem, error) {
	id, err := ParseID(p.ID)
	if err != nil {
		return LineItem{}, err
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(p.Price), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return LineItem{}, fmt.Errorf("%w: price %q is not a number", ErrInvalidProduct, p.Price)
	}

	return LineItem{
		ID:    id,
		Title: strings.TrimSpace(p.Title),
		Price: price,
		Image: strings.TrimSpace(p.Image),
		Qty:   1,
	}, nil
}

// ParseID accepts integral ids written as "3" or "3.0".
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: id %q is not an integer", ErrInvalidProduct, s)
	}
	return int(f), nil
}
