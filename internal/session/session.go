// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package session wires one cart page together: the persisted slot, the
// store loaded from it, pricing and formatting, notifications and the
// interaction handler.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/catalog"
	"github.com/staranto/cartctl/internal/interact"
	"github.com/staranto/cartctl/internal/money"
	"github.com/staranto/cartctl/internal/notify"
	"github.com/staranto/cartctl/internal/storage"
	"github.com/staranto/cartctl/internal/view"
)

var (
	ErrClosed        = errors.New("session is closed")
	ErrNoCatalog     = errors.New("no catalog configured")
	ErrCatalog       = errors.New("catalog unavailable")
	ErrUnknownOutput = errors.New("unknown output format")
)

// Options describes a session. Zero values fall back to the storefront
// defaults.
type Options struct {
	Storage storage.Options
	// Slot, when set, is used instead of opening Storage.
	Slot storage.Slot

	Locale   string
	Currency string
	Pricing  *view.Pricing

	Catalog        string
	CatalogOptions catalog.Options

	Notifier  notify.Notifier
	Confirmer notify.Confirmer
	OnRender  func()
	ResetForm func()
}

// Session is an open cart page.
type Session struct {
	Slot      storage.Slot
	Store     *cart.Store
	Formatter money.Formatter
	Pricing   view.Pricing
	Catalog   *catalog.Catalog
	Notifier  notify.Notifier

	// CatalogErr is why the configured catalog could not be loaded. The cart
	// itself stays usable.
	CatalogErr error

	handler *interact.Handler
	count   int
	closed  bool
}

// Open builds and loads a session.
func Open(ctx context.Context, opts Options) (*Session, error) {
	slot := opts.Slot
	if slot == nil {
		var err error
		if slot, err = storage.Open(opts.Storage); err != nil {
			return nil, err
		}
	}

	s := &Session{
		Slot:      slot,
		Formatter: money.New(opts.Locale, opts.Currency),
		Pricing:   view.Pricing{ShippingFee: view.DefaultShippingFee},
		Notifier:  opts.Notifier,
	}
	if opts.Pricing != nil {
		s.Pricing = *opts.Pricing
	}
	if s.Notifier == nil {
		s.Notifier = notify.Discard
	}

	if opts.Catalog != "" {
		c, err := catalog.Load(ctx, opts.Catalog, opts.CatalogOptions)
		if err != nil {
			log.WithError(err).Warnf("catalog %s not loaded", opts.Catalog)
			s.CatalogErr = err
			s.Notifier.Notify(notify.Notice{Level: notify.Warning, Title: "Catalog unavailable", Body: err.Error()})
		} else {
			s.Catalog = c
		}
	}

	s.Store = cart.New(slot, cart.WithCountIndicator(func(n int) { s.count = n }))
	s.Store.Load(ctx)

	hopts := []interact.Option{}
	if opts.Confirmer != nil {
		hopts = append(hopts, interact.WithConfirmer(opts.Confirmer))
	}
	if opts.OnRender != nil {
		hopts = append(hopts, interact.WithRender(opts.OnRender))
	}
	if opts.ResetForm != nil {
		hopts = append(hopts, interact.WithResetForm(opts.ResetForm))
	}
	s.handler = interact.New(s.Store, s.Notifier, hopts...)

	log.Debugf("session open: slot=%s items=%d", slot, s.Store.Len())
	return s, nil
}

// Count is the value last shown by the cart count indicator.
func (s *Session) Count() int {
	return s.count
}

// Dispatch routes ev through the interaction handler.
func (s *Session) Dispatch(ctx context.Context, ev interact.Event) error {
	if s.closed {
		return ErrClosed
	}
	return s.handler.Dispatch(ctx, ev)
}

// Products returns the loaded catalog. It fails with ErrNoCatalog when none
// is configured and with ErrCatalog, wrapping the cause, when loading failed.
func (s *Session) Products() (*catalog.Catalog, error) {
	switch {
	case s.CatalogErr != nil:
		return nil, fmt.Errorf("%w: %w", ErrCatalog, s.CatalogErr)
	case s.Catalog == nil:
		return nil, ErrNoCatalog
	}
	return s.Catalog, nil
}

// AddRef adds the catalog product named by sku or id.
func (s *Session) AddRef(ctx context.Context, ref string) error {
	c, err := s.Products()
	if err != nil {
		return err
	}
	p, ok := c.Lookup(ref)
	if !ok {
		return fmt.Errorf("%w: %q not in catalog", cart.ErrInvalidProduct, ref)
	}
	return s.AddProduct(ctx, p)
}

// AddProduct fires an add trigger carrying p.
func (s *Session) AddProduct(ctx context.Context, p cart.Product) error {
	return s.Dispatch(ctx, interact.Event{
		Role: interact.RoleAdd,
		Fields: map[string]string{
			"id":    p.ID,
			"title": p.Title,
			"price": p.Price,
			"image": p.Image,
		},
	})
}

// View derives the current view.
func (s *Session) View() view.View {
	return view.Build(s.Store.Items(), s.Pricing)
}

// Render writes the current view as text, json or yaml.
func (s *Session) Render(w io.Writer, output string, text view.TextOptions) error {
	v := s.View()
	switch strings.ToLower(output) {
	case "", "text":
		return view.WriteText(w, v, s.Formatter, text)
	case "json":
		return view.WriteJSON(w, v, s.Formatter)
	case "yaml":
		return view.WriteYAML(w, v, s.Formatter)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, output)
	}
}

// Close ends the session: the handler and its hooks are released and
// further dispatches fail with ErrClosed. The slot keeps what was persisted.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.handler = nil
	log.Debugf("session closed: slot=%s", s.Slot)
	return nil
}
