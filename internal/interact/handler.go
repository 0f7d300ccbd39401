// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package interact routes user events on the cart page to the cart store
// through an explicit dispatch table keyed by control role.
package interact

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/notify"
)

// Role identifies the control an event came from.
type Role string

const (
	RoleAdd       Role = "add"
	RoleIncrement Role = "inc"
	RoleDecrement Role = "dec"
	RoleRemove    Role = "remove"
	RoleQuantity  Role = "qty"
	RoleClear     Role = "clear"
	RoleCheckout  Role = "checkout"
)

var (
	ErrUnknownRole    = errors.New("unknown control role")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrMissingContact = errors.New("name and email are required")
)

// Event is a single user interaction. ID addresses a row for row controls;
// Value carries the quantity input; Fields carries form values or the data
// attributes of an add trigger.
type Event struct {
	Role   Role
	ID     int
	Value  string
	Fields map[string]string
}

// Action handles one role.
type Action func(ctx context.Context, ev Event) error

// Handler owns the dispatch table for one session.
type Handler struct {
	store     *cart.Store
	notifier  notify.Notifier
	confirmer notify.Confirmer
	render    func()
	resetForm func()
	table     map[Role]Action
}

type Option func(*Handler)

// WithConfirmer enables confirmation before clearing the cart.
func WithConfirmer(c notify.Confirmer) Option {
	return func(h *Handler) { h.confirmer = c }
}

// WithRender sets the hook invoked after every state change.
func WithRender(fn func()) Option {
	return func(h *Handler) { h.render = fn }
}

// WithResetForm sets the hook invoked after a completed checkout.
func WithResetForm(fn func()) Option {
	return func(h *Handler) { h.resetForm = fn }
}

func New(store *cart.Store, notifier notify.Notifier, opts ...Option) *Handler {
	if notifier == nil {
		notifier = notify.Discard
	}
	h := &Handler{
		store:     store,
		notifier:  notifier,
		render:    func() {},
		resetForm: func() {},
	}
	for _, opt := range opts {
		opt(h)
	}

	h.table = map[Role]Action{
		RoleAdd:       h.add,
		RoleIncrement: h.rowAction(store.Increment),
		RoleDecrement: h.rowAction(store.Decrement),
		RoleRemove:    h.rowAction(store.Remove),
		RoleQuantity:  h.quantity,
		RoleClear:     h.clear,
		RoleCheckout:  h.checkout,
	}
	return h
}

// Roles lists the roles the handler knows about.
func (h *Handler) Roles() []Role {
	return []Role{RoleAdd, RoleIncrement, RoleDecrement, RoleRemove, RoleQuantity, RoleClear, RoleCheckout}
}

// Dispatch runs the action bound to ev.Role. It completes before returning.
func (h *Handler) Dispatch(ctx context.Context, ev Event) error {
	action, ok := h.table[ev.Role]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRole, ev.Role)
	}
	log.Debugf("dispatch %s id=%d value=%q", ev.Role, ev.ID, ev.Value)
	return action(ctx, ev)
}

func (h *Handler) rowAction(op func(context.Context, int) error) Action {
	return func(ctx context.Context, ev Event) error {
		err := op(ctx, ev.ID)
		h.render()
		return err
	}
}

func (h *Handler) quantity(ctx context.Context, ev Event) error {
	err := h.store.SetQty(ctx, ev.ID, ParseQty(ev.Value))
	h.render()
	return err
}

func (h *Handler) add(ctx context.Context, ev Event) error {
	p := cart.Product{
		ID:    ev.Fields["id"],
		Title: ev.Fields["title"],
		Price: ev.Fields["price"],
		Image: ev.Fields["image"],
	}

	it, err := h.store.Add(ctx, p)
	switch {
	case errors.Is(err, cart.ErrInvalidProduct):
		h.notifier.Notify(notify.Notice{Level: notify.Error, Title: "Unable to add product", Body: err.Error()})
		return err
	case err != nil:
		// Added in memory, but not saved.
		h.notifier.Notify(notify.Notice{Level: notify.Error, Title: "Unable to save cart", Body: err.Error()})
	default:
		h.notifier.Notify(notify.Notice{Level: notify.Success, Title: "Added: " + it.Title, Toast: true})
	}
	h.render()
	return err
}

func (h *Handler) clear(ctx context.Context, _ Event) error {
	if h.confirmer != nil {
		ok, err := h.confirmer.Confirm(ctx, "Empty the cart?")
		if err != nil {
			log.WithError(err).Warn("confirmation failed, cart left as is")
			return nil
		}
		if !ok {
			return nil
		}
	}

	err := h.store.Clear(ctx)
	h.render()
	return err
}

func (h *Handler) checkout(ctx context.Context, ev Event) error {
	if h.store.Len() == 0 {
		h.notifier.Notify(notify.Notice{Level: notify.Warning, Title: "Cart is empty"})
		return ErrEmptyCart
	}

	name := strings.TrimSpace(ev.Fields["name"])
	email := strings.TrimSpace(ev.Fields["email"])
	if name == "" || email == "" {
		h.notifier.Notify(notify.Notice{Level: notify.Error, Title: "Please complete your details"})
		return ErrMissingContact
	}

	h.notifier.Notify(notify.Notice{
		Level: notify.Success,
		Title: "Thanks for your purchase!",
		Body:  fmt.Sprintf("We sent a receipt to %s.", email),
	})

	err := h.store.Clear(ctx)
	h.render()
	h.resetForm()
	return err
}

// ParseQty reads a quantity input. Empty or invalid input reads as 1,
// fractions are truncated and the result is never below 1.
func ParseQty(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 1
	}
	if n, err := strconv.Atoi(value); err == nil {
		return max(1, n)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	return max(1, int(f))
}
