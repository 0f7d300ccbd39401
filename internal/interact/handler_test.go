// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package interact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/cartctl/internal/cart"
	"github.com/staranto/cartctl/internal/notify"
	"github.com/staranto/cartctl/internal/storage"
)

type harness struct {
	store   *cart.Store
	rec     *notify.Recorder
	h       *Handler
	renders int
	resets  int
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	hs := &harness{
		store: cart.New(storage.NewMemory(storage.DefaultKey)),
		rec:   &notify.Recorder{},
	}
	opts = append([]Option{
		WithRender(func() { hs.renders++ }),
		WithResetForm(func() { hs.resets++ }),
	}, opts...)
	hs.h = New(hs.store, hs.rec, opts...)
	return hs
}

func (hs *harness) add(t *testing.T, id, title, price string) {
	t.Helper()
	err := hs.h.Dispatch(context.Background(), Event{
		Role:   RoleAdd,
		Fields: map[string]string{"id": id, "title": title, "price": price, "image": title + ".jpg"},
	})
	require.NoError(t, err)
}

func qty(t *testing.T, s *cart.Store, id int) int {
	t.Helper()
	it, ok := s.Get(id)
	require.True(t, ok)
	return it.Qty
}

func TestDispatch_Add(t *testing.T) {
	hs := newHarness(t)
	hs.add(t, "1", "Shirt", "500")
	hs.add(t, "1", "Shirt", "500")

	assert.Equal(t, 2, qty(t, hs.store, 1))
	assert.Equal(t, 2, hs.renders)

	last, _ := hs.rec.Last()
	assert.Equal(t, notify.Success, last.Level)
	assert.Equal(t, "Added: Shirt", last.Title)
	assert.True(t, last.Toast)
}

func TestDispatch_AddInvalid(t *testing.T) {
	hs := newHarness(t)
	err := hs.h.Dispatch(context.Background(), Event{Role: RoleAdd, Fields: map[string]string{"id": "x", "price": "1"}})
	assert.ErrorIs(t, err, cart.ErrInvalidProduct)
	assert.Equal(t, 0, hs.store.Len())

	last, _ := hs.rec.Last()
	assert.Equal(t, notify.Error, last.Level)
}

type unsavableSlot struct{ *storage.Memory }

func (unsavableSlot) Set(context.Context, []byte) error { return errors.New("disk full") }

func TestDispatch_AddNotSaved(t *testing.T) {
	rec := &notify.Recorder{}
	store := cart.New(unsavableSlot{storage.NewMemory(storage.DefaultKey)})
	h := New(store, rec)

	err := h.Dispatch(context.Background(), Event{
		Role:   RoleAdd,
		Fields: map[string]string{"id": "1", "title": "Shirt", "price": "500"},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, cart.ErrInvalidProduct)

	notices := rec.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, notify.Error, notices[0].Level)
	assert.Equal(t, "Unable to save cart", notices[0].Title)
	assert.Contains(t, notices[0].Body, "disk full")
}

func TestDispatch_RowControls(t *testing.T) {
	ctx := context.Background()
	hs := newHarness(t)
	hs.add(t, "1", "Shirt", "500")
	hs.renders = 0

	require.NoError(t, hs.h.Dispatch(ctx, Event{Role: RoleIncrement, ID: 1}))
	assert.Equal(t, 2, qty(t, hs.store, 1))

	require.NoError(t, hs.h.Dispatch(ctx, Event{Role: RoleDecrement, ID: 1}))
	require.NoError(t, hs.h.Dispatch(ctx, Event{Role: RoleDecrement, ID: 1}))
	assert.Equal(t, 1, qty(t, hs.store, 1))

	require.NoError(t, hs.h.Dispatch(ctx, Event{Role: RoleRemove, ID: 1}))
	assert.Equal(t, 0, hs.store.Len())

	assert.Equal(t, 4, hs.renders, "every row action re-renders")
}

func TestDispatch_Quantity(t *testing.T) {
	ctx := context.Background()
	hs := newHarness(t)
	hs.add(t, "1", "Shirt", "500")

	tests := []struct {
		value string
		want  int
	}{
		{value: "5", want: 5},
		{value: "", want: 1},
		{value: "abc", want: 1},
		{value: "0", want: 1},
		{value: "-3", want: 1},
		{value: "2.7", want: 2},
		{value: " 4 ", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			require.NoError(t, hs.h.Dispatch(ctx, Event{Role: RoleQuantity, ID: 1, Value: tt.value}))
			assert.Equal(t, tt.want, qty(t, hs.store, 1))
		})
	}
}

func TestDispatch_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("no confirmer clears unconditionally", func(t *testing.T) {
		hs := newHarness(t)
		hs.add(t, "1", "Shirt", "500")
		require.NoError(t, hs.h.Dispatch(ctx, Event{Role: RoleClear}))
		assert.Equal(t, 0, hs.store.Len())
	})

	t.Run("declined", func(t *testing.T) {
		hs := newHarness(t, WithConfirmer(notify.Fixed(false)))
		hs.add(t, "1", "Shirt", "500")
		renders := hs.renders
		require.NoError(t, hs.h.Dispatch(ctx, Event{Role: RoleClear}))
		assert.Equal(t, 1, hs.store.Len())
		assert.Equal(t, renders, hs.renders)
	})

	t.Run("confirmed", func(t *testing.T) {
		hs := newHarness(t, WithConfirmer(notify.Fixed(true)))
		hs.add(t, "1", "Shirt", "500")
		require.NoError(t, hs.h.Dispatch(ctx, Event{Role: RoleClear}))
		assert.Equal(t, 0, hs.store.Len())
	})

	t.Run("confirmer failure leaves cart", func(t *testing.T) {
		hs := newHarness(t, WithConfirmer(failingConfirmer{}))
		hs.add(t, "1", "Shirt", "500")
		require.NoError(t, hs.h.Dispatch(ctx, Event{Role: RoleClear}))
		assert.Equal(t, 1, hs.store.Len())
	})
}

type failingConfirmer struct{}

func (failingConfirmer) Confirm(context.Context, string) (bool, error) {
	return false, errors.New("no tty")
}

func TestDispatch_Checkout(t *testing.T) {
	ctx := context.Background()
	contact := map[string]string{"name": "Ana", "email": "ana@example.com"}

	t.Run("empty cart", func(t *testing.T) {
		hs := newHarness(t)
		err := hs.h.Dispatch(ctx, Event{Role: RoleCheckout, Fields: contact})
		assert.ErrorIs(t, err, ErrEmptyCart)

		last, _ := hs.rec.Last()
		assert.Equal(t, notify.Warning, last.Level)
		assert.Equal(t, 0, hs.resets, "form is not reset")
	})

	t.Run("missing contact", func(t *testing.T) {
		for _, fields := range []map[string]string{
			{"name": "Ana"},
			{"email": "ana@example.com"},
			{"name": "  ", "email": "ana@example.com"},
			nil,
		} {
			hs := newHarness(t)
			hs.add(t, "1", "Shirt", "500")
			err := hs.h.Dispatch(ctx, Event{Role: RoleCheckout, Fields: fields})
			assert.ErrorIs(t, err, ErrMissingContact)
			assert.Equal(t, 1, hs.store.Len(), "store unchanged")
			assert.Equal(t, 0, hs.resets)

			last, _ := hs.rec.Last()
			assert.Equal(t, notify.Error, last.Level)
		}
	})

	t.Run("success", func(t *testing.T) {
		hs := newHarness(t)
		hs.add(t, "1", "Shirt", "500")
		hs.add(t, "2", "Hat", "120")

		require.NoError(t, hs.h.Dispatch(ctx, Event{Role: RoleCheckout, Fields: contact}))
		assert.Equal(t, 0, hs.store.Len())
		assert.Equal(t, 1, hs.resets)

		last, _ := hs.rec.Last()
		assert.Equal(t, notify.Success, last.Level)
		assert.Contains(t, last.Body, "ana@example.com")
	})
}

func TestDispatch_UnknownRole(t *testing.T) {
	hs := newHarness(t)
	err := hs.h.Dispatch(context.Background(), Event{Role: "wishlist"})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRoles(t *testing.T) {
	hs := newHarness(t)
	for _, r := range hs.h.Roles() {
		_, ok := hs.h.table[r]
		assert.True(t, ok, "role %s is dispatchable", r)
	}
}

func TestNew_NilNotifier(t *testing.T) {
	h := New(cart.New(storage.NewMemory("k")), nil)
	err := h.Dispatch(context.Background(), Event{Role: RoleCheckout})
	assert.ErrorIs(t, err, ErrEmptyCart)
}
