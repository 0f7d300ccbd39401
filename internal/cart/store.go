// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/cartctl/internal/storage"
)

// Store is the ordered id -> LineItem collection of one session. It is not
// safe for concurrent use.
type Store struct {
	slot    storage.Slot
	order   []int
	items   map[int]*LineItem
	counter func(int)
}

// Option customizes a Store.
type Option func(*Store)

// WithCountIndicator registers fn to receive the total quantity every time
// the store is loaded or persisted.
func WithCountIndicator(fn func(count int)) Option {
	return func(s *Store) { s.counter = fn }
}

// New returns an empty store bound to slot.
func New(slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot:  slot,
		items: make(map[int]*LineItem),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Slot returns the slot the store persists to.
func (s *Store) Slot() storage.Slot {
	return s.slot
}

// Load replaces the contents with whatever the slot holds. Missing or
// malformed data leaves the store empty. Load never fails.
func (s *Store) Load(ctx context.Context) {
	s.reset()
	defer s.refreshCount()

	raw, err := s.slot.Get(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.WithError(err).Warnf("unable to read %s, starting empty", s.slot)
		}
		return
	}

	if !gjson.ValidBytes(raw) {
		log.Debugf("%s holds malformed data, starting empty", s.slot)
		return
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		log.Debugf("%s does not hold an array, starting empty", s.slot)
		return
	}

	doc.ForEach(func(_, entry gjson.Result) bool {
		it, ok := decodeEntry(entry)
		if !ok {
			log.Debugf("skipping unusable entry: %s", entry.Raw)
			return true
		}
		s.put(it)
		return true
	})

	log.Debugf("loaded %d item(s) from %s", len(s.order), s.slot)
}

// decodeEntry coerces one persisted element. Numeric fields may also be
// numeric strings.
func decodeEntry(entry gjson.Result) (LineItem, bool) {
	if !entry.IsObject() {
		return LineItem{}, false
	}

	idField := entry.Get("id")
	if !idField.Exists() {
		return LineItem{}, false
	}
	id, err := ParseID(idField.String())
	if err != nil {
		return LineItem{}, false
	}

	qty := int(entry.Get("qty").Int())
	if qty < 1 {
		qty = 1
	}

	return LineItem{
		ID:    id,
		Title: entry.Get("title").String(),
		Price: entry.Get("price").Float(),
		Image: entry.Get("image").String(),
		Qty:   qty,
	}, true
}

// Add inserts the product with qty 1, or bumps the qty of an existing entry
// with the same id. The store is persisted either way.
func (s *Store) Add(ctx context.Context, p Product) (LineItem, error) {
	it, err := p.Normalize()
	if err != nil {
		return LineItem{}, err
	}

	if ex, ok := s.items[it.ID]; ok {
		ex.Qty++
		it = *ex
	} else {
		s.put(it)
	}

	return it, s.Persist(ctx)
}

// SetQty sets the quantity, clamped to 1. Unknown ids are ignored.
func (s *Store) SetQty(ctx context.Context, id int, qty int) error {
	it, ok := s.items[id]
	if !ok {
		return nil
	}
	it.Qty = max(1, qty)
	return s.Persist(ctx)
}

func (s *Store) Increment(ctx context.Context, id int) error {
	it, ok := s.items[id]
	if !ok {
		return nil
	}
	it.Qty++
	return s.Persist(ctx)
}

// Decrement lowers the quantity but never below 1.
func (s *Store) Decrement(ctx context.Context, id int) error {
	it, ok := s.items[id]
	if !ok {
		return nil
	}
	it.Qty = max(1, it.Qty-1)
	return s.Persist(ctx)
}

// Remove deletes the entry regardless of its quantity.
func (s *Store) Remove(ctx context.Context, id int) error {
	if _, ok := s.items[id]; !ok {
		return nil
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return s.Persist(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.reset()
	return s.Persist(ctx)
}

// Persist writes the whole store to the slot and refreshes the count
// indicator.
func (s *Store) Persist(ctx context.Context) error {
	defer s.refreshCount()

	data, err := s.Snapshot()
	if err != nil {
		return err
	}
	if err := s.slot.Set(ctx, data); err != nil {
		return fmt.Errorf("failed to persist cart to %s: %w", s.slot, err)
	}
	return nil
}

// Snapshot returns the serialized form written to the slot.
func (s *Store) Snapshot() ([]byte, error) {
	data, err := json.Marshal(s.Items())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize cart: %w", err)
	}
	return data, nil
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	result := make([]LineItem, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.items[id])
	}
	return result
}

func (s *Store) Get(id int) (LineItem, bool) {
	it, ok := s.items[id]
	if !ok {
		return LineItem{}, false
	}
	return *it, true
}

// Len is the number of distinct line items.
func (s *Store) Len() int {
	return len(s.order)
}

// Count is the sum of all quantities.
func (s *Store) Count() int {
	count := 0
	for _, it := range s.items {
		count += it.Qty
	}
	return count
}

// put inserts or replaces it. A replaced entry keeps its position.
func (s *Store) put(it LineItem) {
	if _, ok := s.items[it.ID]; !ok {
		s.order = append(s.order, it.ID)
	}
	s.items[it.ID] = &it
}

func (s *Store) reset() {
	s.order = nil
	s.items = make(map[int]*LineItem)
}

func (s *Store) refreshCount() {
	if s.counter != nil {
		s.counter(s.Count())
	}
}
