// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Slot. Nothing survives the process.
type Memory struct {
	mu   sync.RWMutex
	key  string
	data []byte
	set  bool
}

func NewMemory(key string) *Memory {
	return &Memory{key: key}
}

// Seed preloads raw bytes, bypassing any validation.
func (m *Memory) Seed(data []byte) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.set = true
	return m
}

func (m *Memory) Get(_ context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Set(_ context.Context, data []byte) error {
	m.Seed(data)
	return nil
}

func (m *Memory) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.set = false
	return nil
}

func (m *Memory) String() string {
	return "memory:" + m.key
}
