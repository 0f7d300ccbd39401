// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package storage provides the persisted key/value slot that holds a
// serialized cart. Slots always live on the local machine, one per profile
// and key.
package storage
