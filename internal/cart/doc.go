// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cart holds the cart state: an ordered collection of line items
// bound to a persisted storage slot.
package cart
