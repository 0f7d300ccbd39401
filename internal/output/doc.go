// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output filters, sorts and emits JSON:API datasets, such as the
// cart's line items or the catalog, in text, json, yaml or raw form.
package output
