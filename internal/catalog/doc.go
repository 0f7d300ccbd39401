// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package catalog loads the storefront's product listing. Each product is an
// add trigger: the attributes it carries are what the cart receives when the
// product is added.
package catalog
