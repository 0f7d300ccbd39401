// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package differ compares two cart snapshots line item by line item.
package differ

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	diff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Keyed turns a snapshot, a JSON array of line items, into an object keyed by
// line item id so that reordering is not reported as a change. An empty
// snapshot yields an empty object.
func Keyed(snapshot []byte) (map[string]any, error) {
	out := map[string]any{}

	doc := gjson.ParseBytes(snapshot)
	if !doc.Exists() || doc.Type == gjson.Null {
		return out, nil
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("snapshot is not a JSON array")
	}

	for _, entry := range doc.Array() {
		id := entry.Get("id")
		if !id.Exists() {
			return nil, fmt.Errorf("snapshot entry without id: %s", entry.Raw)
		}
		obj, ok := entry.Value().(map[string]any)
		if !ok {
			return nil, fmt.Errorf("snapshot entry is not an object: %s", entry.Raw)
		}
		out[id.String()] = obj
	}
	return out, nil
}

// Diff writes an ascii diff from before to after and reports whether they
// differ.
func Diff(w io.Writer, before, after []byte, color bool) (bool, error) {
	left, err := Keyed(before)
	if err != nil {
		return false, fmt.Errorf("before: %w", err)
	}
	right, err := Keyed(after)
	if err != nil {
		return false, fmt.Errorf("after: %w", err)
	}

	d := diff.New().CompareObjects(left, right)
	if !d.Modified() {
		log.Debug("snapshots are identical")
		_, err := fmt.Fprintln(w, "No differences.")
		return false, err
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})
	s, err := f.Format(d)
	if err != nil {
		return true, fmt.Errorf("failed to format diff: %w", err)
	}

	_, err = io.WriteString(w, s)
	return true, err
}
