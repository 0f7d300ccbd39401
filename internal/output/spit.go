// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/staranto/cartctl/internal/attrs"
	"github.com/staranto/cartctl/internal/view"
)

// Options carries the presentation flags of a list command.
type Options struct {
	Output  string
	Filter  string
	Sort    string
	Color   bool
	Titles  bool
	Padding int
	Colors  view.Colors
	// Money renders attrs carrying the $ transform.
	Money attrs.Formatter
}

// Tag is a jsonapi attribute discovered on a payload type, used by --schema.
type Tag struct {
	Kind     string
	Name     string
	Encoding string
}

// NewTag parses a raw jsonapi struct tag. h is the holder prefix for nested
// attributes.
func NewTag(h string, s string) Tag {
	tag := Tag{}

	parts := strings.Split(s, ",")
	if parts[0] != "attr" && parts[0] != "primary" {
		return tag
	}
	tag.Kind = parts[0]

	if len(parts) > 1 {
		name := parts[1]
		if tag.Kind == "primary" {
			name = ".id"
		}
		if h != "" {
			name = fmt.Sprintf("%s.%s", h, name)
		}
		tag.Name = name
	}

	if len(parts) > 2 {
		tag.Encoding = parts[2]
	}

	return tag
}

// Print renders the tag into its display form.
func (t Tag) Print() string {
	return t.Name
}

// DumpSchema writes the attrs available to --attrs for typ, sorted.
func DumpSchema(w io.Writer, typ reflect.Type) {
	tags := DumpSchemaWalker("", typ, 0)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Kind == tags[j].Kind {
			return tags[i].Name < tags[j].Name
		}
		return tags[i].Kind > tags[j].Kind
	})

	fmt.Fprintln(w, "Schema for", typ.Name(), "--")
	for _, tag := range tags {
		fmt.Fprintln(w, tag.Print())
	}
}

const maxSchemaDepth = 1

// DumpSchemaWalker walks typ collecting jsonapi tags, descending into
// struct attributes up to maxSchemaDepth.
func DumpSchemaWalker(holder string, typ reflect.Type, depth int) []Tag {
	tags := make([]Tag, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("jsonapi")
		if !ok {
			continue
		}

		tag := NewTag(holder, tagValue)
		if tag.Kind == "" {
			continue
		}
		tags = append(tags, tag)

		if depth >= maxSchemaDepth || tag.Kind != "attr" {
			continue
		}
		switch {
		case field.Type.Kind() == reflect.Struct:
			tags = append(tags, DumpSchemaWalker(tag.Name, field.Type, depth+1)...)
		case field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct:
			tags = append(tags, DumpSchemaWalker(tag.Name, field.Type.Elem(), depth+1)...)
		}
	}

	return tags
}

// SliceDiceSpit filters, transforms, sorts and renders the dataset found at
// parent in raw.
func SliceDiceSpit(raw bytes.Buffer, al attrs.AttrList, opts Options, parent string, w io.Writer) error {
	if opts.Output == "raw" {
		_, err := w.Write(raw.Bytes())
		return err
	}

	fullDataset := gjson.ParseBytes(raw.Bytes())
	if parent != "" {
		fullDataset = fullDataset.Get(parent)
	}

	dataset := FilterDataset(fullDataset, al, opts.Filter)
	SortDataset(dataset, opts.Sort)

	// Sorting sees raw values; presentation sees transformed ones.
	for _, row := range dataset {
		for i := range al {
			attr := al[i]
			if attr.Key == "*" {
				continue
			}
			if !attr.Include {
				delete(row, attr.OutputKey)
				continue
			}
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey], opts.Money)
			}
		}
	}

	switch opts.Output {
	case "json":
		b, err := json.Marshal(dataset)
		if err != nil {
			return fmt.Errorf("failed to marshal dataset: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(dataset)
		if err != nil {
			return fmt.Errorf("failed to marshal dataset: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		return TableWriter(dataset, al, opts, w)
	}
}

// TableWriter renders the result set as a borderless table honoring color,
// titles and padding options.
func TableWriter(resultSet []map[string]any, al attrs.AttrList, opts Options, w io.Writer) error {
	if len(resultSet) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		colors := opts.Colors
		if colors == (view.Colors{}) {
			colors = view.DefaultColors
		}
		headerStyle = headerStyle.Foreground(lipgloss.Color(colors.Title))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(colors.Even))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(colors.Odd))
	}

	included := al.Included()

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(included))
		for _, attr := range included {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(opts.Padding)
			}
			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		headers := make([]string, 0, len(included))
		for _, attr := range included {
			headers = append(headers, attr.OutputKey)
		}
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}

// InterfaceToString converts a dataset value to its display string. A custom
// empty value may be provided.
func InterfaceToString(value any, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
