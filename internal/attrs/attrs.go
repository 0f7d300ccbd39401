// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package attrs parses the --attrs column specification used by list
// commands and applies per-column value transformations.
package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Attr is one column of list output, addressed by its key in the JSON:API
// payload.
type Attr struct {
	// The gjson path to extract from each row object.
	Key string `yaml:"key"`
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool `yaml:"include"`
	// The key to use in the output. Also the column title for text output.
	OutputKey string `yaml:"outputKey"`
	// Transformation spec applied to the output value.
	TransformSpec string `yaml:"transformSpec"`
}

// Formatter renders an amount as currency text.
type Formatter interface {
	Format(amount float64) string
}

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Transform applies the attr's spec to value. Supported spec characters:
//
//	$     format a number as currency with f
//	l, u  lower or upper case, the last one given wins
//	N     truncate to N characters, -N elides the middle
func (a *Attr) Transform(value any, f Formatter) any {
	if strings.Contains(a.TransformSpec, "$") && f != nil {
		switch n := value.(type) {
		case float64:
			value = f.Format(n)
		case int:
			value = f.Format(float64(n))
		}
	}

	result, ok := value.(string)
	if !ok {
		return value
	}

	// A global spec is prepended to the attr's own, so the later character is
	// the more specific one.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	match := lengthRegex.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return result
	}

	l, _ := strconv.Atoi(match[len(match)-1])
	abs := l
	if abs < 0 {
		abs = -abs
	}
	runes := []rune(result)
	if len(runes) <= abs || abs == 0 {
		return result
	}
	if l < 0 {
		side := max(abs/2-1, 1)
		return string(runes[:side]) + ".." + string(runes[len(runes)-side:])
	}
	return string(runes[:l])
}

type AttrList []Attr

// String returns the list in the same form --attrs accepts.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses a comma-separated list of key[:output[:transform]] specs and
// merges them into the list. A leading ! keeps the attr for filtering and
// sorting only. Keys starting with . address the row root; all others are
// read from the row's attributes.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		jsonIdx = iota
		outputIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		attr := Attr{Include: true}

		fields := strings.Split(spec, ":")

		attr.Key = strings.TrimSpace(fields[jsonIdx])
		if attr.Key == "" {
			return fmt.Errorf("empty attr key in %q", spec)
		}
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		switch {
		case len(fields) == 1:
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		case strings.TrimSpace(fields[outputIdx]) != "":
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		default:
			attr.OutputKey = strings.TrimPrefix(attr.Key, ".")
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// Respecifying an existing attr only adjusts it.
		for i := range *a {
			if (*a)[i].OutputKey == attr.OutputKey || (*a)[i].Key == "attributes."+attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		if strings.HasPrefix(attr.Key, ".") {
			attr.Key = attr.Key[1:]
		} else if attr.Key != "*" {
			attr.Key = "attributes." + attr.Key
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prefixes the spec of the * attr, if any, to every
// attr in the list.
func (a *AttrList) SetGlobalTransformSpec() {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}
	if spec == "" {
		return
	}

	for i := range *a {
		if (*a)[i].Key == "*" {
			continue
		}
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
}

// Included returns the attrs shown in output, in order.
func (a AttrList) Included() AttrList {
	out := make(AttrList, 0, len(a))
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

// Find returns the attr whose output key is name.
func (a AttrList) Find(name string) (Attr, bool) {
	for _, attr := range a {
		if attr.OutputKey == name {
			return attr, true
		}
	}
	return Attr{}, false
}

func (a *AttrList) Type() string {
	return "list"
}
