// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func NonNegativeValidator(value any) error {
	if value.(float64) < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// OutputValidator accepts one of valid.
func OutputValidator(valid ...string) FlagValidatorType {
	return func(value any) error {
		if !slices.Contains(valid, value.(string)) {
			return fmt.Errorf("must be one of %v", valid)
		}
		return nil
	}
}

func StorageValidator(value any) error {
	valid := []string{"file", "memory"}
	if !slices.Contains(valid, strings.ToLower(value.(string))) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}
