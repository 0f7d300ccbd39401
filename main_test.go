// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/cartctl/internal/config"
)

func TestMangleArguments(t *testing.T) {
	t.Setenv("CARTCTL_CFG", "testdata/cartctl.yaml")
	_, err := config.Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults inserted",
			args: []string{"cartctl", "ls", "-t"},
			want: []string{"cartctl", "ls", "-o", "json", "-t"},
		},
		{
			name: "named set replaces marker",
			args: []string{"cartctl", "ls", "-t", "@cheap"},
			want: []string{"cartctl", "ls", "-t", "--filter", "price<100", "--sort", "title"},
		},
		{
			name: "scalar set",
			args: []string{"cartctl", "show", "@verbose"},
			want: []string{"cartctl", "show", "-t", "-c"},
		},
		{
			name: "unknown set dropped",
			args: []string{"cartctl", "show", "@nope", "-o", "json"},
			want: []string{"cartctl", "show", "-o", "json"},
		},
		{
			name: "no defaults configured",
			args: []string{"cartctl", "add", "shirt"},
			want: []string{"cartctl", "add", "shirt"},
		},
		{
			name: "help",
			args: []string{"cartctl", "ls", "-o", "json", "--help"},
			want: []string{"cartctl", "ls", "--help"},
		},
		{
			name: "root flag first",
			args: []string{"cartctl", "-p", "alpha", "ls"},
			want: []string{"cartctl", "-p", "alpha", "ls"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mangleArguments(tt.args))
		})
	}
}
