// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddPermissions(t *testing.T) {
	tests := []struct {
		name       string
		permission Permissions
		canRead    bool
		canAlloc   bool
		canWrite   bool
	}{
		{
			name:       "read",
			permission: Read,
			canRead:    true,
		},
		{
			name:       "write implies read",
			permission: Write,
			canRead:    true,
			canWrite:   true,
		},
		{
			name:       "allocate implies read",
			permission: Allocate,
			canRead:    true,
			canAlloc:   true,
		},
		{
			name:       "all",
			permission: All,
			canRead:    true,
			canAlloc:   true,
			canWrite:   true,
		},
		{
			name:       "none",
			permission: None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			keys := make(Keys)
			keys.Add("test", tt.permission)
			require.Equal(tt.canRead, keys["test"].Has(Read))
			require.Equal(tt.canAlloc, keys["test"].Has(Allocate))
			require.Equal(tt.canWrite, keys["test"].Has(Write))
		})
	}
}

func TestUnionPermissions(t *testing.T) {
	require := require.New(t)
	keys := make(Keys)
	keys.Add("test", Read)
	keys.Add("test", Write)
	require.True(keys["test"].Has(Write))
	require.False(keys["test"].Has(Allocate))
	keys.Add("test", Allocate)
	require.True(keys["test"].Has(All))
}
