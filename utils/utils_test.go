// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBalance(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		err  bool
	}{
		{in: "5", want: 5_000_000_000},
		{in: "0.05", want: 50_000_000},
		{in: "4.99", want: 4_990_000_000},
		{in: ".5", want: 500_000_000},
		{in: "1.", want: 1_000_000_000},
		{in: "0.000000001", want: 1},
		{in: "18446744073.709551615", want: 18446744073709551615},
		{in: "18446744073.709551616", err: true},
		{in: "0.0000000001", err: true},
		{in: "", err: true},
		{in: ".", err: true},
		{in: "-1", err: true},
		{in: "abc", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require := require.New(t)
			got, err := ParseBalance(tt.in)
			if tt.err {
				require.ErrorIs(err, ErrInvalidBalance)
				return
			}
			require.NoError(err)
			require.Equal(tt.want, got)
		})
	}
}

func TestFormatBalance(t *testing.T) {
	require := require.New(t)
	require.Equal("0.000000000", FormatBalance(0))
	require.Equal("1.000000000", FormatBalance(1_000_000_000))
	require.Equal("4.998000000", FormatBalance(4_998_000_000))

	v, err := ParseBalance(FormatBalance(123_456_789_012))
	require.NoError(err)
	require.Equal(uint64(123_456_789_012), v)
}

func TestToID(t *testing.T) {
	require := require.New(t)
	require.Equal(ToID([]byte("owner")), ToID([]byte("owner")))
	require.NotEqual(ToID([]byte("owner")), ToID([]byte("sender")))
}
