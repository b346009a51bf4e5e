// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/perms"

	"github.com/ava-labs/countervm/consts"

	formatter "github.com/onsi/ginkgo/v2/formatter"
)

func ToID(bytes []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(bytes))
}

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

// FormatBalance renders base units as a decimal amount of whole units.
func FormatBalance(bal uint64) string {
	whole := bal / pow10(consts.NativeDecimals)
	frac := bal % pow10(consts.NativeDecimals)
	return fmt.Sprintf("%d.%0*d", whole, consts.NativeDecimals, frac)
}

// ParseBalance parses a decimal amount of whole units (for example "0.05")
// into base units without going through floating point.
func ParseBalance(bal string) (uint64, error) {
	bal = strings.TrimSpace(bal)
	whole, frac, hasFrac := strings.Cut(bal, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBalance, bal)
	}
	if len(frac) > consts.NativeDecimals {
		return 0, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidBalance, bal, consts.NativeDecimals)
	}
	var w uint64
	if whole != "" {
		var err error
		w, err = strconv.ParseUint(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrInvalidBalance, bal, err)
		}
	}
	var f uint64
	if frac != "" {
		var err error
		f, err = strconv.ParseUint(frac+strings.Repeat("0", consts.NativeDecimals-len(frac)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrInvalidBalance, bal, err)
		}
	}
	unit := pow10(consts.NativeDecimals)
	if w > (consts.MaxUint64-f)/unit {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidBalance, bal)
	}
	return w*unit + f, nil
}

// MustParseBalance is [ParseBalance] for constants known to be valid.
func MustParseBalance(bal string) uint64 {
	v, err := ParseBalance(bal)
	if err != nil {
		panic(err)
	}
	return v
}

func pow10(n int) uint64 {
	v := uint64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
