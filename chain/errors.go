// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
	"fmt"
)

// ExitCode classifies the outcome of a message. Zero is success.
type ExitCode uint32

const (
	ExitCodeSuccess             ExitCode = 0
	ExitCodeMalformedBody       ExitCode = 9
	ExitCodeUnauthorized        ExitCode = 103
	ExitCodeInsufficientBalance ExitCode = 104
	ExitCodeCounterOverflow     ExitCode = 105
	ExitCodeUninitialized       ExitCode = 106
	ExitCodeInternal            ExitCode = 0xfffe
	ExitCodeUnknownOp           ExitCode = 0xffff
)

var (
	ErrMalformedBody       = NewExitError(ExitCodeMalformedBody, "malformed body")
	ErrUnauthorized        = NewExitError(ExitCodeUnauthorized, "unauthorized")
	ErrInsufficientBalance = NewExitError(ExitCodeInsufficientBalance, "insufficient balance")
	ErrCounterOverflow     = NewExitError(ExitCodeCounterOverflow, "counter overflow")
	ErrUninitialized       = NewExitError(ExitCodeUninitialized, "account not initialized")
	ErrUnknownOp           = NewExitError(ExitCodeUnknownOp, "unknown op")

	ErrBodyTooLarge = errors.New("body too large")
)

// ExitError is an error surfaced to the sender with its exit code.
type ExitError struct {
	Code ExitCode
	msg  string
}

func NewExitError(code ExitCode, msg string) *ExitError {
	return &ExitError{Code: code, msg: msg}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (exit code %d)", e.msg, e.Code)
}

// Code returns the exit code carried by [err]. Errors without one, such as
// storage failures, map to [ExitCodeInternal].
func Code(err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCodeInternal
}
