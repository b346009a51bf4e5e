// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

// Result is the outcome of executing one message.
type Result struct {
	Success  bool     `json:"success"`
	ExitCode ExitCode `json:"exitCode"`
	Error    []byte   `json:"error,omitempty"`

	// TypeID is the kind of action executed. It is unset if the message
	// could not be parsed.
	TypeID uint32 `json:"typeId"`
	Parsed bool   `json:"parsed"`

	Output    []byte      `json:"output,omitempty"`
	Transfers []*Transfer `json:"transfers,omitempty"`
}

// Failed builds the result of a message rejected with [err].
func Failed(err error) *Result {
	return &Result{
		Success:  false,
		ExitCode: Code(err),
		Error:    []byte(err.Error()),
	}
}
