// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidLogLevel      = errors.New("invalid log level")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrMissingListenAddress = errors.New("missing listen address")
	ErrInvalidLogRotation   = errors.New("invalid log rotation")
	ErrInvalidSampleRate    = errors.New("invalid trace sample rate")
)
