// Copyright (c) 2025 The libshares developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidFeeSplit indicates creator/holder fee cuts out of range or
	// summing above the basis-point denominator.
	ErrInvalidFeeSplit = errors.New("config: invalid fee split (cuts must each fit in 10000 bps and sum to at most 10000)")

	// ErrInvalidCurveFloor indicates the minimum bonding-curve allocation
	// share is above the basis-point denominator.
	ErrInvalidCurveFloor = errors.New("config: invalid curve allocation floor (must be at most 10000 bps)")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")

	// ErrInvalidConfigValue indicates a config value failed to parse.
	ErrInvalidConfigValue = errors.New("config: invalid configuration value")
)
