// Copyright (c) 2025 The libshares developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import "strings"

// bpsDenominator is the basis-point denominator (100%).
const bpsDenominator = 10_000

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if cfg.CreatorCutBPS > bpsDenominator || cfg.HolderCutBPS > bpsDenominator ||
		cfg.CreatorCutBPS+cfg.HolderCutBPS > bpsDenominator {
		return ErrInvalidFeeSplit
	}

	if cfg.MinCurveAllocBPS > bpsDenominator {
		return ErrInvalidCurveFloor
	}

	return nil
}
