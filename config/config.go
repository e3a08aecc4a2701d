// Copyright (c) 2025 The libshares developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config loads and validates the market's operating parameters
// from a simple key=value file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the market's tunable parameters.
type Config struct {
	// DataDir is where the bolt database lives.
	DataDir string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// CreatorCutBPS is the creator's share of every trading fee, in
	// basis points.
	CreatorCutBPS uint64

	// HolderCutBPS is the holders' share of every trading fee, in basis
	// points. The platform takes the remainder.
	HolderCutBPS uint64

	// MinCurveAllocBPS is the floor on the fraction of a new share's
	// total allocation that must be reserved for the bonding curve.
	MinCurveAllocBPS uint64
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	dataDir := ".libshares"
	if err == nil {
		dataDir = filepath.Join(home, ".libshares")
	}
	return Config{
		DataDir:          dataDir,
		LogLevel:         "info",
		CreatorCutBPS:    3300,
		HolderCutBPS:     3300,
		MinCurveAllocBPS: 2000,
	}
}

// LoadConfig reads a key=value config file. Blank lines and lines
// starting with '#' are skipped; unknown keys are ignored so old binaries
// tolerate new config files. Unset keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch strings.ToLower(key) {
		case "datadir":
			cfg.DataDir = value
		case "loglevel":
			cfg.LogLevel = value
		case "creatorcutbps":
			cfg.CreatorCutBPS, err = parseBPS(key, value)
		case "holdercutbps":
			cfg.HolderCutBPS, err = parseBPS(key, value)
		case "mincurveallocbps":
			cfg.MinCurveAllocBPS, err = parseBPS(key, value)
		default:
			// Unknown keys are ignored.
		}
		if err != nil {
			return cfg, err
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the configuration to path in key=value form,
// creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# libshares market configuration\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "creatorcutbps = %d\n", cfg.CreatorCutBPS)
	fmt.Fprintf(&b, "holdercutbps = %d\n", cfg.HolderCutBPS)
	fmt.Fprintf(&b, "mincurveallocbps = %d\n", cfg.MinCurveAllocBPS)

	return os.WriteFile(path, []byte(b.String()), 0600)
}

// parseBPS parses a basis-point value.
func parseBPS(key, value string) (uint64, error) {
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q", ErrInvalidConfigValue, key, value)
	}
	return v, nil
}
