// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the generation options, settable from the command
// line and optionally from a TOML config file. Flags win over the
// config file.
type Config struct {
	// Output is the output directory for generated shader code,
	// relative to where slgen is invoked
	Output string `toml:"output"`

	// Exclude lists type names to skip even when marked
	Exclude []string `toml:"exclude"`

	// Align enables 16 byte alignment checking of marked structs
	Align bool `toml:"align"`
}

func (cf *Config) Defaults() {
	cf.Output = "shaders"
	cf.Align = true
}

// OpenTOML reads config values from a TOML file.
func (cf *Config) OpenTOML(fn string) error {
	b, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, cf)
}

// Excluded is true if the type name is configured to be skipped.
func (cf *Config) Excluded(nm string) bool {
	for _, ex := range cf.Exclude {
		if ex == nm {
			return true
		}
	}
	return false
}
