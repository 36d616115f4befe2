// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slfield

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Directive holds the per-field options parsed from the sl struct
// tag, e.g.:
//
//	Smoothness float32 `sl:"name=perceptualSmoothness,bits=8,offset=16,scheme=float,range=0:1"`
//
// Options are comma separated. Recognized keys: name, half, real,
// array, guard, accessors, bits, offset, scheme, range, names,
// dir, srgb, checknorm.
type Directive struct {
	// NameOverride is the explicit target name (name=)
	NameOverride string

	// Half requests reduced 16 bit precision
	Half bool

	// Real requests the precision-configurable real type
	Real bool

	// ArraySize is an explicit fixed array size (array=N),
	// required for slice-typed members
	ArraySize int

	// Guard is a preprocessor symbol wrapping the field (guard=)
	Guard string

	// Accessors explicitly requests ordinary accessor generation.
	// Conflicts with bit packing: a field cannot be both.
	Accessors bool

	// HasBits is true when an explicit bit packing directive
	// (bits=) is present
	HasBits bool

	// BitWidth is the packed width in bits (bits=)
	BitWidth int

	// BitOffset is the packed offset in bits (offset=)
	BitOffset int

	// Scheme is the packing scheme name: float, uint, r11g11b10,
	// or none. Required whenever bits= is given.
	Scheme string

	// RangeMin, RangeMax is the declared value range (range=lo:hi),
	// [0, 1] by default
	RangeMin, RangeMax float32

	// DisplayNames lists the logical names sharing this packed
	// word (names=a|b|c); defaults to the field display name
	DisplayNames []string

	// IsDirection marks a direction vector, displayed as v*0.5+0.5
	IsDirection bool

	// IsSRGB marks an sRGB value needing gamma conversion on display
	IsSRGB bool

	// CheckNormalized gates the direction display on a unit-length
	// check, substituting a sentinel color when it fails
	CheckNormalized bool
}

// ParseTag parses the sl key of a struct tag into a Directive.
// Returns nil if the tag has no sl key.
func ParseTag(tag string) (*Directive, error) {
	val, ok := reflect.StructTag(tag).Lookup("sl")
	if !ok {
		return nil, nil
	}
	dr := &Directive{RangeMin: 0, RangeMax: 1}
	for _, opt := range strings.Split(val, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		key, arg, hasArg := strings.Cut(opt, "=")
		switch key {
		case "name":
			dr.NameOverride = arg
		case "half":
			dr.Half = true
		case "real":
			dr.Real = true
		case "array":
			n, err := strconv.Atoi(arg)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("sl tag: invalid array size %q", arg)
			}
			dr.ArraySize = n
		case "guard":
			dr.Guard = arg
		case "accessors":
			dr.Accessors = true
		case "bits":
			n, err := strconv.Atoi(arg)
			if err != nil || n <= 0 || n > 32 {
				return nil, fmt.Errorf("sl tag: invalid bit width %q", arg)
			}
			dr.HasBits = true
			dr.BitWidth = n
		case "offset":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 || n >= 32 {
				return nil, fmt.Errorf("sl tag: invalid bit offset %q", arg)
			}
			dr.BitOffset = n
		case "scheme":
			dr.Scheme = arg
		case "range":
			lo, hi, ok := strings.Cut(arg, ":")
			if !ok {
				return nil, fmt.Errorf("sl tag: range must be lo:hi, got %q", arg)
			}
			lov, err := strconv.ParseFloat(lo, 32)
			if err != nil {
				return nil, fmt.Errorf("sl tag: invalid range min %q", lo)
			}
			hiv, err := strconv.ParseFloat(hi, 32)
			if err != nil {
				return nil, fmt.Errorf("sl tag: invalid range max %q", hi)
			}
			dr.RangeMin = float32(lov)
			dr.RangeMax = float32(hiv)
		case "names":
			dr.DisplayNames = strings.Split(arg, "|")
		case "dir":
			dr.IsDirection = true
		case "srgb":
			dr.IsSRGB = true
		case "checknorm":
			dr.CheckNormalized = true
		default:
			if hasArg {
				return nil, fmt.Errorf("sl tag: unknown option %q", key)
			}
			return nil, fmt.Errorf("sl tag: unknown flag %q", key)
		}
	}
	return dr, nil
}
