// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slemit

import (
	"fmt"
	"strconv"

	"goki.dev/slgen/slfield"
)

// scalar HLSL type names per field kind
var scalarNames = map[slfield.FieldKind]string{
	slfield.Float: "float",
	slfield.Int:   "int",
	slfield.UInt:  "uint",
	slfield.Bool:  "bool",
	slfield.Half:  "min16float",
	slfield.Real:  "real",
}

// TypeName returns the HLSL type for a kind and shape: float,
// float3, float4x4, uint2, min16float3 etc.
func TypeName(k slfield.FieldKind, rows, cols int) string {
	sn, ok := scalarNames[k]
	if !ok {
		return "unknown"
	}
	if cols > 1 {
		return fmt.Sprintf("%s%dx%d", sn, rows, cols)
	}
	if rows > 1 {
		return fmt.Sprintf("%s%d", sn, rows)
	}
	return sn
}

// Swizzle returns the component selection suffix for count
// components starting at offset, e.g. (1, 2) -> "yz".
func Swizzle(offset, count int) string {
	const comps = "xyzw"
	return comps[offset : offset+count]
}

// FloatLit formats a float as an HLSL literal, always with a
// decimal point so the literal stays a float.
func FloatLit(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return s
		}
	}
	return s + ".0"
}
