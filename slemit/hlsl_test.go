// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slemit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"goki.dev/slgen/slfield"
)

func TestTypeName(t *testing.T) {
	assert.Equal(t, "float", TypeName(slfield.Float, 1, 1))
	assert.Equal(t, "float3", TypeName(slfield.Float, 3, 1))
	assert.Equal(t, "float4x4", TypeName(slfield.Float, 4, 4))
	assert.Equal(t, "int2", TypeName(slfield.Int, 2, 1))
	assert.Equal(t, "uint", TypeName(slfield.UInt, 1, 1))
	assert.Equal(t, "bool", TypeName(slfield.Bool, 1, 1))
	assert.Equal(t, "min16float3", TypeName(slfield.Half, 3, 1))
	assert.Equal(t, "real", TypeName(slfield.Real, 1, 1))
}

func TestSwizzle(t *testing.T) {
	assert.Equal(t, "x", Swizzle(0, 1))
	assert.Equal(t, "y", Swizzle(1, 1))
	assert.Equal(t, "yz", Swizzle(1, 2))
	assert.Equal(t, "xyzw", Swizzle(0, 4))
	assert.Equal(t, "w", Swizzle(3, 1))
}

func TestFloatLit(t *testing.T) {
	assert.Equal(t, "0.0", FloatLit(0))
	assert.Equal(t, "1.0", FloatLit(1))
	assert.Equal(t, "0.5", FloatLit(0.5))
	assert.Equal(t, "255.0", FloatLit(255))
	assert.Equal(t, "-1.0", FloatLit(-1))
	assert.Equal(t, "3.5", FloatLit(3.5))
}
