// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagEmpty(t *testing.T) {
	dr, err := ParseTag(`json:"foo"`)
	require.NoError(t, err)
	assert.Nil(t, dr)
}

func TestParseTagPacking(t *testing.T) {
	dr, err := ParseTag(`sl:"name=perceptualSmoothness,bits=8,offset=16,scheme=float,range=0:1"`)
	require.NoError(t, err)
	require.NotNil(t, dr)
	assert.Equal(t, "perceptualSmoothness", dr.NameOverride)
	assert.True(t, dr.HasBits)
	assert.Equal(t, 8, dr.BitWidth)
	assert.Equal(t, 16, dr.BitOffset)
	assert.Equal(t, "float", dr.Scheme)
	assert.Equal(t, float32(0), dr.RangeMin)
	assert.Equal(t, float32(1), dr.RangeMax)
}

func TestParseTagFlags(t *testing.T) {
	dr, err := ParseTag(`sl:"dir,srgb,checknorm,guard=SHADOWS_ENABLED,half"`)
	require.NoError(t, err)
	assert.True(t, dr.IsDirection)
	assert.True(t, dr.IsSRGB)
	assert.True(t, dr.CheckNormalized)
	assert.True(t, dr.Half)
	assert.Equal(t, "SHADOWS_ENABLED", dr.Guard)
}

func TestParseTagNames(t *testing.T) {
	dr, err := ParseTag(`sl:"bits=10,scheme=uint,names=coatMask|iridescence"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"coatMask", "iridescence"}, dr.DisplayNames)
}

func TestParseTagRange(t *testing.T) {
	dr, err := ParseTag(`sl:"bits=12,scheme=float,range=-1:3.5"`)
	require.NoError(t, err)
	assert.Equal(t, float32(-1), dr.RangeMin)
	assert.Equal(t, float32(3.5), dr.RangeMax)
}

func TestParseTagErrors(t *testing.T) {
	bad := []string{
		`sl:"bits=0"`,
		`sl:"bits=40"`,
		`sl:"bits=abc"`,
		`sl:"offset=32"`,
		`sl:"array=x"`,
		`sl:"range=5"`,
		`sl:"range=a:b"`,
		`sl:"bogus=1"`,
		`sl:"bogus"`,
	}
	for _, tag := range bad {
		_, err := ParseTag(tag)
		assert.Error(t, err, tag)
	}
}
