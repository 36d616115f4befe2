// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slemit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goki.dev/slgen/slfield"
	"goki.dev/slgen/slpack"
)

func packedField(nm string, dr *slfield.Directive) *slfield.FieldDescriptor {
	dr.HasBits = true
	return &slfield.FieldDescriptor{Name: nm, DisplayName: nm,
		Kind: slfield.UInt, Rows: 1, Cols: 1, Directive: dr}
}

func TestPackedFloat(t *testing.T) {
	fd := packedField("perceptualSmoothness", &slfield.Directive{
		BitWidth: 8, BitOffset: 16, Scheme: "float", RangeMin: 0, RangeMax: 1})
	em := New("Surface", mustPack(t, fd))
	frags := generate(t, em)

	decl := one(t, frags, Declaration)
	assert.Equal(t, "struct Surface\n{\n    uint perceptualSmoothness;\n};\n", decl.Text)

	get := one(t, frags, PackedGetter)
	assert.Equal(t,
		"float GetPerceptualSmoothness(Surface value)\n{\n"+
			"    return float((value.perceptualSmoothness >> 16) & 255u) / 255.0;\n}\n",
		get.Text)

	set := one(t, frags, PackedSetter)
	assert.Equal(t,
		"void SetPerceptualSmoothness(float newValue, inout Surface value)\n{\n"+
			"    uint raw = uint(saturate(newValue) * 255.0);\n"+
			"    value.perceptualSmoothness = (value.perceptualSmoothness & ~(255u << 16)) | (raw << 16);\n}\n",
		set.Text)

	init := one(t, frags, PackedInitializer)
	assert.Equal(t,
		"// InitPerceptualSmoothness requires value.perceptualSmoothness to be zero-initialized.\n"+
			"void InitPerceptualSmoothness(float newValue, inout Surface value)\n{\n"+
			"    uint raw = uint(saturate(newValue) * 255.0);\n"+
			"    value.perceptualSmoothness |= (raw << 16);\n}\n",
		init.Text)
}

func TestPackedFloatOffsetZero(t *testing.T) {
	fd := packedField("coatMask", &slfield.Directive{
		BitWidth: 8, Scheme: "float", RangeMin: 0, RangeMax: 1})
	em := New("Surface", mustPack(t, fd))
	frags := generate(t, em)

	get := one(t, frags, PackedGetter)
	assert.Contains(t, get.Text, "return float(value.coatMask & 255u) / 255.0;")

	set := one(t, frags, PackedSetter)
	assert.Contains(t, set.Text, "value.coatMask = (value.coatMask & ~255u) | raw;")
}

func TestPackedFloatRemapped(t *testing.T) {
	fd := packedField("anisotropy", &slfield.Directive{
		BitWidth: 8, Scheme: "float", RangeMin: -1, RangeMax: 1})
	em := New("Surface", mustPack(t, fd))
	frags := generate(t, em)

	get := one(t, frags, PackedGetter)
	assert.Equal(t,
		"float GetAnisotropy(Surface value)\n{\n"+
			"    float v = float(value.anisotropy & 255u) / 255.0;\n"+
			"    return v * 2.0 + -1.0;\n}\n",
		get.Text)

	set := one(t, frags, PackedSetter)
	assert.Contains(t, set.Text, "uint raw = uint(saturate((newValue - -1.0) / 2.0) * 255.0);")
}

func TestPackedUint(t *testing.T) {
	fd := packedField("mask", &slfield.Directive{
		BitWidth: 4, BitOffset: 8, Scheme: "uint", RangeMin: 0, RangeMax: 1})
	em := New("Surface", mustPack(t, fd))
	frags := generate(t, em)

	// uint getter returns the raw extracted bits
	get := one(t, frags, PackedGetter)
	assert.Equal(t,
		"uint GetMask(Surface value)\n{\n    return (value.mask >> 8) & 15u;\n}\n",
		get.Text)

	// the setter still quantizes through the unorm domain
	set := one(t, frags, PackedSetter)
	assert.Contains(t, set.Text, "void SetMask(uint newValue, inout Surface value)\n")
	assert.Contains(t, set.Text, "uint raw = uint(saturate(float(newValue)) * 15.0);")
}

func TestPackedFullWord(t *testing.T) {
	fd := packedField("word", &slfield.Directive{
		BitWidth: 32, Scheme: "float", RangeMin: 0, RangeMax: 1})
	em := New("Surface", mustPack(t, fd))
	frags := generate(t, em)

	get := one(t, frags, PackedGetter)
	assert.Contains(t, get.Text, "return float(value.word) / 4.2949673e+09;")

	set := one(t, frags, PackedSetter)
	assert.Contains(t, set.Text, "value.word = raw;")
}

func TestPackedR11G11B10(t *testing.T) {
	fd := packedField("emissiveColor", &slfield.Directive{
		BitWidth: 32, Scheme: "r11g11b10", RangeMin: 0, RangeMax: 4})
	em := New("Surface", mustPack(t, fd))
	frags := generate(t, em)

	get := one(t, frags, PackedGetter)
	assert.Equal(t,
		"float3 GetEmissiveColor(Surface value)\n{\n"+
			"    uint w = value.emissiveColor;\n"+
			"    float3 v = float3(float(w & 2047u) / 2047.0, float((w >> 11) & 2047u) / 2047.0, float((w >> 22) & 1023u) / 1023.0);\n"+
			"    return v * 4.0 + 0.0;\n}\n",
		get.Text)

	set := one(t, frags, PackedSetter)
	assert.Equal(t,
		"void SetEmissiveColor(float3 newValue, inout Surface value)\n{\n"+
			"    float3 n = saturate((newValue - 0.0) / 4.0);\n"+
			"    value.emissiveColor = uint(n.x * 2047.0) | (uint(n.y * 2047.0) << 11) | (uint(n.z * 1023.0) << 22);\n}\n",
		set.Text)

	init := one(t, frags, PackedInitializer)
	assert.Contains(t, init.Text, "value.emissiveColor |= uint(n.x * 2047.0)")
}

func TestPackedSharedWord(t *testing.T) {
	// two logical names over one physical word emit two full triples
	fd := packedField("packedData", &slfield.Directive{
		BitWidth: 10, Scheme: "uint", RangeMin: 0, RangeMax: 1,
		DisplayNames: []string{"coatMask", "iridescence"}})
	em := New("Surface", mustPack(t, fd))
	frags := generate(t, em)

	gets := OfKind(frags, PackedGetter)
	require.Len(t, gets, 2)
	assert.Contains(t, gets[0].Text, "GetCoatMask(Surface value)")
	assert.Contains(t, gets[1].Text, "GetIridescence(Surface value)")
	assert.Len(t, OfKind(frags, PackedSetter), 2)
	assert.Len(t, OfKind(frags, PackedInitializer), 2)
}

func TestPackedDirectiveError(t *testing.T) {
	// unresolvable directive: a marker comment replaces the triple
	// and the error surfaces so the caller can discard the type
	fd := packedField("bad", &slfield.Directive{
		BitWidth: 8, Scheme: "bogus", RangeMin: 0, RangeMax: 1})
	em := New("Surface", mustPack(t, fd))
	frags, errs := em.Generate()
	require.Len(t, errs, 1)
	var de *slpack.DirectiveError
	require.ErrorAs(t, errs[0], &de)

	gets := OfKind(frags, PackedGetter)
	require.Len(t, gets, 1)
	assert.Contains(t, gets[0].Text, "// ERROR: cannot generate packed accessors for bad:")
}
