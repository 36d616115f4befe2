// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slemit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goki.dev/slgen/slfield"
	"goki.dev/slgen/slpack"
)

func scalar(nm string, k slfield.FieldKind) *slfield.FieldDescriptor {
	return &slfield.FieldDescriptor{Name: nm, DisplayName: nm, Kind: k, Rows: 1, Cols: 1}
}

func vec(nm string, k slfield.FieldKind, rows int) *slfield.FieldDescriptor {
	return &slfield.FieldDescriptor{Name: nm, DisplayName: nm, Kind: k, Rows: rows, Cols: 1}
}

func mustPack(t *testing.T, fds ...*slfield.FieldDescriptor) []*slpack.PackedRegister {
	t.Helper()
	regs, err := slpack.Pack(fds)
	require.NoError(t, err)
	return regs
}

func generate(t *testing.T, em *Emitter) []Fragment {
	t.Helper()
	frags, errs := em.Generate()
	require.Empty(t, errs)
	return frags
}

func one(t *testing.T, frags []Fragment, k FragmentKind) Fragment {
	t.Helper()
	of := OfKind(frags, k)
	require.Len(t, of, 1)
	return of[0]
}

func TestEmptyType(t *testing.T) {
	em := New("Empty", nil)
	frags := generate(t, em)
	require.Len(t, frags, 1)
	assert.Equal(t, "struct Empty\n{\n};\n", frags[0].Text)
	assert.Equal(t, "// Code generated by slgen from Empty. DO NOT EDIT.\n\nstruct Empty\n{\n};\n",
		Render("Empty", frags))
}

func TestMergedRegister(t *testing.T) {
	em := New("Params", mustPack(t,
		scalar("x", slfield.Float),
		scalar("y", slfield.Float),
		scalar("z", slfield.Float),
	))
	frags := generate(t, em)

	decl := one(t, frags, Declaration)
	assert.Equal(t, "struct Params\n{\n    float3 x_y_z;\n};\n", decl.Text)

	gets := OfKind(frags, Accessor)
	require.Len(t, gets, 3)
	assert.Equal(t, "float GetY(Params value)\n{\n    return value.x_y_z.y;\n}\n", gets[1].Text)

	sets := OfKind(frags, Setter)
	require.Len(t, sets, 3)
	assert.Equal(t, "void SetY(float newValue, inout Params value)\n{\n    value.x_y_z.y = newValue;\n}\n",
		sets[1].Text)

	inits := OfKind(frags, Initializer)
	require.Len(t, inits, 3)
	assert.Contains(t, inits[0].Text, "// InitX requires the packed storage of value to be zero-initialized.\n")
	assert.Contains(t, inits[0].Text, "void InitX(float newValue, inout Params value)\n")
}

func TestWholeRegisterAccessor(t *testing.T) {
	em := New("Surface", mustPack(t, vec("normalWS", slfield.Float, 3)))
	frags := generate(t, em)
	get := one(t, frags, Accessor)
	assert.Equal(t, "float3 GetNormalWS(Surface value)\n{\n    return value.normalWS;\n}\n", get.Text)
}

func TestCBufferDeclaration(t *testing.T) {
	em := New("LightData", mustPack(t, vec("positionWS", slfield.Float, 3), scalar("range", slfield.Float)))
	em.CBuffer = true
	frags := generate(t, em)
	decl := one(t, frags, Declaration)
	assert.Equal(t, "cbuffer LightData\n{\n    float4 positionWS_range;\n};\n", decl.Text)
}

func TestArrayMember(t *testing.T) {
	arr := &slfield.FieldDescriptor{Name: "shadowAttenuation", DisplayName: "shadowAttenuation",
		Kind: slfield.Float, Rows: 1, Cols: 1, ArraySize: 4}
	em := New("LightData", mustPack(t, arr))
	frags := generate(t, em)

	decl := one(t, frags, Declaration)
	assert.Equal(t, "struct LightData\n{\n    float shadowAttenuation[4];\n};\n", decl.Text)

	get := one(t, frags, Accessor)
	assert.Equal(t,
		"float GetShadowAttenuation(LightData value, int index)\n{\n    return value.shadowAttenuation[index];\n}\n",
		get.Text)

	set := one(t, frags, Setter)
	assert.Equal(t,
		"void SetShadowAttenuation(float newValue, inout LightData value, int index)\n{\n    value.shadowAttenuation[index] = newValue;\n}\n",
		set.Text)
}

func TestGuardedMember(t *testing.T) {
	g := &slfield.FieldDescriptor{Name: "shadow", DisplayName: "shadow",
		Kind: slfield.Float, Rows: 1, Cols: 1, Guard: "SHADOWS_ENABLED"}
	em := New("Surface", mustPack(t, g))
	frags := generate(t, em)

	decl := one(t, frags, Declaration)
	assert.Equal(t, "struct Surface\n{\n#ifdef SHADOWS_ENABLED\n    float shadow;\n#endif\n};\n", decl.Text)

	get := one(t, frags, Accessor)
	assert.Equal(t,
		"#ifdef SHADOWS_ENABLED\nfloat GetShadow(Surface value)\n{\n    return value.shadow;\n}\n#endif\n",
		get.Text)
}

func TestMemberComment(t *testing.T) {
	fd := scalar("metallic", slfield.Float)
	fd.Comment = "metalness in [0, 1]"
	em := New("Surface", mustPack(t, fd))
	frags := generate(t, em)
	decl := one(t, frags, Declaration)
	assert.Equal(t, "struct Surface\n{\n    float metallic; // metalness in [0, 1]\n};\n", decl.Text)
}

func TestNestedStructMember(t *testing.T) {
	fd := &slfield.FieldDescriptor{Name: "sub", DisplayName: "sub",
		Kind: slfield.Struct, StructName: "SubData", Rows: 1, Cols: 1}
	em := New("Outer", mustPack(t, fd))
	frags := generate(t, em)

	decl := one(t, frags, Declaration)
	assert.Equal(t, "struct Outer\n{\n    SubData sub;\n};\n", decl.Text)

	get := one(t, frags, Accessor)
	assert.Equal(t, "SubData GetSub(Outer value)\n{\n    return value.sub;\n}\n", get.Text)
}

func TestConstants(t *testing.T) {
	em := New("LightData", nil)
	em.Consts = []*slfield.StaticConstant{
		{Name: "LIGHT_TYPE_DIRECTIONAL", Value: "0"},
		{Name: "LIGHT_TYPE_POINT", Value: "1"},
	}
	frags := generate(t, em)
	cs := one(t, frags, Constants)
	assert.Equal(t, "#define LIGHT_TYPE_DIRECTIONAL (0)\n#define LIGHT_TYPE_POINT (1)\n", cs.Text)
}

func TestRenderOrder(t *testing.T) {
	em := New("Params", mustPack(t, scalar("x", slfield.Float)))
	em.Consts = []*slfield.StaticConstant{{Name: "MAX", Value: "8"}}
	frags := generate(t, em)
	out := Render("Params", frags)
	assert.True(t, strings.HasPrefix(out, "// Code generated by slgen from Params. DO NOT EDIT.\n"))
	assert.Less(t, strings.Index(out, "#define MAX"), strings.Index(out, "struct Params"))
	assert.Less(t, strings.Index(out, "struct Params"), strings.Index(out, "GetX"))
}
