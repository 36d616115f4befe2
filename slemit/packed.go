// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slemit

import (
	"fmt"
	"strings"

	"goki.dev/slgen/slfield"
	"goki.dev/slgen/slpack"
)

// packed emits the bit-level getter / setter / initializer triple
// for every display name of one explicitly packed field.
func (em *Emitter) packed(ac *slpack.Accessor, pl *slpack.PackingLayout) {
	for _, nm := range pl.DisplayNames {
		em.packedGetter(ac, pl, nm)
		em.packedSetter(ac, pl, nm, false)
		em.packedSetter(ac, pl, nm, true)
	}
}

// packedType is the value type seen by callers of the packed
// accessors for one scheme.
func packedType(ac *slpack.Accessor, pl *slpack.PackingLayout) string {
	switch pl.Scheme {
	case slpack.PackedFloat:
		return "float"
	case slpack.PackedUint:
		return "uint"
	case slpack.R11G11B10:
		return "float3"
	}
	return fieldType(ac) // NoPacking keeps the native type
}

func maskLit(width int) string {
	return fmt.Sprintf("%du", slpack.MaxQuant(width))
}

// extractExpr selects width bits at offset from the member.
func extractExpr(member string, offset, width int) string {
	if width == 32 {
		return member
	}
	if offset == 0 {
		return member + " & " + maskLit(width)
	}
	return fmt.Sprintf("(%s >> %d) & %s", member, offset, maskLit(width))
}

// normExpr inverse-normalizes an input into [0, 1] for quantized
// storage: saturate((v - min) / (max - min)), with the remap elided
// for the identity [0, 1] range.
func normExpr(input string, pl *slpack.PackingLayout) string {
	if !pl.Remapped() {
		return fmt.Sprintf("saturate(%s)", input)
	}
	return fmt.Sprintf("saturate((%s - %s) / %s)", input, FloatLit(pl.Min), FloatLit(pl.Max-pl.Min))
}

func (em *Emitter) packedGetter(ac *slpack.Accessor, pl *slpack.PackingLayout, nm string) {
	member := "value." + ac.Register
	var b strings.Builder
	fmt.Fprintf(&b, "%s Get%s(%s value)\n{\n", packedType(ac, pl), slfield.UpperFirst(nm), em.Type)
	switch pl.Scheme {
	case slpack.PackedFloat:
		scale := FloatLit(float32(slpack.MaxQuant(pl.BitWidth)))
		raw := fmt.Sprintf("float(%s) / %s", extractExpr(member, pl.BitOffset, pl.BitWidth), scale)
		if pl.Remapped() {
			fmt.Fprintf(&b, "    float v = %s;\n", raw)
			fmt.Fprintf(&b, "    return v * %s + %s;\n", FloatLit(pl.Max-pl.Min), FloatLit(pl.Min))
		} else {
			fmt.Fprintf(&b, "    return %s;\n", raw)
		}
	case slpack.PackedUint:
		fmt.Fprintf(&b, "    return %s;\n", extractExpr(member, pl.BitOffset, pl.BitWidth))
	case slpack.R11G11B10:
		fmt.Fprintf(&b, "    uint w = %s;\n", member)
		fmt.Fprintf(&b, "    float3 v = float3(float(w & 2047u) / 2047.0, float((w >> 11) & 2047u) / 2047.0, float((w >> 22) & 1023u) / 1023.0);\n")
		if pl.Remapped() {
			fmt.Fprintf(&b, "    return v * %s + %s;\n", FloatLit(pl.Max-pl.Min), FloatLit(pl.Min))
		} else {
			fmt.Fprintf(&b, "    return v;\n")
		}
	default: // NoPacking
		fmt.Fprintf(&b, "    return %s;\n", member)
	}
	b.WriteString("}\n")
	em.addGuarded(PackedGetter, ac, b.String())
}

// packedSetter emits the destructive bit-replace setter, or the
// OR-accumulating initializer when init is true. The initializer
// must only be used on zero-initialized storage.
func (em *Emitter) packedSetter(ac *slpack.Accessor, pl *slpack.PackingLayout, nm string, init bool) {
	member := "value." + ac.Register
	verb, kind := "Set", PackedSetter
	if init {
		verb, kind = "Init", PackedInitializer
	}
	var b strings.Builder
	if init {
		fmt.Fprintf(&b, "// Init%s requires %s to be zero-initialized.\n", slfield.UpperFirst(nm), member)
	}
	fmt.Fprintf(&b, "void %s%s(%s newValue, inout %s value)\n{\n",
		verb, slfield.UpperFirst(nm), packedType(ac, pl), em.Type)
	switch pl.Scheme {
	case slpack.PackedFloat, slpack.PackedUint:
		scale := FloatLit(float32(slpack.MaxQuant(pl.BitWidth)))
		input := "newValue"
		if pl.Scheme == slpack.PackedUint {
			input = "float(newValue)"
		}
		fmt.Fprintf(&b, "    uint raw = uint(%s * %s);\n", normExpr(input, pl), scale)
		shifted := "raw"
		if pl.BitOffset > 0 {
			shifted = fmt.Sprintf("(raw << %d)", pl.BitOffset)
		}
		switch {
		case init:
			fmt.Fprintf(&b, "    %s |= %s;\n", member, shifted)
		case pl.BitWidth == 32:
			fmt.Fprintf(&b, "    %s = raw;\n", member)
		case pl.BitOffset == 0:
			fmt.Fprintf(&b, "    %s = (%s & ~%s) | raw;\n", member, member, maskLit(pl.BitWidth))
		default:
			fmt.Fprintf(&b, "    %s = (%s & ~(%s << %d)) | %s;\n",
				member, member, maskLit(pl.BitWidth), pl.BitOffset, shifted)
		}
	case slpack.R11G11B10:
		fmt.Fprintf(&b, "    float3 n = %s;\n", normExpr("newValue", pl))
		word := "uint(n.x * 2047.0) | (uint(n.y * 2047.0) << 11) | (uint(n.z * 1023.0) << 22)"
		if init {
			fmt.Fprintf(&b, "    %s |= %s;\n", member, word)
		} else {
			fmt.Fprintf(&b, "    %s = %s;\n", member, word)
		}
	default: // NoPacking: plain assignment of the native type
		fmt.Fprintf(&b, "    %s = newValue;\n", member)
	}
	b.WriteString("}\n")
	em.addGuarded(kind, ac, b.String())
}
