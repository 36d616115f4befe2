// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slpack

import "goki.dev/mat32/v2"

// MaxQuant is the largest quantized value representable in the
// given number of bits: 2^bits - 1.
func MaxQuant(bits int) uint32 {
	return uint32(1)<<uint(bits) - 1
}

// Quantize encodes a value in [min, max] into bits-wide unorm
// storage: normalize to [0, 1], clamp, scale by 2^bits-1, truncate.
// Encoding 0.5 at 8 bits yields 127.
func Quantize(v, min, max float32, bits int) uint32 {
	n := mat32.Clamp((v-min)/(max-min), 0, 1)
	return uint32(n * float32(MaxQuant(bits)))
}

// Dequantize decodes bits-wide unorm storage back into [min, max].
// The round-trip error of Quantize then Dequantize is bounded by
// (max-min) / (2^bits - 1).
func Dequantize(q uint32, min, max float32, bits int) float32 {
	return float32(q)/float32(MaxQuant(bits))*(max-min) + min
}

// ExtractBits reads width bits starting at offset from a 32 bit word.
func ExtractBits(word uint32, offset, width int) uint32 {
	return (word >> uint(offset)) & MaxQuant(width)
}

// InsertBits is the destructive bit replace used by setters:
// mask-clear the target range, then OR in the new value. Safe on
// any prior content.
func InsertBits(word, value uint32, offset, width int) uint32 {
	mask := MaxQuant(width) << uint(offset)
	return (word &^ mask) | ((value & MaxQuant(width)) << uint(offset))
}

// PackR11G11B10 packs three channels into one 32 bit word as
// 11/11/10 bit unorm, low bits first, with the uniform [min, max]
// range remap applied to every channel.
func PackR11G11B10(v mat32.Vec3, min, max float32) uint32 {
	r := Quantize(v.X, min, max, 11)
	g := Quantize(v.Y, min, max, 11)
	b := Quantize(v.Z, min, max, 10)
	return r | g<<11 | b<<22
}

// UnpackR11G11B10 unpacks the three channels of a packed word back
// into the declared [min, max] range.
func UnpackR11G11B10(u uint32, min, max float32) mat32.Vec3 {
	return mat32.NewVec3(
		Dequantize(u&0x7FF, min, max, 11),
		Dequantize(u>>11&0x7FF, min, max, 11),
		Dequantize(u>>22&0x3FF, min, max, 10),
	)
}
