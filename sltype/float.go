// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sltype provides the Go-side declaration types for structs
marked for shader generation. The slgen extractor maps these aliases
onto the HLSL scalar and vector types of the same shape: Float3
becomes float3, Int2 becomes int2, and so on.
*/
package sltype

import "goki.dev/mat32/v2"

// Float maps to HLSL float
type Float = float32

// Float2 maps to HLSL float2
type Float2 = mat32.Vec2

// Float3 maps to HLSL float3
type Float3 = mat32.Vec3

// Float4 maps to HLSL float4
type Float4 = mat32.Vec4
