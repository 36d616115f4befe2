// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sltype

import "goki.dev/mat32/v2"

// Int maps to HLSL int
type Int = int32

// Int2 maps to HLSL int2
type Int2 = mat32.Vec2i

// Int3 maps to HLSL int3
type Int3 = mat32.Vec3i

// Uint maps to HLSL uint
type Uint = uint32
