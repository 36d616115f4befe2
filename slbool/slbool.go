// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package slbool defines Bool, an int32-backed bool for structs marked
for shader generation. Go bool has no stable GPU-side size; slgen
maps Bool to HLSL bool while the Go side keeps 4 byte alignment.
*/
package slbool

type Bool int32

const (
	False Bool = 0
	True  Bool = 1
)

// IsTrue returns the Go bool value.
func IsTrue(b Bool) bool {
	return b == True
}

// FromBool converts a Go bool for assignment into a generated struct.
func FromBool(b bool) Bool {
	if b {
		return True
	}
	return False
}
