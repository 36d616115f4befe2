// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package alignsl checks that struct types marked for shader
generation have sizes that are an even multiple of 16 bytes
(4 float32's), using 32 bit types: [U]Int32, Float32.
GPU uniform layouts pad to 16 byte boundaries, so a misaligned
Go struct silently reads garbage on the shader side.
*/
package alignsl

import (
	"fmt"
	"go/types"
	"strings"
)

// CheckStruct checks one struct type against the given sizes,
// returning an error describing every problem found, or nil.
func CheckStruct(name string, st *types.Struct, sizes types.Sizes) error {
	nf := st.NumFields()
	if nf == 0 {
		return nil
	}
	var probs []string
	var flds []*types.Var
	for i := 0; i < nf; i++ {
		fl := st.Field(i)
		flds = append(flds, fl)
		ut := fl.Type().Underlying()
		if bt, isBasic := ut.(*types.Basic); isBasic {
			kind := bt.Kind()
			if !(kind == types.Uint32 || kind == types.Int32 || kind == types.Float32) {
				probs = append(probs, fmt.Sprintf("%s: basic type != [U]Int32 or Float32: %s", fl.Name(), bt.String()))
			}
			continue
		}
		switch ut.(type) {
		case *types.Struct, *types.Array:
			// checked via total size
		default:
			probs = append(probs, fmt.Sprintf("%s: unsupported type: %s", fl.Name(), fl.Type().String()))
		}
	}
	offs := sizes.Offsetsof(flds)
	last := sizes.Sizeof(flds[nf-1].Type())
	totsz := int(offs[nf-1] + last)
	if totsz%16 != 0 {
		probs = append(probs, fmt.Sprintf("total size: %d not even multiple of 16", totsz))
	}
	if len(probs) == 0 {
		return nil
	}
	return fmt.Errorf("alignsl: struct %s: %s", name, strings.Join(probs, "; "))
}
