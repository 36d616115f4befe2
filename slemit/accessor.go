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

// fieldType is the logical HLSL type of one accessor's field.
func fieldType(ac *slpack.Accessor) string {
	fd := ac.Field
	if fd.Kind == slfield.Struct {
		return fd.StructName
	}
	return TypeName(fd.Kind, fd.Rows, fd.Cols)
}

// fieldExpr is the expression selecting the field within value:
// the whole register, an indexed element, or a swizzle of the
// merged register starting at the field's offset.
func fieldExpr(ac *slpack.Accessor, indexed bool) string {
	expr := "value." + ac.Register
	if indexed {
		return expr + "[index]"
	}
	if !ac.Whole {
		expr += "." + Swizzle(ac.SwizzleOffset, ac.Count)
	}
	return expr
}

// accessor emits the getter for one unpacked field.
func (em *Emitter) accessor(ac *slpack.Accessor) {
	var b strings.Builder
	fn := "Get" + slfield.UpperFirst(ac.Name)
	arr := ac.Field.ArraySize > 0
	if arr {
		fmt.Fprintf(&b, "%s %s(%s value, int index)\n{\n", fieldType(ac), fn, em.Type)
	} else {
		fmt.Fprintf(&b, "%s %s(%s value)\n{\n", fieldType(ac), fn, em.Type)
	}
	fmt.Fprintf(&b, "    return %s;\n}\n", fieldExpr(ac, arr))
	em.addGuarded(Accessor, ac, b.String())
}

// setter emits the setter for one unpacked field, or the
// initializer variant when init is true. The initializer body is
// identical: it is valid only when the destination's packed storage
// is zero-initialized, which is a documented precondition, not
// enforced at runtime.
func (em *Emitter) setter(ac *slpack.Accessor, init bool) {
	var b strings.Builder
	verb, kind := "Set", Setter
	if init {
		verb, kind = "Init", Initializer
		fmt.Fprintf(&b, "// %s%s requires the packed storage of value to be zero-initialized.\n",
			verb, slfield.UpperFirst(ac.Name))
	}
	fn := verb + slfield.UpperFirst(ac.Name)
	arr := ac.Field.ArraySize > 0
	if arr {
		fmt.Fprintf(&b, "void %s(%s newValue, inout %s value, int index)\n{\n", fn, fieldType(ac), em.Type)
	} else {
		fmt.Fprintf(&b, "void %s(%s newValue, inout %s value)\n{\n", fn, fieldType(ac), em.Type)
	}
	fmt.Fprintf(&b, "    %s = newValue;\n}\n", fieldExpr(ac, arr))
	em.addGuarded(kind, ac, b.String())
}

// addGuarded wraps a function fragment in the field's preprocessor
// guard when one is present.
func (em *Emitter) addGuarded(k FragmentKind, ac *slpack.Accessor, text string) {
	if g := ac.Field.Guard; g != "" {
		text = fmt.Sprintf("#ifdef %s\n%s#endif\n", g, text)
	}
	em.add(k, ac.Name, text)
}
