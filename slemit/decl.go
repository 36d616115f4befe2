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

// memberType returns the declared HLSL type of one register.
// Bit-packed storage is always a plain uint word; NoPacking keeps
// the native type.
func (em *Emitter) memberType(pr *slpack.PackedRegister) string {
	fd := pr.Fields[0]
	if fd.Kind == slfield.Struct {
		return fd.StructName
	}
	if pl, ok := em.layouts[fd]; ok && pl.Scheme != slpack.NoPacking {
		return "uint"
	}
	return TypeName(pr.Kind, pr.Rows, pr.Cols)
}

// declaration emits the struct or cbuffer block listing members in
// final merged order, with array suffixes, guard wrapping, and
// trailing comments.
func (em *Emitter) declaration() {
	var b strings.Builder
	kw := "struct"
	if em.CBuffer {
		kw = "cbuffer"
	}
	fmt.Fprintf(&b, "%s %s\n{\n", kw, em.Type)
	for _, pr := range em.Regs {
		fd := pr.Fields[0]
		line := "    " + em.memberType(pr) + " " + pr.Name
		if pr.ArraySize > 0 {
			line += fmt.Sprintf("[%d]", pr.ArraySize)
		}
		line += ";"
		if !pr.Merged && fd.Comment != "" {
			line += " // " + fd.Comment
		}
		if !pr.Merged && fd.Guard != "" {
			fmt.Fprintf(&b, "#ifdef %s\n%s\n#endif\n", fd.Guard, line)
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("};\n")
	em.add(Declaration, em.Type, b.String())
}
