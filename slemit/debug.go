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

// debugEntry is one case of the debug dispatch switch: a numeric
// parameter id mapped to a displayable value.
type debugEntry struct {
	id   string // DEBUGVIEW_<TYPE>_<NAME> constant
	num  int
	name string
	ac   *slpack.Accessor
	pl   *slpack.PackingLayout // nil for ordinary fields
}

// debugEntries lists the dispatch cases in declaration order, one
// per field, and one per display name for packed fields. Nested
// struct fields dispatch through their own generated function and
// are not listed here.
func (em *Emitter) debugEntries() []*debugEntry {
	var ents []*debugEntry
	tn := slfield.ConstName(em.Type)
	num := em.DebugBase
	addEntry := func(nm string, ac *slpack.Accessor, pl *slpack.PackingLayout) {
		num++
		ents = append(ents, &debugEntry{
			id:   fmt.Sprintf("DEBUGVIEW_%s_%s", tn, slfield.ConstName(nm)),
			num:  num,
			name: nm,
			ac:   ac,
			pl:   pl,
		})
	}
	for _, ac := range slpack.Accessors(em.Regs) {
		if ac.Field.Kind == slfield.Struct {
			continue
		}
		if ac.Field.HasPacking() {
			if pl, ok := em.layouts[ac.Field]; ok {
				for _, nm := range pl.DisplayNames {
					addEntry(nm, ac, pl)
				}
			}
			continue
		}
		addEntry(ac.Name, ac, nil)
	}
	return ents
}

// debugShape is the displayed kind and component count of an entry.
func debugShape(de *debugEntry) (slfield.FieldKind, int) {
	if de.pl != nil {
		switch de.pl.Scheme {
		case slpack.PackedFloat:
			return slfield.Float, 1
		case slpack.PackedUint:
			return slfield.UInt, 1
		case slpack.R11G11B10:
			return slfield.Float, 3
		}
	}
	fd := de.ac.Field
	if fd.Cols > 1 {
		// matrices display their first row
		return fd.Kind, fd.Cols
	}
	return fd.Kind, fd.Rows
}

// debugExpr is the expression producing the entry's value: the
// packed getter for packed fields, the member access otherwise.
// Arrayed fields display their first element.
func debugExpr(de *debugEntry) string {
	if de.pl != nil {
		return fmt.Sprintf("Get%s(value)", slfield.UpperFirst(de.name))
	}
	fd := de.ac.Field
	expr := "value." + de.ac.Register
	switch {
	case fd.ArraySize > 0:
		expr += "[0]"
	case !de.ac.Whole:
		expr += "." + Swizzle(de.ac.SwizzleOffset, de.ac.Count)
	}
	if fd.Cols > 1 {
		expr += "[0]"
	}
	return expr
}

// debugCase renders the body statements of one dispatch case.
func debugCase(de *debugEntry) []string {
	var lines []string
	dr := de.ac.Field.Directive
	if dr != nil && dr.IsSRGB {
		lines = append(lines, "needLinearToSRGB = true;")
	}
	expr := debugExpr(de)
	kind, n := debugShape(de)
	switch {
	case dr != nil && dr.IsDirection && dr.CheckNormalized:
		lines = append(lines,
			fmt.Sprintf("if (IsNormalized(%s))", expr),
			"{",
			fmt.Sprintf("    result = %s * 0.5 + 0.5;", expr),
			"}",
			"else",
			"{",
			"    result = float3(1.0, 0.0, 0.0);",
			"}")
	case dr != nil && dr.IsDirection:
		lines = append(lines, fmt.Sprintf("result = %s * 0.5 + 0.5;", expr))
	case kind == slfield.Int || kind == slfield.UInt:
		if n > 1 {
			expr += ".x"
		}
		lines = append(lines, fmt.Sprintf("result = GetIndexColor(%s);", expr))
	case n == 1:
		lines = append(lines, fmt.Sprintf("result = %s.xxx;", expr))
	case n == 2:
		lines = append(lines, fmt.Sprintf("result = float3(%s, 0.0);", expr))
	case n == 3:
		lines = append(lines, fmt.Sprintf("result = %s;", expr))
	default:
		lines = append(lines, fmt.Sprintf("result = %s.xyz;", expr))
	}
	return lines
}

// debug emits the dispatch function mapping parameter ids to
// 3-component display values. Guarded fields emit a matching #else
// branch producing zero, keeping the dispatch exhaustive under all
// build configurations.
func (em *Emitter) debug() {
	ents := em.debugEntries()
	var b strings.Builder
	fmt.Fprintf(&b, "void GetGenerated%sDebug(uint paramId, %s value, inout float3 result, inout bool needLinearToSRGB)\n",
		slfield.UpperFirst(em.Type), em.Type)
	b.WriteString("{\n    switch (paramId)\n    {\n")
	for _, de := range ents {
		guard := de.ac.Field.Guard
		if guard != "" {
			fmt.Fprintf(&b, "#ifdef %s\n", guard)
		}
		fmt.Fprintf(&b, "        case %s:\n", de.id)
		for _, ln := range debugCase(de) {
			fmt.Fprintf(&b, "            %s\n", ln)
		}
		b.WriteString("            break;\n")
		if guard != "" {
			fmt.Fprintf(&b, "#else\n        case %s:\n", de.id)
			b.WriteString("            result = float3(0.0, 0.0, 0.0);\n")
			b.WriteString("            break;\n#endif\n")
		}
	}
	b.WriteString("    }\n}\n")
	em.add(DebugDispatch, em.Type, b.String())
}
