// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package slfield turns Go struct fields into shader field descriptors,
which drive register packing and HLSL code generation in the slpack
and slemit packages.
*/
package slfield

import "fmt"

// FieldKind is the primitive element kind of a shader field.
// Kind resolution happens once per field at extraction time --
// downstream passes switch on the kind and never inspect Go types.
type FieldKind int32

const (
	// Float is a 32 bit float (HLSL float)
	Float FieldKind = iota

	// Int is a 32 bit signed integer (HLSL int)
	Int

	// UInt is a 32 bit unsigned integer (HLSL uint)
	UInt

	// Bool is a bool stored as an int32 (slbool.Bool)
	Bool

	// Half is a reduced 16 bit float (HLSL min16float)
	Half

	// Real is the precision-configurable real macro type
	Real

	// Struct is a nested generated struct type, referenced by name
	Struct

	KindN
)

var kindNames = map[FieldKind]string{
	Float:  "Float",
	Int:    "Int",
	UInt:   "UInt",
	Bool:   "Bool",
	Half:   "Half",
	Real:   "Real",
	Struct: "Struct",
}

func (k FieldKind) String() string {
	if nm, ok := kindNames[k]; ok {
		return nm
	}
	return fmt.Sprintf("FieldKind(%d)", int32(k))
}

// FieldDescriptor describes one field of a composite shader type,
// as produced by the Extractor. Descriptors are built once per type
// and are read-only thereafter -- the packer produces a new derived
// register list without mutating its input.
type FieldDescriptor struct {
	// Name is the original Go field name, never modified
	Name string

	// DisplayName is the name used in generated code -- the tag
	// name override if present, otherwise Name with any leading
	// marker prefix stripped
	DisplayName string

	// Kind is the primitive element kind
	Kind FieldKind

	// Rows is the vector length (1 for scalars, up to 4)
	Rows int

	// Cols is 1 except for matrix fields
	Cols int

	// ArraySize is the fixed array length, 0 for non-arrays
	ArraySize int

	// StructName is the nested generated type name for Kind == Struct
	StructName string

	// Guard is an optional preprocessor symbol wrapping this field
	Guard string

	// Comment is the field doc comment, emitted as a trailing comment
	Comment string

	// Directive holds the parsed sl struct tag options, nil if none
	Directive *Directive

	// Pos is the source position of the field, for diagnostics
	Pos string
}

// ElementCount is the total number of scalar components:
// rows * cols * max(arraySize, 1)
func (fd *FieldDescriptor) ElementCount() int {
	return fd.Rows * fd.Cols * max(fd.ArraySize, 1)
}

// HasPacking is true if the field carries an explicit bit-level
// packing directive. Such fields are excluded from ordinary
// accessor and setter generation.
func (fd *FieldDescriptor) HasPacking() bool {
	return fd.Directive != nil && fd.Directive.HasBits
}

// StaticConstant is a name -> literal value pair sourced from
// enumerated constant members or static primitive values, emitted
// as a #define.
type StaticConstant struct {
	// Name is the final constant name, in SCREAMING_SNAKE form
	Name string

	// Value is the literal value text
	Value string
}

// ExtractionError reports a field that could not be turned into
// descriptors. Extraction continues past the error so that all
// problems in a type are reported together.
type ExtractionError struct {
	// Field is the offending field name
	Field string

	// Pos is the source position, if known
	Pos string

	// Msg describes the problem
	Msg string
}

func (e *ExtractionError) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("%s: slfield: field %s: %s", e.Pos, e.Field, e.Msg)
	}
	return fmt.Sprintf("slfield: field %s: %s", e.Field, e.Msg)
}
