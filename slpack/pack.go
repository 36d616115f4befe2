// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package slpack merges shader field descriptors into fixed 4-component
registers and resolves explicit bit-level packing directives.
*/
package slpack

import (
	"fmt"

	"goki.dev/slgen/slfield"
)

// PackedRegister is one physical member of the generated struct:
// either a single field, or an accumulation of same-kind scalar and
// vector fields merged into one register of at most 4 components.
type PackedRegister struct {
	// Name is the member name: the field display name, or the
	// merged field names joined by underscores
	Name string

	// Kind is the shared element kind of all merged fields
	Kind slfield.FieldKind

	// Rows is the cumulative component count, at most 4
	Rows int

	// Cols is 1 except for standalone matrix registers
	Cols int

	// ArraySize carries through for standalone array registers
	ArraySize int

	// Fields are the merged descriptors in declaration order
	Fields []*slfield.FieldDescriptor

	// Offsets[i] is the swizzle offset of Fields[i]: the register's
	// cumulative element count immediately before that field merged
	Offsets []int

	// Merged is true when more than one field shares this register
	Merged bool
}

// ElementCount is rows * cols * max(arraySize, 1).
func (pr *PackedRegister) ElementCount() int {
	return pr.Rows * pr.Cols * max(pr.ArraySize, 1)
}

// Full reports whether the register admits no further merging:
// its element count is an even multiple of 4.
func (pr *PackedRegister) Full() bool {
	return pr.ElementCount()%4 == 0
}

// standalone reports whether the register can never accept a merge
// regardless of fullness: arrays, guarded fields, bit-packed fields,
// and nested struct references keep their own register so that array
// indexing, preprocessor wrapping, and whole-word bit layout stay
// per-member. Such fields also start fresh registers on arrival, so
// exclusion holds in both fold directions.
func (pr *PackedRegister) standalone() bool {
	return pr.ArraySize > 0 || pr.Kind == slfield.Struct ||
		(len(pr.Fields) == 1 && (pr.Fields[0].Guard != "" || pr.Fields[0].HasPacking()))
}

// Accessor associates one logical field with its physical register.
type Accessor struct {
	// Name is the field display name
	Name string

	// Register is the physical member name
	Register string

	// SwizzleOffset is the starting component index within the register
	SwizzleOffset int

	// Count is the field's declared component count
	Count int

	// Whole is true when the field consumes the entire register,
	// so no swizzle is applied
	Whole bool

	// Field is the underlying descriptor
	Field *slfield.FieldDescriptor
}

// PackErrKind categorizes packing failures.
type PackErrKind int32

const (
	// KindMismatch: fields of different kinds can never share a register
	KindMismatch PackErrKind = iota

	// MatrixMerge: matrix fields never participate in a merge
	MatrixMerge

	// RegisterOverflow: cumulative rows would exceed 4
	RegisterOverflow

	PackErrN
)

func (k PackErrKind) String() string {
	switch k {
	case KindMismatch:
		return "type mismatch"
	case MatrixMerge:
		return "matrix merge unsupported"
	case RegisterOverflow:
		return "register overflow"
	}
	return "unknown"
}

// PackingError aborts the entire packing pass for the enclosing type:
// no partial register list is ever returned.
type PackingError struct {
	// Kind categorizes the failure
	Kind PackErrKind

	// Field is the incoming field that could not merge
	Field string

	// Register is the accumulator name at the point of failure
	Register string

	// Pos is the source position of the field, if known
	Pos string
}

func (e *PackingError) Error() string {
	msg := fmt.Sprintf("slpack: %s: cannot merge field %s into register %s", e.Kind, e.Field, e.Register)
	if e.Pos != "" {
		msg = e.Pos + ": " + msg
	}
	return msg
}

// newRegister starts an accumulator from one descriptor.
func newRegister(fd *slfield.FieldDescriptor) *PackedRegister {
	return &PackedRegister{
		Name:      fd.DisplayName,
		Kind:      fd.Kind,
		Rows:      fd.Rows,
		Cols:      fd.Cols,
		ArraySize: fd.ArraySize,
		Fields:    []*slfield.FieldDescriptor{fd},
		Offsets:   []int{0},
	}
}

// merge attempts to fold fd into the accumulator, returning the
// resulting accumulator or a PackingError. Merge outcomes depend on
// declaration order, so this is only ever called sequentially.
func merge(acc *PackedRegister, fd *slfield.FieldDescriptor) (*PackedRegister, *PackingError) {
	if fd.Kind != acc.Kind {
		return nil, &PackingError{Kind: KindMismatch, Field: fd.DisplayName, Register: acc.Name, Pos: fd.Pos}
	}
	if fd.Cols > 1 || acc.Cols > 1 {
		return nil, &PackingError{Kind: MatrixMerge, Field: fd.DisplayName, Register: acc.Name, Pos: fd.Pos}
	}
	if fd.Rows+acc.Rows > 4 {
		return nil, &PackingError{Kind: RegisterOverflow, Field: fd.DisplayName, Register: acc.Name, Pos: fd.Pos}
	}
	acc.Offsets = append(acc.Offsets, acc.ElementCount())
	acc.Fields = append(acc.Fields, fd)
	acc.Rows += fd.Rows
	acc.Name += "_" + fd.DisplayName
	acc.Merged = true
	return acc, nil
}

// Pack folds the ordered descriptor sequence into merged registers.
// The fold is strictly sequential: names, swizzle offsets, and error
// locations all depend on field declaration order. Any failure
// aborts the whole pass -- nothing is returned for the type.
func Pack(fields []*slfield.FieldDescriptor) ([]*PackedRegister, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	var regs []*PackedRegister
	acc := newRegister(fields[0])
	for _, fd := range fields[1:] {
		fresh := fd.ArraySize > 0 || fd.Guard != "" || fd.HasPacking() || fd.Kind == slfield.Struct
		if acc.Full() || acc.standalone() || fresh {
			regs = append(regs, acc)
			acc = newRegister(fd)
			continue
		}
		macc, err := merge(acc, fd)
		if err != nil {
			return nil, err
		}
		acc = macc
	}
	return append(regs, acc), nil
}

// Identity is the no-op pass used when aggressive packing is not
// requested: each descriptor is its own one-field register.
func Identity(fields []*slfield.FieldDescriptor) []*PackedRegister {
	regs := make([]*PackedRegister, len(fields))
	for i, fd := range fields {
		regs[i] = newRegister(fd)
	}
	return regs
}

// Accessors derives the per-field register associations for a
// register list, in declaration order.
func Accessors(regs []*PackedRegister) []*Accessor {
	var acs []*Accessor
	for _, pr := range regs {
		for i, fd := range pr.Fields {
			acs = append(acs, &Accessor{
				Name:          fd.DisplayName,
				Register:      pr.Name,
				SwizzleOffset: pr.Offsets[i],
				Count:         fd.Rows,
				Whole:         !pr.Merged,
				Field:         fd,
			})
		}
	}
	return acs
}
