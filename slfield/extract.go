// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slfield

import (
	"go/constant"
	"go/token"
	"go/types"
	"strconv"
)

// Extractor turns the fields of a marked Go struct type into
// FieldDescriptors. One Extractor serves one generation pass over
// one package.
type Extractor struct {
	// Fset is used for diagnostic positions; may be nil
	Fset *token.FileSet

	// Generated is the set of named struct types marked for
	// generation: these are emitted as nested Struct references,
	// never flattened
	Generated map[string]bool

	// Comments holds field doc comments keyed by "Type.Field",
	// filled in by the syntax scanner
	Comments map[string]string
}

// Struct extracts descriptors for all fields of the given struct
// type. Extraction continues past per-field errors so every problem
// is reported in one pass; on any error the descriptor list must be
// discarded by the caller (all-or-nothing per type).
func (ex *Extractor) Struct(typeName string, st *types.Struct) ([]*FieldDescriptor, []error) {
	var flds []*FieldDescriptor
	var errs []error
	for i := 0; i < st.NumFields(); i++ {
		fl := st.Field(i)
		cmt := ex.Comments[typeName+"."+fl.Name()]
		fds, err := ex.Field(fl, st.Tag(i), cmt)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		flds = append(flds, fds...)
	}
	return flds, errs
}

// Field extracts zero or more descriptors from one struct field.
// Slice-typed fields without an explicit array size are skipped
// (nil, nil). A small homogeneous nested struct is flattened into a
// single multi-component descriptor.
func (ex *Extractor) Field(fl *types.Var, tag, comment string) ([]*FieldDescriptor, error) {
	pos := ex.pos(fl.Pos())
	dr, err := ParseTag(tag)
	if err != nil {
		return nil, &ExtractionError{Field: fl.Name(), Pos: pos, Msg: err.Error()}
	}

	t := fl.Type()
	arrSize := 0
	switch tt := t.(type) {
	case *types.Array:
		arrSize = int(tt.Len())
		t = tt.Elem()
	case *types.Slice:
		if dr == nil || dr.ArraySize == 0 {
			return nil, nil // only explicit fixed-size arrays participate
		}
		arrSize = dr.ArraySize
		t = tt.Elem()
	}

	fd := &FieldDescriptor{
		Name:      fl.Name(),
		Kind:      KindN,
		Rows:      1,
		Cols:      1,
		ArraySize: arrSize,
		Comment:   comment,
		Directive: dr,
		Pos:       pos,
	}
	override := ""
	if dr != nil {
		override = dr.NameOverride
		fd.Guard = dr.Guard
	}
	fd.DisplayName = DisplayName(fl.Name(), override)

	k, rows, cols, ok := typeShape(t)
	if !ok {
		// not a known shape: nested generated types pass through as
		// struct references, other compounds flatten if they can
		if nt, isNamed := t.(*types.Named); isNamed {
			if st, isStruct := nt.Underlying().(*types.Struct); isStruct {
				nm := nt.Obj().Name()
				if ex.Generated[nm] {
					fd.Kind = Struct
					fd.StructName = nm
					return []*FieldDescriptor{fd}, nil
				}
				return ex.flatten(fd, st)
			}
		}
		return nil, &ExtractionError{Field: fl.Name(), Pos: pos,
			Msg: "unsupported field type: " + t.String()}
	}
	fd.Kind = k
	fd.Rows = rows
	fd.Cols = cols
	if dr != nil {
		switch {
		case dr.Half && k == Float:
			fd.Kind = Half
		case dr.Real && k == Float:
			fd.Kind = Real
		case dr.Half || dr.Real:
			return nil, &ExtractionError{Field: fl.Name(), Pos: pos,
				Msg: "precision hint requires a float type, got " + k.String()}
		}
	}
	return []*FieldDescriptor{fd}, nil
}

// flatten merges a small homogeneous nested struct into one
// multi-component descriptor: all sub-fields must be primitive
// scalars of one shared kind, at most 4 of them.
func (ex *Extractor) flatten(fd *FieldDescriptor, st *types.Struct) ([]*FieldDescriptor, error) {
	nf := st.NumFields()
	if nf == 0 {
		return nil, &ExtractionError{Field: fd.Name, Pos: fd.Pos,
			Msg: "compound field has no sub-fields"}
	}
	if nf > 4 {
		return nil, &ExtractionError{Field: fd.Name, Pos: fd.Pos,
			Msg: "too many sub-fields: compound fields merge at most 4"}
	}
	kind := KindN
	for i := 0; i < nf; i++ {
		sk, rows, cols, ok := typeShape(st.Field(i).Type())
		if !ok || rows != 1 || cols != 1 {
			return nil, &ExtractionError{Field: fd.Name, Pos: fd.Pos,
				Msg: "non-primitive sub-field: " + st.Field(i).Name()}
		}
		if kind == KindN {
			kind = sk
		} else if sk != kind {
			return nil, &ExtractionError{Field: fd.Name, Pos: fd.Pos,
				Msg: "mixed sub-field kinds: " + kind.String() + " vs " + sk.String()}
		}
	}
	fd.Kind = kind
	fd.Rows = nf
	fd.Cols = 1
	return []*FieldDescriptor{fd}, nil
}

// Constants returns StaticConstants for all package-level constants
// whose declared type is the named type enumName, in the enum-name
// transform (MAX_VALUE style). Scope names are already sorted, which
// keeps output deterministic.
func (ex *Extractor) Constants(scope *types.Scope, enumName string) []*StaticConstant {
	var cs []*StaticConstant
	for _, nm := range scope.Names() {
		cn, isConst := scope.Lookup(nm).(*types.Const)
		if !isConst {
			continue
		}
		nt, isNamed := cn.Type().(*types.Named)
		if !isNamed || nt.Obj().Name() != enumName {
			continue
		}
		cs = append(cs, &StaticConstant{Name: ConstName(nm), Value: constValue(cn.Val())})
	}
	return cs
}

// Constant returns the StaticConstant for one named package-level
// constant, or nil if there is no such constant.
func (ex *Extractor) Constant(scope *types.Scope, name string) *StaticConstant {
	cn, isConst := scope.Lookup(name).(*types.Const)
	if !isConst {
		return nil
	}
	return &StaticConstant{Name: ConstName(name), Value: constValue(cn.Val())}
}

func constValue(v constant.Value) string {
	if v.Kind() == constant.Float {
		f, _ := constant.Float32Val(v)
		return strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	return v.ExactString()
}

func (ex *Extractor) pos(p token.Pos) string {
	if ex.Fset == nil || !p.IsValid() {
		return ""
	}
	return ex.Fset.Position(p).String()
}

// typeShape resolves the primitive kind and vector/matrix shape of a
// Go type, once, at extraction time. Shapes are a closed set: 32 bit
// scalars, slbool.Bool, and the mat32 vector and matrix types (which
// the sltype aliases resolve to).
func typeShape(t types.Type) (k FieldKind, rows, cols int, ok bool) {
	rows, cols = 1, 1
	switch tt := t.(type) {
	case *types.Basic:
		switch tt.Kind() {
		case types.Float32:
			return Float, 1, 1, true
		case types.Int32, types.Int:
			return Int, 1, 1, true
		case types.Uint32, types.Uint:
			return UInt, 1, 1, true
		}
		return KindN, 0, 0, false
	case *types.Named:
		onm := tt.Obj().Name()
		pkg := ""
		if tt.Obj().Pkg() != nil {
			pkg = tt.Obj().Pkg().Name()
		}
		switch {
		case pkg == "slbool" && onm == "Bool":
			return Bool, 1, 1, true
		case pkg == "mat32":
			switch onm {
			case "Vec2":
				return Float, 2, 1, true
			case "Vec3":
				return Float, 3, 1, true
			case "Vec4":
				return Float, 4, 1, true
			case "Vec2i":
				return Int, 2, 1, true
			case "Vec3i":
				return Int, 3, 1, true
			case "Vec4i":
				return Int, 4, 1, true
			case "Mat3":
				return Float, 3, 3, true
			case "Mat4":
				return Float, 4, 4, true
			}
			return KindN, 0, 0, false
		}
		// named scalar wrappers (enum-style int32 types etc)
		if bt, isBasic := tt.Underlying().(*types.Basic); isBasic {
			return typeShape(bt)
		}
		return KindN, 0, 0, false
	}
	return KindN, 0, 0, false
}
