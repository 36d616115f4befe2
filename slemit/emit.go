// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package slemit renders shader source text from packed register
lists: declarations, accessors, setters, bit-level packed accessors,
and the optional debug dispatch function.

Output is assembled as a sequence of typed Fragments rendered in one
deterministic final pass, so every fragment kind can be golden
tested on its own.
*/
package slemit

import (
	"fmt"
	"strings"

	"goki.dev/slgen/slfield"
	"goki.dev/slgen/slpack"
)

// FragmentKind identifies what a generated text fragment is.
type FragmentKind int32

const (
	// Constants is the #define block of static constants and debug ids
	Constants FragmentKind = iota

	// Declaration is the struct or cbuffer declaration
	Declaration

	// Accessor is an ordinary field getter
	Accessor

	// Setter is an ordinary field setter
	Setter

	// Initializer is the zero-storage-only setter variant
	Initializer

	// PackedGetter is a bit-level packed field getter
	PackedGetter

	// PackedSetter is a bit-level packed field setter
	PackedSetter

	// PackedInitializer is a bit-level packed field initializer
	PackedInitializer

	// DebugDispatch is the per-type debug dispatch function
	DebugDispatch

	FragmentN
)

var fragmentNames = map[FragmentKind]string{
	Constants:         "Constants",
	Declaration:       "Declaration",
	Accessor:          "Accessor",
	Setter:            "Setter",
	Initializer:       "Initializer",
	PackedGetter:      "PackedGetter",
	PackedSetter:      "PackedSetter",
	PackedInitializer: "PackedInitializer",
	DebugDispatch:     "DebugDispatch",
}

func (k FragmentKind) String() string {
	if nm, ok := fragmentNames[k]; ok {
		return nm
	}
	return fmt.Sprintf("FragmentKind(%d)", int32(k))
}

// Fragment is one independently well-formed block of generated text.
type Fragment struct {
	// Kind is the fragment kind
	Kind FragmentKind

	// Name is the field or type name the fragment belongs to
	Name string

	// Text is the rendered block, ending in a newline
	Text string
}

// Emitter generates the fragments for one composite type. One
// Emitter serves one type within one generation pass.
type Emitter struct {
	// Type is the composite type name
	Type string

	// CBuffer selects the contiguous memory block declaration form
	CBuffer bool

	// Debug enables the debug dispatch function
	Debug bool

	// DebugBase is the base for the numeric debug parameter ids
	DebugBase int

	// Regs is the packed register list in final order
	Regs []*slpack.PackedRegister

	// Consts are the static constants attached to this type
	Consts []*slfield.StaticConstant

	// Resolver resolves and caches packing directives
	Resolver *slpack.Resolver

	frags   []Fragment
	errs    []error
	layouts map[*slfield.FieldDescriptor]*slpack.PackingLayout
}

// New returns an Emitter for one type over its register list.
func New(typeName string, regs []*slpack.PackedRegister) *Emitter {
	return &Emitter{
		Type:     typeName,
		Regs:     regs,
		Resolver: slpack.NewResolver(),
	}
}

func (em *Emitter) add(k FragmentKind, name, text string) {
	em.frags = append(em.frags, Fragment{Kind: k, Name: name, Text: text})
}

func (em *Emitter) fail(err error) {
	em.errs = append(em.errs, err)
}

// Generate produces all fragments for the type, in declaration
// order, collecting every error instead of failing fast. On any
// error the caller must discard the fragments: output for a type is
// all-or-nothing.
func (em *Emitter) Generate() ([]Fragment, []error) {
	em.layouts = map[*slfield.FieldDescriptor]*slpack.PackingLayout{}
	for _, pr := range em.Regs {
		for _, fd := range pr.Fields {
			if !fd.HasPacking() {
				continue
			}
			pl, err := em.Resolver.Layout(fd)
			if err != nil {
				em.fail(err)
				em.add(PackedGetter, fd.DisplayName,
					fmt.Sprintf("// ERROR: cannot generate packed accessors for %s: %v\n", fd.DisplayName, err))
				continue
			}
			em.layouts[fd] = pl
		}
	}

	em.constants()
	em.declaration()

	for _, ac := range slpack.Accessors(em.Regs) {
		if ac.Field.HasPacking() {
			if pl, ok := em.layouts[ac.Field]; ok {
				em.packed(ac, pl)
			}
			continue
		}
		em.accessor(ac)
		em.setter(ac, false)
		em.setter(ac, true)
	}

	if em.Debug {
		em.debug()
	}
	return em.frags, em.errs
}

// constants emits the #define block: static constants first, then
// the debug view parameter ids when debug dispatch is enabled.
func (em *Emitter) constants() {
	var b strings.Builder
	for _, sc := range em.Consts {
		fmt.Fprintf(&b, "#define %s (%s)\n", sc.Name, sc.Value)
	}
	if em.Debug {
		ents := em.debugEntries()
		if len(ents) > 0 {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "// DebugView ids for %s\n", em.Type)
			for _, de := range ents {
				fmt.Fprintf(&b, "#define %s (%d)\n", de.id, de.num)
			}
		}
	}
	if b.Len() == 0 {
		return
	}
	em.add(Constants, em.Type, b.String())
}

// Render assembles fragments into the final output text in one
// deterministic pass, in the order the emitter produced them.
func Render(typeName string, frags []Fragment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by slgen from %s. DO NOT EDIT.\n", typeName)
	for _, fr := range frags {
		b.WriteString("\n")
		b.WriteString(fr.Text)
	}
	return b.String()
}

// OfKind returns the fragments of one kind, for per-kind testing.
func OfKind(frags []Fragment, k FragmentKind) []Fragment {
	var out []Fragment
	for _, fr := range frags {
		if fr.Kind == k {
			out = append(out, fr)
		}
	}
	return out
}
