// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slpack

import (
	"fmt"

	"goki.dev/slgen/slfield"
)

// Scheme is the bit-level encoding strategy for an explicitly
// packed field.
type Scheme int32

const (
	// NoPacking stores the native type directly, no bit manipulation
	NoPacking Scheme = iota

	// PackedFloat stores a quantized unorm float in BitWidth bits
	PackedFloat

	// PackedUint stores quantized bits read back as a uint
	PackedUint

	// R11G11B10 packs three unorm channels into one 32 bit word
	R11G11B10

	SchemeN
)

func (s Scheme) String() string {
	switch s {
	case NoPacking:
		return "NoPacking"
	case PackedFloat:
		return "PackedFloat"
	case PackedUint:
		return "PackedUint"
	case R11G11B10:
		return "R11G11B10"
	}
	return fmt.Sprintf("Scheme(%d)", int32(s))
}

// SchemeFromString resolves a directive scheme name. The empty
// string is not a valid scheme: a packed field must say what it is.
func SchemeFromString(s string) (Scheme, bool) {
	switch s {
	case "none":
		return NoPacking, true
	case "float":
		return PackedFloat, true
	case "uint":
		return PackedUint, true
	case "r11g11b10":
		return R11G11B10, true
	}
	return SchemeN, false
}

// PackingLayout is the resolved bit-level layout for one explicitly
// packed field. Layouts are resolved once per generation pass and
// cached on the Resolver.
type PackingLayout struct {
	// BitOffset is the starting bit within the backing word
	BitOffset int

	// BitWidth is the field width in bits
	BitWidth int

	// Scheme is the encoding strategy
	Scheme Scheme

	// Min, Max is the declared value range; quantized storage
	// remaps it to [0, 1]
	Min, Max float32

	// DisplayNames are the logical names sharing this layout
	DisplayNames []string
}

// Remapped is true when the value range differs from the normalized
// [0, 1] domain and a linear remap applies on decode and encode.
func (pl *PackingLayout) Remapped() bool {
	return pl.Min != 0 || pl.Max != 1
}

// DirectiveError reports an unresolvable packing directive.
// Generation of the affected field's functions is aborted and a
// diagnostic marker is emitted in place of code.
type DirectiveError struct {
	// Field is the offending field name
	Field string

	// Pos is the source position, if known
	Pos string

	// Msg describes the problem
	Msg string
}

func (e *DirectiveError) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("%s: slpack: directive on field %s: %s", e.Pos, e.Field, e.Msg)
	}
	return fmt.Sprintf("slpack: directive on field %s: %s", e.Field, e.Msg)
}

// Resolver computes and caches PackingLayouts for one generation
// pass. Not safe for concurrent use: each unit of work gets its own.
type Resolver struct {
	layouts map[*slfield.FieldDescriptor]*PackingLayout
}

func NewResolver() *Resolver {
	return &Resolver{layouts: map[*slfield.FieldDescriptor]*PackingLayout{}}
}

// Layout returns the resolved layout for a field carrying an
// explicit packing directive, caching the result, or (nil, nil) for
// fields without one. A field that both requests bit packing and
// explicitly requests ordinary accessors is a DirectiveError:
// packing takes precedence over accessor generation and the
// combination is never guessed at.
func (rs *Resolver) Layout(fd *slfield.FieldDescriptor) (*PackingLayout, error) {
	dr := fd.Directive
	if dr == nil || !dr.HasBits {
		return nil, nil
	}
	if pl, has := rs.layouts[fd]; has {
		return pl, nil
	}
	if dr.Accessors {
		return nil, &DirectiveError{Field: fd.DisplayName, Pos: fd.Pos,
			Msg: "field requests both bit packing and ordinary accessors"}
	}
	sch, ok := SchemeFromString(dr.Scheme)
	if !ok {
		if dr.Scheme == "" {
			return nil, &DirectiveError{Field: fd.DisplayName, Pos: fd.Pos,
				Msg: "packing scheme not specified"}
		}
		return nil, &DirectiveError{Field: fd.DisplayName, Pos: fd.Pos,
			Msg: "unknown packing scheme: " + dr.Scheme}
	}
	if dr.RangeMax <= dr.RangeMin {
		return nil, &DirectiveError{Field: fd.DisplayName, Pos: fd.Pos,
			Msg: fmt.Sprintf("empty value range [%g, %g]", dr.RangeMin, dr.RangeMax)}
	}
	width := dr.BitWidth
	if sch == R11G11B10 {
		if dr.BitOffset != 0 {
			return nil, &DirectiveError{Field: fd.DisplayName, Pos: fd.Pos,
				Msg: "r11g11b10 packing uses the whole word: offset must be 0"}
		}
		width = 32
	}
	if dr.BitOffset+width > 32 {
		return nil, &DirectiveError{Field: fd.DisplayName, Pos: fd.Pos,
			Msg: fmt.Sprintf("bit range [%d, %d) exceeds the 32 bit word", dr.BitOffset, dr.BitOffset+width)}
	}
	names := dr.DisplayNames
	if len(names) == 0 {
		names = []string{fd.DisplayName}
	}
	pl := &PackingLayout{
		BitOffset:    dr.BitOffset,
		BitWidth:     width,
		Scheme:       sch,
		Min:          dr.RangeMin,
		Max:          dr.RangeMax,
		DisplayNames: names,
	}
	rs.layouts[fd] = pl
	return pl, nil
}
