// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slfield

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// TrimMarker strips a leading two-character instance-field marker
// (m_) or constant marker (k_) from a member name. Names that carry
// only the marker are returned unchanged.
func TrimMarker(name string) string {
	if len(name) > 2 && (strings.HasPrefix(name, "m_") || strings.HasPrefix(name, "k_")) {
		return name[2:]
	}
	return name
}

// ConstName derives a constant name: marker prefix stripped, a
// separator inserted before each lowercase-to-uppercase transition,
// and the whole name upper-cased, e.g. maxValue -> MAX_VALUE.
func ConstName(name string) string {
	return strcase.ToScreamingSnake(TrimMarker(name))
}

// DisplayName returns the name used in generated code: the explicit
// override when one is given, otherwise the member name with any
// leading marker stripped. Overrides always take precedence.
func DisplayName(name, override string) string {
	if override != "" {
		return override
	}
	return TrimMarker(name)
}

// UpperFirst upper-cases the first rune, for Get/Set/Init function names.
func UpperFirst(name string) string {
	if name == "" {
		return name
	}
	r, sz := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[sz:]
}
