// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
slgen generates HLSL struct declarations, accessors, and packed
bit-level accessors from Go struct definitions.

Structs opt in with a comment directive on the type declaration:

	//slgen: generate [pack] [debug] [cbuffer] [debug-base=N]

pack merges adjacent same-kind scalar and vector fields into fixed
4-component registers, in strict declaration order. debug adds a
per-type debug dispatch function mapping numeric parameter ids to
displayable 3-component values. cbuffer emits a contiguous memory
block declaration instead of a struct.

Per-field options ride the sl struct tag:

	Smoothness float32 `sl:"bits=8,offset=16,scheme=float,range=0:1"`
	NormalWS   mat32.Vec3 `sl:"name=normalWS,dir,checknorm"`

bits/offset/scheme/range declare explicit bit-level packing into a
shared uint word; such fields are visible only through generated
bit-level getters and setters. name overrides the generated name,
guard wraps the field in a preprocessor conditional, half and real
select reduced precision, array gives slices an explicit fixed size.

Constant blocks attach to a generated type with:

	//slgen: constants TypeName

Usage:

	slgen [flags] [path ...]

Given a file, it operates on that file; given a directory, it
operates on all .go files in that directory, recursively. Each
marked type is written to its own .hlsl file in the output
directory. Errors abort output for the offending type only; all
errors across a run are reported together.

The flags are:

	-out string
		output directory for generated shader code (default "shaders")
	-cfg string
		optional TOML config file
	-align
		check that marked structs are an even multiple of 16 bytes (default true)
	-exclude string
		comma-separated names of marked types to skip
*/
package main
