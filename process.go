// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"goki.dev/ordmap"
	"goki.dev/slgen/alignsl"
	"goki.dev/slgen/slemit"
	"goki.dev/slgen/slfield"
	"goki.dev/slgen/slpack"
	"golang.org/x/tools/go/packages"
)

// directive comment key
const dirKey = "//slgen: "

// GenOpts are the type-level options from a
// //slgen: generate [pack] [debug] [cbuffer] [debug-base=N] directive.
type GenOpts struct {
	// Pack requests aggressive register packing
	Pack bool

	// Debug requests the debug dispatch function
	Debug bool

	// CBuffer requests the contiguous memory block declaration form
	CBuffer bool

	// DebugBase is the base for debug parameter ids
	DebugBase int
}

// parseGenDirective parses the text after the directive key.
// Returns nil when the directive is not a generate directive.
func parseGenDirective(text string) (*GenOpts, error) {
	flds := strings.Fields(text)
	if len(flds) == 0 || flds[0] != "generate" {
		return nil, nil
	}
	op := &GenOpts{}
	for _, fl := range flds[1:] {
		key, arg, _ := strings.Cut(fl, "=")
		switch key {
		case "pack":
			op.Pack = true
		case "debug":
			op.Debug = true
		case "cbuffer":
			op.CBuffer = true
		case "debug-base":
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("slgen: invalid debug-base %q", arg)
			}
			op.DebugBase = n
		default:
			return nil, fmt.Errorf("slgen: unknown generate option %q", fl)
		}
	}
	return op, nil
}

// directive returns the slgen directive text from a doc comment,
// or "" if there is none.
func directive(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	for _, c := range cg.List {
		if strings.HasPrefix(c.Text, dirKey) {
			return c.Text[len(dirKey):]
		}
	}
	return ""
}

// GenType is one composite type marked for generation.
type GenType struct {
	// Name is the type name
	Name string

	// Opts are the parsed directive options
	Opts *GenOpts

	// St is the underlying struct type
	St *types.Struct

	// Pos is the declaration position, for diagnostics
	Pos string

	// Consts are the static constants attached via
	// //slgen: constants directives
	Consts []*slfield.StaticConstant
}

// Unit is one independent unit of work: all marked types declared
// in one source file. Units share no mutable state and generate
// fully in parallel; within a unit the packing pass is strictly
// sequential because merge outcomes depend on declaration order.
type Unit struct {
	// File is the source file base name
	File string

	// Types are the marked types in declaration order
	Types []*GenType

	// Text maps type name to rendered output; types that errored
	// have no entry
	Text map[string]string

	// Errs collects every error across the unit
	Errs []error
}

// Generator drives one generation pass over one package.
type Generator struct {
	// Cfg is the active configuration
	Cfg *Config

	// Fset is the package file set
	Fset *token.FileSet

	// Files is the package syntax
	Files []*ast.File

	// Pkg is the type-checked package
	Pkg *types.Package

	// Sizes is used for alignment checking; may be nil
	Sizes types.Sizes

	// Units are the per-file units in scan order
	Units *ordmap.Map[string, *Unit]

	// Marked is the set of generate-marked type names, which the
	// extractor emits as nested struct references, never flattened
	Marked map[string]bool

	// Comments are field doc comments keyed by "Type.Field"
	Comments map[string]string
}

// NewGenerator returns a Generator over a type-checked package.
func NewGenerator(cfg *Config, fset *token.FileSet, files []*ast.File, pkg *types.Package, sizes types.Sizes) *Generator {
	return &Generator{
		Cfg:      cfg,
		Fset:     fset,
		Files:    files,
		Pkg:      pkg,
		Sizes:    sizes,
		Units:    &ordmap.Map[string, *Unit]{},
		Marked:   map[string]bool{},
		Comments: map[string]string{},
	}
}

func (gn *Generator) unit(file string) *Unit {
	if un, ok := gn.Units.ValByKeyTry(file); ok {
		return un
	}
	un := &Unit{File: file, Text: map[string]string{}}
	gn.Units.Add(file, un)
	return un
}

func (gn *Generator) typeByName(nm string) *GenType {
	for _, kv := range gn.Units.Order {
		for _, gt := range kv.Val.Types {
			if gt.Name == nm {
				return gt
			}
		}
	}
	return nil
}

// Scan finds the marked types and attached constants in the
// package syntax, grouping types into per-file units.
func (gn *Generator) Scan() []error {
	var errs []error
	ex := &slfield.Extractor{Fset: gn.Fset}

	for _, fl := range gn.Files {
		for _, dcl := range fl.Decls {
			gd, ok := dcl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, sp := range gd.Specs {
				ts := sp.(*ast.TypeSpec)
				dir := directive(gd.Doc)
				if dir == "" {
					dir = directive(ts.Doc)
				}
				if dir == "" {
					continue
				}
				op, err := parseGenDirective(dir)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if op == nil || gn.Cfg.Excluded(ts.Name.Name) {
					continue
				}
				gn.Marked[ts.Name.Name] = true
				gn.fieldComments(ts)

				ob := gn.Pkg.Scope().Lookup(ts.Name.Name)
				if ob == nil {
					errs = append(errs, fmt.Errorf("slgen: type %s not found in package scope", ts.Name.Name))
					continue
				}
				st, isStruct := ob.Type().Underlying().(*types.Struct)
				if !isStruct {
					errs = append(errs, fmt.Errorf("slgen: marked type %s is not a struct", ts.Name.Name))
					continue
				}
				file := filepath.Base(gn.Fset.Position(ts.Pos()).Filename)
				un := gn.unit(file)
				un.Types = append(un.Types, &GenType{
					Name: ts.Name.Name,
					Opts: op,
					St:   st,
					Pos:  gn.Fset.Position(ts.Pos()).String(),
				})
			}
		}
	}

	// second pass: attach constants to already-marked types
	for _, fl := range gn.Files {
		for _, dcl := range fl.Decls {
			gd, ok := dcl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}
			flds := strings.Fields(directive(gd.Doc))
			if len(flds) != 2 || flds[0] != "constants" {
				continue
			}
			gt := gn.typeByName(flds[1])
			if gt == nil {
				errs = append(errs, fmt.Errorf("slgen: constants directive names unmarked type %s", flds[1]))
				continue
			}
			for _, sp := range gd.Specs {
				vs := sp.(*ast.ValueSpec)
				for _, nm := range vs.Names {
					if sc := ex.Constant(gn.Pkg.Scope(), nm.Name); sc != nil {
						gt.Consts = append(gt.Consts, sc)
					}
				}
			}
		}
	}
	return errs
}

// fieldComments records doc and line comments for a struct's fields.
func (gn *Generator) fieldComments(ts *ast.TypeSpec) {
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return
	}
	for _, fd := range st.Fields.List {
		cmt := ""
		if fd.Comment != nil {
			cmt = strings.TrimSpace(fd.Comment.Text())
		} else if fd.Doc != nil {
			cmt = strings.TrimSpace(fd.Doc.Text())
		}
		if cmt == "" {
			continue
		}
		for _, nm := range fd.Names {
			gn.Comments[ts.Name.Name+"."+nm.Name] = cmt
		}
	}
}

// genType generates the output text for one type, or records its
// errors. Output per type is all-or-nothing: on any error no text
// is produced, while sibling types proceed independently.
func (gn *Generator) genType(un *Unit, gt *GenType) {
	ex := &slfield.Extractor{Fset: gn.Fset, Generated: gn.Marked, Comments: gn.Comments}
	flds, errs := ex.Struct(gt.Name, gt.St)
	if len(errs) > 0 {
		un.Errs = append(un.Errs, errs...)
		return
	}

	if gn.Cfg.Align && gn.Sizes != nil {
		if err := alignsl.CheckStruct(gt.Name, gt.St, gn.Sizes); err != nil {
			fmt.Printf("warning: %v\n", err)
		}
	}

	var regs []*slpack.PackedRegister
	if gt.Opts.Pack {
		var err error
		regs, err = slpack.Pack(flds)
		if err != nil {
			un.Errs = append(un.Errs, err)
			return
		}
	} else {
		regs = slpack.Identity(flds)
	}

	em := slemit.New(gt.Name, regs)
	em.CBuffer = gt.Opts.CBuffer
	em.Debug = gt.Opts.Debug
	em.DebugBase = gt.Opts.DebugBase
	em.Consts = gt.Consts
	frags, ferrs := em.Generate()
	if len(ferrs) > 0 {
		un.Errs = append(un.Errs, ferrs...)
		return
	}
	un.Text[gt.Name] = slemit.Render(gt.Name, frags)
}

// Generate runs all units. Units are independent and run fully in
// parallel; each goroutine touches only its own unit, and results
// are written afterwards in deterministic scan order.
func (gn *Generator) Generate() {
	var wg sync.WaitGroup
	for _, kv := range gn.Units.Order {
		un := kv.Val
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, gt := range un.Types {
				gn.genType(un, gt)
			}
		}()
	}
	wg.Wait()
}

// Write writes one output target per generated type. A failed
// target is reported and skipped without aborting the others:
// distinct targets are independent, with a single writer each.
func (gn *Generator) Write() []error {
	var errs []error
	for _, kv := range gn.Units.Order {
		un := kv.Val
		errs = append(errs, un.Errs...)
		for _, gt := range un.Types {
			text, ok := un.Text[gt.Name]
			if !ok {
				continue
			}
			fn := filepath.Join(gn.Cfg.Output, gt.Name+".hlsl")
			if err := os.WriteFile(fn, []byte(text), 0644); err != nil {
				errs = append(errs, err)
				continue
			}
			fmt.Printf("slgen: wrote %s\n", fn)
		}
	}
	return errs
}

// processDir loads one directory as a package and runs a full
// generation pass over it.
func processDir(cfg *Config, dir string) []error {
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes |
			packages.NeedSyntax | packages.NeedTypesInfo | packages.NeedTypesSizes,
	}, dir)
	if err != nil {
		log.Println(err)
		return []error{err}
	}
	if len(pkgs) != 1 {
		err := fmt.Errorf("More than one package for path: %v", dir)
		log.Println(err)
		return []error{err}
	}
	pkg := pkgs[0]
	if len(pkg.GoFiles) == 0 {
		err := fmt.Errorf("No Go files found in package: %+v", pkg)
		log.Println(err)
		return []error{err}
	}

	gn := NewGenerator(cfg, pkg.Fset, pkg.Syntax, pkg.Types, pkg.TypesSizes)
	errs := gn.Scan()
	gn.Generate()
	return append(errs, gn.Write()...)
}
