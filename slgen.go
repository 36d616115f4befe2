// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"goki.dev/grr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// flags
var (
	outDir       = flag.String("out", "shaders", "output directory for generated shader code, relative to where slgen is invoked")
	cfgFile      = flag.String("cfg", "", "optional TOML config file")
	alignCheck   = flag.Bool("align", true, "check that marked structs are an even multiple of 16 bytes")
	excludeTypes = flag.String("exclude", "", "comma-separated names of marked types to skip")
)

var (
	inFiles    []string            // list of all input files processed
	filesProcd = map[string]bool{} // prevent redundancies
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: slgen [flags] [path ...]\n")
	flag.PrintDefaults()
}

func isGoFile(f fs.DirEntry) bool {
	// ignore non-Go files
	name := f.Name()
	return !strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") && !f.IsDir()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	os.Exit(slgenMain())
}

func addFile(fn string) {
	if _, has := filesProcd[fn]; has {
		return
	}
	inFiles = append(inFiles, fn)
	filesProcd[fn] = true
}

func slgenConfig() *Config {
	cfg := &Config{}
	cfg.Defaults()
	if *cfgFile != "" {
		grr.Log(cfg.OpenTOML(*cfgFile))
	}
	cfg.Output = *outDir
	cfg.Align = *alignCheck
	if *excludeTypes != "" {
		cfg.Exclude = append(cfg.Exclude, strings.Split(*excludeTypes, ",")...)
	}
	return cfg
}

func slgenMain() int {
	args := flag.Args()
	if len(args) == 0 {
		fmt.Printf("at least one file or directory must be passed\n")
		return 1
	}

	cfg := slgenConfig()
	if cfg.Output != "" {
		grr.Log(os.MkdirAll(cfg.Output, 0755))
	}

	for _, arg := range args {
		switch info, err := os.Stat(arg); {
		case err != nil:
			fmt.Println(err)
		case !info.IsDir():
			addFile(arg)
		default:
			// Directories are walked, ignoring non-Go files.
			err := filepath.WalkDir(arg, func(path string, f fs.DirEntry, err error) error {
				if err != nil || !isGoFile(f) {
					return err
				}
				addFile(path)
				return nil
			})
			if err != nil {
				log.Println(err)
			}
		}
	}

	// one package load per unique directory
	dirm := map[string]bool{}
	for _, fn := range inFiles {
		dir := filepath.Dir(fn)
		dirm[dir] = true
	}
	dirs := maps.Keys(dirm)
	slices.Sort(dirs)

	nerr := 0
	for _, dir := range dirs {
		errs := processDir(cfg, dir)
		for _, err := range errs {
			log.Println(err)
		}
		nerr += len(errs)
	}
	if nerr > 0 {
		fmt.Printf("slgen: %d errors\n", nerr)
		return 1
	}
	return 0
}
