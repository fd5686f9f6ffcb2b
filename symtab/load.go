// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package symtab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Load loads a symbol table from fname.
// The format is selected by extension: .yaml/.yml, .toml or .star.
func Load(fname string) (*Table, error) {
	buf, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	var def tableDef
	switch ext := strings.ToLower(filepath.Ext(fname)); ext {
	case ".yaml", ".yml":
		def, err = parseYAML(fname, buf)
	case ".toml":
		def, err = parseTOML(fname, buf)
	case ".star":
		def, err = parseStarlark(fname, buf)
	default:
		return nil, &ConfigError{File: fname, Err: fmt.Errorf("unknown symbol table format %q", ext)}
	}
	if err != nil {
		return nil, err
	}
	t, err := def.build(fname)
	if err != nil {
		return nil, err
	}
	log.Infof("symbol table %s: %d symbols empty_token=%q namespace_depth=%d", fname, t.Len(), t.EmptyToken, t.NamespaceDepth)
	return t, nil
}

// LoadAll loads symbol tables in order.
// The order of the returned tables is the resolution precedence.
func LoadAll(fnames []string) ([]*Table, error) {
	tables := make([]*Table, 0, len(fnames))
	for _, fname := range fnames {
		t, err := Load(fname)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// symbolDef is a symbol entry in a symbol table file.
type symbolDef struct {
	SymbolName  string `yaml:"symbol_name" toml:"symbol_name"`
	Include     string `yaml:"include" toml:"include"`
	TargetName  string `yaml:"target_name" toml:"target_name"`
	PackageName string `yaml:"package_name" toml:"package_name"`
}

// tableDef is a format independent symbol table file.
type tableDef struct {
	hasSymbols    bool
	hasEmptyToken bool
	hasDepth      bool

	symbols          []symbolDef
	emptyToken       string
	namespaceDepth   int
	useAngleBrackets bool
}

func (d tableDef) build(fname string) (*Table, error) {
	if !d.hasSymbols {
		return nil, &ConfigError{File: fname, Field: "symbols", Err: ErrMissingField}
	}
	if !d.hasEmptyToken || d.emptyToken == "" {
		return nil, &ConfigError{File: fname, Field: "empty_token", Err: ErrMissingField}
	}
	depth := DefaultNamespaceDepth
	if d.hasDepth {
		depth = d.namespaceDepth
	}
	entries := make(map[string]Record, len(d.symbols))
	for i, s := range d.symbols {
		if s.SymbolName == "" {
			return nil, &ConfigError{File: fname, Field: fmt.Sprintf("symbols[%d].symbol_name", i), Err: ErrMissingField}
		}
		if _, ok := entries[s.SymbolName]; ok {
			log.Debugf("%s: duplicate symbol %q, use later one", fname, s.SymbolName)
		}
		if n := strings.Count(s.SymbolName, Separator) + 1; n > depth {
			log.Warnf("%s: symbol %q has %d segments > namespace_depth %d; never matches", fname, s.SymbolName, n, depth)
		}
		entries[s.SymbolName] = Record{
			Include: s.Include,
			Target:  s.TargetName,
			Package: s.PackageName,
		}
	}
	return New(fname, entries, d.emptyToken, depth, d.useAngleBrackets)
}
