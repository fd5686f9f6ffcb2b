// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package symtab

import (
	"github.com/BurntSushi/toml"
)

// parseTOML parses a TOML symbol table.
//
//	empty_token = "std::"
//	namespace_depth = 2
//	use_angle_brackets = true
//
//	[[symbols]]
//	symbol_name = "std::vector"
//	include = "vector"
//
// TOML has no null, so an empty table is `symbols = []`.
func parseTOML(fname string, buf []byte) (tableDef, error) {
	var c struct {
		Symbols          []symbolDef `toml:"symbols"`
		EmptyToken       string      `toml:"empty_token"`
		NamespaceDepth   int         `toml:"namespace_depth"`
		UseAngleBrackets bool        `toml:"use_angle_brackets"`
	}
	md, err := toml.Decode(string(buf), &c)
	if err != nil {
		return tableDef{}, &ConfigError{File: fname, Err: err}
	}
	return tableDef{
		hasSymbols:       md.IsDefined("symbols"),
		hasEmptyToken:    md.IsDefined("empty_token"),
		hasDepth:         md.IsDefined("namespace_depth"),
		symbols:          c.Symbols,
		emptyToken:       c.EmptyToken,
		namespaceDepth:   c.NamespaceDepth,
		useAngleBrackets: c.UseAngleBrackets,
	}, nil
}
