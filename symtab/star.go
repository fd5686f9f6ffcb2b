// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package symtab

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// parseStarlark executes a Starlark symbol table and reads its globals.
//
//	empty_token = "std::"
//	use_angle_brackets = True
//
//	symbols = [
//	    struct(symbol_name = "std::vector", include = "vector"),
//	    {"symbol_name": "std::string", "include": "string"},
//	]
//
// load() is not allowed.
func parseStarlark(fname string, buf []byte) (tableDef, error) {
	thread := &starlark.Thread{
		Name: "symtab",
		Print: func(thread *starlark.Thread, msg string) {
			log.Infof("thread:%s %s", thread.Name, msg)
		},
		Load: func(*starlark.Thread, string) (starlark.StringDict, error) {
			return nil, errors.New("load is not allowed in symbol table")
		},
	}
	predeclared := starlark.StringDict{
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
	}
	globals, err := starlark.ExecFile(thread, fname, buf, predeclared)
	if err != nil {
		var eerr *starlark.EvalError
		if errors.As(err, &eerr) {
			log.Warnf("stacktrace:\n%s", eerr.Backtrace())
		}
		return tableDef{}, &ConfigError{File: fname, Err: err}
	}

	var def tableDef
	if v, ok := globals["empty_token"]; ok {
		s, ok := starlark.AsString(v)
		if !ok {
			return tableDef{}, &ConfigError{File: fname, Field: "empty_token", Err: fmt.Errorf("want string, got %s", v.Type())}
		}
		def.hasEmptyToken = true
		def.emptyToken = s
	}
	if v, ok := globals["namespace_depth"]; ok {
		n, err := starlark.AsInt32(v)
		if err != nil {
			return tableDef{}, &ConfigError{File: fname, Field: "namespace_depth", Err: err}
		}
		def.hasDepth = true
		def.namespaceDepth = n
	}
	if v, ok := globals["use_angle_brackets"]; ok {
		b, ok := v.(starlark.Bool)
		if !ok {
			return tableDef{}, &ConfigError{File: fname, Field: "use_angle_brackets", Err: fmt.Errorf("want bool, got %s", v.Type())}
		}
		def.useAngleBrackets = bool(b)
	}
	v, ok := globals["symbols"]
	if !ok {
		return def, nil
	}
	def.hasSymbols = true
	if v == starlark.None {
		return def, nil
	}
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		return tableDef{}, &ConfigError{File: fname, Field: "symbols", Err: fmt.Errorf("want list, got %s", v.Type())}
	}
	iter := iterable.Iterate()
	defer iter.Done()
	var elem starlark.Value
	for i := 0; iter.Next(&elem); i++ {
		s, err := starSymbol(elem)
		if err != nil {
			return tableDef{}, &ConfigError{File: fname, Field: fmt.Sprintf("symbols[%d]", i), Err: err}
		}
		def.symbols = append(def.symbols, s)
	}
	return def, nil
}

// starSymbol converts a dict or a struct to symbolDef.
func starSymbol(v starlark.Value) (symbolDef, error) {
	var get func(key string) (starlark.Value, error)
	switch v := v.(type) {
	case *starlark.Dict:
		get = func(key string) (starlark.Value, error) {
			val, found, err := v.Get(starlark.String(key))
			if err != nil || !found {
				return nil, err
			}
			return val, nil
		}
	case *starlarkstruct.Struct:
		get = func(key string) (starlark.Value, error) {
			val, err := v.Attr(key)
			if err != nil {
				// no such attribute.
				return nil, nil
			}
			return val, nil
		}
	default:
		return symbolDef{}, fmt.Errorf("want dict or struct, got %s", v.Type())
	}
	var s symbolDef
	for _, f := range []struct {
		key string
		p   *string
	}{
		{key: "symbol_name", p: &s.SymbolName},
		{key: "include", p: &s.Include},
		{key: "target_name", p: &s.TargetName},
		{key: "package_name", p: &s.PackageName},
	} {
		val, err := get(f.key)
		if err != nil {
			return symbolDef{}, err
		}
		if val == nil || val == starlark.None {
			continue
		}
		str, ok := starlark.AsString(val)
		if !ok {
			return symbolDef{}, fmt.Errorf("%s: want string, got %s", f.key, val.Type())
		}
		*f.p = str
	}
	return s, nil
}
