// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package symtab provides symbol tables that map namespace qualified
// name prefixes (e.g. `std::vector`) to the header, build target and
// exported package a user of the name depends on.
//
// A table only compares the first NamespaceDepth `::` delimited segments
// of a name, so `std::chrono::duration::rep` is looked up as
// `std::chrono` with the default depth of 2.  Matching fewer segments
// tolerates nested scopes at the cost of over-matching.
//
// Tables are immutable once built and safe to share between goroutines.
package symtab

import (
	"errors"
	"fmt"
	"strings"
)

// Separator is the namespace separator.
const Separator = "::"

// DefaultNamespaceDepth is the depth used when a table doesn't specify one.
const DefaultNamespaceDepth = 2

// Record is a dependency required by a symbol.
// Empty fields mean no contribution of that kind.
type Record struct {
	// Include is a header to include, without <> or "".
	Include string `json:"include,omitempty"`

	// Target is a build target name.
	Target string `json:"target,omitempty"`

	// Package is an exported package name.
	Package string `json:"package,omitempty"`
}

// IsZero reports whether r has no dependency at all.
func (r Record) IsZero() bool {
	return r.Include == "" && r.Target == "" && r.Package == ""
}

func (r Record) String() string {
	return fmt.Sprintf("include=%q target=%q package=%q", r.Include, r.Target, r.Package)
}

// Table is a symbol table.
type Table struct {
	// Name identifies the table, usually the file it was loaded from.
	Name string

	// EmptyToken is the separator-only root prefix (e.g. `std::`).
	// Only names starting with EmptyToken are looked up in the table.
	EmptyToken string

	// NamespaceDepth is the number of segments compared.
	NamespaceDepth int

	// UseAngleBrackets selects `#include <x>` rather than `#include "x"`.
	UseAngleBrackets bool

	entries map[string]Record
}

// New creates a table named name from entries.
// entries is copied.
func New(name string, entries map[string]Record, emptyToken string, depth int, useAngleBrackets bool) (*Table, error) {
	if emptyToken == "" {
		return nil, &ConfigError{File: name, Field: "empty_token", Err: ErrMissingField}
	}
	if depth < 1 {
		return nil, &ConfigError{File: name, Field: "namespace_depth", Err: fmt.Errorf("must be >= 1, got %d", depth)}
	}
	t := &Table{
		Name:             name,
		EmptyToken:       emptyToken,
		NamespaceDepth:   depth,
		UseAngleBrackets: useAngleBrackets,
		entries:          make(map[string]Record, len(entries)),
	}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t, nil
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Matches reports whether candidate is a name this table may resolve,
// i.e. it starts with EmptyToken and is not EmptyToken itself.
func (t *Table) Matches(candidate string) bool {
	return candidate != t.EmptyToken && strings.HasPrefix(candidate, t.EmptyToken)
}

// Prefix returns the first NamespaceDepth segments of candidate.
func (t *Table) Prefix(candidate string) string {
	segs := strings.SplitN(candidate, Separator, t.NamespaceDepth+1)
	if len(segs) > t.NamespaceDepth {
		segs = segs[:t.NamespaceDepth]
	}
	return strings.Join(segs, Separator)
}

// Lookup looks up candidate's depth limited prefix.
// It returns false if candidate is not a name for this table (see Matches)
// or its prefix is not registered.
// A registered prefix may have a zero Record.
func (t *Table) Lookup(candidate string) (Record, bool) {
	if !t.Matches(candidate) {
		return Record{}, false
	}
	r, ok := t.entries[t.Prefix(candidate)]
	return r, ok
}

// FormatInclude formats header as an #include line.
func (t *Table) FormatInclude(header string) string {
	if t.UseAngleBrackets {
		return fmt.Sprintf("#include <%s>", header)
	}
	return fmt.Sprintf("#include \"%s\"", header)
}

func (t *Table) String() string {
	return t.Name
}

// ErrMissingField is an error for a missing required field.
var ErrMissingField = errors.New("missing required field")

// ConfigError is an error in a symbol table definition.
type ConfigError struct {
	File  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("symbol table %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("symbol table %s: %s: %v", e.File, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
