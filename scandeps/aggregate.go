// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"sort"

	"go.chromium.org/infra/build/nsdeps/symtab"
)

// IncludeGroup is a set of includes required from a symbol table.
type IncludeGroup struct {
	Table *symtab.Table

	// Includes are sorted header names.
	Includes []string
}

// Lines returns #include lines for the group.
func (g IncludeGroup) Lines() []string {
	lines := make([]string, 0, len(g.Includes))
	for _, inc := range g.Includes {
		lines = append(lines, g.Table.FormatInclude(inc))
	}
	return lines
}

// UnresolvedSymbol is a candidate not found in any symbol table.
type UnresolvedSymbol struct {
	Token string `json:"token"`

	// Line is the 1-based line number of the first occurrence.
	Line int `json:"line"`
}

// Result is a scan result of a file.
type Result struct {
	Path   string
	Public bool

	// Includes are grouped by table, in table precedence order.
	Includes []IncludeGroup

	// Targets are sorted build targets.
	Targets []string

	// Exports are sorted exported packages.
	// Only set for public files.
	Exports []string

	// Unresolved are unresolved candidates in order of appearance.
	Unresolved []UnresolvedSymbol

	// Lines is the number of lines scanned.
	Lines int

	// Candidates is the number of candidates looked up.
	Candidates int

	// Stats counts candidates by resolution status.
	Stats map[Status]int
}

// aggregator accumulates resolutions of a file.
type aggregator struct {
	tables []*symtab.Table

	includes   map[*symtab.Table]map[string]bool
	targets    map[string]bool
	exports    map[string]bool
	unresolved []UnresolvedSymbol
	seen       map[string]bool

	lines      int
	candidates int
	stats      map[Status]int
}

func newAggregator(tables []*symtab.Table) *aggregator {
	return &aggregator{
		tables:   tables,
		includes: make(map[*symtab.Table]map[string]bool),
		targets:  make(map[string]bool),
		exports:  make(map[string]bool),
		seen:     make(map[string]bool),
		stats:    make(map[Status]int),
	}
}

func (a *aggregator) add(r Resolution) {
	if r.Record.Include != "" {
		m := a.includes[r.Table]
		if m == nil {
			m = make(map[string]bool)
			a.includes[r.Table] = m
		}
		m[r.Record.Include] = true
	}
	if r.Record.Target != "" {
		a.targets[r.Record.Target] = true
	}
	if r.Record.Package != "" {
		a.exports[r.Record.Package] = true
	}
}

func (a *aggregator) addUnresolved(token string, lineno int) {
	if a.seen[token] {
		return
	}
	a.seen[token] = true
	a.unresolved = append(a.unresolved, UnresolvedSymbol{Token: token, Line: lineno})
}

func (a *aggregator) result(path string, public bool) *Result {
	r := &Result{
		Path:       path,
		Public:     public,
		Targets:    sortedKeys(a.targets),
		Unresolved: a.unresolved,
		Lines:      a.lines,
		Candidates: a.candidates,
		Stats:      a.stats,
	}
	for _, t := range a.tables {
		m, ok := a.includes[t]
		if !ok {
			continue
		}
		r.Includes = append(r.Includes, IncludeGroup{
			Table:    t,
			Includes: sortedKeys(m),
		})
	}
	if public {
		r.Exports = sortedKeys(a.exports)
	}
	return r
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
