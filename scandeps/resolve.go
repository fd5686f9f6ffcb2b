// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"go.chromium.org/infra/build/nsdeps/symtab"
)

// Status is a status of resolution.
type Status int

const (
	// Unresolved means no table knows the candidate.
	Unresolved Status = iota

	// Resolved means a table has a dependency for the candidate.
	Resolved

	// Known means a table knows the candidate but it has no dependency.
	Known

	// Lone means the candidate is a lone empty token (e.g. `std::`)
	// whose name would continue on the next line.
	Lone
)

func (s Status) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolved:
		return "resolved"
	case Known:
		return "known"
	case Lone:
		return "lone"
	}
	return "unknown"
}

// Resolution is a resolved dependency of a candidate.
type Resolution struct {
	// Table is the table that resolved the candidate.
	Table *symtab.Table

	// Prefix is the depth limited prefix looked up in Table.
	Prefix string

	// Record is the dependency.
	Record symtab.Record
}

// Resolve resolves candidate in tables.
// Tables are checked in order and the first table that has a non-zero
// record for the candidate wins.
// candidate should contain namespace separator.
func Resolve(candidate string, tables []*symtab.Table) (Resolution, Status) {
	status := Unresolved
	var known Resolution
	for _, t := range tables {
		if candidate == t.EmptyToken {
			// In case this is just the empty namespace token, the actual
			// name is probably on the next line.  There is no good way
			// to get that in line oriented scan, so just ignore it.
			if status == Unresolved {
				status = Lone
			}
			continue
		}
		r, ok := t.Lookup(candidate)
		if !ok {
			continue
		}
		if r.IsZero() {
			if status != Known {
				known = Resolution{Table: t, Prefix: t.Prefix(candidate)}
			}
			status = Known
			continue
		}
		return Resolution{
			Table:  t,
			Prefix: t.Prefix(candidate),
			Record: r,
		}, Resolved
	}
	if status == Known {
		return known, Known
	}
	return Resolution{}, status
}
