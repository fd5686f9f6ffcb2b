// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package report formats scan results.
package report

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"go.chromium.org/infra/build/nsdeps/scandeps"
)

// Format is a report format.
type Format string

const (
	// Text is a human readable format.
	Text Format = "text"
	// JSON is a JSON array of results.
	JSON Format = "json"
)

// String implements flag.Value.
func (f *Format) String() string {
	return string(*f)
}

// Set implements flag.Value.
func (f *Format) Set(v string) error {
	switch Format(v) {
	case Text, JSON:
		*f = Format(v)
		return nil
	}
	return fmt.Errorf("unknown format %q: want %q or %q", v, Text, JSON)
}

// Option is an option of report.
type Option struct {
	Format Format

	// Missing reports unresolved symbols.
	Missing bool
}

// RegisterFlags registers flags for the option.
func (o *Option) RegisterFlags(flagSet *flag.FlagSet) {
	o.Format = Text
	flagSet.Var(&o.Format, "format", `output format. "text" or "json"`)
	flagSet.BoolVar(&o.Missing, "p", false, "report symbols missing in symbol tables")
}

// Write writes results to w.
func Write(w io.Writer, results []*scandeps.Result, opt Option) error {
	switch opt.Format {
	case JSON:
		return writeJSON(w, results, opt)
	case Text, "":
		var buf bytes.Buffer
		for _, r := range results {
			writeText(&buf, r, opt)
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
	return fmt.Errorf("unknown format %q", opt.Format)
}

// writeText writes r as
//
//	<path>
//	  ==> Missing symbol for <token>
//	Includes
//	  #include <header>
//
//	Public Targets
//	  <target>
//	Exports
//	  <package>
func writeText(buf *bytes.Buffer, r *scandeps.Result, opt Option) {
	fmt.Fprintln(buf, r.Path)
	if opt.Missing {
		for _, u := range r.Unresolved {
			fmt.Fprintf(buf, "  ==> Missing symbol for %s\n", u.Token)
		}
	}
	fmt.Fprintln(buf, "Includes")
	for _, g := range r.Includes {
		for _, line := range g.Lines() {
			fmt.Fprintf(buf, "  %s\n", line)
		}
		fmt.Fprintln(buf)
	}
	if r.Public {
		fmt.Fprintln(buf, "Public Targets")
	} else {
		fmt.Fprintln(buf, "Private Targets")
	}
	for _, t := range r.Targets {
		fmt.Fprintf(buf, "  %s\n", t)
	}
	if r.Public {
		fmt.Fprintln(buf, "Exports")
		for _, e := range r.Exports {
			fmt.Fprintf(buf, "  %s\n", e)
		}
	}
}

type jsonIncludeGroup struct {
	Table string   `json:"table"`
	Lines []string `json:"lines"`
}

type jsonResult struct {
	Path       string                      `json:"path"`
	Public     bool                        `json:"public"`
	Includes   []jsonIncludeGroup          `json:"includes"`
	Targets    []string                    `json:"targets"`
	Exports    []string                    `json:"exports,omitempty"`
	Unresolved []scandeps.UnresolvedSymbol `json:"unresolved,omitempty"`
}

func writeJSON(w io.Writer, results []*scandeps.Result, opt Option) error {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		jr := jsonResult{
			Path:     r.Path,
			Public:   r.Public,
			Includes: []jsonIncludeGroup{},
			Targets:  r.Targets,
		}
		if jr.Targets == nil {
			jr.Targets = []string{}
		}
		for _, g := range r.Includes {
			jr.Includes = append(jr.Includes, jsonIncludeGroup{
				Table: g.Table.Name,
				Lines: g.Lines(),
			})
		}
		if r.Public {
			jr.Exports = r.Exports
		}
		if opt.Missing {
			jr.Unresolved = r.Unresolved
		}
		out = append(out, jr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
