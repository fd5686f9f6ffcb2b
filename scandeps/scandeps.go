// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"go.chromium.org/infra/build/nsdeps/symtab"
)

// ctxCheckInterval is the number of lines scanned between checks of
// context cancellation.
const ctxCheckInterval = 1024

// Scanner is a symbol dependency scanner.
// It is safe to use from multiple goroutines.
type Scanner struct {
	tables []*symtab.Table
}

// New creates new Scanner for tables.
// The order of tables is the resolution precedence.
func New(tables []*symtab.Table) *Scanner {
	return &Scanner{
		tables: tables,
	}
}

// Scan scans source read from r.
// fname is used for Result.Path and error messages.
// public is the file classification; Result.Exports is only set for
// public files.
func (s *Scanner) Scan(ctx context.Context, fname string, r io.Reader, public bool) (*Result, error) {
	started := time.Now()
	agg := newAggregator(s.tables)
	var cf commentFilter

	br := bufio.NewReader(r)
	for {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("scan %s: %w", fname, err)
		}
		if text == "" && err == io.EOF {
			break
		}
		agg.lines++
		if agg.lines%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("scan %s: %w", fname, err)
			}
		}
		text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
		if line, ok := cf.filter(text); ok {
			s.scanLine(agg, fname, line)
		}
		if err == io.EOF {
			break
		}
	}
	dur := time.Since(started)
	if dur > time.Second {
		log.Infof("slow scan %s %s", fname, dur)
	}
	return agg.result(fname, public), nil
}

func (s *Scanner) scanLine(agg *aggregator, fname, line string) {
	for _, c := range tokenize(line) {
		agg.candidates++
		res, status := Resolve(c, s.tables)
		agg.stats[status]++
		switch status {
		case Resolved:
			if log.GetLevel() <= log.DebugLevel {
				log.Debugf("%s:%d %q -> %s %q %s", fname, agg.lines, c, res.Table, res.Prefix, res.Record)
			}
			agg.add(res)
		case Unresolved:
			agg.addUnresolved(c, agg.lines)
		}
	}
}
