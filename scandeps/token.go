// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"strings"

	"go.chromium.org/infra/build/nsdeps/symtab"
)

const delim = ","

// delimReplacer replaces punctuation around names with delim.
// "..." must come before other tokens so that variadic packs
// (e.g. `std::forward<Args>(args)...`) are split.
var delimReplacer = strings.NewReplacer(
	"...", delim,
	"(", delim,
	")", delim,
	"<", delim,
	">", delim,
	" ", delim,
	"\t", delim,
	";", delim,
	"{", delim,
	"}", delim,
	"&", delim,
	"!", delim,
)

// tokenize returns candidates in line.
// A candidate is a fragment containing namespace separator.
func tokenize(line string) []string {
	if !strings.Contains(line, symtab.Separator) {
		return nil
	}
	var candidates []string
	for _, s := range strings.Split(delimReplacer.Replace(line), delim) {
		if !strings.Contains(s, symtab.Separator) {
			continue
		}
		candidates = append(candidates, s)
	}
	return candidates
}
