// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package symtab

import (
	"flag"
	"fmt"

	"go.chromium.org/infra/build/nsdeps/toolsupport/cmdutil"
)

// Option is an option to load symbol tables.
type Option struct {
	// Files are symbol table files, in resolution precedence order.
	Files cmdutil.ListFlag
}

// RegisterFlags registers flags for the option.
func (o *Option) RegisterFlags(flagSet *flag.FlagSet) {
	flagSet.Var(&o.Files, "t", "symbol table file (.yaml, .toml or .star). can be repeated or comma separated. earlier tables take precedence")
}

// Load loads symbol tables given by the option.
// It returns error wrapping flag.ErrHelp if no table is given.
func (o Option) Load() ([]*Table, error) {
	if len(o.Files) == 0 {
		return nil, fmt.Errorf("no symbol table: %w", flag.ErrHelp)
	}
	return LoadAll(o.Files)
}
