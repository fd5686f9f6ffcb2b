// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package cmdutil provides utilities for command line flags.
package cmdutil

import (
	"strings"
)

// ListFlag is a flag.Value for a list of strings.
// The flag may be repeated, and each value may be comma separated list.
// Order is preserved.
//
//	-t a.yaml,b.yaml -t c.yaml  => [a.yaml b.yaml c.yaml]
type ListFlag []string

// String implements flag.Value.
func (f *ListFlag) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(*f, ",")
}

// Set implements flag.Value.
func (f *ListFlag) Set(v string) error {
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		*f = append(*f, s)
	}
	return nil
}
