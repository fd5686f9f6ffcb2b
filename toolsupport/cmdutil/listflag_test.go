// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmdutil

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestListFlag(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want ListFlag
	}{
		{
			name: "none",
		},
		{
			name: "repeated",
			args: []string{"-t", "a.yaml", "-t", "b.toml"},
			want: ListFlag{"a.yaml", "b.toml"},
		},
		{
			name: "comma",
			args: []string{"-t", "c.star, a.yaml,", "-t", "b.toml"},
			want: ListFlag{"c.star", "a.yaml", "b.toml"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got ListFlag
			fs := flag.NewFlagSet(tc.name, flag.ContinueOnError)
			fs.Var(&got, "t", "tables")
			err := fs.Parse(tc.args)
			if err != nil {
				t.Fatalf("Parse(%q)=%v", tc.args, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ListFlag diff -want +got:\n%s", diff)
			}
		})
	}
}
