// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	for _, tc := range []struct {
		line string
		want []string
	}{
		{
			line: "int x = 0;",
		},
		{
			line: "std::vector<int> v;",
			want: []string{"std::vector"},
		},
		{
			line: "std::map<std::string, std::vector<rclcpp::Node>> m;",
			want: []string{"std::map", "std::string", "std::vector", "rclcpp::Node"},
		},
		{
			line: "void f(const std::string &s, std::unique_ptr<Foo>&& p) {",
			want: []string{"std::string", "std::unique_ptr"},
		},
		{
			line: "return std::make_shared<T>(std::forward<Args>(args)...);",
			want: []string{"std::make_shared", "std::forward"},
		},
		{
			line: "if (!std::isfinite(x)) {",
			want: []string{"std::isfinite"},
		},
		{
			line: "std::",
			want: []string{"std::"},
		},
		{
			line: "ns::a::b::c\tns::d",
			want: []string{"ns::a::b::c", "ns::d"},
		},
		{
			// not a real tokenizer.
			line: "x=std::move(y);",
			want: []string{"x=std::move"},
		},
	} {
		got := tokenize(tc.line)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("tokenize(%q) diff -want +got:\n%s", tc.line, diff)
		}
	}
}
