// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import "strings"

// commentFilter drops lines in comments.
type commentFilter struct {
	inBlock bool
}

// filter returns trimmed line and true if line is eligible for
// tokenization, or false if it is in a comment.
// A comment in the middle of a line is not detected.
func (f *commentFilter) filter(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if f.inBlock {
		if strings.Contains(line, "*/") {
			f.inBlock = false
		}
		return "", false
	}
	if strings.HasPrefix(line, "//") {
		return "", false
	}
	if strings.HasPrefix(line, "/*") {
		if !strings.Contains(line, "*/") {
			f.inBlock = true
		}
		return "", false
	}
	return line, true
}
