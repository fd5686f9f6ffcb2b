// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package scandeps provides forged C/C++ symbol dependency scanner.
// Compared with a compiler front end, it doesn't parse the source at all.
// It scans each line for namespace qualified names such as
//
//	std::vector<int> v;
//	rclcpp::Node::SharedPtr node;
//
// and looks up the names in symbol tables to suggest #include lines,
// build targets and exported packages the file depends on.
//
// It only skips comments of the following forms
//
//	// comment
//	/* comment */
//	/*
//	 * comment
//	 */
//
// when the comment starts the line.  It doesn't understand string
// literals, macros, `using` declarations nor templates beyond
// bracket stripping, so it may miss some dependencies or match
// names in strings.  Missing an include here or there is acceptable
// for the use case (suggesting dependencies), so it keeps the scanner
// simple, single pass and line oriented.
package scandeps
