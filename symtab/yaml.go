// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package symtab

import (
	"errors"

	"gopkg.in/yaml.v3"
)

func parseYAML(fname string, buf []byte) (tableDef, error) {
	var doc yaml.Node
	err := yaml.Unmarshal(buf, &doc)
	if err != nil {
		return tableDef{}, &ConfigError{File: fname, Err: err}
	}
	if len(doc.Content) == 0 {
		return tableDef{}, &ConfigError{File: fname, Err: errors.New("empty document")}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return tableDef{}, &ConfigError{File: fname, Err: errors.New("not a mapping")}
	}
	var c struct {
		Symbols          []symbolDef `yaml:"symbols"`
		EmptyToken       string      `yaml:"empty_token"`
		NamespaceDepth   int         `yaml:"namespace_depth"`
		UseAngleBrackets bool        `yaml:"use_angle_brackets"`
	}
	err = root.Decode(&c)
	if err != nil {
		return tableDef{}, &ConfigError{File: fname, Err: err}
	}
	return tableDef{
		hasSymbols:       yamlHasKey(root, "symbols"),
		hasEmptyToken:    yamlHasKey(root, "empty_token"),
		hasDepth:         yamlHasKey(root, "namespace_depth"),
		symbols:          c.Symbols,
		emptyToken:       c.EmptyToken,
		namespaceDepth:   c.NamespaceDepth,
		useAngleBrackets: c.UseAngleBrackets,
	}, nil
}

// yamlHasKey reports whether mapping node m has key, even if its value is null.
func yamlHasKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return true
		}
	}
	return false
}
