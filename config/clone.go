// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Clone helpers for config maps.

package config

// Clone returns a copy of the config with every section copied one level
// deep, so edits to the clone's sections leave cfg untouched.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, value := range cfg {
		switch v := value.(type) {
		case map[string]interface{}:
			out[name] = cloneSection(v)
		case Section:
			out[name] = cloneSection(v)
		default:
			out[name] = v
		}
	}
	return out
}

func cloneSection(src map[string]interface{}) Section {
	dst := make(Section, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
