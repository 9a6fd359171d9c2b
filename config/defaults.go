// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system configuration file.

package config

import (
	"encoding/json"
	"log"

	"github.com/framegrace/texelstream/defaults"
)

// Built-in values used when neither the config file nor the embedded
// defaults provide a key.
const (
	DefaultFormat  = "auto"
	DefaultCharset = "cp437"
)

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"verbose": false,
	})
	cfg.RegisterDefaults("render", Section{
		"format":  DefaultFormat,
		"charset": DefaultCharset,
	})
}

// defaultSystemConfig returns the embedded texelstream.json with the
// built-in defaults layered underneath it.
func defaultSystemConfig() Config {
	cfg := make(Config)
	data, err := defaults.SystemConfig()
	if err == nil {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		log.Printf("Config: Failed to load embedded defaults: %v", err)
		cfg = make(Config)
	}
	applySystemDefaults(cfg)
	return cfg
}
