// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load logic for the config store.

package config

import (
	"fmt"
	"log"
	"os"
)

func loadSystemLocked() error {
	if override != "" {
		return loadFileLocked(override)
	}

	path, err := systemConfigPath()
	if err != nil {
		log.Printf("Config: Failed to resolve system config path: %v", err)
		system = defaultSystemConfig()
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read system config %s: %v", path, readErr)
		cfg = make(Config)
	}

	if !exists || (readErr == nil && len(cfg) == 0) {
		cfg = defaultSystemConfig()
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("Config: Failed to write default system config: %v", err)
			if readErr == nil {
				readErr = err
			}
		}
	} else {
		applySystemDefaults(cfg)
	}

	system = cfg
	if readErr == nil && exists {
		log.Printf("Config: Loaded system config from %s", path)
	}
	return readErr
}

func loadFileLocked(path string) error {
	cfg, exists, err := readConfig(path)
	switch {
	case err != nil:
		log.Printf("Config: Failed to read config %s: %v", path, err)
		system = defaultSystemConfig()
		return fmt.Errorf("config %s: %w", path, err)
	case !exists:
		system = defaultSystemConfig()
		return fmt.Errorf("config %s: %w", path, os.ErrNotExist)
	}
	applySystemDefaults(cfg)
	system = cfg
	log.Printf("Config: Loaded config from %s", path)
	return nil
}
