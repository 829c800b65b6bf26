// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig], [ClientConfig] and their nested types.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// lookupDotEnvPath reports the .env path explicitly requested via
// DOTENV_PATH. An explicit path must exist.
func lookupDotEnvPath() (string, bool) {
	path, ok := os.LookupEnv("DOTENV_PATH")
	if !ok || path == "" {
		return "", false
	}
	return path, true
}
