// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Comraich/sortr-sub001/internal/utils"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. All violations are
// joined into one error.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if strings.TrimSpace(cfg.App.TokenSignKey) == "" {
		errs = append(errs, ErrMissingTokenSignKey)
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	if _, err := utils.ParseTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err))
	}

	if cfg.RateLimit.AuthAttempts < 1 || cfg.RateLimit.AuthWindow <= 0 {
		errs = append(errs, ErrInvalidRateLimitConfigs)
	}

	return errors.Join(errs...)
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DSN == "" || strings.Contains(cfg.Storage.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.Address == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Cache.TTL <= 0 || cfg.Cache.JanitorInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.DeviceSecret == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
