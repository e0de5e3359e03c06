// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the ErrInvalid*
// sentinels wrapped with the offending field otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}

	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}

	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAppConfigs, cfg.App.BcryptCost)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty HTTP address", ErrInvalidServerConfigs)
	}

	switch cfg.Notifier.Driver {
	case NotifierDriverLog:
	case NotifierDriverHTTP:
		if cfg.Notifier.MailURL == "" {
			return fmt.Errorf("%w: mail gateway URL is required", ErrInvalidNotifierConfigs)
		}
	case NotifierDriverAMQP:
		if cfg.Notifier.AMQPURL == "" || cfg.Notifier.Exchange == "" {
			return fmt.Errorf("%w: AMQP URL and exchange are required", ErrInvalidNotifierConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidNotifierConfigs, cfg.Notifier.Driver)
	}

	if cfg.Workers.NotificationWorkers < 1 || cfg.Workers.QueueSize < 1 {
		return fmt.Errorf("%w: workers and queue size must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}
