package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, missing HTTP address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidNotifierConfigs indicates an unknown notifier driver or
	// missing driver settings.
	ErrInvalidNotifierConfigs = errors.New("invalid notifier configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero workers).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

// ErrInvalidNetAddress is returned by [NetAddress.Set] for malformed
// host:port flag values.
var ErrInvalidNetAddress = errors.New("need address in a form `host:port`")
