package config

import "errors"

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps file, environment and decoding failures.
	ErrLoadConfig = errors.New("load config failed")
)
