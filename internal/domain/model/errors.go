package model

import "errors"

// ErrInvalidMatch reports a submitted match with missing or inconsistent fields.
var ErrInvalidMatch = errors.New("invalid match")
