package archive

import "errors"

// Sentinel kinds for archive errors.
var (
	ErrNoPath         = errors.New("archive path is empty")
	ErrCorruptPayload = errors.New("corrupt archived match")
)
