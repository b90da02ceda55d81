package worker

import "errors"

// ErrArchive marks a match that reached the standings but not the archive.
var ErrArchive = errors.New("archive append failed")
