package service

import (
	"fmt"

	eventqueue "github.com/okian/tabellone/internal/adapters/mq/queue"
)

// ErrNotStarted reports a call made while the pipeline is not running. It
// matches eventqueue.ErrQueueClosed so callers can treat both as unavailable.
var ErrNotStarted = fmt.Errorf("service not started: %w", eventqueue.ErrQueueClosed)
