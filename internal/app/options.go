package service

import "github.com/okian/tabellone/pkg/logger"

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of queued matches.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache. Zero keeps every id.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.dedupeSize = size
		}
	}
}

// WithFormLength sets how many recent results each standing keeps.
func WithFormLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.formLength = n
		}
	}
}

// WithArchivePath enables the SQLite match archive at path.
func WithArchivePath(path string) Option {
	return func(s *Service) {
		s.archivePath = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
