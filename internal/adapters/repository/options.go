package repository

import "time"

// StoreOption applies a configuration option to the SQLiteStore.
type StoreOption func(*SQLiteStore)

// WithBusyTimeout sets how long SQLite waits on a locked database before
// failing a query.
func WithBusyTimeout(d time.Duration) StoreOption {
	return func(s *SQLiteStore) {
		if d > 0 {
			s.busyTimeout = d
		}
	}
}
