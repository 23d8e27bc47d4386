package service

import "errors"

var (
	// ErrBatchFailure means the ranking batch could not produce a leaderboard.
	// No partial output accompanies it.
	ErrBatchFailure = errors.New("error loading rankings")
	// ErrNotConfigured means the service was built without a roster or fetcher.
	ErrNotConfigured = errors.New("service is missing a dependency")
)
