package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrCorrupt = errors.New("stored identifier list is corrupt")
	ErrStore   = errors.New("identifier store failed")
)
