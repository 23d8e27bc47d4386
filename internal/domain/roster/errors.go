package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	// ErrCompetitorNotFound means the provider has no record for an identifier
	// being added manually.
	ErrCompetitorNotFound = errors.New("WCA ID does not exist")
	// ErrLookupFailed means existence could not be confirmed.
	ErrLookupFailed = errors.New("competitor lookup failed")
	// ErrPersist means the updated roster could not be saved; the in-memory
	// state is rolled back.
	ErrPersist = errors.New("saving tracked competitors failed")
	// ErrLoad means the persisted roster could not be read.
	ErrLoad = errors.New("loading tracked competitors failed")
)
