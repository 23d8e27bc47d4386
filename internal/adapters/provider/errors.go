package provider

import "errors"

// Sentinel kinds for provider errors.
var (
	// ErrNotFound means the provider has no record for the identifier.
	ErrNotFound = errors.New("WCA ID does not exist")
	// ErrUnexpectedStatus is any other non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected provider status")
	// ErrTransport covers connection, timeout and request errors.
	ErrTransport = errors.New("provider transport failed")
	// ErrDecode means the body was not a person document.
	ErrDecode = errors.New("provider payload decode failed")
	// ErrRetrievalExhausted marks a lookup that failed on every allowed attempt.
	ErrRetrievalExhausted = errors.New("retrieval exhausted")
)
