package charpage

import "errors"

// Failure classes for character page retrieval and parsing. Callers branch
// with errors.Is; detail text travels in the wrapping error.
var (
	// ErrNotFound means the page loaded but names no character (upstream 404
	// or the "wandering in the Void" placeholder page).
	ErrNotFound = errors.New("character not found")

	// ErrMalformedPage means the page loaded but its markup no longer carries
	// the structure this parser expects. Distinct from ErrNotFound: the
	// upstream changed shape, the character may well exist.
	ErrMalformedPage = errors.New("character page markup unrecognized")

	// ErrNetwork covers connect, DNS and timeout failures reaching upstream.
	ErrNetwork = errors.New("upstream network error")

	// ErrUpstream covers non-200 statuses other than not-found.
	ErrUpstream = errors.New("upstream error")
)
