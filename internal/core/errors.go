package core

import "errors"

// Remote completion failure taxonomy. All three route the turn to the local
// fallback; anything else that escapes the resolver is treated as a defect
// and resolved to the apology reply.
var (
	ErrNoCredential    = errors.New("no completion API credential configured")
	ErrUpstream        = errors.New("completion upstream failure")
	ErrEmptyCompletion = errors.New("completion returned no text")
)
