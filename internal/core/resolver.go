package core

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// Source tags where a reply came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
	SourceError    Source = "error"
)

// Reason codes carried on fallback and error results for observability.
const (
	ReasonNoAPIKey      = "no_api_key"
	ReasonUpstreamError = "upstream_error"
	ReasonEmptyResponse = "empty_response"
	ReasonEmptyMessage  = "empty_message"
	ReasonInternalError = "internal_error"
)

// remoteTimeout bounds the single completion attempt so a wedged upstream
// call cannot hold a turn past the server's write timeout.
const remoteTimeout = 30 * time.Second

// Result is produced exactly once per turn.
type Result struct {
	Reply  string
	Source Source
	Reason string
}

// Completer is the remote completion dependency of the resolver.
type Completer interface {
	Enabled() bool
	Complete(ctx context.Context, message string) (string, error)
}

// Resolver orchestrates one chat turn: try the remote completion first, and
// on any failure resolve through the local rule table. It holds no mutable
// state; the reply is a function of the input text and configuration.
type Resolver struct {
	remote Completer
	local  *FallbackResolver
}

func NewResolver(remote Completer, local *FallbackResolver) *Resolver {
	return &Resolver{remote: remote, local: local}
}

// Resolve never fails: every call yields a non-empty reply. Remote failures
// route to the fallback table with the failure reason attached; a blank
// message or a recovered panic resolves to the apology reply instead.
func (r *Resolver) Resolve(ctx context.Context, text string) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Recovered from panic while resolving chat turn: %v", rec)
			result = Result{Reply: ApologyReply, Source: SourceError, Reason: ReasonInternalError}
		}
	}()

	if strings.TrimSpace(text) == "" {
		return Result{Reply: ApologyReply, Source: SourceError, Reason: ReasonEmptyMessage}
	}

	// No credential means the remote path is never attempted.
	if r.remote == nil || !r.remote.Enabled() {
		return Result{Reply: r.local.Respond(text), Source: SourceFallback, Reason: ReasonNoAPIKey}
	}

	callCtx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	reply, err := r.remote.Complete(callCtx, text)
	if err != nil {
		reason := reasonForError(err)
		if reason != ReasonNoAPIKey {
			log.Printf("Remote completion failed (%s), using local fallback: %v", reason, err)
		}
		return Result{Reply: r.local.Respond(text), Source: SourceFallback, Reason: reason}
	}

	return Result{Reply: reply, Source: SourceRemote}
}

func reasonForError(err error) string {
	switch {
	case errors.Is(err, ErrNoCredential):
		return ReasonNoAPIKey
	case errors.Is(err, ErrEmptyCompletion):
		return ReasonEmptyResponse
	default:
		return ReasonUpstreamError
	}
}
