// Package session holds the credential used to publish diagrams.
//
// The publish API authenticates with a bearer token. This package stores
// that token between CLI invocations with a deliberately small surface:
// set, get, clear. Reading before a token has been set is an error, so
// callers can tell "never logged in" apart from an empty credential.
//
// # Usage
//
//	store, err := session.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//
//	if err := store.Set(ctx, session.Token{Value: "tok_abc"}); err != nil {
//	    return err
//	}
//
//	tok, err := store.Get(ctx)
//	if errors.Is(err, session.ErrNoToken) {
//	    // Prompt the user to run `erdcanvas token set` first.
//	}
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNoToken is returned by Get when no token has been stored.
var ErrNoToken = errors.New("no token set")

// Token is a stored publish credential.
type Token struct {
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the interface for token storage backends.
type Store interface {
	// Get retrieves the stored token.
	// Returns ErrNoToken if none has been set.
	Get(ctx context.Context) (Token, error)

	// Set stores a token, replacing any existing one.
	Set(ctx context.Context, tok Token) error

	// Clear removes the stored token. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error
}
