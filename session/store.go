// Package session holds the single bearer credential for the client.
// Exactly one token is active at a time; it is set on login, cleared on
// logout or when the backend rejects it with a 401.
package session

import "golang.org/x/oauth2"

// Store persists the active session credential across runs.
type Store interface {
	// Token returns the stored credential and whether one is present.
	Token() (oauth2.Token, bool)
	// SetToken replaces the stored credential.
	SetToken(token oauth2.Token) error
	// Clear removes the stored credential. Clearing an empty store is not
	// an error.
	Clear() error
}
