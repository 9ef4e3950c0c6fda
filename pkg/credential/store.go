// Package credential persists the bearer token issued at login.
//
// A single token is kept per installation under a fixed key. Absence of a
// token is reported through the ok flag of Current, never as an empty string.
package credential

import (
	"context"
	"errors"
)

// TokenKey is the fixed key the token is stored under
const TokenKey = "authToken"

var ErrEmptyToken = errors.New("credential: token must not be empty")

// Provider exposes the current token to API clients
type Provider interface {
	Current(ctx context.Context) (token string, ok bool, err error)
}

// Store is a Provider that can also replace or drop the token
type Store interface {
	Provider
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
