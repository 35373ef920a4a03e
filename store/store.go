// Package store persists access tokens between runs.
package store

import (
	"context"
	"errors"

	"hawx.me/code/usos/auth"
)

// ErrNotFound is returned by Load when no token has been saved.
var ErrNotFound = errors.New("usos: no access token saved")

// Store is used by the client to keep the access token between processes, so
// that the authorization handshake only has to be done once.
type Store interface {
	Load(ctx context.Context) (auth.Token, error)
	Save(ctx context.Context, token auth.Token) error
}
