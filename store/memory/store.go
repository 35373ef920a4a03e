// Package memory provides a Store that lives only as long as the process.
package memory

import (
	"context"
	"sync"

	"hawx.me/code/usos/auth"
	"hawx.me/code/usos/store"
)

type tokenStore struct {
	mu    sync.Mutex
	token *auth.Token
}

func NewStore() *tokenStore {
	return &tokenStore{}
}

func (s *tokenStore) Load(ctx context.Context) (auth.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil {
		return auth.Token{}, store.ErrNotFound
	}

	return *s.token, nil
}

func (s *tokenStore) Save(ctx context.Context, token auth.Token) error {
	s.mu.Lock()
	s.token = &token
	s.mu.Unlock()

	return nil
}
