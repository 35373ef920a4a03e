package memory

import (
	"context"
	"testing"

	"hawx.me/code/assert"
	"hawx.me/code/usos/auth"
	"hawx.me/code/usos/store"
)

var _ store.Store = NewStore()

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Load(ctx)
	assert.Equal(t, store.ErrNotFound, err)

	token := auth.Token{Token: "a", Secret: "b"}
	assert.Nil(t, s.Save(ctx, token))

	loaded, err := s.Load(ctx)
	assert.Nil(t, err)
	assert.Equal(t, token, loaded)
}
