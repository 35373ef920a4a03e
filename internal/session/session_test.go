package session

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"hawx.me/code/assert"
)

func TestUserAgent(t *testing.T) {
	var (
		mu  sync.Mutex
		got string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = r.Header.Get("User-Agent")
		mu.Unlock()
	}))
	defer server.Close()

	client := New(time.Second)
	defer Close(client)

	resp, err := client.Get(server.URL)
	assert.Nil(t, err)
	resp.Body.Close()

	mu.Lock()
	assert.Equal(t, UserAgent, got)
	mu.Unlock()
	assert.Equal(t, time.Second, client.Timeout)
}

func TestCloseForeignClient(t *testing.T) {
	Close(nil)
	Close(&http.Client{})
}
