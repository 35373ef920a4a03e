// Package session builds the HTTP clients owned by the auth manager and the
// connection.
package session

import (
	"net/http"
	"runtime"
	"time"
)

// UserAgent is sent with every request.
var UserAgent = "usos-go (" + runtime.GOOS + "; " + runtime.GOARCH + ")"

type userAgentTransport struct {
	agent string
	rt    http.RoundTripper
}

func (u *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r2 := req.Clone(req.Context())
	r2.Header.Set("User-Agent", u.agent)
	return u.rt.RoundTrip(r2)
}

// New returns a client with its own transport, so that closing it does not
// affect other sessions. A zero timeout leaves requests bounded only by their
// context.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			agent: UserAgent,
			rt:    http.DefaultTransport.(*http.Transport).Clone(),
		},
	}
}

func (u *userAgentTransport) CloseIdleConnections() {
	if closer, ok := u.rt.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

// Close drops idle connections held by client's transport.
func Close(client *http.Client) {
	if client != nil {
		client.CloseIdleConnections()
	}
}
