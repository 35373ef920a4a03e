package connection

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"hawx.me/code/assert"
	"hawx.me/code/mux"
	"hawx.me/code/usos/apierror"
	"hawx.me/code/usos/auth"
	"hawx.me/code/usos/internal/oauthtest"
)

const (
	id           = "my-cool-id"
	secret       = "my-cool-secret"
	accessToken  = "access-token"
	accessSecret = "access-secret"
)

func newConnection(t *testing.T, baseURL string) *Connection {
	manager, err := auth.New(baseURL, id, secret)
	assert.Nil(t, err)
	manager.LoadAccessToken(auth.Token{Token: accessToken, Secret: accessSecret})

	return New(baseURL, manager)
}

func TestGet(t *testing.T) {
	const userJSON = `{"id": "1", "first_name": "Ann"}`

	testCases := map[string]struct {
		status  int
		body    string
		wantErr error
	}{
		"ok":           {http.StatusOK, userJSON, nil},
		"unauthorized": {http.StatusUnauthorized, "expired", apierror.ErrUnauthorized},
		"bad request":  {http.StatusBadRequest, "missing user_id", apierror.ErrBadRequest},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			assert := assert.Wrap(t)

			var (
				mu   sync.Mutex
				form map[string]string
			)
			server := httptest.NewServer(mux.Method{
				"POST": http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					r.ParseForm()
					mu.Lock()
					form = map[string]string{}
					for k := range r.PostForm {
						form[k] = r.PostForm.Get(k)
					}
					mu.Unlock()

					w.WriteHeader(tc.status)
					w.Write([]byte(tc.body))
				}),
			})
			defer server.Close()

			conn := newConnection(t, server.URL)
			defer conn.Close()

			var nilID *int64
			body, err := conn.Get(context.Background(), "services/users/user", Params{
				"user_id": nilID,
				"fields":  []string{"id", "first_name"},
				"extra":   nil,
			})

			mu.Lock()
			assert(form).Equal(map[string]string{"fields": "id|first_name"})
			mu.Unlock()

			if tc.wantErr != nil {
				assert(errors.Is(err, tc.wantErr)).True()
				return
			}

			assert(err).Nil()
			assert(string(body)).Equal(tc.body)
		})
	}
}

func TestGetSignature(t *testing.T) {
	assert := assert.Wrap(t)

	var (
		mu        sync.Mutex
		verifyErr error
		query     string
	)
	server := httptest.NewServer(mux.Method{
		"POST": http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := oauthtest.Verify(r, secret, accessSecret)

			mu.Lock()
			verifyErr = err
			query = r.PostFormValue("q")
			mu.Unlock()

			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"id": "1"}`))
		}),
	})
	defer server.Close()

	conn := newConnection(t, server.URL)
	defer conn.Close()

	_, err := conn.Get(context.Background(), "services/users/user", Params{
		"fields": []string{"id", "first_name"},
		"q":      "a b+c/ł",
	})
	assert(err).Nil()

	mu.Lock()
	defer mu.Unlock()
	assert(verifyErr).Nil()
	assert(query).Equal("a b+c/ł")
}

func TestGetOtherStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("maintenance"))
	}))
	defer server.Close()

	conn := newConnection(t, server.URL)
	defer conn.Close()

	_, err := conn.Get(context.Background(), "services/users/user", nil)

	var protocolErr *apierror.ProtocolError
	assert.True(t, errors.As(err, &protocolErr))
	assert.Equal(t, http.StatusServiceUnavailable, protocolErr.StatusCode)
	assert.Equal(t, "maintenance", protocolErr.Body)
}

func TestGetInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer server.Close()

	conn := newConnection(t, server.URL)
	defer conn.Close()

	_, err := conn.Get(context.Background(), "services/users/user", nil)
	assert.Equal(t, ErrInvalidJSON, err)
}

func TestGetWithoutAccessToken(t *testing.T) {
	var (
		mu     sync.Mutex
		called bool
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		called = true
		mu.Unlock()
	}))
	defer server.Close()

	manager, _ := auth.New(server.URL, id, secret)
	conn := New(server.URL, manager)
	defer conn.Close()

	_, err := conn.Get(context.Background(), "services/users/user", nil)
	assert.True(t, errors.Is(err, apierror.ErrNoAccessToken))
	mu.Lock()
	assert.False(t, called)
	mu.Unlock()
}

func TestCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "x", "count": 3}`))
	}))
	defer server.Close()

	conn := newConnection(t, server.URL)
	defer conn.Close()

	var v struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	err := conn.Call(context.Background(), "services/some/thing", nil, &v)
	assert.Nil(t, err)
	assert.Equal(t, "x", v.Name)
	assert.Equal(t, 3, v.Count)
}

func TestTestConnection(t *testing.T) {
	var (
		mu     sync.Mutex
		status int
	)
	setStatus := func(code int) {
		mu.Lock()
		status = code
		mu.Unlock()
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/services/apisrv/now" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		mu.Lock()
		code := status
		mu.Unlock()

		w.WriteHeader(code)
		w.Write([]byte(`"2024-01-01 12:00:00.000000"`))
	}))
	defer server.Close()

	conn := newConnection(t, server.URL)
	defer conn.Close()

	setStatus(http.StatusOK)
	assert.True(t, conn.TestConnection(context.Background()))

	setStatus(http.StatusInternalServerError)
	assert.False(t, conn.TestConnection(context.Background()))
}

func TestTestConnectionUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	conn := newConnection(t, url)
	defer conn.Close()

	assert.False(t, conn.TestConnection(context.Background()))
}

func TestClose(t *testing.T) {
	conn := newConnection(t, "http://localhost")

	assert.Nil(t, conn.Close())
	assert.Nil(t, conn.Close())

	_, err := conn.Get(context.Background(), "services/users/user", nil)
	assert.Equal(t, apierror.ErrClosed, err)
	assert.False(t, conn.TestConnection(context.Background()))
}

func TestParamsValues(t *testing.T) {
	assert := assert.Wrap(t)

	userID := int64(42)
	var missing *string

	values := Params{
		"user_id":  &userID,
		"missing":  missing,
		"nothing":  nil,
		"active":   true,
		"fields":   []string{"id", "name"},
		"term_id":  "2023Z",
		"per_page": 10,
	}.Values()

	assert(len(values)).Equal(5)
	assert(values.Get("user_id")).Equal("42")
	assert(values.Get("active")).Equal("true")
	assert(values.Get("fields")).Equal("id|name")
	assert(values.Get("term_id")).Equal("2023Z")
	assert(values.Get("per_page")).Equal("10")
}
