// Package connection issues signed calls to USOS services.
package connection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"hawx.me/code/usos/apierror"
	"hawx.me/code/usos/auth"
	"hawx.me/code/usos/internal/session"
)

// HealthPath is requested, unsigned, by TestConnection.
const HealthPath = "services/apisrv/now"

var ErrInvalidJSON = errors.New("usos: response is not valid json")

// Signer is the part of auth.Manager used by a Connection.
type Signer interface {
	Sign(ctx context.Context, method, rawURL string, form url.Values) (*http.Request, error)
	Close() error
}

var _ Signer = (*auth.Manager)(nil)

// Params are the arguments of a service call. Nil values, including nil
// pointers, are dropped.
type Params map[string]interface{}

type Connection struct {
	baseURL    string
	signer     Signer
	httpClient *http.Client
	ownsClient bool
	timeout    time.Duration
	logger     zerolog.Logger

	mu     sync.Mutex
	closed bool
}

type Option func(*Connection)

// WithHTTPClient sets the session used for requests. Close leaves a client
// given this way untouched.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Connection) { c.httpClient = httpClient }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Connection) { c.timeout = timeout }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Connection) { c.logger = logger }
}

// New creates a Connection to the API at baseURL that signs requests with
// signer. Closing the Connection closes signer.
func New(baseURL string, signer Signer, opts ...Option) *Connection {
	c := &Connection{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		signer:  signer,
		logger:  zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = session.New(c.timeout)
		c.ownsClient = true
	}

	return c
}

// Close releases the session and the signer's session. It is safe to call more
// than once.
func (c *Connection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if c.ownsClient {
		session.Close(c.httpClient)
	}
	return c.signer.Close()
}

func (c *Connection) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// TestConnection reports whether the API answers its health endpoint with a
// 200. Any failure, including being closed, is reported as false.
func (c *Connection) TestConnection(ctx context.Context) bool {
	if c.isClosed() {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+HealthPath, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Msg("Connection test failed")
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// Get calls service, for example "services/users/user", with params and
// returns the JSON response body as received.
func (c *Connection) Get(ctx context.Context, service string, params Params) (json.RawMessage, error) {
	if c.isClosed() {
		return nil, apierror.ErrClosed
	}

	req, err := c.signer.Sign(ctx, http.MethodPost, c.baseURL+service, params.Values())
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("service", service).Msg("Making USOS API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", service, err)
	}
	defer resp.Body.Close()

	if err := apierror.FromResponse(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if !json.Valid(body) {
		return nil, ErrInvalidJSON
	}

	return json.RawMessage(body), nil
}

// Call calls service like Get and decodes the result into v.
func (c *Connection) Call(ctx context.Context, service string, params Params, v interface{}) error {
	body, err := c.Get(ctx, service, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", service, err)
	}

	return nil
}

// Values encodes the non-nil params as a form. Lists of strings are joined with
// "|", which is how USOS expects multi-valued arguments.
func (p Params) Values() url.Values {
	form := url.Values{}

	for k, v := range p {
		if s, ok := stringify(v); ok {
			form.Set(k, s)
		}
	}

	return form
}

func stringify(v interface{}) (string, bool) {
	if v == nil {
		return "", false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "", false
		}
		v = rv.Elem().Interface()
	}

	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case []string:
		return strings.Join(x, "|"), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(x), true
	}
}
