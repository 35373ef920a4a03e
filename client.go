// Package usos is a client for the USOS university administration API.
//
// A Client is authorized once with the three-legged OAuth1 handshake:
//
//	client, _ := usos.New("https://apps.usos.pwr.edu.pl/", key, secret)
//	defer client.Close()
//
//	authURL, _ := client.AuthorizationURL(ctx, "")
//	// visit authURL and read the PIN
//	client.Authorize(ctx, pin)
//	client.SaveAccessTokenToFile("")
//
// and later runs load the saved token instead:
//
//	client.LoadAccessTokenFromFile("")
//	user, err := client.GetUser(ctx, nil)
package usos

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"hawx.me/code/usos/apierror"
	"hawx.me/code/usos/auth"
	"hawx.me/code/usos/config"
	"hawx.me/code/usos/connection"
	"hawx.me/code/usos/model"
	"hawx.me/code/usos/service"
	"hawx.me/code/usos/store"
)

// AuthState is the result of CheckAuth.
type AuthState int

const (
	// AuthRequired means the handshake must be run, or a token loaded, before
	// making calls.
	AuthRequired AuthState = iota
	Authorized
)

func (s AuthState) String() string {
	if s == Authorized {
		return "authorized"
	}
	return "auth required"
}

type Client struct {
	Users      *service.UserService
	Terms      *service.TermService
	Programmes *service.ProgrammeService
	APIServer  *service.APIServerService

	manager   *auth.Manager
	conn      *connection.Connection
	tokenPath string
	logger    zerolog.Logger
}

type options struct {
	logger     zerolog.Logger
	httpClient *http.Client
	scopes     []string
	timeout    time.Duration
	tokenPath  string
}

type Option func(*options)

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithHTTPClient sets the session used for every request, replacing the
// default ones that set the User-Agent and honour WithTimeout. The caller keeps
// ownership: Close does not drop its idle connections.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) { o.httpClient = httpClient }
}

func WithScopes(scopes ...string) Option {
	return func(o *options) { o.scopes = scopes }
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithTokenPath sets the file used by LoadAccessTokenFromFile and
// SaveAccessTokenToFile when they are given an empty path.
func WithTokenPath(path string) Option {
	return func(o *options) { o.tokenPath = path }
}

// New creates a Client for the API at baseURL using the registered consumer
// key and secret.
func New(baseURL, consumerKey, consumerSecret string, opts ...Option) (*Client, error) {
	o := &options{
		logger:    zerolog.Nop(),
		timeout:   config.DefaultTimeout,
		tokenPath: store.DefaultPath,
	}
	for _, opt := range opts {
		opt(o)
	}

	authOpts := []auth.Option{
		auth.WithTimeout(o.timeout),
		auth.WithLogger(o.logger),
	}
	connOpts := []connection.Option{
		connection.WithTimeout(o.timeout),
		connection.WithLogger(o.logger),
	}
	if o.httpClient != nil {
		authOpts = append(authOpts, auth.WithHTTPClient(o.httpClient))
		connOpts = append(connOpts, connection.WithHTTPClient(o.httpClient))
	}
	if len(o.scopes) > 0 {
		authOpts = append(authOpts, auth.WithScopes(o.scopes...))
	}

	manager, err := auth.New(baseURL, consumerKey, consumerSecret, authOpts...)
	if err != nil {
		return nil, err
	}

	conn := connection.New(manager.BaseURL(), manager, connOpts...)

	return &Client{
		Users:      service.NewUserService(conn),
		Terms:      service.NewTermService(conn),
		Programmes: service.NewProgrammeService(conn),
		APIServer:  service.NewAPIServerService(conn),
		manager:    manager,
		conn:       conn,
		tokenPath:  o.tokenPath,
		logger:     o.logger,
	}, nil
}

// NewFromConfig creates a Client from conf, logging to stderr as configured.
// Options given override those taken from conf.
func NewFromConfig(conf config.Config, opts ...Option) (*Client, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	base := []Option{
		WithLogger(NewLogger(conf.Logging, os.Stderr)),
		WithScopes(conf.Scopes...),
		WithTokenPath(conf.Token.Path),
	}
	if conf.Timeout > 0 {
		base = append(base, WithTimeout(conf.Timeout))
	}

	return New(conf.API.BaseAddress, conf.API.ConsumerKey, conf.API.ConsumerSecret, append(base, opts...)...)
}

// Close releases the sessions the Client created. It is safe to call more than
// once.
func (c *Client) Close() error {
	return c.conn.Close()
}

// SetScopes changes the scopes requested by the next AuthorizationURL.
func (c *Client) SetScopes(scopes ...string) {
	c.manager.SetScopes(scopes...)
}

// AuthorizationURL starts the handshake, see auth.Manager.AuthorizationURL.
func (c *Client) AuthorizationURL(ctx context.Context, callback string) (string, error) {
	return c.manager.AuthorizationURL(ctx, callback)
}

// Authorize completes the handshake with the verifier (PIN) the user was
// shown.
func (c *Client) Authorize(ctx context.Context, verifier string) (auth.Token, error) {
	return c.manager.Authorize(ctx, verifier)
}

func (c *Client) LoadAccessToken(token auth.Token) error {
	return c.manager.LoadAccessToken(token)
}

func (c *Client) AccessToken() (auth.Token, bool) {
	return c.manager.AccessToken()
}

// LoadAccessTokenFrom installs the token kept in s.
func (c *Client) LoadAccessTokenFrom(ctx context.Context, s store.Store) error {
	token, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if err := c.manager.LoadAccessToken(token); err != nil {
		return err
	}

	c.logger.Debug().Msg("Loaded access token")
	return nil
}

// SaveAccessTokenTo writes the current token to s.
func (c *Client) SaveAccessTokenTo(ctx context.Context, s store.Store) error {
	token, ok := c.manager.AccessToken()
	if !ok {
		return apierror.ErrNoAccessToken
	}

	return s.Save(ctx, token)
}

// LoadAccessTokenFromFile reads a token saved by SaveAccessTokenToFile. An
// empty path uses the configured token path.
func (c *Client) LoadAccessTokenFromFile(path string) error {
	return c.LoadAccessTokenFrom(context.Background(), c.file(path))
}

// SaveAccessTokenToFile writes the current token as JSON. The path must end in
// ".json"; an empty path uses the configured token path.
func (c *Client) SaveAccessTokenToFile(path string) error {
	return c.SaveAccessTokenTo(context.Background(), c.file(path))
}

func (c *Client) file(path string) store.File {
	if path == "" {
		path = c.tokenPath
	}
	return store.File{Path: path}
}

// TestConnection reports whether the API is reachable. It does not need a
// token.
func (c *Client) TestConnection(ctx context.Context) bool {
	return c.conn.TestConnection(ctx)
}

// GetUser returns the user with userID, or the authorizing user when userID is
// nil, with the default fields.
func (c *Client) GetUser(ctx context.Context, userID *model.UserID) (model.User, error) {
	return c.Users.User(ctx, userID, nil)
}

// Logout revokes the current token, if any.
func (c *Client) Logout(ctx context.Context) error {
	return c.manager.Logout(ctx)
}

// CheckAuth reports whether calls can be made with the current token. A
// missing token, or one the API rejects, gives AuthRequired. Other failures
// are returned as errors.
func (c *Client) CheckAuth(ctx context.Context) (AuthState, error) {
	if _, ok := c.manager.AccessToken(); !ok {
		return AuthRequired, nil
	}

	_, err := c.APIServer.ConsumerInfo(ctx, []string{"name"})
	if errors.Is(err, apierror.ErrUnauthorized) {
		c.logger.Info().Msg("Access token rejected, authorization required")
		return AuthRequired, nil
	}
	if err != nil {
		return AuthRequired, err
	}

	return Authorized, nil
}
