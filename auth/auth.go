// Package auth implements the OAuth1 three-legged flow used by USOS, and signs
// requests with the resulting access token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/garyburd/go-oauth/oauth"
	"github.com/rs/zerolog"
	"hawx.me/code/usos/apierror"
	"hawx.me/code/usos/internal/session"
)

const (
	RequestTokenPath = "services/oauth/request_token"
	AuthorizePath    = "services/oauth/authorize"
	AccessTokenPath  = "services/oauth/access_token"
	RevokeTokenPath  = "services/oauth/revoke_token"

	// OutOfBand is the callback used for PIN based authorization.
	OutOfBand = "oob"
)

// DefaultScopes are requested when no scopes are configured.
var DefaultScopes = []string{"offline_access", "studies"}

var (
	ErrMissingCredentials = errors.New("usos: consumer key and consumer secret are required")
	ErrMissingBaseURL     = errors.New("usos: api base address is required")
	ErrMalformedResponse  = errors.New("usos: malformed token response")
)

// Token is an OAuth1 access token. It is the value persisted between runs.
type Token struct {
	Token  string `json:"access_token"`
	Secret string `json:"access_token_secret"`
}

// Manager holds the consumer credentials and the current token state.
type Manager struct {
	baseURL    string
	scopes     []string
	client     oauth.Client
	httpClient *http.Client
	ownsClient bool
	timeout    time.Duration
	logger     zerolog.Logger

	mu      sync.RWMutex
	request *oauth.Credentials
	access  *oauth.Credentials
	closed  bool
}

type Option func(*Manager)

// WithHTTPClient replaces the session used for handshake requests. Close
// leaves a client given this way untouched.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(m *Manager) { m.httpClient = httpClient }
}

// WithTimeout bounds each request made by the session the Manager creates.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Manager) { m.timeout = timeout }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithScopes sets the scopes requested with the next request token.
func WithScopes(scopes ...string) Option {
	return func(m *Manager) { m.scopes = scopes }
}

// New creates a Manager for the API at baseURL.
func New(baseURL, consumerKey, consumerSecret string, opts ...Option) (*Manager, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if consumerKey == "" || consumerSecret == "" {
		return nil, ErrMissingCredentials
	}

	base := strings.TrimRight(baseURL, "/") + "/"

	m := &Manager{
		baseURL: base,
		scopes:  DefaultScopes,
		client: oauth.Client{
			TemporaryCredentialRequestURI: base + RequestTokenPath,
			ResourceOwnerAuthorizationURI: base + AuthorizePath,
			TokenRequestURI:               base + AccessTokenPath,
			Credentials: oauth.Credentials{
				Token:  consumerKey,
				Secret: consumerSecret,
			},
		},
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.httpClient == nil {
		m.httpClient = session.New(m.timeout)
		m.ownsClient = true
	}

	return m, nil
}

// BaseURL returns the API address, always ending in a slash.
func (m *Manager) BaseURL() string {
	return m.baseURL
}

// SetScopes changes the scopes requested by the next call to AuthorizationURL.
func (m *Manager) SetScopes(scopes ...string) {
	m.mu.Lock()
	m.scopes = scopes
	m.mu.Unlock()
}

// Close releases the handshake session, unless it was given with
// WithHTTPClient. It is safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	if m.ownsClient {
		session.Close(m.httpClient)
	}

	return nil
}

// AuthorizationURL obtains a new request token and returns the page a user
// must visit to authorize it. An empty callback selects PIN based
// authorization.
func (m *Manager) AuthorizationURL(ctx context.Context, callback string) (string, error) {
	if callback == "" {
		callback = OutOfBand
	}

	m.mu.RLock()
	scopes := strings.Join(m.scopes, "|")
	m.mu.RUnlock()

	form := url.Values{"oauth_callback": {callback}}
	if scopes != "" {
		form.Set("scopes", scopes)
	}

	tempCred, err := m.requestCredentials(ctx, m.client.TemporaryCredentialRequestURI, nil, form)
	if err != nil {
		return "", fmt.Errorf("requesting request token: %w", err)
	}

	m.mu.Lock()
	m.request = tempCred
	m.mu.Unlock()

	m.logger.Info().Str("scopes", scopes).Msg("New request token generated")

	return m.client.AuthorizationURL(tempCred, nil), nil
}

// Authorize exchanges the request token and the verifier shown to the user for
// an access token, which is then used to sign all further requests.
func (m *Manager) Authorize(ctx context.Context, verifier string) (Token, error) {
	m.mu.RLock()
	tempCred := m.request
	m.mu.RUnlock()

	if tempCred == nil {
		return Token{}, apierror.ErrNoRequestToken
	}

	tokenCred, err := m.requestCredentials(ctx, m.client.TokenRequestURI, tempCred, url.Values{
		"oauth_verifier": {verifier},
	})
	if err != nil {
		return Token{}, fmt.Errorf("requesting access token: %w", err)
	}

	m.mu.Lock()
	m.access = tokenCred
	m.request = nil
	m.mu.Unlock()

	m.logger.Info().Msg("Authorization successful, received access token")

	return Token{Token: tokenCred.Token, Secret: tokenCred.Secret}, nil
}

// LoadAccessToken installs a previously obtained access token.
func (m *Manager) LoadAccessToken(token Token) error {
	if token.Token == "" {
		return &apierror.ValidationError{Reason: "missing access_token"}
	}
	if token.Secret == "" {
		return &apierror.ValidationError{Reason: "missing access_token_secret"}
	}

	m.mu.Lock()
	m.access = &oauth.Credentials{Token: token.Token, Secret: token.Secret}
	m.mu.Unlock()

	return nil
}

// AccessToken returns the current access token, if there is one.
func (m *Manager) AccessToken() (Token, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.access == nil {
		return Token{}, false
	}

	return Token{Token: m.access.Token, Secret: m.access.Secret}, true
}

// Sign builds a request for rawURL signed with the access token. For POST the
// form is sent as the body, otherwise it is added to the query.
func (m *Manager) Sign(ctx context.Context, method, rawURL string, form url.Values) (*http.Request, error) {
	m.mu.RLock()
	access, closed := m.access, m.closed
	m.mu.RUnlock()

	if closed {
		return nil, apierror.ErrClosed
	}
	if access == nil {
		return nil, apierror.ErrNoAccessToken
	}

	return m.newRequest(ctx, method, rawURL, access, form)
}

// Logout revokes the access token and forgets it. Without a token it does
// nothing.
func (m *Manager) Logout(ctx context.Context) error {
	req, err := m.Sign(ctx, http.MethodPost, m.baseURL+RevokeTokenPath, nil)
	if errors.Is(err, apierror.ErrNoAccessToken) {
		return nil
	}
	if err != nil {
		return err
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	defer resp.Body.Close()

	if err := m.checkResponse(resp); err != nil {
		return err
	}

	m.mu.Lock()
	m.access = nil
	m.mu.Unlock()

	m.logger.Info().Msg("Token revoked successfully")

	return nil
}

func (m *Manager) newRequest(ctx context.Context, method, rawURL string, credentials *oauth.Credentials, form url.Values) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	target := *u
	var body io.Reader
	if method == http.MethodPost || method == http.MethodPut {
		body = strings.NewReader(form.Encode())
	} else if len(form) > 0 {
		query := target.Query()
		for k, vs := range form {
			query[k] = append(query[k], vs...)
		}
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if err := m.client.SetAuthorizationHeader(req.Header, credentials, method, u, form); err != nil {
		return nil, err
	}

	return req, nil
}

// requestCredentials performs one of the handshake calls and parses the token
// pair from its form encoded response.
func (m *Manager) requestCredentials(ctx context.Context, rawURL string, credentials *oauth.Credentials, form url.Values) (*oauth.Credentials, error) {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return nil, apierror.ErrClosed
	}

	req, err := m.newRequest(ctx, http.MethodPost, rawURL, credentials, form)
	if err != nil {
		return nil, err
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := m.checkResponse(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	vals, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	cred := &oauth.Credentials{
		Token:  vals.Get("oauth_token"),
		Secret: vals.Get("oauth_token_secret"),
	}
	if cred.Token == "" || cred.Secret == "" {
		return nil, ErrMalformedResponse
	}

	return cred, nil
}

func (m *Manager) checkResponse(resp *http.Response) error {
	err := apierror.FromResponse(resp)
	if apierror.IsUnauthorized(err) {
		m.logger.Error().Int("status", resp.StatusCode).Msg("Unauthorized, the access key probably expired")
	}
	return err
}
