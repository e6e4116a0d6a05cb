package certsdk

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionExpired is returned once the access token has expired. Sessions
// do not refresh; sign in again.
var ErrSessionExpired = errors.New("certsdk: session expired")

// Session is an authenticated wallet session. It is safe for concurrent use.
type Session struct {
	client *Client
	wallet string

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	identity    *Identity
}

func newSession(client *Client, wallet string, tok *TokenResponse) *Session {
	// 30 second buffer before the server-side expiry
	expiresAt := time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - 30*time.Second)

	return &Session{
		client:      client,
		wallet:      wallet,
		accessToken: tok.AccessToken,
		expiresAt:   expiresAt,
		identity:    tok.Identity,
	}
}

// Wallet is the address this session acts as.
func (s *Session) Wallet() string { return s.wallet }

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Identity is the identity returned at sign-in, nil if the wallet was not
// registered then.
func (s *Session) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Session) token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !time.Now().Before(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.accessToken, nil
}

func sessionGet[T any](ctx context.Context, s *Session, path string) (*T, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return get[T](ctx, s.client, path, token)
}

func sessionSend[T any](ctx context.Context, s *Session, method, path string, payload any, expectedStatus int) (*T, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return send[T](ctx, s.client, method, path, token, payload, expectedStatus)
}

func (s *Session) doNoContent(ctx context.Context, method, path string) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	resp, err := s.client.doRequest(ctx, method, path, nil, token)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

