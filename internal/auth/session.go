package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession signals that no identity session is active or that token
// retrieval failed. Callers map it to their auth-required error before
// any network call is attempted.
var ErrNoSession = errors.New("no active session")

// Session supplies a short-lived bearer token on demand. The identity
// provider owns refresh; callers never cache a token across calls.
type Session interface {
	Token(ctx context.Context) (string, error)
}

// StaticSession wraps a fixed token, typically injected via env for
// scripting and tests.
type StaticSession struct {
	token string
}

func NewStaticSession(token string) *StaticSession {
	return &StaticSession{token: token}
}

func (s *StaticSession) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", ErrNoSession
	}
	return s.token, nil
}

// refreshSkew renews tokens slightly before their exp claim so a token
// never expires mid-request.
const refreshSkew = 30 * time.Second

// fallbackTTL bounds cache lifetime for opaque (non-JWT) tokens.
const fallbackTTL = 10 * time.Minute

// ProviderSession exchanges credentials with the identity provider and
// caches the issued token until it is close to expiry.
type ProviderSession struct {
	tokenURL   string
	email      string
	password   string
	httpClient *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewProviderSession(tokenURL, email, password string, timeout time.Duration) *ProviderSession {
	return &ProviderSession{
		tokenURL: tokenURL,
		email:    email,
		password: password,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *ProviderSession) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.expiresAt.Add(-refreshSkew)) {
		return s.token, nil
	}

	token, err := s.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	s.token = token
	s.expiresAt = tokenExpiry(token)
	return token, nil
}

func (s *ProviderSession) fetchToken(ctx context.Context) (string, error) {
	if s.tokenURL == "" {
		return "", ErrNoSession
	}

	payload, err := json.Marshal(map[string]string{
		"email":    s.email,
		"password": s.password,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: identity provider returned %d", ErrNoSession, resp.StatusCode)
	}

	var tokenResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("%w: decoding token response: %v", ErrNoSession, err)
	}
	if tokenResp.Token == "" {
		return "", ErrNoSession
	}

	return tokenResp.Token, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client only needs it to schedule refresh. Opaque tokens get a fixed TTL.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Now().Add(fallbackTTL)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Now().Add(fallbackTTL)
	}
	return exp.Time
}
