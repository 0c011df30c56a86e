package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestStaticSession(t *testing.T) {
	s := NewStaticSession("tok-123")
	token, err := s.Token(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("expected tok-123, got %s", token)
	}
}

func TestStaticSessionEmpty(t *testing.T) {
	s := NewStaticSession("")
	_, err := s.Token(context.Background())
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestHeaders(t *testing.T) {
	h, err := Headers(context.Background(), NewStaticSession("tok-123"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := h.Get("Authorization"); got != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", got)
	}
	if got := h.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected json content type, got %q", got)
	}
}

func TestHeadersFailFast(t *testing.T) {
	tests := []struct {
		name    string
		session Session
	}{
		{"nil session", nil},
		{"empty static token", NewStaticSession("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Headers(context.Background(), tt.session)
			if !errors.Is(err, ErrNoSession) {
				t.Errorf("expected ErrNoSession, got %v", err)
			}
		})
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestProviderSessionFetchesAndCaches(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decoding credentials: %v", err)
		}
		if creds.Email != "site@acme.test" {
			t.Errorf("unexpected email %q", creds.Email)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": token})
	}))
	defer srv.Close()

	s := NewProviderSession(srv.URL, "site@acme.test", "hunter2", 5*time.Second)

	for i := 0; i < 3; i++ {
		got, err := s.Token(context.Background())
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if got != token {
			t.Errorf("call %d: wrong token returned", i)
		}
	}

	if calls != 1 {
		t.Errorf("expected 1 provider call for an unexpired token, got %d", calls)
	}
}

func TestProviderSessionRefreshesExpired(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Token already inside the refresh skew, so every call refetches.
		json.NewEncoder(w).Encode(map[string]string{
			"token": signedToken(t, time.Now().Add(10*time.Second)),
		})
	}))
	defer srv.Close()

	s := NewProviderSession(srv.URL, "a@b.test", "pw", 5*time.Second)

	if _, err := s.Token(context.Background()); err != nil {
		t.Fatalf("first token: %v", err)
	}
	if _, err := s.Token(context.Background()); err != nil {
		t.Fatalf("second token: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 provider calls for a nearly expired token, got %d", calls)
	}
}

func TestProviderSessionOpaqueTokenFallbackTTL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "opaque-not-a-jwt"})
	}))
	defer srv.Close()

	s := NewProviderSession(srv.URL, "a@b.test", "pw", 5*time.Second)
	if _, err := s.Token(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !s.expiresAt.After(time.Now()) {
		t.Error("expected opaque token to carry a fallback TTL")
	}
}

func TestProviderSessionFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
			},
		},
		{
			name: "empty token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{"token": ""})
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			s := NewProviderSession(srv.URL, "a@b.test", "pw", 5*time.Second)
			_, err := s.Token(context.Background())
			if !errors.Is(err, ErrNoSession) {
				t.Errorf("expected ErrNoSession, got %v", err)
			}
		})
	}
}

func TestProviderSessionNoURL(t *testing.T) {
	s := NewProviderSession("", "", "", time.Second)
	_, err := s.Token(context.Background())
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}
