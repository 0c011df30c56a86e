package auth

import (
	"context"
	"fmt"
	"net/http"
)

// Headers builds the request headers for an authenticated call: bearer
// token plus JSON content type. It fails fast with ErrNoSession when no
// session is active, so downstream clients can assume headers are valid
// once received. The only side effect is the delegated token retrieval.
func Headers(ctx context.Context, s Session) (http.Header, error) {
	if s == nil {
		return nil, ErrNoSession
	}

	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoSession
	}

	h := make(http.Header)
	h.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	h.Set("Content-Type", "application/json")
	return h, nil
}
