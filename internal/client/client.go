package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/epicabdou/hse-inspector/internal/auth"
)

// Client talks to the hazard-analysis service. A fresh token is
// requested from the session immediately before every call, so a token
// expiring mid-pipeline is refreshed rather than failing stale.
type Client struct {
	baseURL    string
	session    auth.Session
	httpClient *http.Client
}

func New(baseURL string, session auth.Session, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		session: session,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// doJSON performs one authenticated JSON round trip and maps the
// transport outcome into the package error taxonomy.
func (c *Client) doJSON(ctx context.Context, method, path string, reqBody, out any) error {
	headers, err := auth.Headers(ctx, c.session)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthRequired, err)
	}

	var bodyReader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, vv := range headers {
		for _, v := range vv {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}

	// 404 is deliberately absent here: only fetch-by-id gives it a
	// meaning, so everywhere else it falls through as a server error.
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apiError(ErrAuthRequired, resp.StatusCode, body)
	case resp.StatusCode == http.StatusRequestEntityTooLarge:
		return apiError(ErrPayloadTooLarge, resp.StatusCode, body)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apiError(ErrServer, resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return apiError(ErrUnexpectedResponse, resp.StatusCode, body)
		}
	}
	return nil
}

// IsAuthError reports whether err maps to the auth-required sentinel.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}
