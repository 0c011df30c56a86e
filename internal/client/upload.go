package client

import (
	"context"
	"encoding/base64"
	"net/http"
)

type uploadRequest struct {
	Base64   string `json:"base64"`
	Filename string `json:"filename"`
}

type uploadResponse struct {
	OK  bool   `json:"ok"`
	URL string `json:"url"`
}

// Upload sends one image to the storage endpoint and returns its durable
// URL. Exactly one attempt is made; retrying is the caller's decision.
func (c *Client) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	req := uploadRequest{
		Base64:   base64.StdEncoding.EncodeToString(data),
		Filename: filename,
	}

	var resp uploadResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/uploads/base64", req, &resp); err != nil {
		return "", err
	}

	if !resp.OK || resp.URL == "" {
		return "", apiError(ErrUnexpectedResponse, http.StatusOK, []byte("upload response missing url"))
	}
	return resp.URL, nil
}
