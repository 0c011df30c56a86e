package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/epicabdou/hse-inspector/internal/hazard"
)

type analyzeRequest struct {
	ImageURL string `json:"imageUrl"`
}

type analyzeResponse struct {
	OK         bool                   `json:"ok"`
	Inspection *hazard.Inspection     `json:"inspection"`
	Analysis   *hazard.AnalysisResult `json:"analysis"`
}

// AnalyzeResult is the immediate outcome of a submit call.
type AnalyzeResult struct {
	Inspection *hazard.Inspection
	Analysis   *hazard.AnalysisResult
}

// Submit posts an uploaded image URL for analysis. A 2xx response
// lacking the analysis payload is a protocol violation, not a
// still-processing signal; polling after submit is not part of this
// contract.
func (c *Client) Submit(ctx context.Context, imageURL string) (*AnalyzeResult, error) {
	var resp analyzeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/inspections/analyze", analyzeRequest{ImageURL: imageURL}, &resp); err != nil {
		return nil, err
	}

	if !resp.OK || resp.Inspection == nil {
		return nil, apiError(ErrUnexpectedResponse, http.StatusOK, []byte("analyze response missing inspection"))
	}
	if resp.Analysis == nil {
		return nil, apiError(ErrUnexpectedResponse, http.StatusOK, []byte("analyze response missing analysis"))
	}

	return &AnalyzeResult{
		Inspection: resp.Inspection,
		Analysis:   resp.Analysis,
	}, nil
}

type fetchResponse struct {
	OK         bool               `json:"ok"`
	Inspection *hazard.Inspection `json:"inspection"`
}

// FetchByID retrieves the current state of a previously created
// inspection, used for user-initiated refresh.
func (c *Client) FetchByID(ctx context.Context, id string) (*hazard.Inspection, error) {
	var resp fetchResponse
	path := fmt.Sprintf("/api/inspections/%s", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		// A missing inspection is only meaningful on this endpoint.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, &APIError{Sentinel: ErrNotFound, StatusCode: apiErr.StatusCode, Body: apiErr.Body}
		}
		return nil, err
	}

	if !resp.OK || resp.Inspection == nil {
		return nil, apiError(ErrUnexpectedResponse, http.StatusOK, []byte("fetch response missing inspection"))
	}
	return resp.Inspection, nil
}

// ListResult is one page of recent inspections.
type ListResult struct {
	Inspections []hazard.Inspection `json:"inspections"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"pageSize"`
	TotalCount  int                 `json:"totalCount"`
}

type listResponse struct {
	OK bool `json:"ok"`
	ListResult
}

// List fetches one page from the inspections list endpoint.
func (c *Client) List(ctx context.Context, page, pageSize int) (*ListResult, error) {
	var resp listResponse
	path := fmt.Sprintf("/api/inspections/list?page=%d&pageSize=%d", page, pageSize)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	if !resp.OK {
		return nil, apiError(ErrUnexpectedResponse, http.StatusOK, []byte("list response not ok"))
	}
	return &resp.ListResult, nil
}
