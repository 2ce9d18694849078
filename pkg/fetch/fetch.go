// Package fetch is the external retrieval collaborator for resource reads.
// It reports transport outcomes verbatim; classifying a status code into
// resource contents is the caller's job.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is a completed HTTP exchange. A non-2xx status is a valid
// response, not an error.
type Response struct {
	StatusCode int
	Body       []byte
}

type Fetcher interface {
	Fetch(ctx context.Context, uri, method string) (*Response, error)
}

// HTTPFetcher fetches over plain HTTP with a bounded timeout.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTP(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, uri, method string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", uri, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
