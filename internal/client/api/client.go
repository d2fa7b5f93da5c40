// Package api is the REST client for the console's protected resources.
// Every call goes through a single dispatcher that attaches the session's
// auth headers and transparently retries once after a token refresh when the
// server answers 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/etfdesk/internal/client/session"
	"github.com/dmitrijs2005/etfdesk/internal/common"
)

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
}

func New(baseURL string, timeout time.Duration, s *session.Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: s,
	}
}

// do performs one API call. Auth headers are read from the session store at
// call time. A 401 answer triggers a single refresh attempt and retry; if the
// retry is still rejected the session is terminated and
// common.ErrorUnauthorized is returned.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.attempt(ctx, method, path, query, body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()

		if _, err := c.session.Refresh(ctx); err != nil {
			_ = c.session.Logout(ctx)
			return common.ErrorUnauthorized
		}

		resp, err = c.attempt(ctx, method, path, query, body)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrNetwork, err)
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			_ = c.session.Logout(ctx)
			return common.ErrorUnauthorized
		}
	}

	defer resp.Body.Close()
	return c.handle(resp, out)
}

// attempt builds and sends a single HTTP request with fresh auth headers.
func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.session.AuthHeaders(ctx) {
		req.Header.Set(k, v)
	}

	return c.http.Do(req)
}

// handle maps the response status to the shared sentinel errors and decodes
// a successful JSON body into out when requested.
func (c *Client) handle(resp *http.Response, out any) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil

	case resp.StatusCode == http.StatusBadRequest:
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
			return &session.ValidationError{Message: payload.Message}
		}
		return common.ErrorInternal

	case resp.StatusCode == http.StatusForbidden:
		return common.ErrorForbidden

	case resp.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound

	case resp.StatusCode == http.StatusConflict:
		return common.ErrorConflict

	default:
		return fmt.Errorf("%w: unexpected status %d", common.ErrorInternal, resp.StatusCode)
	}
}

// listQuery builds the shared search/sort query parameters.
func listQuery(search, sortBy, sortDirection string) url.Values {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if sortBy != "" {
		query.Set("sortBy", sortBy)
	}
	if sortDirection != "" {
		query.Set("sortDirection", sortDirection)
	}
	return query
}
