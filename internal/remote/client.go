package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"journeyplanner/internal/domain"
	"journeyplanner/internal/domain/models"
	"journeyplanner/internal/utils"
)

// Options configures the base URLs of the services the client talks to.
type Options struct {
	CompositeBaseURL   string
	SavedRoutesBaseURL string
	UserServiceBaseURL string
	Timeout            time.Duration
	HTTPClient         *http.Client
}

// Client performs the remote-access calls. It holds no per-user state.
type Client struct {
	httpClient     *http.Client
	compositeURL   string
	savedRoutesURL string
	usersURL       string
}

// NewClient creates a client for the composite and atomic services.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		httpClient:     hc,
		compositeURL:   strings.TrimRight(opts.CompositeBaseURL, "/"),
		savedRoutesURL: strings.TrimRight(opts.SavedRoutesBaseURL, "/"),
		usersURL:       strings.TrimRight(opts.UserServiceBaseURL, "/"),
	}
}

// do performs one HTTP call and returns the raw body. Network failures and
// HTTP error statuses come back as domain.TransportError; when the error body
// is an envelope its message is kept as a wrapped domain.ResponseError.
func (c *Client) do(ctx context.Context, op, method, url string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid := utils.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.TransportError{Op: op, URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.TransportError{Op: op, URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		terr := domain.TransportError{Op: op, URL: url, Status: resp.StatusCode}
		var env models.StatusResult
		if json.Unmarshal(respBody, &env) == nil && env.Message != "" {
			code := env.Code
			if code == 0 {
				code = resp.StatusCode
			}
			terr.Err = domain.ResponseError{Op: op, Code: code, Message: env.Message}
		}
		return nil, terr
	}
	return respBody, nil
}

func decode[T any](op string, b []byte) (T, error) {
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return out, nil
}
