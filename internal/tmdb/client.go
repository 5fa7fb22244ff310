// Package tmdb implements the HTTP client for The Movie Database (TMDB) v3
// catalog endpoints. All methods are context-aware and respect the shared
// rate limiter. Requests are attempted once; a failure is reported to the
// caller rather than retried.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/derickschaefer/reel/internal/model"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3/"
	DefaultImageURL = "https://image.tmdb.org/t/p/w342"
	userAgent       = "reel-cli/1.0"
)

// Client is the TMDB API HTTP client.
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
	debug       bool
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	APIKey      string
	AccessToken string
	BaseURL     string
	Timeout     time.Duration
	Rate        float64
	Debug       bool
	HTTPClient  *http.Client
}

// NewClient creates a Client. Either an API key (sent as the api_key query
// parameter) or a v4 access token (sent as a bearer token) authenticates
// requests; when both are set the token wins.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	r := opts.Rate
	if r <= 0 {
		r = 5
	}
	burst := int(r)
	if burst < 1 {
		burst = 1
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      opts.APIKey,
		accessToken: opts.AccessToken,
		httpClient:  hc,
		limiter:     rate.NewLimiter(rate.Limit(r), burst),
		debug:       opts.Debug,
	}
}

// ─── Catalog ──────────────────────────────────────────────────────────────────

// Fetch executes one discover or search request and returns the decoded page.
func (c *Client) Fetch(ctx context.Context, req model.RequestDescriptor) (*model.Page, error) {
	var page model.Page
	if err := c.get(ctx, req, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		page.Results = []model.Movie{}
	}
	return &page, nil
}

// ─── Low-level HTTP ───────────────────────────────────────────────────────────

// get performs a single GET request against the catalog service.
func (c *Client) get(ctx context.Context, req model.RequestDescriptor, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Op: "rate limit", Err: err}
	}

	params := req.Values()
	if c.accessToken == "" && c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	reqURL := c.baseURL + req.Endpoint.Path() + "?" + params.Encode()

	if c.debug {
		safe := reqURL
		if c.apiKey != "" {
			safe = strings.Replace(reqURL, c.apiKey, "REDACTED", 1)
		}
		slog.Debug("tmdb request", "url", safe)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &TransportError{Op: "building request", Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	if c.accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &TransportError{Op: "http", Err: err}
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return &TransportError{Op: "reading body", Err: err}
	}

	if c.debug {
		slog.Debug("tmdb response", "status", resp.StatusCode, "bytes", len(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Try to extract the TMDB status message
		var apiErr struct {
			StatusCode    int    `json:"status_code"`
			StatusMessage string `json:"status_message"`
		}
		_ = json.Unmarshal(body, &apiErr)
		return &ServiceError{
			StatusCode: resp.StatusCode,
			Code:       apiErr.StatusCode,
			Message:    strings.TrimSpace(apiErr.StatusMessage),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Op: "decoding response", Err: err}
	}
	return nil
}

// ImageURL joins a poster path onto the image base. It returns "" when the
// movie has no poster.
func ImageURL(base, posterPath string) string {
	if posterPath == "" {
		return ""
	}
	if base == "" {
		base = DefaultImageURL
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(posterPath, "/")
}

// Describe renders the request for logs and warnings, without credentials.
func Describe(req model.RequestDescriptor) string {
	return fmt.Sprintf("%s?%s", req.Endpoint.Path(), req.Values().Encode())
}
