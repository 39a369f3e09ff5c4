// Package tmdb is a minimal client for the two TMDB v3 endpoints the API proxies.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinefav/cinefav/internal/metrics"
)

const (
	// DefaultBaseURL is the public TMDB v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultLanguage is sent as the language query parameter.
	DefaultLanguage = "en-US"
	// DefaultTimeout bounds a whole upstream request.
	DefaultTimeout = 10 * time.Second

	dialTimeout         = 5 * time.Second
	tlsHandshakeTimeout = 5 * time.Second
	maxBodyBytes        = 8 << 20

	endpointTrending        = "trending"
	endpointRecommendations = "recommendations"
)

// Config configures a Client.
type Config struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration
}

// Client fetches raw JSON payloads from TMDB.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	language   string
	httpClient *http.Client
	metrics    metrics.Recorder
}

// NewClient validates cfg and builds a Client. A nil recorder disables metrics.
func NewClient(cfg Config, recorder metrics.Recorder) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("tmdb: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("tmdb: invalid base URL %q", cfg.BaseURL)
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		httpClient: NewHTTPClient(base.Host, cfg.Timeout),
		metrics:    recorder,
	}, nil
}

// NewHTTPClient returns an http.Client with bounded timeouts that only
// follows redirects staying on host.
func NewHTTPClient(host string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: timeout,
			MaxIdleConns:          20,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if req.URL.Host != host || len(via) >= 3 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// Trending returns today's trending movies payload.
func (c *Client) Trending(ctx context.Context) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("language", c.language)
	return c.get(ctx, endpointTrending, "/trending/movie/day", q)
}

// Recommendations returns the first page of recommendations for movieID.
func (c *Client) Recommendations(ctx context.Context, movieID int64) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("language", c.language)
	q.Set("page", "1")
	return c.get(ctx, endpointRecommendations, "/movie/"+strconv.FormatInt(movieID, 10)+"/recommendations", q)
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values) (json.RawMessage, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstreamRequest(endpoint, 0, time.Since(start))
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.metrics.ObserveUpstreamRequest(endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s body: %w", ErrUnavailable, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, endpoint)
	}

	return json.RawMessage(body), nil
}
