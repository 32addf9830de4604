// Package catalog fetches movie and character listings from a SWAPI-compatible catalog.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/MrSnakeDoc/starfav/internal/domain"
	"github.com/MrSnakeDoc/starfav/internal/logger"
	"github.com/MrSnakeDoc/starfav/internal/utils"
)

const (
	resourceFilms  = "films"
	resourcePeople = "people"

	maxBodyBytes = 4 << 20
)

// Config holds catalog client settings.
type Config struct {
	BaseURL  string        // ex: "https://swapi.dev/api"
	Timeout  time.Duration // bound on a whole listing, all pages included
	MaxPages int           // pages followed per listing
	Breaker  *BreakerConfig
}

// Client lists catalog resources. Safe for concurrent use.
type Client struct {
	http     *http.Client
	baseURL  string
	timeout  time.Duration
	maxPages int
	breaker  *gobreaker.CircuitBreaker[[]byte]
}

// statusError is a non-2xx catalog answer.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return http.StatusText(e.code)
	}
	return fmt.Sprintf("%s: %s", http.StatusText(e.code), e.body)
}

// New creates a catalog client. A nil cfg.Breaker disables the circuit breaker.
func New(cfg Config, log logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxPages < 1 {
		cfg.MaxPages = 1
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	c := &Client{
		http:     &http.Client{Transport: transport},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		timeout:  cfg.Timeout,
		maxPages: cfg.MaxPages,
	}
	if cfg.Breaker != nil {
		c.breaker = newBreaker(*cfg.Breaker, log)
	}
	return c
}

// ListMovies returns every film in the catalog.
func (c *Client) ListMovies(ctx context.Context) ([]Movie, error) {
	return listAll[Movie](ctx, c, resourceFilms)
}

// ListCharacters returns every person in the catalog.
func (c *Client) ListCharacters(ctx context.Context) ([]Character, error) {
	return listAll[Character](ctx, c, resourcePeople)
}

// BreakerState reports the circuit breaker state, or "disabled".
func (c *Client) BreakerState() string {
	if c.breaker == nil {
		return "disabled"
	}
	return c.breaker.State().String()
}

// listAll follows "next" links until the listing ends or maxPages is reached.
func listAll[T any](ctx context.Context, c *Client, resource string) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	next := c.baseURL + "/" + resource + "/"
	out := make([]T, 0)

	for n := 0; next != "" && n < c.maxPages; n++ {
		body, err := c.fetch(ctx, next)
		if err != nil {
			catalogRequests.WithLabelValues(resource, "error").Inc()
			return nil, upstreamError(resource, err)
		}
		catalogRequests.WithLabelValues(resource, "ok").Inc()

		items, nextURL, err := decodePage[T](body)
		if err != nil {
			return nil, &domain.UpstreamError{Resource: resource, Err: fmt.Errorf("decode response: %w", err)}
		}
		out = append(out, items...)

		next, err = resolveNext(next, nextURL)
		if err != nil {
			return nil, &domain.UpstreamError{Resource: resource, Err: err}
		}
	}

	return out, nil
}

// fetch GETs one page, through the breaker when enabled.
func (c *Client) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	do := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create GET request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer utils.Close(resp.Body)

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &statusError{code: resp.StatusCode, body: snippet(body)}
		}
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return body, nil
	}

	if c.breaker == nil {
		return do()
	}
	return c.breaker.Execute(do)
}

// decodePage accepts both the paginated envelope and a bare JSON array.
func decodePage[T any](body []byte) ([]T, string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, "", err
		}
		return items, "", nil
	}

	var p page[T]
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, "", err
	}
	next := ""
	if p.Next != nil {
		next = *p.Next
	}
	return p.Results, next, nil
}

// resolveNext makes a possibly relative "next" link absolute.
func resolveNext(current, next string) (string, error) {
	if next == "" {
		return "", nil
	}
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("invalid page url %q: %w", current, err)
	}
	ref, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("invalid next link %q: %w", next, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func upstreamError(resource string, err error) *domain.UpstreamError {
	ue := &domain.UpstreamError{Resource: resource, Err: err}
	var se *statusError
	if errors.As(err, &se) {
		ue.Status = se.code
	}
	return ue
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
