// Package iosource fetches resources from a PokeAPI-compatible REST
// API. Detail responses can be kept in a local SQLite cache, list
// pages are always requested from upstream.
package iosource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	pokedb "github.com/gnames/pokedb/pkg"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/gnames/pokedb/pkg/pokeapi"
)

// Client talks to the upstream API. It does not retry failed
// requests, callers decide what to do with a FetchError.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *Cache
	enc        gnfmt.GNjson
}

// New creates a Client. The cache is optional.
func New(cfg config.ImportConfig, cache *Cache) *Client {
	timeout := time.Duration(cfg.HTTPTimeout) * time.Second
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		cache:      cache,
	}
}

// Resolve turns a relative path into an absolute URL. Absolute URLs
// are returned unchanged.
func (c *Client) Resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// Fetch gets a detail resource and decodes it into out.
func (c *Client) Fetch(ctx context.Context, path string, out any) error {
	u := c.Resolve(path)
	body, err := c.get(ctx, u, c.cache != nil)
	if err != nil {
		return err
	}
	if err = c.enc.Decode(body, out); err != nil {
		return DecodeError(u, err)
	}
	return nil
}

// FetchPage gets one page of a collection endpoint.
func (c *Client) FetchPage(
	ctx context.Context,
	endpoint string,
	limit, offset int,
) (*pokeapi.Page, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u := c.Resolve(endpoint) + "?" + q.Encode()

	body, err := c.get(ctx, u, false)
	if err != nil {
		return nil, err
	}
	var res pokeapi.Page
	if err = c.enc.Decode(body, &res); err != nil {
		return nil, DecodeError(u, err)
	}
	return &res, nil
}

// Count returns the total number of resources of a collection endpoint.
func (c *Client) Count(ctx context.Context, endpoint string) (int, error) {
	page, err := c.FetchPage(ctx, endpoint, 1, 0)
	if err != nil {
		return 0, err
	}
	return page.Count, nil
}

func (c *Client) get(ctx context.Context, u string, cached bool) ([]byte, error) {
	endpoint := endpointLabel(c.baseURL, u)

	if cached {
		body, ok, err := c.cache.Get(ctx, u)
		if err != nil {
			slog.Warn("Cannot read response cache", "url", u, "error", err)
		}
		if ok {
			cacheLookups.WithLabelValues("hit").Inc()
			return body, nil
		}
		cacheLookups.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	body, status, err := c.do(ctx, u)
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(endpoint, statusLabel(status, err)).Inc()
	if err != nil {
		return nil, err
	}

	if cached {
		if err = c.cache.Put(ctx, u, body); err != nil {
			slog.Warn("Cannot write response cache", "url", u, "error", err)
		}
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, &FetchError{URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "pokedb/"+pokedb.Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, &FetchError{
			URL:        u,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &FetchError{
			URL:        u,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}
	return body, resp.StatusCode, nil
}

// endpointLabel reduces a URL to the collection name, it keeps the
// cardinality of metric labels low.
func endpointLabel(base, u string) string {
	path := strings.TrimPrefix(u, base)
	path, _, _ = strings.Cut(path, "?")
	path = strings.Trim(path, "/")
	res, _, _ := strings.Cut(path, "/")
	if res == "" {
		return "unknown"
	}
	return res
}

func statusLabel(status int, err error) string {
	if status == 0 && err != nil {
		return "error"
	}
	return strconv.Itoa(status)
}
