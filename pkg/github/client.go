package github

import (
	stdctx "context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/spf13/afero"
	"github.com/ullaakut/disgo"
	"github.com/ullaakut/stargazers/pkg/context"
	"golang.org/x/oauth2"
)

const (
	// DefaultAPIURL is the base URL of the public GitHub REST API.
	DefaultAPIURL = "https://api.github.com"

	// starMediaType makes the stargazers endpoint include starring timestamps.
	starMediaType = "application/vnd.github.v3.star+json"

	userAgent = "Stargazers"
)

// Response is the result of a GET request. A non-2xx status is not
// an error: callers are expected to inspect StatusCode.
type Response struct {
	StatusCode int
	Body       []byte

	// Next is the URL of the next page of results, if any.
	Next string
}

// OK reports whether the request succeeded.
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// StatusError specifies a non-200 HTTP response code.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %q", e.StatusCode, e.URL)
}

// retryableStatusError is returned from a retry attempt that received
// a transient HTTP status.
type retryableStatusError struct {
	statusCode int
}

func (e *retryableStatusError) Error() string {
	return fmt.Sprintf("transient HTTP status %d", e.statusCode)
}

// Client performs authenticated requests against the GitHub REST API.
type Client struct {
	http    *http.Client
	baseURL string
	headers map[string]string

	maxRetries uint
	newBackOff func() backoff.BackOff

	cache *cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The given client
// is responsible for authentication.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.http = c }
}

// WithBackOff replaces the exponential backoff used between retries.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(client *Client) { client.newBackOff = newBackOff }
}

// WithCache enables the profile response cache on the given filesystem.
func WithCache(fs afero.Fs) Option {
	return func(client *Client) { client.cache = &cache{fs: fs} }
}

// NewClient creates a client for the repository described by ctx.
func NewClient(ctx *context.Context, opts ...Option) *Client {
	baseURL := ctx.APIURL
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	client := &Client{
		http: oauth2.NewClient(stdctx.Background(), oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: ctx.GithubToken},
		)),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		headers: map[string]string{
			"Accept":     starMediaType,
			"User-Agent": userAgent,
		},
		maxRetries: ctx.MaxRetries,
		newBackOff: exponentialBackOff,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.cache != nil {
		client.cache.ctx = ctx
	}

	return client
}

// exponentialBackOff waits 1s, 2s, 4s... between attempts.
func exponentialBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0
	return b
}

// Get fetches the given URL, retrying transient failures. Once the
// retry budget is exhausted on a transient status, the last response
// is returned as is.
func (c *Client) Get(url string) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare request: %v", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	var resp *Response
	err = backoff.RetryNotify(func() error {
		resp, err = c.do(req)
		if err != nil {
			return err
		}

		if isRetryable(resp.StatusCode) {
			return &retryableStatusError{statusCode: resp.StatusCode}
		}

		return nil
	}, backoff.WithMaxRetries(c.newBackOff(), uint64(c.maxRetries)), func(err error, wait time.Duration) {
		disgo.Debugf("Request to %q failed (%v), retrying in %s\n", url, err, wait)
	})

	var statusErr *retryableStatusError
	if errors.As(err, &statusErr) {
		return resp, nil
	}

	if err != nil {
		return nil, fmt.Errorf("unable to fetch %q: %v", url, err)
	}

	return resp, nil
}

func (c *Client) do(req *http.Request) (*Response, error) {
	disgo.Debugf("Fetching %q\n", req.URL)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := ioutil.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %v", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Next:       parseNextLink(httpResp.Header.Get("Link")),
	}, nil
}

func isRetryable(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}

// parseNextLink extracts the URL with the "next" relation from a Link header, such as:
// <https://api.github.com/repositories/1/stargazers?page=2>; rel="next", <...>; rel="last"
func parseNextLink(header string) string {
	for _, link := range strings.Split(header, ",") {
		parts := strings.Split(link, ";")
		if len(parts) < 2 {
			continue
		}

		url := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(url, "<") || !strings.HasSuffix(url, ">") {
			continue
		}

		for _, param := range parts[1:] {
			key, value, found := strings.Cut(strings.TrimSpace(param), "=")
			if !found || strings.TrimSpace(key) != "rel" {
				continue
			}

			for _, rel := range strings.Fields(strings.Trim(value, `"`)) {
				if rel == "next" {
					return strings.TrimSuffix(strings.TrimPrefix(url, "<"), ">")
				}
			}
		}
	}

	return ""
}
