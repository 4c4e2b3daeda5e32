// Package graphql talks to the remote commerce storefront GraphQL API and maps
// its connection-shaped responses onto the commerce types.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

const userAgent = "seofficehours-storefront/1.0"

// Client implements commerce.Client against the storefront GraphQL endpoint.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	token        string
	relatedLimit int
	imageWidth   int
}

var _ commerce.Client = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

// WithRelatedLimit caps how many related products are requested.
func WithRelatedLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.relatedLimit = n
		}
	}
}

// WithImageWidth sets the width requested for image URLs.
func WithImageWidth(px int) Option {
	return func(c *Client) {
		if px > 0 {
			c.imageWidth = px
		}
	}
}

// New builds a client for baseURL, e.g. https://store-abc123.mybigcommerce.com.
// Requests go to baseURL + "/graphql".
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		endpoint:     strings.TrimRight(baseURL, "/") + "/graphql",
		token:        token,
		relatedLimit: 12,
		imageWidth:   600,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do posts one operation and decodes its data payload into out.
func (c *Client) do(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("commerce api: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("commerce api: status %d: %s", res.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var r response
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return fmt.Errorf("commerce api: decode response: %w", err)
	}
	if len(r.Errors) > 0 {
		msgs := make([]string, 0, len(r.Errors))
		for _, e := range r.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("commerce api: %s", strings.Join(msgs, "; "))
	}
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return errors.New("commerce api: empty data")
	}
	if err := json.Unmarshal(r.Data, out); err != nil {
		return fmt.Errorf("commerce api: decode data: %w", err)
	}
	return nil
}

func optionValueIDsVar(sels []commerce.OptionValueID) []commerce.OptionValueID {
	if sels == nil {
		return []commerce.OptionValueID{}
	}
	return sels
}
