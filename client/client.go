// Package client fetches cards from the card API.
//
// Each call is a single request with no retry and no caching. Timeouts come
// from the configured *http.Client or the caller's context.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Jubris-Knifes/cardbase/models"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.log = logger
		}
	}
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("client: base URL is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchAllCards lists every card.
func (c *Client) FetchAllCards(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	if _, err := c.get(ctx, "fetch cards", c.endpoint(nil, "api", "card", "all"), false, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// FetchSetCodes lists the distinct set codes.
func (c *Client) FetchSetCodes(ctx context.Context) ([]string, error) {
	var setCodes []string
	if _, err := c.get(ctx, "fetch set codes", c.endpoint(nil, "api", "set-codes"), false, &setCodes); err != nil {
		return nil, err
	}
	return setCodes, nil
}

// FetchCard returns the card with the given uuid, or nil when the API
// answers 404. Literal `\n` sequences in the text become newlines.
func (c *Client) FetchCard(ctx context.Context, uuid string) (*models.Card, error) {
	var card models.Card
	found, err := c.get(ctx, "fetch card", c.endpoint(nil, "api", "card", url.PathEscape(uuid)), true, &card)
	if err != nil || !found {
		return nil, err
	}

	card.UnescapeText()
	return &card, nil
}

// FetchCardBySearch returns the cards whose name contains name, or nil when
// the API answers 404 (no match, or a name under the minimum length). The
// text is returned as served.
func (c *Client) FetchCardBySearch(ctx context.Context, name string) ([]models.Card, error) {
	var cards []models.Card
	found, err := c.get(ctx, "search cards", c.endpoint(nil, "api", "card", "search", url.PathEscape(name)), true, &cards)
	if err != nil || !found {
		return nil, err
	}
	return cards, nil
}

// FetchCardsBySetCode lists the cards of one set, or every card when setCode
// is empty.
func (c *Client) FetchCardsBySetCode(ctx context.Context, setCode string) ([]models.Card, error) {
	var query url.Values
	if setCode != "" {
		query = url.Values{"setCode": {setCode}}
	}

	var cards []models.Card
	if _, err := c.get(ctx, "fetch cards by set code", c.endpoint(query, "api", "cards"), false, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// get issues a GET and decodes a successful body into dst. When notFoundOK is
// set a 404 reports found=false instead of an error.
func (c *Client) get(ctx context.Context, op, endpoint string, notFoundOK bool, dst any) (found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.DebugContext(ctx, "sending request", "op", op, "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "request failed", "op", op, "error", err)
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && notFoundOK {
		io.Copy(io.Discard, resp.Body)
		c.log.DebugContext(ctx, "resource not found", "op", op, "url", endpoint)
		return false, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// A body without {"error"} leaves the message empty.
		var body models.ErrorResponse
		json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body)
		c.log.ErrorContext(ctx, "unexpected status", "op", op, "status", resp.StatusCode, "message", body.Error)
		return false, &StatusError{Op: op, StatusCode: resp.StatusCode, Message: body.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		c.log.ErrorContext(ctx, "failed to decode response", "op", op, "error", err)
		return false, fmt.Errorf("%s: decode response: %w", op, err)
	}

	return true, nil
}

// endpoint joins already escaped path segments onto the base URL.
func (c *Client) endpoint(query url.Values, segments ...string) string {
	u := c.baseURL.JoinPath(segments...)
	u.RawQuery = query.Encode()
	return u.String()
}
