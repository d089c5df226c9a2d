package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/pageza/mealfinder/internal/metrics"
)

// DefaultBaseURL is the public TheMealDB v1 API
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1/"

// HeadingWriter is the part of a page the client touches when the API answers
// with a non-success status
type HeadingWriter interface {
	ShowError()
}

// Client issues GET requests against the recipe API. Every request is a
// single attempt; there are no retries and no client-side timeout beyond the
// caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for baseURL. An empty baseURL selects
// DefaultBaseURL and a nil httpClient selects http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON fetches rawURL and decodes the body into out. On a non-success
// status the heading (if any) is switched to the error state and a
// *StatusError carrying label is returned.
func (c *Client) GetJSON(ctx context.Context, hw HeadingWriter, rawURL, label string, out any) error {
	if label == "" {
		label = DefaultErrorLabel
	}
	endpoint := endpointName(rawURL)
	start := time.Now()
	defer func() {
		metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeTransport).Inc()
		return &TransportError{URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeTransport).Inc()
		return &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeStatus).Inc()
		if hw != nil {
			hw.ShowError()
		}
		return &StatusError{Label: label, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeParse).Inc()
		return &ParseError{URL: rawURL, Err: err}
	}

	metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeOK).Inc()
	return nil
}

// SearchByName runs search.php?s=term
func (c *Client) SearchByName(ctx context.Context, hw HeadingWriter, term string) (*MealsResponse[MealSummary], error) {
	return getMeals[MealSummary](ctx, c, hw, "search.php", url.Values{"s": {term}})
}

// FilterByIngredient runs filter.php?i=term
func (c *Client) FilterByIngredient(ctx context.Context, hw HeadingWriter, term string) (*MealsResponse[MealSummary], error) {
	return getMeals[MealSummary](ctx, c, hw, "filter.php", url.Values{"i": {term}})
}

// FilterByCategory runs filter.php?c=term
func (c *Client) FilterByCategory(ctx context.Context, hw HeadingWriter, term string) (*MealsResponse[MealSummary], error) {
	return getMeals[MealSummary](ctx, c, hw, "filter.php", url.Values{"c": {term}})
}

// FilterByArea runs filter.php?a=term
func (c *Client) FilterByArea(ctx context.Context, hw HeadingWriter, term string) (*MealsResponse[MealSummary], error) {
	return getMeals[MealSummary](ctx, c, hw, "filter.php", url.Values{"a": {term}})
}

// Lookup runs lookup.php?i=id
func (c *Client) Lookup(ctx context.Context, hw HeadingWriter, id string) (*MealsResponse[MealDetail], error) {
	return getMeals[MealDetail](ctx, c, hw, "lookup.php", url.Values{"i": {id}})
}

// Random runs random.php
func (c *Client) Random(ctx context.Context, hw HeadingWriter) (*MealsResponse[MealDetail], error) {
	return getMeals[MealDetail](ctx, c, hw, "random.php", nil)
}

func getMeals[T any](ctx context.Context, c *Client, hw HeadingWriter, endpoint string, params url.Values) (*MealsResponse[T], error) {
	var resp MealsResponse[T]
	if err := c.GetJSON(ctx, hw, c.endpointURL(endpoint, params), "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) endpointURL(endpoint string, params url.Values) string {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// endpointName turns a request URL into a low-cardinality metrics label
func endpointName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "unknown"
	}
	name := strings.TrimSuffix(path.Base(u.Path), ".php")
	if name == "filter" {
		for _, key := range []string{"i", "c", "a"} {
			if u.Query().Has(key) {
				return fmt.Sprintf("filter_%s", key)
			}
		}
	}
	return name
}
