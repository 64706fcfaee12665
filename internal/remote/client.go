// Package remote implements the recipe API data source. It issues the two
// read-only calls the application needs (complex search and per-id detail)
// and normalizes every transport, status, and decode error into the closed
// failure taxonomy before anything leaves this package.
//
// No retries happen here; retry policy, if any, belongs to a caller.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

const (
	searchPath     = "/recipes/complexSearch"
	detailPathTmpl = "/recipes/%d/information"
)

// DataSource is the remote capability the repository layer depends on.
// The concrete Client implements it; tests substitute fakes.
type DataSource interface {
	Search(ctx context.Context, query string) (domain.SearchResponse, domain.Failure)
	GetDetails(ctx context.Context, recipeID int64) (domain.RecipeDetail, domain.Failure)
}

// Client talks to the recipe API over HTTPS. Every request carries the API
// key as a query parameter. Construct with NewClient.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Options tunes the underlying HTTP client. Zero values fall back to the
// defaults the service has always used (10s request, 5s connect).
type Options struct {
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
}

// NewClient builds a Client against baseURL (scheme + host, no trailing
// slash) authenticating with apiKey.
func NewClient(baseURL, apiKey string, opts Options) *Client {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: opts.ConnectTimeout,
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   opts.RequestTimeout,
			Transport: transport,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Search queries the listing endpoint with full recipe information inlined
// and returns the raw response wrapper.
func (c *Client) Search(ctx context.Context, query string) (domain.SearchResponse, domain.Failure) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("addRecipeInformation", "true")

	var out domain.SearchResponse
	if f := c.getJSON(ctx, searchPath, params, &out); f != nil {
		return domain.SearchResponse{}, f
	}
	return out, nil
}

// GetDetails fetches the full detail payload for one recipe id.
func (c *Client) GetDetails(ctx context.Context, recipeID int64) (domain.RecipeDetail, domain.Failure) {
	var out domain.RecipeDetail
	if f := c.getJSON(ctx, fmt.Sprintf(detailPathTmpl, recipeID), nil, &out); f != nil {
		return domain.RecipeDetail{}, f
	}
	return out, nil
}

// getJSON performs a GET against path, appending the API key, and decodes
// the body into dst. Any error on the way is mapped into the taxonomy.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dst any) domain.Failure {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return domain.NetworkUnknown
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return domain.ParseJSON
	}
	return nil
}

// mapTransportError classifies an error returned before any HTTP status was
// available: timeouts first, then generic I/O, then unknown.
func mapTransportError(err error) domain.Failure {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NetworkTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NetworkTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// url.Error wraps everything the client stack can throw; a timeout
		// was already handled above, so what remains is connectivity.
		return domain.NetworkNoInternet
	}
	return domain.NetworkUnknown
}

// mapStatus classifies a non-2xx response status.
func mapStatus(status int) domain.Failure {
	switch status {
	case http.StatusUnauthorized:
		return domain.NetworkUnauthorized
	case http.StatusPaymentRequired:
		return domain.NetworkPaymentRequired
	case http.StatusNotFound:
		return domain.NetworkNotFound
	default:
		return domain.NetworkUnknown
	}
}
