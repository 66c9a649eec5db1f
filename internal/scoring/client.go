package scoring

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/theopenlane/httpsling"
)

const (
	// analyzePath is the scoring service endpoint for single-product analysis
	analyzePath = "/analyze"
	// defaultRequestTimeout is the default timeout for analyze requests.
	// Score computation is cheap server-side; the budget mostly covers
	// slow links between the companion and the service.
	defaultRequestTimeout = 30 * time.Second
)

// Client calls the remote environmental scoring service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the scoring client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a new scoring service client for the given base URL
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Analyze requests an environmental assessment for the given product URL.
// Non-2xx responses are treated uniformly as failure; the body is not
// inspected in that case.
func (c *Client) Analyze(ctx context.Context, pageURL string) (AnalysisResult, error) {
	body := AnalysisRequest{
		URL:      pageURL,
		Detailed: true,
		Cache:    true,
	}

	requester := httpsling.MustNew(
		httpsling.URL(c.baseURL+analyzePath),
		httpsling.Post(),
		httpsling.JSONBody(body),
		httpsling.WithHTTPClient(c.httpClient),
	)

	var result AnalysisResult

	resp, err := requester.ReceiveWithContext(ctx, &result)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return AnalysisResult{}, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return result, nil
}
