package offerwall

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a feed response is read.
var maxBodyBytes int64 = 8 << 20

// HTTPDoer is the transport the client sends its single GET through.
// *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig wires a Client.
type ClientConfig struct {
	Config Config
	Source ParameterSource

	// HTTPClient defaults to an *http.Client with Timeout.
	HTTPClient HTTPDoer
	// Timeout bounds each feed call. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
	// Now overrides the clock used for signing.
	Now func() time.Time
}

// Client fetches the offer feed and builds hosted wall URLs. It holds no
// mutable state, so one Client can serve concurrent calls.
type Client struct {
	builder    *Builder
	httpClient HTTPDoer
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewClient creates a new offer-wall client.
func NewClient(cfg *ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		builder:    NewBuilder(cfg.Config, cfg.Source, NewSigner(cfg.Now), logger),
		httpClient: httpClient,
		timeout:    timeout,
		logger:     logger,
	}
}

// HostedWallURL returns the hosted offer wall URL, ready for a browser or
// webview.
func (c *Client) HostedWallURL(req *OfferRequest) (*url.URL, error) {
	return c.builder.Build(req, EndpointHostedWall)
}

// FeedURL returns the signed JSON feed URL without calling it.
func (c *Client) FeedURL(req *OfferRequest) (*url.URL, error) {
	return c.builder.Build(req, EndpointAPIFeed)
}

// FetchFeed performs exactly one GET against the feed endpoint and decodes
// the response. Errors are *ConfigurationError or *RequestError (nothing
// sent), *TransportError or *DecodeError. Nothing is retried.
//
// A 2xx response with an empty body is a *TransportError wrapping
// ErrEmptyResponse, not a decode failure. A body larger than the read cap
// is a *TransportError wrapping ErrResponseTooLarge and is never decoded.
//
// Only ask for the feed once the user agreed to share this data for
// advertising purposes.
func (c *Client) FetchFeed(ctx context.Context, req *OfferRequest) (Feed, error) {
	u, err := c.builder.Build(req, EndpointAPIFeed)
	if err != nil {
		c.logger.Error().Err(err).Msg("offerwall request not built")
		return nil, err
	}
	endpoint := u.Scheme + "://" + u.Host + u.Path

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Cause: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("offerwall feed call failed")
		return nil, &TransportError{URL: endpoint, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &TransportError{URL: endpoint, StatusCode: resp.StatusCode, Cause: fmt.Errorf("failed to read response: %w", err)}
	}
	// a cancelled call never reaches the decoder
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{URL: endpoint, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("offerwall feed call rejected")
		return nil, &TransportError{URL: endpoint, StatusCode: resp.StatusCode, Cause: ErrUnexpectedStatus}
	}
	if int64(len(body)) > maxBodyBytes {
		c.logger.Error().Int64("limit_bytes", maxBodyBytes).Str("endpoint", endpoint).Msg("offerwall feed too large")
		return nil, &TransportError{URL: endpoint, StatusCode: resp.StatusCode, Cause: ErrResponseTooLarge}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &TransportError{URL: endpoint, Cause: ErrEmptyResponse}
	}

	feed, err := Decode(body)
	if err != nil {
		c.logger.Error().Err(err).Int("body_bytes", len(body)).Msg("offerwall feed not decoded")
		return nil, err
	}
	c.logger.Debug().Int("offers", len(feed)).Msg("offerwall feed fetched")
	return feed, nil
}
