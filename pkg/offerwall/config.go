package offerwall

import "strings"

const (
	DefaultAPIDomain       = "www.farly.io"
	DefaultOfferwallDomain = "offerwall.farly.io"
)

// Config holds the publisher credentials and the service hostnames.
// It is built once and must not be mutated while requests are in flight.
type Config struct {
	APIKey          string
	PublisherID     string
	APIDomain       string
	OfferwallDomain string
}

// WithDefaults returns a copy with empty hostnames replaced by the defaults.
func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.APIDomain) == "" {
		c.APIDomain = DefaultAPIDomain
	}
	if strings.TrimSpace(c.OfferwallDomain) == "" {
		c.OfferwallDomain = DefaultOfferwallDomain
	}
	return c
}

// Validate reports a *ConfigurationError when credentials are missing.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return &ConfigurationError{Cause: ErrMissingAPIKey}
	}
	if c.PublisherID == "" {
		return &ConfigurationError{Cause: ErrMissingPublisherID}
	}
	return nil
}

func (c Config) host(e Endpoint) string {
	if e == EndpointHostedWall {
		return c.OfferwallDomain
	}
	return c.APIDomain
}
