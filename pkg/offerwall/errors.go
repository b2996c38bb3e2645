package offerwall

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey      = errors.New("api key is not configured")
	ErrMissingPublisherID = errors.New("publisher id is not configured")
	ErrInvalidRequest     = errors.New("invalid offer request")
	ErrEmptyResponse      = errors.New("empty response body")
	ErrUnexpectedStatus   = errors.New("unexpected response status")
	ErrResponseTooLarge   = errors.New("response body exceeds size limit")
)

// ConfigurationError is returned before any network interaction when the
// client lacks its API key or publisher id. It is not retryable.
type ConfigurationError struct {
	Cause error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("offerwall: configuration: %v", e.Cause)
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

// RequestError reports an OfferRequest that failed validation.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("offerwall: %v: %s", ErrInvalidRequest, e.Reason)
}

func (e *RequestError) Unwrap() error { return ErrInvalidRequest }

// SigningError means the request hash could not be computed.
type SigningError struct {
	Cause error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("offerwall: signing: %v", e.Cause)
}

func (e *SigningError) Unwrap() error { return e.Cause }

// TransportError covers everything between sending the request and holding
// a usable body: dial and TLS failures, timeouts, cancellation, non-2xx
// statuses and empty bodies. StatusCode is zero when no response arrived.
type TransportError struct {
	URL        string
	StatusCode int
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("offerwall: transport: status %d: %v", e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("offerwall: transport: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// DecodeError means the server answered but the body is not a valid feed.
// Body keeps the raw response for diagnostics.
type DecodeError struct {
	Body  []byte
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("offerwall: could not parse feed response: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }
