package offerwall

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"
)

// Signature binds a request to the moment it was built.
type Signature struct {
	Timestamp string
	Hash      string
}

// Signer computes the timestamp/hash pair sent with every request.
type Signer struct {
	now func() time.Time
}

// NewSigner returns a Signer reading the clock from now; nil means time.Now.
func NewSigner(now func() time.Time) *Signer {
	if now == nil {
		now = time.Now
	}
	return &Signer{now: now}
}

// Sign returns the current Unix time in whole seconds and the SHA-1 of
// timestamp+apiKey.
func (s *Signer) Sign(apiKey string) (Signature, error) {
	if apiKey == "" {
		return Signature{}, &ConfigurationError{Cause: ErrMissingAPIKey}
	}
	ts := strconv.FormatInt(s.now().Unix(), 10)
	h, err := Hash(ts, apiKey)
	if err != nil {
		return Signature{}, err
	}
	return Signature{Timestamp: ts, Hash: h}, nil
}

// Hash is the lowercase hex SHA-1 of timestamp immediately followed by apiKey.
func Hash(timestamp, apiKey string) (string, error) {
	return sha1Hex(timestamp + apiKey)
}

func sha1Hex(s string) (string, error) {
	h := sha1.New()
	if _, err := h.Write([]byte(s)); err != nil {
		return "", &SigningError{Cause: err}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
