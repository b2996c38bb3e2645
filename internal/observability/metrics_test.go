package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"offerwall-sdk/pkg/offerwall"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{&offerwall.ConfigurationError{Cause: offerwall.ErrMissingAPIKey}, "configuration"},
		{&offerwall.RequestError{Reason: "UserID is required"}, "invalid_request"},
		{&offerwall.SigningError{Cause: errors.New("x")}, "signing"},
		{&offerwall.TransportError{Cause: offerwall.ErrEmptyResponse}, "transport"},
		{&offerwall.DecodeError{Cause: errors.New("x")}, "decode"},
		{errors.New("other"), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestObserveFeedFetch(t *testing.T) {
	before := testutil.ToFloat64(FeedFetches.WithLabelValues("decode"))
	ObserveFeedFetch(time.Now(), 0, &offerwall.DecodeError{Cause: errors.New("bad")})
	assert.Equal(t, before+1, testutil.ToFloat64(FeedFetches.WithLabelValues("decode")))
}

func TestMeasure(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("418"))
	h := Measure(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(RequestsTotal.WithLabelValues("418")))
	assert.Zero(t, testutil.ToFloat64(InFlight))
}
