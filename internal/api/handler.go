package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"

	"offerwall-sdk/internal/observability"
	"offerwall-sdk/internal/platform"
	"offerwall-sdk/pkg/offerwall"
)

// Publishers resolves a publisher id to its client configuration.
type Publishers interface {
	Lookup(id string) (offerwall.Config, bool)
}

type OffersHandler struct {
	Publishers Publishers
	HTTPClient offerwall.HTTPDoer
	Timeout    time.Duration
	// Sanitizer, when set, cleans the HTML fields of every entry.
	Sanitizer *bluemonday.Policy
}

func NewOffersHandler(pubs Publishers, httpClient offerwall.HTTPDoer, timeout time.Duration, sanitize bool) *OffersHandler {
	h := &OffersHandler{Publishers: pubs, HTTPClient: httpClient, Timeout: timeout}
	if sanitize {
		h.Sanitizer = bluemonday.UGCPolicy()
	}
	return h
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Feed proxies one feed call for the publisher in the path.
func (h *OffersHandler) Feed(w http.ResponseWriter, r *http.Request) {
	client, req, ok := h.prepare(w, r)
	if !ok {
		return
	}

	start := time.Now()
	feed, err := client.FetchFeed(r.Context(), req)
	observability.ObserveFeedFetch(start, len(feed), err)
	if err != nil {
		writeError(w, err)
		return
	}

	if len(feed) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if h.Sanitizer != nil {
		h.sanitize(feed)
	}
	writeJSON(w, http.StatusOK, feed)
}

// HostedWall redirects to the hosted offer wall, or returns its URL as
// JSON with format=json.
func (h *OffersHandler) HostedWall(w http.ResponseWriter, r *http.Request) {
	client, req, ok := h.prepare(w, r)
	if !ok {
		return
	}

	u, err := client.HostedWallURL(req)
	if err != nil {
		writeError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, map[string]string{"url": u.String()})
		return
	}
	http.Redirect(w, r, u.String(), http.StatusFound)
}

func (h *OffersHandler) prepare(w http.ResponseWriter, r *http.Request) (*offerwall.Client, *offerwall.OfferRequest, bool) {
	pubID := chi.URLParam(r, "pubid")
	cfg, found := h.Publishers.Lookup(pubID)
	if !found {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown_publisher"})
		return nil, nil, false
	}

	req, err := parseOfferRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_request", Message: err.Error()})
		return nil, nil, false
	}

	logger := log.With().Str("publisher", pubID).Logger()
	client := offerwall.NewClient(&offerwall.ClientConfig{
		Config:     cfg,
		Source:     platform.FromHTTPRequest(r),
		HTTPClient: h.HTTPClient,
		Timeout:    h.Timeout,
		Logger:     &logger,
	})
	return client, req, true
}

func parseOfferRequest(r *http.Request) (*offerwall.OfferRequest, error) {
	q := r.URL.Query()
	req := &offerwall.OfferRequest{
		UserID:             q.Get("userid"),
		ZipCode:            q.Get("zip"),
		CountryCode:        strings.ToUpper(q.Get("country")),
		UserGender:         offerwall.ParseGender(q.Get("gender")),
		CallbackParameters: q["pub"],
	}
	if v := q.Get("age"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("age must be an integer")
		}
		req.UserAge = &age
	}
	if v := q.Get("signup"); v != "" {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("signup must be a unix timestamp")
		}
		req.UserSignupDate = time.Unix(sec, 0)
	}
	return req, nil
}

func writeError(w http.ResponseWriter, err error) {
	var (
		reqErr       *offerwall.RequestError
		cfgErr       *offerwall.ConfigurationError
		transportErr *offerwall.TransportError
		decodeErr    *offerwall.DecodeError
	)
	switch {
	case errors.As(err, &reqErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid_request", Message: reqErr.Reason})
	case errors.As(err, &cfgErr):
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "publisher_misconfigured"})
	case errors.As(err, &transportErr):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "upstream_unreachable"})
	case errors.As(err, &decodeErr):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "upstream_invalid_response"})
	default:
		log.Error().Err(err).Msg("unexpected offerwall error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal"})
	}
}

func (h *OffersHandler) sanitize(feed offerwall.Feed) {
	for i := range feed {
		feed[i].SmallDescriptionHTML = h.Sanitizer.Sanitize(feed[i].SmallDescriptionHTML)
		for j := range feed[i].Actions {
			feed[i].Actions[j].HTML = h.Sanitizer.Sanitize(feed[i].Actions[j].HTML)
		}
	}
}
