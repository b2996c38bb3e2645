package offerwall

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// fromMarker identifies this client flavor to the server.
const fromMarker = "wallv2"

// Builder turns an OfferRequest into a signed URL for one endpoint.
type Builder struct {
	config Config
	source ParameterSource
	signer *Signer
	logger zerolog.Logger
}

// NewBuilder wires a Builder. A nil source behaves as a device that knows
// nothing; a nil signer reads the wall clock.
func NewBuilder(cfg Config, source ParameterSource, signer *Signer, logger zerolog.Logger) *Builder {
	if source == nil {
		source = emptySource{}
	}
	if signer == nil {
		signer = NewSigner(nil)
	}
	return &Builder{
		config: cfg.WithDefaults(),
		source: source,
		signer: signer,
		logger: logger,
	}
}

// Build returns the canonical https URL for endpoint. It fails with
// *ConfigurationError when credentials are missing and *RequestError when
// req does not validate; neither case touches the network.
func (b *Builder) Build(req *OfferRequest, endpoint Endpoint) (*url.URL, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sig, err := b.signer.Sign(b.config.APIKey)
	if err != nil {
		return nil, err
	}

	q, err := b.params(req, sig)
	if err != nil {
		return nil, err
	}

	u := &url.URL{
		Scheme:   "https",
		Host:     b.config.host(endpoint),
		Path:     endpoint.Path(),
		RawQuery: q.encode(),
	}
	b.logger.Debug().Str("endpoint", endpoint.String()).Str("url", u.String()).Msg("offerwall url built")
	return u, nil
}

func (b *Builder) params(req *OfferRequest, sig Signature) (*queryParams, error) {
	country := req.CountryCode
	if country == "" {
		country = b.source.CountryCode()
	}
	if country == "" {
		b.logger.Warn().Str("userid", req.UserID).
			Msg("country could not be derived from the device, pass CountryCode in the request")
	}

	device := b.source.Device()

	q := newQueryParams()
	q.put("pubid", b.config.PublisherID)
	q.put("timestamp", sig.Timestamp)
	q.put("hash", sig.Hash)
	q.put("userid", req.UserID)
	q.put("device", string(device))
	q.put("devicemodel", b.source.DeviceModel())
	q.put("os_version", b.source.OSVersion())
	q.put("is_tablet", boolFlag(device.IsTablet()))
	q.set("country", country)
	q.put("locale", ReduceLocale(b.source.Locale()))
	q.set("zip", req.ZipCode)
	q.set("carrier", b.source.CarrierCode())
	q.put("from", fromMarker)

	switch req.UserGender {
	case GenderMale:
		q.put("user_gender", "m")
	case GenderFemale:
		q.put("user_gender", "f")
	}

	if req.UserAge != nil {
		q.put("user_age", strconv.Itoa(*req.UserAge))
	}
	if !req.UserSignupDate.IsZero() {
		q.put("user_signup_timestamp", strconv.FormatInt(req.UserSignupDate.Unix(), 10))
	}

	if idfa := b.source.AdvertisingID(); idfa != "" {
		digest, err := sha1Hex(idfa)
		if err != nil {
			return nil, err
		}
		q.put("idfa", idfa)
		q.put("idfasha1", digest)
	}

	for i, p := range req.CallbackParameters {
		q.put("pub"+strconv.Itoa(i), p)
	}
	return q, nil
}

// ReduceLocale maps any locale identifier to one of the two supported
// tags: "fr" for French locales, "en" for everything else.
func ReduceLocale(id string) string {
	if strings.HasPrefix(id, "fr") {
		return "fr"
	}
	return "en"
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
