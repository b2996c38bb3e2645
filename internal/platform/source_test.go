package platform

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"offerwall-sdk/pkg/offerwall"
)

var _ offerwall.ParameterSource = Static{}

func TestFromHTTPRequest(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		acceptLanguage string
		userAgent      string
		want           Static
	}{
		{
			name:           "query parameters",
			url:            "/v1/offers/p?device=ipad&devicemodel=iPad13,4&os_version=17.0&carrier=208-01&idfa=ABC",
			acceptLanguage: "fr-FR,fr;q=0.9,en;q=0.8",
			want: Static{
				LocaleID: "fr-FR", Country: "FR", DeviceClass: offerwall.DeviceIPad,
				Model: "iPad13,4", OS: "17.0", Carrier: "208-01", IDFA: "ABC",
			},
		},
		{
			name:           "language without region",
			url:            "/v1/offers/p",
			acceptLanguage: "de",
			userAgent:      "Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Safari/537.36",
			want:           Static{LocaleID: "de", DeviceClass: offerwall.DeviceAndroid},
		},
		{
			name:           "preference order honoured",
			url:            "/v1/offers/p?locale=en_GB",
			acceptLanguage: "en-US;q=0.5, fr-CA",
			userAgent:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X)",
			want:           Static{LocaleID: "en_GB", Country: "CA", DeviceClass: offerwall.DeviceIPhone},
		},
		{
			name: "nothing known",
			url:  "/v1/offers/p",
			want: Static{DeviceClass: offerwall.DeviceUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if tt.acceptLanguage != "" {
				r.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			if tt.userAgent != "" {
				r.Header.Set("User-Agent", tt.userAgent)
			}
			assert.Equal(t, tt.want, FromHTTPRequest(r))
		})
	}
}

func TestFromHTTPRequest_AdvertisingIDHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/offers/p", nil)
	r.Header.Set("X-Advertising-Id", "GAID-1")
	assert.Equal(t, "GAID-1", FromHTTPRequest(r).AdvertisingID())
}

func TestDeviceFromUserAgent(t *testing.T) {
	tests := map[string]offerwall.DeviceClass{
		"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)":             offerwall.DeviceIPad,
		"Mozilla/5.0 (iPod touch; CPU iPhone OS 15_0 like Mac OS X)": offerwall.DeviceIPod,
		"Mozilla/5.0 (Linux; Android 13; SM-X700) Safari/537.36":     offerwall.DeviceAndroidTablet,
		"curl/8.0": offerwall.DeviceUnknown,
	}
	for ua, want := range tests {
		assert.Equal(t, want, deviceFromUserAgent(ua), ua)
	}
}

func TestStatic_DeviceDefault(t *testing.T) {
	assert.Equal(t, offerwall.DeviceUnknown, Static{}.Device())
	assert.Equal(t, offerwall.DeviceIPhone, ParseDeviceClass("IPHONE"))
	assert.Equal(t, offerwall.DeviceUnknown, ParseDeviceClass("watch"))
}
