package platform

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"offerwall-sdk/pkg/offerwall"
)

// Static is a ParameterSource with fixed values.
type Static struct {
	LocaleID    string
	Country     string
	DeviceClass offerwall.DeviceClass
	Model       string
	OS          string
	Carrier     string
	IDFA        string
}

func (s Static) Locale() string      { return s.LocaleID }
func (s Static) CountryCode() string { return s.Country }
func (s Static) DeviceModel() string { return s.Model }
func (s Static) OSVersion() string   { return s.OS }
func (s Static) CarrierCode() string { return s.Carrier }

func (s Static) AdvertisingID() string { return s.IDFA }

func (s Static) Device() offerwall.DeviceClass {
	if s.DeviceClass == "" {
		return offerwall.DeviceUnknown
	}
	return s.DeviceClass
}

// FromHTTPRequest derives the device facts of the app calling the gateway.
// Explicit query parameters win; otherwise the locale and country come from
// Accept-Language and the device class from the User-Agent.
func FromHTTPRequest(r *http.Request) Static {
	q := r.URL.Query()
	s := Static{
		LocaleID: q.Get("locale"),
		Model:    q.Get("devicemodel"),
		OS:       q.Get("os_version"),
		Carrier:  q.Get("carrier"),
		IDFA:     q.Get("idfa"),
	}
	if s.IDFA == "" {
		s.IDFA = r.Header.Get("X-Advertising-Id")
	}

	if tag, ok := preferredTag(r.Header.Get("Accept-Language")); ok {
		if s.LocaleID == "" {
			s.LocaleID = tag.String()
		}
		if region, conf := tag.Region(); conf == language.Exact {
			s.Country = region.String()
		}
	}

	s.DeviceClass = ParseDeviceClass(q.Get("device"))
	if s.DeviceClass == offerwall.DeviceUnknown {
		s.DeviceClass = deviceFromUserAgent(r.UserAgent())
	}
	return s
}

func preferredTag(acceptLanguage string) (language.Tag, bool) {
	if acceptLanguage == "" {
		return language.Und, false
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.Und, false
	}
	return tags[0], true
}

// ParseDeviceClass matches a device tag case-insensitively.
func ParseDeviceClass(s string) offerwall.DeviceClass {
	for _, d := range []offerwall.DeviceClass{
		offerwall.DeviceIPhone,
		offerwall.DeviceIPad,
		offerwall.DeviceIPod,
		offerwall.DeviceAndroid,
		offerwall.DeviceAndroidTablet,
	} {
		if strings.EqualFold(s, string(d)) {
			return d
		}
	}
	return offerwall.DeviceUnknown
}

func deviceFromUserAgent(ua string) offerwall.DeviceClass {
	switch {
	case strings.Contains(ua, "iPad"):
		return offerwall.DeviceIPad
	case strings.Contains(ua, "iPod"):
		return offerwall.DeviceIPod
	case strings.Contains(ua, "iPhone"):
		return offerwall.DeviceIPhone
	case strings.Contains(ua, "Android") && strings.Contains(ua, "Mobile"):
		return offerwall.DeviceAndroid
	case strings.Contains(ua, "Android"):
		return offerwall.DeviceAndroidTablet
	default:
		return offerwall.DeviceUnknown
	}
}
