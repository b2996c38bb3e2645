package offerwall

import (
	"crypto/sha1"
	"encoding/hex"
	"time"
)

const (
	testAPIKey      = "test-api-key"
	testPublisherID = "pub-123"
)

var testNow = time.Unix(1700000000, 987_000_000)

type fakeSource struct {
	locale    string
	country   string
	model     string
	osVersion string
	carrier   string
	idfa      string
	device    DeviceClass
}

func (f fakeSource) Locale() string        { return f.locale }
func (f fakeSource) CountryCode() string   { return f.country }
func (f fakeSource) Device() DeviceClass   { return f.device }
func (f fakeSource) DeviceModel() string   { return f.model }
func (f fakeSource) OSVersion() string     { return f.osVersion }
func (f fakeSource) CarrierCode() string   { return f.carrier }
func (f fakeSource) AdvertisingID() string { return f.idfa }

func iphoneSource() fakeSource {
	return fakeSource{
		locale:    "en-US",
		country:   "US",
		model:     "iPhone14,2",
		osVersion: "17.1",
		carrier:   "310-410",
		device:    DeviceIPhone,
	}
}

func testConfig() Config {
	return Config{APIKey: testAPIKey, PublisherID: testPublisherID}
}

func fixedClock() time.Time { return testNow }

func sha1Of(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func intPtr(v int) *int { return &v }
