package offerwall

// DeviceClass is the coarse device family sent as `device`.
type DeviceClass string

const (
	DeviceIPhone        DeviceClass = "iPhone"
	DeviceIPad          DeviceClass = "iPad"
	DeviceIPod          DeviceClass = "iPod"
	DeviceAndroid       DeviceClass = "android"
	DeviceAndroidTablet DeviceClass = "android_tablet"
	DeviceUnknown       DeviceClass = "unknown"
)

func (d DeviceClass) IsTablet() bool {
	return d == DeviceIPad || d == DeviceAndroidTablet
}

// ParameterSource supplies the device and locale facts of the user the
// request is built for. Empty strings mean the value is unavailable.
type ParameterSource interface {
	// Locale returns a locale identifier such as "fr-FR" or "en_US".
	Locale() string
	CountryCode() string
	Device() DeviceClass
	DeviceModel() string
	OSVersion() string
	CarrierCode() string
	// AdvertisingID returns the platform advertising identifier (IDFA/GAID).
	AdvertisingID() string
}

type emptySource struct{}

func (emptySource) Locale() string        { return "" }
func (emptySource) CountryCode() string   { return "" }
func (emptySource) Device() DeviceClass   { return DeviceUnknown }
func (emptySource) DeviceModel() string   { return "" }
func (emptySource) OSVersion() string     { return "" }
func (emptySource) CarrierCode() string   { return "" }
func (emptySource) AdvertisingID() string { return "" }
