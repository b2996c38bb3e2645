package offerwall

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// ParseGender accepts the wire tags ("m", "f") and the spelled-out forms.
// Anything else is GenderUnknown.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return GenderMale
	case "f", "female":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// Endpoint selects both the host and the path of a request.
type Endpoint int

const (
	EndpointAPIFeed Endpoint = iota
	EndpointHostedWall
)

const (
	apiFeedPath    = "/api/feed/v2"
	hostedWallPath = "/offers"
)

func (e Endpoint) Path() string {
	if e == EndpointHostedWall {
		return hostedWallPath
	}
	return apiFeedPath
}

func (e Endpoint) String() string {
	if e == EndpointHostedWall {
		return "hosted_wall"
	}
	return "api_feed"
}

// OfferRequest personalizes one call. Zero values mean "not provided":
// an empty ZipCode or CountryCode, a nil UserAge and a zero UserSignupDate
// are all left out of the query.
type OfferRequest struct {
	// UserID is the publisher's own opaque id for the user.
	UserID string `validate:"required"`
	// ZipCode should come from geolocation, not geoip.
	ZipCode string
	// CountryCode overrides the device-derived country.
	CountryCode    string `validate:"omitempty,len=2,alpha"`
	UserAge        *int   `validate:"omitempty,gte=0"`
	UserGender     Gender
	UserSignupDate time.Time
	// CallbackParameters are echoed back by the server as pub0, pub1, ...
	CallbackParameters []string
}

var validate = validator.New()

// Validate checks the request before anything is signed.
func (r *OfferRequest) Validate() error {
	if r == nil {
		return &RequestError{Reason: "request is nil"}
	}
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, formatFieldError(fe))
			}
			return &RequestError{Reason: strings.Join(msgs, "; ")}
		}
		return &RequestError{Reason: err.Error()}
	}
	return nil
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", e.Field(), e.Param())
	case "alpha":
		return fmt.Sprintf("%s must contain letters only", e.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s failed validation for %s", e.Field(), e.Tag())
	}
}
