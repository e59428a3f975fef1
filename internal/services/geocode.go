package services

import (
	"errors"
	"log"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is the numbering plan assumed for the bare 10-digit
// subscriber numbers the API accepts.
const DefaultRegion = "US"

var ErrInvalidPhoneNumber = errors.New("invalid phone number")

// PhoneGeocode is metadata derived purely from the numbering-plan
// structure of a phone number, independent of any stored record.
type PhoneGeocode struct {
	National      string   `json:"national_number"`
	E164          string   `json:"e164"`
	International string   `json:"international"`
	CountryCode   int      `json:"country_code"`
	Carrier       string   `json:"carrier"`
	TimeZones     []string `json:"time_zones"`
	Location      string   `json:"location"`
}

// GeocodeService resolves phone numbers against embedded
// libphonenumber metadata. It never touches the record store.
type GeocodeService struct {
	region string
	lang   string
}

func NewGeocodeService() *GeocodeService {
	return &GeocodeService{region: DefaultRegion, lang: "en"}
}

// ParseNumber parses a subscriber number in the default region.
// Numbers that do not parse, or parse to an invalid numbering-plan
// entry, are rejected.
func (g *GeocodeService) ParseNumber(raw string) (*phonenumbers.PhoneNumber, error) {
	num, err := phonenumbers.Parse(raw, g.region)
	if err != nil {
		return nil, ErrInvalidPhoneNumber
	}
	if !phonenumbers.IsValidNumber(num) {
		return nil, ErrInvalidPhoneNumber
	}
	return num, nil
}

// Geocode derives carrier, timezone candidates, and a descriptive
// locale string from the number's structure. Individual metadata
// lookups degrade to empty values rather than failing the call.
func (g *GeocodeService) Geocode(num *phonenumbers.PhoneNumber) PhoneGeocode {
	geo := PhoneGeocode{
		National:      phonenumbers.GetNationalSignificantNumber(num),
		E164:          phonenumbers.Format(num, phonenumbers.E164),
		International: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
		CountryCode:   int(num.GetCountryCode()),
	}

	carrier, err := phonenumbers.GetCarrierForNumber(num, g.lang)
	if err != nil {
		log.Printf("Carrier lookup failed for %s: %v", geo.E164, err)
	} else {
		geo.Carrier = carrier
	}

	tzs, err := phonenumbers.GetTimezonesForNumber(num)
	if err != nil {
		log.Printf("Timezone lookup failed for %s: %v", geo.E164, err)
	} else {
		geo.TimeZones = tzs
	}

	location, err := phonenumbers.GetGeocodingForNumber(num, g.lang)
	if err != nil {
		log.Printf("Geocoding lookup failed for %s: %v", geo.E164, err)
	} else {
		geo.Location = location
	}

	return geo
}
