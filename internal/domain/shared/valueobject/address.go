package valueobject

import (
	"strings"

	"golang.org/x/text/language"
)

// usStateCodes maps lower-cased US state and territory names to USPS codes
var usStateCodes = map[string]string{
	"alabama":                        "AL",
	"alaska":                         "AK",
	"american samoa":                 "AS",
	"arizona":                        "AZ",
	"arkansas":                       "AR",
	"armed forces americas":          "AA",
	"armed forces europe":            "AE",
	"armed forces pacific":           "AP",
	"california":                     "CA",
	"colorado":                       "CO",
	"connecticut":                    "CT",
	"delaware":                       "DE",
	"district of columbia":           "DC",
	"florida":                        "FL",
	"georgia":                        "GA",
	"guam":                           "GU",
	"hawaii":                         "HI",
	"idaho":                          "ID",
	"illinois":                       "IL",
	"indiana":                        "IN",
	"iowa":                           "IA",
	"kansas":                         "KS",
	"kentucky":                       "KY",
	"louisiana":                      "LA",
	"maine":                          "ME",
	"maryland":                       "MD",
	"massachusetts":                  "MA",
	"michigan":                       "MI",
	"minnesota":                      "MN",
	"mississippi":                    "MS",
	"missouri":                       "MO",
	"montana":                        "MT",
	"nebraska":                       "NE",
	"nevada":                         "NV",
	"new hampshire":                  "NH",
	"new jersey":                     "NJ",
	"new mexico":                     "NM",
	"new york":                       "NY",
	"north carolina":                 "NC",
	"north dakota":                   "ND",
	"northern mariana islands":       "MP",
	"ohio":                           "OH",
	"oklahoma":                       "OK",
	"oregon":                         "OR",
	"pennsylvania":                   "PA",
	"puerto rico":                    "PR",
	"rhode island":                   "RI",
	"south carolina":                 "SC",
	"south dakota":                   "SD",
	"tennessee":                      "TN",
	"texas":                          "TX",
	"utah":                           "UT",
	"vermont":                        "VT",
	"virgin islands":                 "VI",
	"virginia":                       "VA",
	"washington":                     "WA",
	"west virginia":                  "WV",
	"wisconsin":                      "WI",
	"wyoming":                        "WY",
	"united states virgin islands":   "VI",
	"u.s. virgin islands":            "VI",
	"federated states of micronesia": "FM",
	"marshall islands":               "MH",
	"palau":                          "PW",
}

// countryNames covers the spelled-out country names marketplaces commonly send
var countryNames = map[string]string{
	"united states":            "US",
	"united states of america": "US",
	"canada":                   "CA",
	"mexico":                   "MX",
	"united kingdom":           "GB",
	"great britain":            "GB",
	"australia":                "AU",
	"germany":                  "DE",
	"france":                   "FR",
}

// NormalizeStateCode converts a spelled-out US state name to its two-letter code.
// Values that are already codes, or that are not US states, are returned trimmed.
func NormalizeStateCode(state string) string {
	state = strings.TrimSpace(state)
	if code, ok := usStateCodes[strings.ToLower(state)]; ok {
		return code
	}
	return state
}

// NormalizeCountryCode converts an ISO 3166 alpha-3, numeric or spelled-out
// country to its alpha-2 code. Unrecognised values are returned trimmed.
func NormalizeCountryCode(country string) string {
	country = strings.TrimSpace(country)
	if country == "" {
		return ""
	}
	if code, ok := countryNames[strings.ToLower(country)]; ok {
		return code
	}
	region, err := language.ParseRegion(strings.ToUpper(country))
	if err != nil || !region.IsCountry() {
		return country
	}
	return region.String()
}
