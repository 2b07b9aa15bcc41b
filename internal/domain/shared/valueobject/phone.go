package valueobject

import (
	"regexp"
)

// EmptyPhonePlaceholder is the all-zero number marketplaces send when they have no phone
const EmptyPhonePlaceholder = "000-000-0000"

var (
	phoneExtensionPattern = regexp.MustCompile(`(?i)\s*(ex|x|#).*`)
	phoneNonDigitPattern  = regexp.MustCompile(`\D`)
	// groups: 2 country digit, 3 area after country, 4 area at start, 5 exchange, 6 line
	phoneNumberPattern = regexp.MustCompile(`(([0-9])(\d{3})|(^\d{3}))?(\d{3})(\d{4})\d*`)
)

// NormalizePhone canonicalizes a free-text phone number.
//
// Extensions and non-digits are dropped, then the digits are formatted as
// AAA-NNN-NNNN (a leading country digit is discarded) or NNN-NNNN when no area
// code is present. Strings with fewer than seven digits come back as bare digits.
// The all-zero placeholder collapses to an empty string. A nil input means
// "no data" and is returned as nil.
func NormalizePhone(raw *string) *string {
	if raw == nil {
		return nil
	}
	formatted := FormatPhone(*raw)
	return &formatted
}

// FormatPhone is NormalizePhone for a value that is known to be present
func FormatPhone(raw string) string {
	number := phoneExtensionPattern.ReplaceAllString(raw, "")
	number = phoneNonDigitPattern.ReplaceAllString(number, "")

	if m := phoneNumberPattern.FindStringSubmatch(number); m != nil {
		switch {
		case m[3] != "":
			number = m[3] + "-" + m[5] + "-" + m[6]
		case m[4] != "":
			number = m[4] + "-" + m[5] + "-" + m[6]
		default:
			number = m[5] + "-" + m[6]
		}
	}

	if number == EmptyPhonePlaceholder {
		return ""
	}
	return number
}
