// Package notify implements the customer notification transports: the
// Telegram bot API and WhatsApp deep links, plus the Arabic message
// templates shared between them.
package notify

import "strings"

// DefaultCountryCode is the dialling prefix applied to local numbers.
const DefaultCountryCode = "218"

// CanonicalPhone normalises a customer phone number into international
// digits-only form: formatting characters are stripped, leading zeros
// removed, and the country code prepended when absent. An empty or
// digit-free input yields "".
func CanonicalPhone(phone, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	digits := digitsOnly(phone)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, countryCode) {
		return digits
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return ""
	}
	return countryCode + digits
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
