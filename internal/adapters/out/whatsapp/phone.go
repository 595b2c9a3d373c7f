package whatsapp

import "strings"

// nigeriaCountryCode is prepended to local numbers that arrive without one.
const nigeriaCountryCode = "234"

// FormatPhoneNumber normalizes a phone number into the whatsapp:+E.164 form
// Twilio expects. Local Nigerian numbers get the country code; a leading
// zero is dropped first.
func FormatPhoneNumber(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	cleaned := digits.String()
	if !strings.HasPrefix(cleaned, nigeriaCountryCode) {
		cleaned = strings.TrimPrefix(cleaned, "0")
		cleaned = nigeriaCountryCode + cleaned
	}

	return "whatsapp:+" + cleaned
}
