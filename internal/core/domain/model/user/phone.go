package user

import "strings"

// NormalizePhone reduces a phone number to its digits. Used for the phone
// lookup index and for bridging phone identities onto providers that only
// understand email accounts.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
