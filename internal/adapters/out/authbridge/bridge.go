package authbridge

import (
	"strings"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

const (
	bridgeLocalPrefix = "user"
	bridgeDomain      = "@gtsapp.com"
)

// PhoneToEmail maps a phone number onto the synthetic email address the
// identity provider accounts are created under. The mapping is deterministic
// over the digits-only form, so every formatting of the same number lands on
// the same account.
func PhoneToEmail(phone string) (string, error) {
	digits := user.NormalizePhone(phone)
	if digits == "" {
		return "", errs.NewValueIsRequiredError("phone")
	}
	return bridgeLocalPrefix + digits + bridgeDomain, nil
}

// EmailToPhone recovers the digits-only phone number from a bridged email
// address. Addresses outside the bridge namespace are rejected.
func EmailToPhone(email string) (string, error) {
	local, ok := strings.CutSuffix(email, bridgeDomain)
	if !ok {
		return "", errs.NewValueIsInvalidError("email is not a bridged address")
	}
	digits, ok := strings.CutPrefix(local, bridgeLocalPrefix)
	if !ok || digits == "" {
		return "", errs.NewValueIsInvalidError("email is not a bridged address")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", errs.NewValueIsInvalidError("email is not a bridged address")
		}
	}
	return digits, nil
}

// IsBridgedEmail reports whether an address was produced by PhoneToEmail.
func IsBridgedEmail(email string) bool {
	_, err := EmailToPhone(email)
	return err == nil
}
