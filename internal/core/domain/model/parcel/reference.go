package parcel

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"parceltrack/internal/pkg/errs"
)

const (
	referencePrefix       = "NEWDAY"
	referenceRandomLength = 4
	referenceAlphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var referenceCodePattern = regexp.MustCompile(`^` + referencePrefix + `-[0-9A-Z]+-[0-9A-Z]{4}$`)

// GenerateReferenceCode produces a human-readable tracking code of the form
// PREFIX-TIMESTAMP-RANDOM, e.g. "NEWDAY-MBXK2T1A-7QHV".
//
// The timestamp component is the current wall-clock time in milliseconds,
// base36-encoded, so it is monotonically non-decreasing across calls on the
// same process. The random component adds collision resistance across
// concurrent callers and processes. The function has no shared mutable state
// and is safe for concurrent use.
//
// Uniqueness is probabilistic, not guaranteed by construction: callers
// persisting the code must treat a collision as a possible (rare) error and
// retry with a freshly generated code.
func GenerateReferenceCode() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	buf := make([]byte, referenceRandomLength)
	rand.Read(buf) //nolint:errcheck // never fails as of go1.24
	for i := range buf {
		buf[i] = referenceAlphabet[int(buf[i])%len(referenceAlphabet)]
	}

	return fmt.Sprintf("%s-%s-%s", referencePrefix, timestamp, string(buf))
}

// ValidateReferenceCode checks that a string matches the generator's format.
func ValidateReferenceCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("reference code")
	}
	if !referenceCodePattern.MatchString(code) {
		return errs.NewValueIsInvalidErrorWithCause(
			"reference code",
			fmt.Errorf("%q does not match the reference code format", code),
		)
	}
	return nil
}
