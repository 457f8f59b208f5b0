package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a state machine with forward-only transitions to ensure
// a parcel is never re-registered or moved backwards in its lifecycle.
//
// State transitions:
//
//	Registered ──> InTransit ──> Delivered
//
// Skipping forward (Registered -> Delivered) is allowed; the ordering
// constraint is monotonicity, not adjacency. Status is a value object that
// validates transitions and provides the wire representation used for
// persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusRegistered is the initial status assigned at submission time.
	StatusRegistered

	// StatusInTransit indicates the parcel is being moved toward its receiver.
	StatusInTransit

	// StatusDelivered indicates the parcel reached its receiver.
	// This is a final state with no further transitions allowed.
	StatusDelivered
)

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusRegistered: "registered",
		StatusInTransit:  "in_transit",
		StatusDelivered:  "delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusRegistered: "registered",
		StatusInTransit:  "in_transit",
		StatusDelivered:  "delivered",
	}
}

// ParseStatus converts a wire representation back to a Status.
// Returns an error for any string that is not a valid status, including
// "unknown".
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: StatusRegistered, StatusInTransit, StatusDelivered.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe to call on any Status value,
// including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// TransitionTo validates a transition from the current status to next and
// returns the resulting status.
//
// Valid transitions move strictly forward in the lifecycle:
//   - Registered -> InTransit
//   - Registered -> Delivered
//   - InTransit  -> Delivered
//
// Backward transitions, repeated states, and transitions from Delivered
// are rejected.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return StatusUnknown, err
	}
	if err := next.Validate(); err != nil {
		return StatusUnknown, err
	}
	if next <= s {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot transition from %s to %s", s, next),
		)
	}

	return next, nil
}
