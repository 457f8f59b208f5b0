package wizard

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Step identifies where a registration session currently is.
type Step int

const (
	// StepUnknown represents an invalid or undefined step.
	StepUnknown Step = iota

	// StepCollectingSender gathers the sending party's details.
	StepCollectingSender

	// StepCollectingItems gathers the parcel contents.
	StepCollectingItems

	// StepCollectingReceiver gathers the receiving party's details.
	StepCollectingReceiver

	// StepReadyToSubmit holds a complete draft awaiting submission.
	StepReadyToSubmit

	// StepSubmitted is terminal; the session is spent.
	StepSubmitted
)

func getStepStrings() map[Step]string {
	return map[Step]string{
		StepUnknown:            "unknown",
		StepCollectingSender:   "collectingSender",
		StepCollectingItems:    "collectingItems",
		StepCollectingReceiver: "collectingReceiver",
		StepReadyToSubmit:      "readyToSubmit",
		StepSubmitted:          "submitted",
	}
}

// String returns the wire representation of the step.
func (s Step) String() string {
	if str, ok := getStepStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func stepError(current Step, action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"wizard step",
		fmt.Errorf("cannot %s in step %s", action, current),
	)
}
