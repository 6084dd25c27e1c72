package order

import (
	"marketplace/internal/pkg/errs"
)

// PaymentStatus represents the payment axis of an order. It is independent of
// the lifecycle Status: a payment webhook can mark an order Paid while the
// customer concurrently cancels it.
//
// Transitions:
//
//	Pending ──> Processing ──> Paid ──> Refunded
//	                │            │          ▲
//	                ▼            ▼          │
//	              Failed   PartiallyRefunded┘
//	                            (repeatable)
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending is the initial payment status of a new order.
	PaymentPending

	// PaymentProcessing indicates the payment provider accepted the attempt.
	PaymentProcessing

	// PaymentPaid indicates the amount was captured.
	PaymentPaid

	// PaymentFailed indicates the payment attempt failed. Terminal on this axis.
	PaymentFailed

	// PaymentRefunded indicates the full captured amount was returned. Terminal.
	PaymentRefunded

	// PaymentPartiallyRefunded indicates part of the captured amount was
	// returned; further refunds remain possible up to the captured amount.
	PaymentPartiallyRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:           "Unknown",
		PaymentPending:           "Pending",
		PaymentProcessing:        "Processing",
		PaymentPaid:              "Paid",
		PaymentFailed:            "Failed",
		PaymentRefunded:          "Refunded",
		PaymentPartiallyRefunded: "PartiallyRefunded",
	}
}

func getAllowedPaymentTransitions() map[PaymentStatus][]PaymentStatus {
	return map[PaymentStatus][]PaymentStatus{
		PaymentPending:           {PaymentProcessing},
		PaymentProcessing:        {PaymentPaid, PaymentFailed},
		PaymentPaid:              {PaymentRefunded, PaymentPartiallyRefunded},
		PaymentPartiallyRefunded: {PaymentRefunded, PaymentPartiallyRefunded},
	}
}

// Validate checks if the PaymentStatus value is one of the defined states.
func (s PaymentStatus) Validate() error {
	if s < PaymentPending || s > PaymentPartiallyRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			errs.NewValueIsOutOfRangeError("payment status", int(s), int(PaymentPending), int(PaymentPartiallyRefunded)))
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// PaymentStatusFromString parses the wire name of a payment status.
func PaymentStatusFromString(value string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == value && status != PaymentUnknown {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidError("payment status " + value)
}

// IsCaptured reports whether money is currently held for the order: the
// payment is Paid or only partially refunded.
func (s PaymentStatus) IsCaptured() bool {
	return s == PaymentPaid || s == PaymentPartiallyRefunded
}

// TransitionTo validates and performs the transition to target.
// Returns the new status, or an InvalidStateError when the transition is not
// in the allowed set; the receiver is unchanged either way.
func (s PaymentStatus) TransitionTo(target PaymentStatus) (PaymentStatus, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	for _, allowed := range getAllowedPaymentTransitions()[s] {
		if allowed == target {
			return target, nil
		}
	}

	return 0, errs.NewInvalidStateErrorWithCause("ChangePaymentStatus", s.String(),
		errs.NewValueIsInvalidError("transition to "+target.String()))
}
