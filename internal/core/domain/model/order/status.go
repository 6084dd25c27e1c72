package order

import (
	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions so orders always follow the fulfillment
// workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Shipped ──> Delivered
//	   │    ╲       │ ▲
//	   │     ╲      ▼ │
//	   │      ╲   OnHold
//	   │       ╲    │
//	   ▼        ▼   ▼
//	Cancelled <─────┘         Shipped/Delivered/Cancelled ──> Refunded
//
// Cancelled is reachable from Pending, Confirmed, and OnHold. Refunded is the
// terminal state of a fully refunded order. Delivered, Cancelled, and Refunded
// are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status. Items can only be added while Pending.
	StatusPending

	// StatusConfirmed indicates payment was captured and the fraud gate passed.
	StatusConfirmed

	// StatusOnHold indicates manual intervention or pending fraud review.
	StatusOnHold

	// StatusShipped indicates the order left the warehouse; reservations are
	// committed to permanent stock decrements at this point.
	StatusShipped

	// StatusDelivered is the terminal happy-path state.
	StatusDelivered

	// StatusCancelled is a terminal exit state. Cancellation never auto-refunds.
	StatusCancelled

	// StatusRefunded is the terminal state of a fully refunded order.
	StatusRefunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusConfirmed: "Confirmed",
		StatusOnHold:    "OnHold",
		StatusShipped:   "Shipped",
		StatusDelivered: "Delivered",
		StatusCancelled: "Cancelled",
		StatusRefunded:  "Refunded",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "Pending",
		StatusConfirmed: "Confirmed",
		StatusOnHold:    "OnHold",
		StatusShipped:   "Shipped",
		StatusDelivered: "Delivered",
		StatusCancelled: "Cancelled",
		StatusRefunded:  "Refunded",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Used when reconstructing orders from persistence or external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errs.NewValueIsOutOfRangeError("status", int(s), int(StatusPending), int(StatusRefunded)))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanAddItems reports whether new line items may be added. Items are only
// added while the order is Pending.
func (s Status) CanAddItems() bool {
	return s == StatusPending
}

// CanModifyItems reports whether existing line items may be removed or have
// their quantity changed. Allowed while Pending or OnHold.
func (s Status) CanModifyItems() bool {
	return s == StatusPending || s == StatusOnHold
}

// IsTerminal reports whether the status permits no further lifecycle
// transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed (payment captured and fraud gate passed)
//   - OnHold -> Confirmed (manual review resolved)
func (s Status) Confirm() (Status, error) {
	if s != StatusPending && s != StatusOnHold {
		return 0, errs.NewInvalidStateError("Confirm", s.String())
	}
	return StatusConfirmed, nil
}

// Hold transitions the status to OnHold. Always permitted from Pending and
// Confirmed.
func (s Status) Hold() (Status, error) {
	if s != StatusPending && s != StatusConfirmed {
		return 0, errs.NewInvalidStateError("PutOnHold", s.String())
	}
	return StatusOnHold, nil
}

// Ship transitions the status to Shipped. Only Confirmed orders ship.
func (s Status) Ship() (Status, error) {
	if s != StatusConfirmed {
		return 0, errs.NewInvalidStateError("MarkShipped", s.String())
	}
	return StatusShipped, nil
}

// Deliver transitions the status to Delivered. Only Shipped orders can be
// delivered.
func (s Status) Deliver() (Status, error) {
	if s != StatusShipped {
		return 0, errs.NewInvalidStateError("MarkDelivered", s.String())
	}
	return StatusDelivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled (includes direct fraud-rejection cancellations)
//   - Confirmed -> Cancelled
//   - OnHold -> Cancelled
func (s Status) Cancel() (Status, error) {
	if s != StatusPending && s != StatusConfirmed && s != StatusOnHold {
		return 0, errs.NewInvalidStateError("Cancel", s.String())
	}
	return StatusCancelled, nil
}

// Refund transitions the status to Refunded after a full refund.
//
// Valid transitions:
//   - Shipped -> Refunded
//   - Delivered -> Refunded
//   - Cancelled -> Refunded (post-capture cancellations still allow refund)
func (s Status) Refund() (Status, error) {
	if s != StatusShipped && s != StatusDelivered && s != StatusCancelled {
		return 0, errs.NewInvalidStateError("Refund", s.String())
	}
	return StatusRefunded, nil
}
