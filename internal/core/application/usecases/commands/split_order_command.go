package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrSplitOrderCommandIsNotConstructed = errors.New(
	"SplitOrderCommand must be created via NewSplitOrderCommand constructor",
)

// SplitOrderCommand represents a request to divide an order into per-group
// sub-orders. Assignments map product ids to fulfillment group keys (seller
// or warehouse); products without an assignment stay on the original order.
type SplitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	reason      string
	assignments map[kernel.UUID]string

	guard guard.ConstructorGuard
}

// NewSplitOrderCommand creates a command to split an order.
// At least one product must be assigned to a non-empty group.
func NewSplitOrderCommand(
	orderID kernel.UUID,
	reason string,
	assignments map[kernel.UUID]string,
) (SplitOrderCommand, error) {
	splitCommand := SplitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		splitCommand.setOrderID(orderID),
		splitCommand.setReason(reason),
		splitCommand.setAssignments(assignments),
	); err != nil {
		return SplitOrderCommand{}, err
	}

	return splitCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSplitOrderCommandIsNotConstructed)
}

// OrderID returns the order to split.
func (c SplitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns why the order is being split.
func (c SplitOrderCommand) Reason() string {
	return c.reason
}

// Assignments returns the product-to-group mapping.
func (c SplitOrderCommand) Assignments() map[kernel.UUID]string {
	assignments := make(map[kernel.UUID]string, len(c.assignments))
	for productID, group := range c.assignments {
		assignments[productID] = group
	}
	return assignments
}

func (c *SplitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SplitOrderCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

func (c *SplitOrderCommand) setAssignments(assignments map[kernel.UUID]string) error {
	hasGroup := false
	for productID, group := range assignments {
		if err := productID.Validate(); err != nil {
			return err
		}
		if group != "" {
			hasGroup = true
		}
	}
	if !hasGroup {
		return errs.NewValueIsRequiredError("assignments")
	}

	c.assignments = make(map[kernel.UUID]string, len(assignments))
	for productID, group := range assignments {
		c.assignments[productID] = group
	}
	return nil
}
