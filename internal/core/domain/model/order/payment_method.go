package order

import (
	"marketplace/internal/pkg/errs"
)

// PaymentMethod identifies how the customer pays for an order.
type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodWallet         PaymentMethod = "wallet"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Validate checks if the PaymentMethod is one of the supported methods.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodCard, PaymentMethodWallet, PaymentMethodBankTransfer, PaymentMethodCashOnDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidError("payment method " + string(m))
	}
}

// String returns the wire representation of the payment method.
func (m PaymentMethod) String() string {
	return string(m)
}
