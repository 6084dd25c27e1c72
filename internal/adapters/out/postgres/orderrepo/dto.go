// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The monetary breakdown is stored denormalized so reads never recompute it,
// and the version column carries the optimistic concurrency token.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID `gorm:"type:uuid;index"`
	Status            int       `gorm:"index"`
	StatusBeforeHold  int
	PaymentStatus     int
	PaymentMethod     *string
	ShippingAddressID *uuid.UUID      `gorm:"type:uuid"`
	CouponID          *uuid.UUID      `gorm:"type:uuid"`
	SubTotal          decimal.Decimal `gorm:"type:numeric(14,2)"`
	ShippingCost      decimal.Decimal `gorm:"type:numeric(14,2)"`
	Tax               decimal.Decimal `gorm:"type:numeric(14,2)"`
	CouponDiscount    decimal.Decimal `gorm:"type:numeric(14,2)"`
	GiftCardDiscount  decimal.Decimal `gorm:"type:numeric(14,2)"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(14,2)"`
	RefundedAmount    decimal.Decimal `gorm:"type:numeric(14,2)"`
	SplitAt           *time.Time
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
	Version           int

	Items        []ItemDTO        `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	Verification *VerificationDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents a persisted order line item.
type ItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;index"`
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// VerificationDTO represents a persisted fraud verification record.
type VerificationDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Type                 string
	RiskScore            int
	RequiresManualReview bool
	State                int
	CreatedAt            time.Time
}

// TableName specifies the database table name for verification records.
func (VerificationDTO) TableName() string {
	return "order_verifications"
}

// SplitDTO represents a persisted order split record.
type SplitDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OriginalOrderID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Reason          string
	CreatedAt       time.Time

	SplitOrders []SplitOrderRefDTO `gorm:"foreignKey:SplitID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for split records.
func (SplitDTO) TableName() string {
	return "order_splits"
}

// SplitOrderRefDTO links a split record to one of the orders it produced.
// Position preserves the group order chosen at split time.
type SplitOrderRefDTO struct {
	SplitID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	SplitOrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position     int
}

// TableName specifies the database table name for split order references.
func (SplitOrderRefDTO) TableName() string {
	return "order_split_refs"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var paymentMethod *string
	if m := aggregate.PaymentMethod(); m != nil {
		raw := m.String()
		paymentMethod = &raw
	}

	var shippingAddressID *uuid.UUID
	if id := aggregate.ShippingAddressID(); id != nil {
		raw := id.Bytes()
		shippingAddressID = &raw
	}

	var couponID *uuid.UUID
	if id := aggregate.CouponID(); id != nil {
		raw := id.Bytes()
		couponID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}

	var verification *VerificationDTO
	if v := aggregate.Verification(); v != nil {
		verification = &VerificationDTO{
			ID:                   v.ID().Bytes(),
			OrderID:              v.OrderID().Bytes(),
			Type:                 string(v.Type()),
			RiskScore:            v.RiskScore(),
			RequiresManualReview: v.RequiresManualReview(),
			State:                int(v.State()),
			CreatedAt:            v.CreatedAt(),
		}
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		UserID:            aggregate.UserID().Bytes(),
		Status:            int(aggregate.Status()),
		StatusBeforeHold:  int(aggregate.StatusBeforeHold()),
		PaymentStatus:     int(aggregate.PaymentStatus()),
		PaymentMethod:     paymentMethod,
		ShippingAddressID: shippingAddressID,
		CouponID:          couponID,
		SubTotal:          aggregate.SubTotal().Decimal(),
		ShippingCost:      aggregate.ShippingCost().Decimal(),
		Tax:               aggregate.Tax().Decimal(),
		CouponDiscount:    aggregate.CouponDiscount().Decimal(),
		GiftCardDiscount:  aggregate.GiftCardDiscount().Decimal(),
		TotalAmount:       aggregate.TotalAmount().Decimal(),
		RefundedAmount:    aggregate.RefundedAmount().Decimal(),
		SplitAt:           aggregate.SplitAt(),
		ShippedAt:         aggregate.ShippedAt(),
		DeliveredAt:       aggregate.DeliveredAt(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
		Version:           aggregate.Version(),
		Items:             items,
		Verification:      verification,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var paymentMethod *order.PaymentMethod
	if dto.PaymentMethod != nil {
		m := order.PaymentMethod(*dto.PaymentMethod)
		if err = m.Validate(); err != nil {
			return nil, err
		}
		paymentMethod = &m
	}

	var shippingAddressID *kernel.UUID
	if dto.ShippingAddressID != nil {
		addressID, addrErr := kernel.UUIDFromBytes((*dto.ShippingAddressID)[:])
		if addrErr != nil {
			return nil, addrErr
		}
		shippingAddressID = &addressID
	}

	var couponID *kernel.UUID
	if dto.CouponID != nil {
		cID, couponErr := kernel.UUIDFromBytes((*dto.CouponID)[:])
		if couponErr != nil {
			return nil, couponErr
		}
		couponID = &cID
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var verification *order.Verification
	if dto.Verification != nil {
		verification, err = verificationToDomain(*dto.Verification)
		if err != nil {
			return nil, err
		}
	}

	subTotal, err := kernel.NewMoney(dto.SubTotal)
	if err != nil {
		return nil, err
	}
	shippingCost, err := kernel.NewMoney(dto.ShippingCost)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoney(dto.Tax)
	if err != nil {
		return nil, err
	}
	couponDiscount, err := kernel.NewMoney(dto.CouponDiscount)
	if err != nil {
		return nil, err
	}
	giftCardDiscount, err := kernel.NewMoney(dto.GiftCardDiscount)
	if err != nil {
		return nil, err
	}
	totalAmount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}
	refundedAmount, err := kernel.NewMoney(dto.RefundedAmount)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		UserID:            userID,
		Items:             items,
		Status:            order.Status(dto.Status),
		StatusBeforeHold:  order.Status(dto.StatusBeforeHold),
		PaymentStatus:     order.PaymentStatus(dto.PaymentStatus),
		PaymentMethod:     paymentMethod,
		ShippingAddressID: shippingAddressID,
		CouponID:          couponID,
		SubTotal:          subTotal,
		ShippingCost:      shippingCost,
		Tax:               tax,
		CouponDiscount:    couponDiscount,
		GiftCardDiscount:  giftCardDiscount,
		TotalAmount:       totalAmount,
		RefundedAmount:    refundedAmount,
		Verification:      verification,
		SplitAt:           dto.SplitAt,
		ShippedAt:         dto.ShippedAt,
		DeliveredAt:       dto.DeliveredAt,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
		Version:           dto.Version,
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, productID, dto.Quantity, unitPrice)
}

func verificationToDomain(dto VerificationDTO) (*order.Verification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreVerification(
		id,
		orderID,
		order.VerificationType(dto.Type),
		dto.RiskScore,
		dto.RequiresManualReview,
		order.VerificationState(dto.State),
		dto.CreatedAt,
	)
}

func splitFromDomain(split *order.Split) SplitDTO {
	refs := make([]SplitOrderRefDTO, 0, len(split.SplitOrderIDs()))
	for i, splitOrderID := range split.SplitOrderIDs() {
		refs = append(refs, SplitOrderRefDTO{
			SplitID:      split.ID().Bytes(),
			SplitOrderID: splitOrderID.Bytes(),
			Position:     i,
		})
	}

	return SplitDTO{
		ID:              split.ID().Bytes(),
		OriginalOrderID: split.OriginalOrderID().Bytes(),
		Reason:          split.Reason(),
		CreatedAt:       split.CreatedAt(),
		SplitOrders:     refs,
	}
}

func splitToDomain(dto SplitDTO) (*order.Split, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	originalOrderID, err := kernel.UUIDFromBytes(dto.OriginalOrderID[:])
	if err != nil {
		return nil, err
	}

	splitOrderIDs := make([]kernel.UUID, len(dto.SplitOrders))
	for _, ref := range dto.SplitOrders {
		splitOrderID, refErr := kernel.UUIDFromBytes(ref.SplitOrderID[:])
		if refErr != nil {
			return nil, refErr
		}
		splitOrderIDs[ref.Position] = splitOrderID
	}

	return order.RestoreSplit(id, originalOrderID, splitOrderIDs, dto.Reason, dto.CreatedAt)
}
