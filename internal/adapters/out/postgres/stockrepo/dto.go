// Package stockrepo implements the stock ledger on PostgreSQL. On-hand
// quantities live in the products table; active holds live in the
// stock_reservations table keyed by product and order.
package stockrepo

import (
	"github.com/google/uuid"
)

// ProductDTO represents the persisted on-hand stock of a product.
// Available counts physical stock not yet shipped; reservations are tracked
// separately and subtracted when computing what can still be promised.
type ProductDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Available int
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// ReservationDTO represents an active stock hold for one order line.
// One row per (product, order): Reserve overwrites the quantity, so retries
// never stack holds.
type ReservationDTO struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Quantity  int
}

// TableName specifies the database table name for stock reservations.
func (ReservationDTO) TableName() string {
	return "stock_reservations"
}
