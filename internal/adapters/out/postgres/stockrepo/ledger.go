package stockrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockLedger implements StockLedger using GORM.
// Every mutating call locks the product row first, so concurrent commands on
// the same product serialize at the database instead of overselling.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GORM stock ledger.
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Reserve sets the order's hold on a product to the requested quantity.
// The requested quantity is the order's full desired amount, not a delta;
// calling Reserve twice with the same arguments leaves one hold.
func (l *GormStockLedger) Reserve(ctx context.Context, productID kernel.UUID, quantity int, orderID kernel.UUID) error {
	if quantity <= 0 {
		return errs.NewValueIsRequiredError("quantity")
	}

	product, err := l.lockProduct(ctx, productID)
	if err != nil {
		return err
	}

	var reservedByOthers int64
	err = l.db.WithContext(ctx).Model(&ReservationDTO{}).
		Where("product_id = ? AND order_id != ?", productID.Bytes(), orderID.Bytes()).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&reservedByOthers).Error
	if err != nil {
		return err
	}

	available := product.Available - int(reservedByOthers)
	if quantity > available {
		return errs.NewInsufficientStockError(productID.String(), quantity, available)
	}

	reservation := ReservationDTO{
		ProductID: productID.Bytes(),
		OrderID:   orderID.Bytes(),
		Quantity:  quantity,
	}
	return l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(&reservation).Error
}

// Release reduces the order's hold on a product by up to the given quantity.
// Releasing more than is held clears the hold; releasing with no hold at all
// is a no-op, so callers may release generously on cancel paths.
func (l *GormStockLedger) Release(ctx context.Context, productID kernel.UUID, quantity int, orderID kernel.UUID) error {
	if quantity <= 0 {
		return errs.NewValueIsRequiredError("quantity")
	}

	if _, err := l.lockProduct(ctx, productID); err != nil {
		return err
	}

	reservation, err := l.getReservation(ctx, productID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	remaining := reservation.Quantity - quantity
	if remaining <= 0 {
		return l.deleteReservation(ctx, productID, orderID)
	}

	return l.db.WithContext(ctx).Model(&ReservationDTO{}).
		Where("product_id = ? AND order_id = ?", productID.Bytes(), orderID.Bytes()).
		Update("quantity", remaining).Error
}

// Commit converts up to the given quantity of the order's hold into a
// permanent stock decrement.
func (l *GormStockLedger) Commit(ctx context.Context, productID kernel.UUID, quantity int, orderID kernel.UUID) error {
	if quantity <= 0 {
		return errs.NewValueIsRequiredError("quantity")
	}

	product, err := l.lockProduct(ctx, productID)
	if err != nil {
		return err
	}

	reservation, err := l.getReservation(ctx, productID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	committed := min(quantity, reservation.Quantity)
	err = l.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ?", product.ID).
		Update("available", gorm.Expr("available - ?", committed)).Error
	if err != nil {
		return err
	}

	remaining := reservation.Quantity - committed
	if remaining <= 0 {
		return l.deleteReservation(ctx, productID, orderID)
	}

	return l.db.WithContext(ctx).Model(&ReservationDTO{}).
		Where("product_id = ? AND order_id = ?", productID.Bytes(), orderID.Bytes()).
		Update("quantity", remaining).Error
}

// ReleaseAll drops every hold the order has.
func (l *GormStockLedger) ReleaseAll(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return l.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Delete(&ReservationDTO{}).Error
}

// CommitAll converts every hold the order has into permanent stock
// decrements. Called when the order ships.
func (l *GormStockLedger) CommitAll(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	err := l.db.WithContext(ctx).Exec(`
		UPDATE products
		SET available = available - r.quantity
		FROM stock_reservations r
		WHERE r.product_id = products.id AND r.order_id = ?
	`, orderID.Bytes()).Error
	if err != nil {
		return err
	}

	return l.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Delete(&ReservationDTO{}).Error
}

func (l *GormStockLedger) lockProduct(ctx context.Context, productID kernel.UUID) (ProductDTO, error) {
	var product ProductDTO
	err := l.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", productID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDTO{}, errs.NewObjectNotFoundError("product", productID.String())
		}
		return ProductDTO{}, err
	}
	return product, nil
}

func (l *GormStockLedger) getReservation(ctx context.Context, productID, orderID kernel.UUID) (ReservationDTO, error) {
	var reservation ReservationDTO
	err := l.db.WithContext(ctx).
		First(&reservation, "product_id = ? AND order_id = ?", productID.Bytes(), orderID.Bytes()).Error
	return reservation, err
}

func (l *GormStockLedger) deleteReservation(ctx context.Context, productID, orderID kernel.UUID) error {
	return l.db.WithContext(ctx).
		Where("product_id = ? AND order_id = ?", productID.Bytes(), orderID.Bytes()).
		Delete(&ReservationDTO{}).Error
}
