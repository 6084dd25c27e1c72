package orderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
// Updates are conditioned on the aggregate version; a concurrent writer that
// got there first turns the write into a ConcurrencyConflictError.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its items and verification record.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order. The write succeeds only when the stored
// version still matches the version the aggregate was loaded with; the row
// then moves to version+1 together with the replaced line items.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := dto.Items
	verification := dto.Verification
	dto.Items = nil
	dto.Verification = nil
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("order", aggregate.ID().String(), aggregate.Version())
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			return err
		}
	}

	if verification != nil {
		if err := r.db.WithContext(ctx).Save(verification).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves an order by ID with its items and verification record.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Verification").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingOlderThan retrieves pending orders created before the cutoff.
// Used by the stale order sweep to cancel abandoned checkouts.
func (r *GormOrderRepository) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Verification").
		Where("status = ? AND created_at < ?", int(order.StatusPending), cutoff).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

// GormSplitRepository implements SplitRepository using GORM.
type GormSplitRepository struct {
	db *gorm.DB
}

// NewGormSplitRepository creates a new GORM split repository.
func NewGormSplitRepository(db *gorm.DB) *GormSplitRepository {
	return &GormSplitRepository{db: db}
}

// Add saves a split record with its split order references.
func (r *GormSplitRepository) Add(ctx context.Context, split *order.Split) error {
	if err := split.Validate(); err != nil {
		return err
	}

	dto := splitFromDomain(split)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOriginalOrderID retrieves the split record produced from an order.
func (r *GormSplitRepository) GetByOriginalOrderID(ctx context.Context, id kernel.UUID) (*order.Split, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SplitDTO
	err := r.db.WithContext(ctx).
		Preload("SplitOrders").
		First(&dto, "original_order_id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("split", id.String())
		}
		return nil, err
	}

	return splitToDomain(dto)
}
