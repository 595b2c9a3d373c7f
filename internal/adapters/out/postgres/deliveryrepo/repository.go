package deliveryrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a repository over the given connection,
// which may be a transaction handle from the unit of work or the base
// connection for standalone reads and the notification log.
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add saves a new delivery. A tracking-code unique-constraint violation is
// mapped to DuplicateIdentifierError so the caller can regenerate the code.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateIdentifierError(dto.TrackingCode, err)
		}
		return err
	}

	return nil
}

// Update saves an existing delivery under the optimistic-concurrency guard:
// the row is matched on both id and the status the aggregate was loaded
// with. When a concurrent writer has moved the status since the load, zero
// rows match and the caller gets a ConcurrentModificationError; the ledger
// written by the winner is never clobbered.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.PersistedStatus().String()).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
		}
		return errs.NewConcurrentModificationError("delivery", aggregate.ID().String())
	}

	return nil
}

// GetByID retrieves a delivery by its internal identifier.
func (r *GormDeliveryRepository) GetByID(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingCode retrieves a delivery by its public tracking code.
func (r *GormDeliveryRepository) GetByTrackingCode(ctx context.Context, code delivery.TrackingCode) (*delivery.Delivery, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", code.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", code.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a delivery row. Deletability is the caller's business rule;
// this method removes whatever id it is given.
func (r *GormDeliveryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&DeliveryDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", id.String())
	}

	return nil
}

// AppendNotification appends a record to the delivery's notification log in
// place. The write deliberately bypasses the status guard: the log is
// bookkeeping about messages already sent, not aggregate state.
func (r *GormDeliveryRepository) AppendNotification(ctx context.Context, id kernel.UUID, record delivery.NotificationRecord) error {
	if err := id.Validate(); err != nil {
		return err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).Select("id", "notifications").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("delivery", id.String())
		}
		return err
	}

	dto.Notifications = append(dto.Notifications, NotificationDTO{
		Status:     record.Status.String(),
		Timestamp:  record.Timestamp,
		MessageSID: record.MessageSID,
	})

	return r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ?", id.Bytes()).
		Select("notifications").
		Updates(&DeliveryDTO{Notifications: dto.Notifications}).Error
}
