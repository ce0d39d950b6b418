package settlementrepo

import (
	"context"
	"errors"

	"deliveryno/internal/adapters/out/postgres/pgerr"
	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormSettlementRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormSettlementRepository(db *gorm.DB, tracker aggregateTracker) *GormSettlementRepository {
	return &GormSettlementRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormSettlementRepository) Add(ctx context.Context, settlement *stock.Settlement) error {
	if err := settlement.Validate(); err != nil {
		return err
	}

	dto := fromDomain(settlement)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewVersionIsInvalidErrorWithCause("settlement", err)
		}
		return pgerr.Translate(err, "settlement")
	}

	r.tracker.TrackAggregate(settlement.ID(), settlement)
	return nil
}

func (r *GormSettlementRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*stock.Settlement, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto SettlementDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("settlement", orderID.String())
		}
		return nil, pgerr.Translate(err, "settlement")
	}

	return toDomain(dto)
}
