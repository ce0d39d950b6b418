package outboxrepo

import (
	"context"
	"time"

	"deliveryno/internal/adapters/out/postgres/pgerr"
	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(events))
	for _, event := range events {
		dto, err := fromDomain(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	return pgerr.Translate(r.db.WithContext(ctx).Create(&dtos).Error, "outbox message")
}

// GetUnprocessed locks the returned rows and skips rows locked by another
// relay, so concurrent relays never send the same message.
func (r *GormOutboxRepository) GetUnprocessed(ctx context.Context, limit int) ([]kernel.DomainEvent, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("processed_at IS NULL").
		Order("occurred_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate(err, "outbox message")
	}

	events := make([]kernel.DomainEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *GormOutboxRepository) MarkProcessed(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id = ?", id.Bytes()).
		Update("processed_at", time.Now().UTC())
	if result.Error != nil {
		return pgerr.Translate(result.Error, "outbox message")
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id.String())
	}
	return nil
}
