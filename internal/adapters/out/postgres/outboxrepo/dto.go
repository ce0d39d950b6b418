// Package outboxrepo stores domain events awaiting relay.
package outboxrepo

import (
	"encoding/json"
	"time"

	"deliveryno/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MessageDTO is one outbox row. Payload holds the event payload as JSON.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type        string     `gorm:"size:64;not null"`
	Payload     string     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(event kernel.DomainEvent) (MessageDTO, error) {
	payload := event.Payload
	if payload == nil {
		payload = map[string]string{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return MessageDTO{}, err
	}

	return MessageDTO{
		ID:          event.ID.Bytes(),
		AggregateID: event.AggregateID.Bytes(),
		Type:        event.Type,
		Payload:     string(raw),
		OccurredAt:  event.OccurredAt,
	}, nil
}

func toDomain(dto MessageDTO) (kernel.DomainEvent, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return kernel.DomainEvent{}, err
	}

	aggregateID, err := kernel.UUIDFromGoogle(dto.AggregateID)
	if err != nil {
		return kernel.DomainEvent{}, err
	}

	var payload map[string]string
	if err = json.Unmarshal([]byte(dto.Payload), &payload); err != nil {
		return kernel.DomainEvent{}, err
	}

	return kernel.DomainEvent{
		ID:          id,
		AggregateID: aggregateID,
		Type:        dto.Type,
		Payload:     payload,
		OccurredAt:  dto.OccurredAt,
	}, nil
}
