package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a command. The unit of
// work persists pending events to the outbox in the same transaction as the
// aggregate itself.
type DomainEvent struct {
	ID          UUID
	AggregateID UUID
	Type        string
	Payload     map[string]string
	OccurredAt  time.Time
}

// NewDomainEvent stamps a new event with a fresh id and the current UTC time.
func NewDomainEvent(aggregateID UUID, eventType string, payload map[string]string) DomainEvent {
	return DomainEvent{
		ID:          NewUUID(),
		AggregateID: aggregateID,
		Type:        eventType,
		Payload:     payload,
		OccurredAt:  time.Now().UTC(),
	}
}

// EventSource is implemented by aggregates that record domain events.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// EventRecorder is embedded by aggregates to implement EventSource.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
