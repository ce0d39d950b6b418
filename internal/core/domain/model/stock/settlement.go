package stock

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

// Event types recorded by Settlement.
const (
	EventDeliverySettled   = "DeliverySettled"
	EventSettlementSkipped = "SettlementSkipped"
)

var ErrSettlementIsNotConstructed = errors.New("Settlement must be created via NewSettled or NewSkipped")

// Outcome is the result of settling one delivered order.
type Outcome string

const (
	Settled Outcome = "settled"
	Skipped Outcome = "skipped"
)

// SkipReason explains a Skipped outcome. It is empty for Settled.
type SkipReason string

const (
	NoReason                SkipReason = ""
	ReasonItemNotFound      SkipReason = "item_not_found"
	ReasonInsufficientStock SkipReason = "insufficient_stock"
)

func (o Outcome) Validate() error {
	switch o {
	case Settled, Skipped:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("outcome", fmt.Errorf("%q is not a valid outcome", string(o)))
}

func (r SkipReason) Validate() error {
	switch r {
	case NoReason, ReasonItemNotFound, ReasonInsufficientStock:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("reason", fmt.Errorf("%q is not a valid reason", string(r)))
}

// Settlement is the ledger record of one delivered order.
type Settlement struct {
	kernel.EventRecorder

	id        kernel.UUID
	orderID   kernel.UUID
	stockID   *kernel.UUID
	sellerID  kernel.UUID
	item      string
	quantity  int
	outcome   Outcome
	reason    SkipReason
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewSettled records a successful decrement of stockID by quantity.
func NewSettled(orderID, stockID, sellerID kernel.UUID, item string, quantity int) (*Settlement, error) {
	return newSettlement(orderID, &stockID, sellerID, item, quantity, Settled, NoReason)
}

// NewSkipped records a delivery whose stock could not be decremented.
// stockID is nil when the item no longer exists.
func NewSkipped(
	orderID kernel.UUID, stockID *kernel.UUID, sellerID kernel.UUID, item string, quantity int, reason SkipReason,
) (*Settlement, error) {
	if reason == NoReason {
		return nil, errs.NewValueIsRequiredError("reason")
	}
	return newSettlement(orderID, stockID, sellerID, item, quantity, Skipped, reason)
}

func newSettlement(
	orderID kernel.UUID, stockID *kernel.UUID, sellerID kernel.UUID, item string, quantity int,
	outcome Outcome, reason SkipReason,
) (*Settlement, error) {
	s := &Settlement{
		id:        kernel.NewUUID(),
		stockID:   stockID,
		item:      item,
		quantity:  quantity,
		outcome:   outcome,
		reason:    reason,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		sellerID.Validate(),
		reason.Validate(),
	); err != nil {
		return nil, err
	}
	s.orderID = orderID
	s.sellerID = sellerID

	eventType := EventDeliverySettled
	if outcome == Skipped {
		eventType = EventSettlementSkipped
	}
	s.Record(kernel.NewDomainEvent(orderID, eventType, map[string]string{
		"seller_id": sellerID.String(),
		"item":      item,
		"quantity":  strconv.Itoa(quantity),
		"reason":    string(reason),
	}))

	return s, nil
}

// SettlementSnapshot carries a persisted settlement back into the domain.
type SettlementSnapshot struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	StockID   *kernel.UUID
	SellerID  kernel.UUID
	Item      string
	Quantity  int
	Outcome   Outcome
	Reason    SkipReason
	CreatedAt time.Time
}

func RestoreSettlement(s SettlementSnapshot) (*Settlement, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.OrderID.Validate(),
		s.SellerID.Validate(),
		s.Outcome.Validate(),
		s.Reason.Validate(),
	); err != nil {
		return nil, err
	}

	return &Settlement{
		id:        s.ID,
		orderID:   s.OrderID,
		stockID:   s.StockID,
		sellerID:  s.SellerID,
		item:      s.Item,
		quantity:  s.Quantity,
		outcome:   s.Outcome,
		reason:    s.Reason,
		createdAt: s.CreatedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (s *Settlement) Validate() error {
	if s == nil {
		return ErrSettlementIsNotConstructed
	}
	return s.guard.Validate(ErrSettlementIsNotConstructed)
}

func (s *Settlement) ID() kernel.UUID {
	return s.id
}

func (s *Settlement) OrderID() kernel.UUID {
	return s.orderID
}

// StockID is nil when the settled item did not exist.
func (s *Settlement) StockID() *kernel.UUID {
	return s.stockID
}

func (s *Settlement) SellerID() kernel.UUID {
	return s.sellerID
}

func (s *Settlement) Item() string {
	return s.item
}

func (s *Settlement) Quantity() int {
	return s.quantity
}

func (s *Settlement) Outcome() Outcome {
	return s.outcome
}

func (s *Settlement) Reason() SkipReason {
	return s.reason
}

func (s *Settlement) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Settlement) IsSettled() bool {
	return s.outcome == Settled
}
