package stock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

var (
	// ErrItemNotFound is returned when a seller has no stock entry for an item.
	// Errors built by NewItemNotFoundError also match errs.ErrObjectNotFound.
	ErrItemNotFound = errors.New("item not found")
	// ErrApprovalPending is returned when ordering against unapproved stock.
	ErrApprovalPending = errors.New("stock approval pending")
	// ErrInsufficientStock is returned when the requested quantity exceeds stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStockIsNotConstructed is returned when a Stock bypassed its constructors.
	ErrStockIsNotConstructed = errors.New("Stock must be created via NewStock constructor")
)

// NewItemNotFoundError reports that sellerID has no entry named item.
func NewItemNotFoundError(sellerID kernel.UUID, item string) error {
	return fmt.Errorf("%w: %w", ErrItemNotFound,
		errs.NewObjectNotFoundError("stock", sellerID.String()+"/"+item))
}

// Stock is the quantity of one item a seller holds.
type Stock struct {
	id        kernel.UUID
	sellerID  kernel.UUID
	item      string
	quantity  int
	approved  bool
	version   int
	loaded    int
	createdAt time.Time
	updatedAt time.Time
	guard     guard.ConstructorGuard
}

// NewStock creates an entry. A seller may only create stock for itself and it
// starts unapproved; an admin creates approved stock for any seller.
func NewStock(actor user.Actor, id, sellerID kernel.UUID, item string, quantity int) (*Stock, error) {
	var approved bool
	switch actor.Role() {
	case user.Admin:
		approved = true
	case user.Seller:
		if !actor.Is(sellerID) {
			return nil, errs.NewPermissionDeniedError("seller", "create stock for another seller")
		}
	default:
		return nil, errs.NewPermissionDeniedError(actor.Role().String(), "create stock")
	}

	now := time.Now().UTC()
	s := &Stock{
		approved:  approved,
		version:   1,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setSeller(sellerID),
		s.setItem(item),
		s.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Snapshot carries persisted stock back into the domain.
type Snapshot struct {
	ID        kernel.UUID
	SellerID  kernel.UUID
	Item      string
	Quantity  int
	Approved  bool
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func RestoreStock(s Snapshot) (*Stock, error) {
	st := &Stock{
		approved:  s.Approved,
		version:   s.Version,
		loaded:    s.Version,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		st.setID(s.ID),
		st.setSeller(s.SellerID),
		st.setItem(s.Item),
		st.setQuantity(s.Quantity),
	); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *Stock) Validate() error {
	if s == nil {
		return ErrStockIsNotConstructed
	}
	return s.guard.Validate(ErrStockIsNotConstructed)
}

func (s *Stock) ID() kernel.UUID {
	return s.id
}

func (s *Stock) SellerID() kernel.UUID {
	return s.sellerID
}

func (s *Stock) Item() string {
	return s.item
}

func (s *Stock) Quantity() int {
	return s.quantity
}

func (s *Stock) IsApproved() bool {
	return s.approved
}

// Version increases on every change and guards against lost updates.
func (s *Stock) Version() int {
	return s.version
}

// LoadedVersion is the version the entry had when it was read from storage,
// zero for an entry that has never been stored.
func (s *Stock) LoadedVersion() int {
	return s.loaded
}

func (s *Stock) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Stock) UpdatedAt() time.Time {
	return s.updatedAt
}

// VisibleTo reports whether actor may see this entry. Drivers see no stock.
func (s *Stock) VisibleTo(actor user.Actor) bool {
	switch actor.Role() {
	case user.Admin:
		return true
	case user.Seller:
		return actor.Is(s.sellerID)
	case user.Driver, user.UnknownRole:
	}
	return false
}

// Update changes the item name and quantity. An admin edit keeps the current
// approval, an edit by the owning seller resets it.
func (s *Stock) Update(actor user.Actor, item string, quantity int) error {
	switch {
	case actor.IsAdmin():
	case actor.IsSeller() && actor.Is(s.sellerID):
	default:
		return errs.NewPermissionDeniedError(actor.Role().String(), "edit this stock")
	}

	if err := errors.Join(s.setItem(item), s.setQuantity(quantity)); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		s.approved = false
	}
	s.touch()
	return nil
}

// CheckDeletable returns a permission error unless actor is an admin or the
// owning seller.
func (s *Stock) CheckDeletable(actor user.Actor) error {
	switch {
	case actor.IsAdmin():
	case actor.IsSeller() && actor.Is(s.sellerID):
	default:
		return errs.NewPermissionDeniedError(actor.Role().String(), "delete this stock")
	}
	return nil
}

// Approve makes the entry orderable. Only admins approve.
func (s *Stock) Approve(actor user.Actor) error {
	if !actor.IsAdmin() {
		return errs.NewPermissionDeniedError(actor.Role().String(), "approve stock")
	}
	if s.approved {
		return nil
	}
	s.approved = true
	s.touch()
	return nil
}

// CheckAvailability reports whether an order of quantity may be created
// against this entry. It never mutates the stock.
func (s *Stock) CheckAvailability(quantity int) error {
	if !s.approved {
		return fmt.Errorf("%w: %s", ErrApprovalPending, s.item)
	}
	if s.quantity < quantity {
		return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, s.item, s.quantity, quantity)
	}
	return nil
}

// Decrement removes quantity units. The stock is left untouched when fewer
// than quantity units remain.
func (s *Stock) Decrement(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if s.quantity < quantity {
		return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, s.item, s.quantity, quantity)
	}
	s.quantity -= quantity
	s.touch()
	return nil
}

func (s *Stock) touch() {
	s.version++
	s.updatedAt = time.Now().UTC()
}

func (s *Stock) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Stock) setSeller(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("seller", err)
	}
	s.sellerID = sellerID
	return nil
}

func (s *Stock) setItem(item string) error {
	item = strings.TrimSpace(item)
	if err := kernel.ValidateText("item name", item); err != nil {
		return err
	}
	s.item = item
	return nil
}

func (s *Stock) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", quantity))
	}
	s.quantity = quantity
	return nil
}
