package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

// Event types recorded by Order.
const (
	EventOrderCreated       = "OrderCreated"
	EventDriverAssigned     = "DriverAssigned"
	EventOrderStatusChanged = "OrderStatusChanged"
)

const maxCommentLength = 2000

var (
	// ErrOrderIsNotConstructed is returned when an Order bypassed NewOrder/RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrDriverIsRequired is returned when moving to assigned without a driver.
	ErrDriverIsRequired = errs.NewValueIsRequiredError("driver")
)

// TransitionPolicy decides whether an actor in the given role may move an
// order from current to requested.
type TransitionPolicy interface {
	Validate(current, requested Status, role user.Role, isAssignedDriver bool) error
}

// Order is the aggregate root of the delivery workflow. It is owned by exactly
// one seller, optionally carries the driver assigned by an admin, and always
// starts at Pending.
type Order struct {
	kernel.EventRecorder

	id        kernel.UUID
	sellerID  kernel.UUID
	driverID  *kernel.UUID
	customer  Customer
	address   kernel.Address
	location  kernel.MapLink
	item      string
	quantity  int
	status    Status
	comment   string
	createdAt time.Time
	updatedAt time.Time
	guard     guard.ConstructorGuard
}

// NewOrder creates a Pending order and records OrderCreated. Stock availability
// is checked by the caller before the order is persisted.
func NewOrder(
	id, sellerID kernel.UUID,
	customer Customer,
	address kernel.Address,
	location kernel.MapLink,
	item string,
	quantity int,
	comment string,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setSeller(sellerID),
		o.setCustomer(customer),
		o.setAddress(address),
		o.setItem(item),
		o.setQuantity(quantity),
		o.setComment(comment),
	); err != nil {
		return nil, err
	}
	o.location = location

	o.Record(kernel.NewDomainEvent(o.id, EventOrderCreated, map[string]string{
		"seller_id": o.sellerID.String(),
		"item":      o.item,
		"quantity":  strconv.Itoa(o.quantity),
		"customer":  o.customer.Name(),
		"address":   o.address.String(),
	}))

	return o, nil
}

// Snapshot carries the persisted state of an order back into the domain.
type Snapshot struct {
	ID        kernel.UUID
	SellerID  kernel.UUID
	DriverID  *kernel.UUID
	Customer  Customer
	Address   kernel.Address
	Location  kernel.MapLink
	Item      string
	Quantity  int
	Status    Status
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestoreOrder rebuilds an order from persistence. It checks the structural
// invariants that hold for every stored order, but records no events.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		driverID:  s.DriverID,
		location:  s.Location,
		comment:   s.Comment,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setSeller(s.SellerID),
		o.setCustomer(s.Customer),
		o.setAddress(s.Address),
		o.setItem(s.Item),
		o.setQuantity(s.Quantity),
		o.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	if o.driverID == nil && o.status != Pending && o.status != Canceled {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"driver", fmt.Errorf("%s order must have a driver", o.status))
	}

	return o, nil
}

// Validate ensures the Order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) SellerID() kernel.UUID {
	return o.sellerID
}

// DriverID returns the assigned driver, nil when unassigned.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

func (o *Order) Customer() Customer {
	return o.customer
}

func (o *Order) Address() kernel.Address {
	return o.address
}

func (o *Order) Location() kernel.MapLink {
	return o.location
}

func (o *Order) Item() string {
	return o.item
}

func (o *Order) Quantity() int {
	return o.quantity
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Comment() string {
	return o.comment
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsAssignedDriver reports whether actor is the driver currently assigned.
func (o *Order) IsAssignedDriver(actor user.Actor) bool {
	return actor.IsDriver() && o.driverID != nil && actor.Is(*o.driverID)
}

// IsOwnedBy reports whether actor is the seller that owns the order.
func (o *Order) IsOwnedBy(actor user.Actor) bool {
	return actor.IsSeller() && actor.Is(o.sellerID)
}

// VisibleTo applies role-based visibility: admins see every order, sellers
// their own, drivers the ones assigned to them.
func (o *Order) VisibleTo(actor user.Actor) bool {
	switch actor.Role() {
	case user.Admin:
		return true
	case user.Seller:
		return o.IsOwnedBy(actor)
	case user.Driver:
		return o.IsAssignedDriver(actor)
	case user.UnknownRole:
	}
	return false
}

// AssignDriver attaches driver and moves a pending order to assigned.
// Re-assigning an assigned order to another driver is allowed.
func (o *Order) AssignDriver(actor user.Actor, driver *user.User, policy TransitionPolicy) error {
	if !actor.IsAdmin() {
		return errs.NewPermissionDeniedError(actor.Role().String(), "assign drivers")
	}
	if err := driver.Validate(); err != nil {
		return err
	}
	if !driver.CanDrive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver", fmt.Errorf("user %s is not an approved driver", driver.ID()))
	}
	if err := policy.Validate(o.status, Assigned, actor.Role(), false); err != nil {
		return err
	}

	driverID := driver.ID()
	o.driverID = &driverID
	o.status = Assigned
	o.touch()

	o.Record(kernel.NewDomainEvent(o.id, EventDriverAssigned, map[string]string{
		"driver_id": driverID.String(),
		"driver":    driver.Username(),
		"item":      o.item,
	}))
	return nil
}

// ChangeStatus applies a status update requested by actor. It reports whether
// the order entered Delivered in this call, which is the only moment stock is
// settled. Same-status writes on non-terminal orders succeed without effect.
func (o *Order) ChangeStatus(actor user.Actor, to Status, policy TransitionPolicy) (bool, error) {
	if err := policy.Validate(o.status, to, actor.Role(), o.IsAssignedDriver(actor)); err != nil {
		return false, err
	}
	if to == o.status {
		return false, nil
	}
	if to == Assigned && o.driverID == nil {
		return false, ErrDriverIsRequired
	}

	from := o.status
	if to == Pending {
		o.driverID = nil
	}
	o.status = to
	o.touch()

	o.Record(kernel.NewDomainEvent(o.id, EventOrderStatusChanged, map[string]string{
		"from":  from.String(),
		"to":    to.String(),
		"actor": actor.String(),
		"item":  o.item,
	}))
	return to == Delivered, nil
}

// Edit updates the delivery details of a pending order. Admins may edit any
// order, sellers only their own. Item and quantity are fixed at creation.
func (o *Order) Edit(
	actor user.Actor, customer Customer, address kernel.Address, location kernel.MapLink, comment string,
) error {
	if !actor.IsAdmin() && !o.IsOwnedBy(actor) {
		return errs.NewPermissionDeniedError(actor.Role().String(), "edit this order")
	}
	if o.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s order cannot be edited", o.status))
	}

	if err := errors.Join(
		o.setCustomer(customer),
		o.setAddress(address),
		o.setComment(comment),
	); err != nil {
		return err
	}
	o.location = location
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSeller(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("seller", err)
	}
	o.sellerID = sellerID
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setItem(item string) error {
	item = strings.TrimSpace(item)
	if err := kernel.ValidateText("item", item); err != nil {
		return err
	}
	o.item = item
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if len(comment) > maxCommentLength {
		return errs.NewValueIsOutOfRangeError("comment", len(comment), 0, maxCommentLength)
	}
	o.comment = comment
	return nil
}
