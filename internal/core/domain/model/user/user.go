package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/pkg/errs"
	"deliveryno/internal/pkg/guard"
)

const maxPhoneLength = 20

// ErrUserIsNotConstructed is returned when using a User that bypassed NewUser/RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a directory entry. New sellers and drivers wait for admin approval
// before they can act or be assigned to orders.
type User struct {
	id        kernel.UUID
	username  string
	email     string
	role      Role
	approved  bool
	phone     string
	city      string
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewUser registers a seller or driver awaiting approval.
func NewUser(id kernel.UUID, username, email string, role Role, phone, city string) (*User, error) {
	u := &User{
		approved:  false,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setUsername(username),
		u.setEmail(email),
		u.setRole(role),
		u.setPhone(phone),
	); err != nil {
		return nil, err
	}
	u.city = strings.TrimSpace(city)

	return u, nil
}

// NewAdmin creates an approved admin; it is only used to bootstrap the directory.
func NewAdmin(id kernel.UUID, username, email string) (*User, error) {
	u, err := NewUser(id, username, email, Admin, "", "")
	if err != nil {
		return nil, err
	}
	u.approved = true
	return u, nil
}

// RestoreUser rebuilds a persisted user without re-running registration rules.
func RestoreUser(
	id kernel.UUID, username, email string, role Role, approved bool, phone, city string, createdAt time.Time,
) *User {
	return &User{
		id:        id,
		username:  username,
		email:     email,
		role:      role,
		approved:  approved,
		phone:     phone,
		city:      city,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) IsApproved() bool {
	return u.approved
}

func (u *User) Phone() string {
	return u.phone
}

func (u *User) City() string {
	return u.city
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// Approve lets the user act. Only admins approve, approving twice is a no-op.
func (u *User) Approve(actor Actor) error {
	if !actor.IsAdmin() {
		return errs.NewPermissionDeniedError(actor.Role().String(), "approve users")
	}
	u.approved = true
	return nil
}

// AsActor returns the Actor this user acts as. Unapproved users cannot act.
func (u *User) AsActor() (Actor, error) {
	if !u.approved {
		return Actor{}, errs.NewPermissionDeniedError(u.role.String(), "act before approval")
	}
	return NewActor(u.id, u.role)
}

// CanDrive reports whether the user may be assigned to deliver orders.
func (u *User) CanDrive() bool {
	return u.approved && u.role == Driver
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if err := kernel.ValidateText("username", username); err != nil {
		return err
	}
	u.username = username
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if len(phone) > maxPhoneLength {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"phone", len(phone), 0, maxPhoneLength, fmt.Errorf("%q is too long", phone))
	}
	u.phone = phone
	return nil
}
