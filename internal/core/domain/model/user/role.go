package user

import (
	"fmt"
	"strings"

	"deliveryno/internal/pkg/errs"
)

// Role is the closed set of directory roles. Switches over Role are expected
// to be exhaustive; UnknownRole never grants anything.
type Role int

const (
	UnknownRole Role = iota
	Admin
	Seller
	Driver
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Admin:       "admin",
		Seller:      "seller",
		Driver:      "driver",
	}
}

// ParseRole converts the persisted/wire representation into a Role.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for role, str := range getRoleStrings() {
		if role != UnknownRole && str == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

func (r Role) Validate() error {
	switch r {
	case Admin, Seller, Driver:
		return nil
	case UnknownRole:
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
}
