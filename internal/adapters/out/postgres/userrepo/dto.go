// Package userrepo persists the user directory with GORM.
package userrepo

import (
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"size:255;not null;uniqueIndex"`
	Email     string    `gorm:"size:255;not null;uniqueIndex"`
	Role      string    `gorm:"size:16;not null;index"`
	Approved  bool      `gorm:"not null;default:false"`
	Phone     string    `gorm:"size:20"`
	City      string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID().Bytes(),
		Username:  u.Username(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		Approved:  u.IsApproved(),
		Phone:     u.Phone(),
		City:      u.City(),
		CreatedAt: u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Username, dto.Email, role, dto.Approved, dto.Phone, dto.City, dto.CreatedAt), nil
}
