package queries

import (
	"context"
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetUsersQueryHandler struct {
	db *gorm.DB
}

func NewGetUsersQueryHandler(db *gorm.DB) GetUsersQueryHandler {
	return GetUsersQueryHandler{db: db}
}

type userRow struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Role      string
	Approved  bool
	Phone     string
	City      string
	CreatedAt time.Time
}

func (h GetUsersQueryHandler) Handle(ctx context.Context, query GetUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).Table("users")
	if query.role != user.UnknownRole {
		q = q.Where("role = ?", query.role.String())
	}
	if query.pendingOnly {
		q = q.Where("approved = ?", false)
	}

	var rows []userRow
	if err := q.Order("username").Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]UserView, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromGoogle(row.ID)
		if err != nil {
			return nil, err
		}
		role, err := user.ParseRole(row.Role)
		if err != nil {
			return nil, err
		}
		users = append(users, UserView{
			ID:        id,
			Username:  row.Username,
			Email:     row.Email,
			Role:      role,
			Approved:  row.Approved,
			Phone:     row.Phone,
			City:      row.City,
			CreatedAt: row.CreatedAt,
		})
	}
	return users, nil
}
