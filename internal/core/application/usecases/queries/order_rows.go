package queries

import (
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRow struct {
	ID            uuid.UUID
	SellerID      uuid.UUID
	DriverID      *uuid.UUID
	CustomerName  string
	CustomerPhone string
	Street        string
	City          string
	Location      string
	ItemName      string
	Quantity      int
	Status        string
	Comment       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r orderRow) toView() (OrderView, error) {
	id, err := kernel.UUIDFromGoogle(r.ID)
	if err != nil {
		return OrderView{}, err
	}
	sellerID, err := kernel.UUIDFromGoogle(r.SellerID)
	if err != nil {
		return OrderView{}, err
	}
	var driverID *kernel.UUID
	if r.DriverID != nil {
		dID, driverErr := kernel.UUIDFromGoogle(*r.DriverID)
		if driverErr != nil {
			return OrderView{}, driverErr
		}
		driverID = &dID
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:            id,
		SellerID:      sellerID,
		DriverID:      driverID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Street:        r.Street,
		City:          r.City,
		Location:      r.Location,
		Item:          r.ItemName,
		Quantity:      r.Quantity,
		Status:        status,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

// visibleOrders scopes an orders query to what actor may see.
func visibleOrders(db *gorm.DB, actor user.Actor) *gorm.DB {
	q := db.Table("orders")
	switch actor.Role() {
	case user.Admin:
		return q
	case user.Seller:
		return q.Where("seller_id = ?", actor.ID().Bytes())
	case user.Driver:
		return q.Where("driver_id = ?", actor.ID().Bytes())
	case user.UnknownRole:
	}
	return q.Where("1 = 0")
}
