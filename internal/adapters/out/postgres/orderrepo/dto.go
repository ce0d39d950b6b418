// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"time"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of the orders table.
type OrderDTO struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	SellerID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	DriverID  *uuid.UUID  `gorm:"type:uuid;index"`
	Customer  CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Street    string      `gorm:"size:255;not null"`
	City      string      `gorm:"size:255;not null"`
	Location  string      `gorm:"size:2048"`
	ItemName  string      `gorm:"size:255;not null"`
	Quantity  int         `gorm:"not null;check:quantity > 0"`
	Status    string      `gorm:"size:16;not null;index"`
	Comment   string      `gorm:"type:text"`
	CreatedAt time.Time   `gorm:"not null;index"`
	UpdatedAt time.Time   `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type CustomerDTO struct {
	Name  string `gorm:"size:255;not null"`
	Phone string `gorm:"size:20;not null"`
}

func fromDomain(o *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := o.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:       o.ID().Bytes(),
		SellerID: o.SellerID().Bytes(),
		DriverID: driverID,
		Customer: CustomerDTO{
			Name:  o.Customer().Name(),
			Phone: o.Customer().Phone(),
		},
		Street:    o.Address().Street(),
		City:      o.Address().City(),
		Location:  o.Location().String(),
		ItemName:  o.Item(),
		Quantity:  o.Quantity(),
		Status:    o.Status().String(),
		Comment:   o.Comment(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromGoogle(dto.SellerID)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromGoogle(*dto.DriverID)
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	customer, err := order.NewCustomer(dto.Customer.Name, dto.Customer.Phone)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(dto.Street, dto.City)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewMapLink(dto.Location)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:        id,
		SellerID:  sellerID,
		DriverID:  driverID,
		Customer:  customer,
		Address:   address,
		Location:  location,
		Item:      dto.ItemName,
		Quantity:  dto.Quantity,
		Status:    status,
		Comment:   dto.Comment,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
