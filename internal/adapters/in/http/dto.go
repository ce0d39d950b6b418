package http

import (
	"time"

	"deliveryno/internal/core/application/usecases/queries"
	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/core/domain/model/user"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city,omitempty"`
}

type User struct {
	ID        openapi_types.UUID `json:"id"`
	Username  string             `json:"username"`
	Email     string             `json:"email"`
	Role      string             `json:"role"`
	Approved  bool               `json:"approved"`
	Phone     string             `json:"phone,omitempty"`
	City      string             `json:"city,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

type NewOrder struct {
	SellerID      *openapi_types.UUID `json:"sellerId,omitempty"`
	CustomerName  string              `json:"customerName"`
	CustomerPhone string              `json:"customerPhone"`
	Street        string              `json:"street"`
	City          string              `json:"city"`
	Location      string              `json:"location,omitempty"`
	Item          string              `json:"item"`
	Quantity      int                 `json:"quantity"`
	Comment       string              `json:"comment,omitempty"`
}

type OrderEdit struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	Street        string `json:"street"`
	City          string `json:"city"`
	Location      string `json:"location,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

type Order struct {
	ID            openapi_types.UUID  `json:"id"`
	SellerID      openapi_types.UUID  `json:"sellerId"`
	DriverID      *openapi_types.UUID `json:"driverId,omitempty"`
	CustomerName  string              `json:"customerName"`
	CustomerPhone string              `json:"customerPhone"`
	Street        string              `json:"street"`
	City          string              `json:"city"`
	Location      string              `json:"location,omitempty"`
	Item          string              `json:"item"`
	Quantity      int                 `json:"quantity"`
	Status        string              `json:"status"`
	Comment       string              `json:"comment,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type Created struct {
	ID openapi_types.UUID `json:"id"`
}

type DriverAssignment struct {
	DriverID openapi_types.UUID `json:"driverId"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type StatusChangeResult struct {
	Status     string      `json:"status"`
	Settlement *Settlement `json:"settlement,omitempty"`
}

type NewStock struct {
	SellerID *openapi_types.UUID `json:"sellerId,omitempty"`
	Item     string              `json:"item"`
	Quantity int                 `json:"quantity"`
}

type StockUpdate struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

type Stock struct {
	ID        openapi_types.UUID `json:"id"`
	SellerID  openapi_types.UUID `json:"sellerId"`
	Item      string             `json:"item"`
	Quantity  int                `json:"quantity"`
	Approved  bool               `json:"approved"`
	Version   int                `json:"version"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type Settlement struct {
	ID        openapi_types.UUID  `json:"id"`
	OrderID   openapi_types.UUID  `json:"orderId"`
	StockID   *openapi_types.UUID `json:"stockId,omitempty"`
	SellerID  openapi_types.UUID  `json:"sellerId"`
	Item      string              `json:"item"`
	Quantity  int                 `json:"quantity"`
	Outcome   string              `json:"outcome"`
	Reason    string              `json:"reason,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func userFromDomain(u *user.User) User {
	return User{
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

func userFromView(v queries.UserView) User {
	return User{
		ID:        v.ID.Bytes(),
		Username:  v.Username,
		Email:     v.Email,
		Role:      v.Role.String(),
		Approved:  v.Approved,
		Phone:     v.Phone,
		City:      v.City,
		CreatedAt: v.CreatedAt,
	}
}

func orderFromView(v queries.OrderView) Order {
	return Order{
		ID:            v.ID.Bytes(),
		SellerID:      v.SellerID.Bytes(),
		DriverID:      optionalID(v.DriverID),
		CustomerName:  v.CustomerName,
		CustomerPhone: v.CustomerPhone,
		Street:        v.Street,
		City:          v.City,
		Location:      v.Location,
		Item:          v.Item,
		Quantity:      v.Quantity,
		Status:        v.Status.String(),
		Comment:       v.Comment,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func stockFromDomain(s *stock.Stock) Stock {
	return Stock{
		ID:        s.ID().Bytes(),
		SellerID:  s.SellerID().Bytes(),
		Item:      s.Item(),
		Quantity:  s.Quantity(),
		Approved:  s.IsApproved(),
		Version:   s.Version(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func stockFromView(v queries.StockView) Stock {
	return Stock{
		ID:        v.ID.Bytes(),
		SellerID:  v.SellerID.Bytes(),
		Item:      v.Item,
		Quantity:  v.Quantity,
		Approved:  v.Approved,
		Version:   v.Version,
		UpdatedAt: v.UpdatedAt,
	}
}

func settlementFromDomain(s *stock.Settlement) *Settlement {
	if s == nil {
		return nil
	}
	return &Settlement{
		ID:        s.ID().Bytes(),
		OrderID:   s.OrderID().Bytes(),
		StockID:   optionalID(s.StockID()),
		SellerID:  s.SellerID().Bytes(),
		Item:      s.Item(),
		Quantity:  s.Quantity(),
		Outcome:   string(s.Outcome()),
		Reason:    string(s.Reason()),
		CreatedAt: s.CreatedAt(),
	}
}

func settlementFromView(v queries.SettlementView) Settlement {
	return Settlement{
		ID:        v.ID.Bytes(),
		OrderID:   v.OrderID.Bytes(),
		StockID:   optionalID(v.StockID),
		SellerID:  v.SellerID.Bytes(),
		Item:      v.Item,
		Quantity:  v.Quantity,
		Outcome:   string(v.Outcome),
		Reason:    string(v.Reason),
		CreatedAt: v.CreatedAt,
	}
}
