package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"deliveryno/internal/core/application/usecases/commands"
	"deliveryno/internal/core/application/usecases/queries"
	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	RegisterUser      commands.RegisterUserCommandHandler
	ApproveUser       commands.ApproveUserCommandHandler
	CreateOrder       commands.CreateOrderCommandHandler
	EditOrder         commands.EditOrderCommandHandler
	DeleteOrder       commands.DeleteOrderCommandHandler
	AssignDriver      commands.AssignDriverCommandHandler
	ChangeOrderStatus commands.ChangeOrderStatusCommandHandler
	CreateStock       commands.CreateStockCommandHandler
	UpdateStock       commands.UpdateStockCommandHandler
	ApproveStock      commands.ApproveStockCommandHandler
	DeleteStock       commands.DeleteStockCommandHandler

	GetOrders      queries.GetOrdersQueryHandler
	GetOrder       queries.GetOrderQueryHandler
	GetStock       queries.GetStockQueryHandler
	GetStockItem   queries.GetStockItemQueryHandler
	GetSettlements queries.GetSettlementsQueryHandler
	GetUsers       queries.GetUsersQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http"),
	}
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return kernel.UUIDFromGoogle(raw)
}

func queryParam[T any](c echo.Context, name string) (*T, error) {
	var value *T
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func optionalUUID(raw *openapi_types.UUID) (kernel.UUID, error) {
	if raw == nil {
		return kernel.UUID{}, nil
	}
	return kernel.UUIDFromGoogle(*raw)
}

func bind(c echo.Context, body any) error {
	if err := c.Bind(body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// RegisterUser handles POST /api/v1/users.
func (s *Server) RegisterUser(c echo.Context) error {
	var body NewUser
	if err := bind(c, &body); err != nil {
		return err
	}
	role, err := user.ParseRole(body.Role)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), body.Username, body.Email, role, body.Phone, body.City)
	if err != nil {
		return err
	}
	u, err := s.h.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userFromDomain(u))
}

// ApproveUser handles POST /api/v1/users/{userId}/approve.
func (s *Server) ApproveUser(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewApproveUserCommand(actor, userID)
	if err != nil {
		return err
	}
	u, err := s.h.ApproveUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userFromDomain(u))
}

// GetUsers handles GET /api/v1/users.
func (s *Server) GetUsers(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	rawRole, err := queryParam[string](c, "role")
	if err != nil {
		return err
	}
	pending, err := queryParam[bool](c, "pending")
	if err != nil {
		return err
	}

	role := user.UnknownRole
	if rawRole != nil {
		if role, err = user.ParseRole(*rawRole); err != nil {
			return err
		}
	}

	query, err := queries.NewGetUsersQuery(actor, role, pending != nil && *pending)
	if err != nil {
		return err
	}
	users, err := s.h.GetUsers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]User, len(users))
	for i, u := range users {
		response[i] = userFromView(u)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	rawStatus, err := queryParam[string](c, "status")
	if err != nil {
		return err
	}

	var status *order.Status
	if rawStatus != nil {
		parsed, parseErr := order.ParseStatus(*rawStatus)
		if parseErr != nil {
			return parseErr
		}
		status = &parsed
	}

	query, err := queries.NewGetOrdersQuery(actor, status)
	if err != nil {
		return err
	}
	orders, err := s.h.GetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = orderFromView(o)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromView(view))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body NewOrder
	if err = bind(c, &body); err != nil {
		return err
	}

	sellerID, err := optionalUUID(body.SellerID)
	if err != nil {
		return err
	}
	customer, address, location, err := deliveryDetails(
		body.CustomerName, body.CustomerPhone, body.Street, body.City, body.Location)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		actor, orderID, sellerID, customer, address, location, body.Item, body.Quantity, body.Comment)
	if err != nil {
		return err
	}
	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: orderID.Bytes()})
}

// EditOrder handles PATCH /api/v1/orders/{orderId}.
func (s *Server) EditOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var body OrderEdit
	if err = bind(c, &body); err != nil {
		return err
	}

	customer, address, location, err := deliveryDetails(
		body.CustomerName, body.CustomerPhone, body.Street, body.City, body.Location)
	if err != nil {
		return err
	}

	cmd, err := commands.NewEditOrderCommand(actor, orderID, customer, address, location, body.Comment)
	if err != nil {
		return err
	}
	if err = s.h.EditOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(actor, orderID)
	if err != nil {
		return err
	}
	if err = s.h.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignDriver handles POST /api/v1/orders/{orderId}/driver.
func (s *Server) AssignDriver(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var body DriverAssignment
	if err = bind(c, &body); err != nil {
		return err
	}
	driverID, err := kernel.UUIDFromGoogle(body.DriverID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDriverCommand(actor, orderID, driverID)
	if err != nil {
		return err
	}
	if err = s.h.AssignDriver.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var body StatusChange
	if err = bind(c, &body); err != nil {
		return err
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actor, orderID, status)
	if err != nil {
		return err
	}
	result, err := s.h.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusChangeResult{
		Status:     result.Status.String(),
		Settlement: settlementFromDomain(result.Settlement),
	})
}

// GetOrderSettlements handles GET /api/v1/orders/{orderId}/settlements.
func (s *Server) GetOrderSettlements(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetSettlementsQuery(actor, &orderID, "")
	if err != nil {
		return err
	}
	return s.settlements(c, query)
}

// GetSettlements handles GET /api/v1/settlements.
func (s *Server) GetSettlements(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	outcome, err := queryParam[string](c, "outcome")
	if err != nil {
		return err
	}

	var filter stock.Outcome
	if outcome != nil {
		filter = stock.Outcome(*outcome)
	}
	query, err := queries.NewGetSettlementsQuery(actor, nil, filter)
	if err != nil {
		return err
	}
	return s.settlements(c, query)
}

func (s *Server) settlements(c echo.Context, query queries.GetSettlementsQuery) error {
	settlements, err := s.h.GetSettlements.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Settlement, len(settlements))
	for i, v := range settlements {
		response[i] = settlementFromView(v)
	}
	return c.JSON(http.StatusOK, response)
}

// GetStock handles GET /api/v1/stock.
func (s *Server) GetStock(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	rawSeller, err := queryParam[openapi_types.UUID](c, "sellerId")
	if err != nil {
		return err
	}

	var sellerID *kernel.UUID
	if rawSeller != nil {
		id, idErr := kernel.UUIDFromGoogle(*rawSeller)
		if idErr != nil {
			return idErr
		}
		sellerID = &id
	}

	query, err := queries.NewGetStockQuery(actor, sellerID)
	if err != nil {
		return err
	}
	entries, err := s.h.GetStock.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Stock, len(entries))
	for i, v := range entries {
		response[i] = stockFromView(v)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateStock handles POST /api/v1/stock.
func (s *Server) CreateStock(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body NewStock
	if err = bind(c, &body); err != nil {
		return err
	}
	sellerID, err := optionalUUID(body.SellerID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateStockCommand(actor, kernel.NewUUID(), sellerID, body.Item, body.Quantity)
	if err != nil {
		return err
	}
	entry, err := s.h.CreateStock.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, stockFromDomain(entry))
}

// GetStockItem handles GET /api/v1/stock/{stockId}.
func (s *Server) GetStockItem(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	stockID, err := pathUUID(c, "stockId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetStockItemQuery(actor, stockID)
	if err != nil {
		return err
	}
	entry, err := s.h.GetStockItem.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stockFromView(entry))
}

// DeleteStock handles DELETE /api/v1/stock/{stockId}.
func (s *Server) DeleteStock(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	stockID, err := pathUUID(c, "stockId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteStockCommand(actor, stockID)
	if err != nil {
		return err
	}
	if err = s.h.DeleteStock.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStock handles PATCH /api/v1/stock/{stockId}.
func (s *Server) UpdateStock(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	stockID, err := pathUUID(c, "stockId")
	if err != nil {
		return err
	}
	var body StockUpdate
	if err = bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateStockCommand(actor, stockID, body.Item, body.Quantity)
	if err != nil {
		return err
	}
	entry, err := s.h.UpdateStock.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stockFromDomain(entry))
}

// ApproveStock handles POST /api/v1/stock/{stockId}/approve.
func (s *Server) ApproveStock(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	stockID, err := pathUUID(c, "stockId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewApproveStockCommand(actor, stockID)
	if err != nil {
		return err
	}
	entry, err := s.h.ApproveStock.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stockFromDomain(entry))
}

func deliveryDetails(
	name, phone, street, city, location string,
) (order.Customer, kernel.Address, kernel.MapLink, error) {
	customer, customerErr := order.NewCustomer(name, phone)
	address, addressErr := kernel.NewAddress(street, city)
	link, linkErr := kernel.NewMapLink(location)
	if err := errors.Join(customerErr, addressErr, linkErr); err != nil {
		return order.Customer{}, kernel.Address{}, kernel.MapLink{}, err
	}
	return customer, address, link, nil
}
