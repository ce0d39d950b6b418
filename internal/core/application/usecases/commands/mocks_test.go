package commands_test

import (
	"context"
	"testing"

	"deliveryno/internal/core/application/usecases/commands"
	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, events ...kernel.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetUnprocessed(ctx context.Context, limit int) ([]kernel.DomainEvent, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]kernel.DomainEvent)
	return events, args.Error(1)
}

func (m *MockOutboxRepository) MarkProcessed(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, event kernel.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockUoW satisfies every unit of work view used by the handlers.
type MockUoW struct {
	mock.Mock

	orders      ports.OrderRepository
	stocks      ports.StockRepository
	settlements ports.SettlementRepository
	users       ports.UserRepository
	outbox      ports.OutboxRepository
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository           { return m.orders }
func (m *MockUoW) StockRepository() ports.StockRepository           { return m.stocks }
func (m *MockUoW) SettlementRepository() ports.SettlementRepository { return m.settlements }
func (m *MockUoW) UserRepository() ports.UserRepository             { return m.users }
func (m *MockUoW) OutboxRepository() ports.OutboxRepository         { return m.outbox }

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStockUoWFactory struct{ mock.Mock }

func (m *MockStockUoWFactory) Create() commands.StockUoW {
	args := m.Called()
	return args.Get(0).(commands.StockUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

func newActor(t *testing.T, role user.Role) user.Actor {
	t.Helper()
	a, err := user.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newCustomer(t *testing.T) order.Customer {
	t.Helper()
	c, err := order.NewCustomer("Jane Doe", "+15550100")
	require.NoError(t, err)
	return c
}

func newAddress(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("1 Main St", "Springfield")
	require.NoError(t, err)
	return a
}

// restoreOrder builds a stored order in status, assigned to driverID when given.
func restoreOrder(
	t *testing.T, sellerID kernel.UUID, driverID *kernel.UUID, status order.Status, item string, quantity int,
) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:       kernel.NewUUID(),
		SellerID: sellerID,
		DriverID: driverID,
		Customer: newCustomer(t),
		Address:  newAddress(t),
		Item:     item,
		Quantity: quantity,
		Status:   status,
	})
	require.NoError(t, err)
	return o
}

func restoreStock(t *testing.T, sellerID kernel.UUID, item string, quantity int, approved bool) *stock.Stock {
	t.Helper()
	s, err := stock.RestoreStock(stock.Snapshot{
		ID:       kernel.NewUUID(),
		SellerID: sellerID,
		Item:     item,
		Quantity: quantity,
		Approved: approved,
		Version:  1,
	})
	require.NoError(t, err)
	return s
}
