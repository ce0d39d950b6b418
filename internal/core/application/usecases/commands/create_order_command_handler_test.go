package commands_test

import (
	"errors"
	"testing"
	"time"

	"deliveryno/internal/core/application/usecases/commands"
	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, actor user.Actor, sellerID kernel.UUID, quantity int) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		actor, kernel.NewUUID(), sellerID, newCustomer(t), newAddress(t), kernel.MapLink{}, "Widget", quantity, "")
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	seller := newActor(t, user.Seller)
	widget := restoreStock(t, seller.ID(), "Widget", 50, true)
	cmd := newCreateOrderCommand(t, seller, seller.ID(), 2)

	repo := new(MockOrderRepository)
	stocks := newMemStockRepository(widget)
	uow := &MockUoW{orders: repo, stocks: stocks}
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.ID().IsEqual(cmd.OrderID()) && o.Status() == order.Pending
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, newLedger())
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 50, stocks.quantity(widget.ID()), "creation must not reserve stock")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AdminChecksSeller(t *testing.T) {
	ctx := t.Context()
	admin := newActor(t, user.Admin)
	driverID := kernel.NewUUID()
	driver := user.RestoreUser(driverID, "dave", "dave@example.com", user.Driver, true, "", "", time.Now())
	cmd := newCreateOrderCommand(t, admin, driverID, 1)

	users := new(MockUserRepository)
	users.On("Get", mock.Anything, driverID).Return(driver, nil).Once()
	uow := &MockUoW{users: users, orders: new(MockOrderRepository), stocks: newMemStockRepository()}
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	err := commands.NewCreateOrderCommandHandler(factory, newLedger()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_Unavailable(t *testing.T) {
	ctx := t.Context()
	seller := newActor(t, user.Seller)

	testCases := []struct {
		name  string
		stock []*stock.Stock
		want  error
	}{
		{"no such item", nil, stock.ErrItemNotFound},
		{"not approved", []*stock.Stock{restoreStock(t, seller.ID(), "Widget", 50, false)}, stock.ErrApprovalPending},
		{"too few", []*stock.Stock{restoreStock(t, seller.ID(), "Widget", 1, true)}, stock.ErrInsufficientStock},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockOrderRepository)
			uow := &MockUoW{orders: repo, stocks: newMemStockRepository(tc.stock...)}
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)
			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			err := commands.NewCreateOrderCommandHandler(factory, newLedger()).
				Handle(ctx, newCreateOrderCommand(t, seller, seller.ID(), 2))

			require.ErrorIs(t, err, tc.want)
			repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			uow.AssertExpectations(t)
		})
	}
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, newLedger())

	err := h.Handle(ctx, commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	seller := newActor(t, user.Seller)

	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	err := commands.NewCreateOrderCommandHandler(factory, newLedger()).
		Handle(ctx, newCreateOrderCommand(t, seller, seller.ID(), 1))

	require.Error(t, err)
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	seller := newActor(t, user.Seller)

	repo := new(MockOrderRepository)
	uow := &MockUoW{orders: repo, stocks: newMemStockRepository(restoreStock(t, seller.ID(), "Widget", 5, true))}
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	err := commands.NewCreateOrderCommandHandler(factory, newLedger()).
		Handle(ctx, newCreateOrderCommand(t, seller, seller.ID(), 1))

	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PaddedItemName(t *testing.T) {
	ctx := t.Context()
	seller := newActor(t, user.Seller)
	widget := restoreStock(t, seller.ID(), "Widget", 50, true)

	cmd, err := commands.NewCreateOrderCommand(
		seller, kernel.NewUUID(), seller.ID(), newCustomer(t), newAddress(t), kernel.MapLink{}, "  Widget ", 2, "")
	require.NoError(t, err)
	assert.Equal(t, "Widget", cmd.Item())

	repo := new(MockOrderRepository)
	uow := &MockUoW{orders: repo, stocks: newMemStockRepository(widget)}
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Item() == "Widget"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	require.NoError(t, commands.NewCreateOrderCommandHandler(factory, newLedger()).Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
