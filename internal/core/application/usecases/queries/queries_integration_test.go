package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "deliveryno/internal/adapters/out/postgres"
	"deliveryno/internal/adapters/out/postgres/pgtest"
	"deliveryno/internal/core/application/usecases/queries"
	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/order"
	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/core/domain/model/user"
	"deliveryno/internal/core/ports"
	"deliveryno/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory

	admin    user.Actor
	seller   user.Actor
	other    user.Actor
	driver   user.Actor
	outsider user.Actor
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgres_adapter.Models()...)
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)

	suite.admin = suite.actor(user.Admin)
	suite.seller = suite.actor(user.Seller)
	suite.other = suite.actor(user.Seller)
	suite.driver = suite.actor(user.Driver)
	suite.outsider = suite.actor(user.Driver)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate("orders", "stocks", "settlements", "users", "outbox_messages"))
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) actor(role user.Role) user.Actor {
	a, err := user.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return a
}

func (suite *QueriesIntegrationTestSuite) inTx(fn func(uow ports.UnitOfWork)) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	fn(uow)
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *QueriesIntegrationTestSuite) seedOrder(
	sellerID kernel.UUID, driverID *kernel.UUID, status order.Status, createdAt time.Time,
) kernel.UUID {
	customer, err := order.NewCustomer("Jane Doe", "+15550100")
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("1 Main St", "Springfield")
	suite.Require().NoError(err)

	o, err := order.RestoreOrder(order.Snapshot{
		ID:        kernel.NewUUID(),
		SellerID:  sellerID,
		DriverID:  driverID,
		Customer:  customer,
		Address:   address,
		Item:      "Widget",
		Quantity:  2,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	suite.Require().NoError(err)

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.OrderRepository().Add(context.Background(), o))
	})
	return o.ID()
}

func (suite *QueriesIntegrationTestSuite) TestGetOrders_AppliesRoleVisibility() {
	ctx := context.Background()
	handler := queries.NewGetOrdersQueryHandler(suite.pg.DB)
	driverID := suite.driver.ID()
	base := time.Now().UTC().Add(-time.Hour)

	older := suite.seedOrder(suite.seller.ID(), nil, order.Pending, base)
	newer := suite.seedOrder(suite.seller.ID(), &driverID, order.Assigned, base.Add(time.Minute))
	foreign := suite.seedOrder(suite.other.ID(), nil, order.Pending, base.Add(2*time.Minute))

	testCases := []struct {
		name  string
		actor user.Actor
		want  []kernel.UUID
	}{
		{"admin_sees_all_newest_first", suite.admin, []kernel.UUID{foreign, newer, older}},
		{"seller_sees_own", suite.seller, []kernel.UUID{newer, older}},
		{"other_seller_sees_own", suite.other, []kernel.UUID{foreign}},
		{"driver_sees_assigned", suite.driver, []kernel.UUID{newer}},
		{"unassigned_driver_sees_nothing", suite.outsider, []kernel.UUID{}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			query, err := queries.NewGetOrdersQuery(tc.actor, nil)
			suite.Require().NoError(err)

			orders, err := handler.Handle(ctx, query)
			suite.Require().NoError(err)

			got := make([]kernel.UUID, 0, len(orders))
			for _, o := range orders {
				got = append(got, o.ID)
			}
			suite.Equal(tc.want, got)
		})
	}
}

func (suite *QueriesIntegrationTestSuite) TestGetOrders_FiltersByStatus() {
	ctx := context.Background()
	driverID := suite.driver.ID()
	base := time.Now().UTC()
	suite.seedOrder(suite.seller.ID(), nil, order.Pending, base)
	assigned := suite.seedOrder(suite.seller.ID(), &driverID, order.Assigned, base)

	status := order.Assigned
	query, err := queries.NewGetOrdersQuery(suite.admin, &status)
	suite.Require().NoError(err)

	orders, err := queries.NewGetOrdersQueryHandler(suite.pg.DB).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].ID.IsEqual(assigned))
	suite.Equal(order.Assigned, orders[0].Status)
	suite.Require().NotNil(orders[0].DriverID)
	suite.True(orders[0].DriverID.IsEqual(driverID))
	suite.Equal("Jane Doe", orders[0].CustomerName)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_HidesInvisibleOrders() {
	ctx := context.Background()
	handler := queries.NewGetOrderQueryHandler(suite.pg.DB)
	id := suite.seedOrder(suite.seller.ID(), nil, order.Pending, time.Now().UTC())

	query, err := queries.NewGetOrderQuery(suite.seller, id)
	suite.Require().NoError(err)
	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("Widget", view.Item)
	suite.Equal(2, view.Quantity)

	for _, actor := range []user.Actor{suite.other, suite.driver} {
		query, err = queries.NewGetOrderQuery(actor, id)
		suite.Require().NoError(err)
		_, err = handler.Handle(ctx, query)
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	}

	query, err = queries.NewGetOrderQuery(suite.admin, kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetStock_ScopesToSeller() {
	ctx := context.Background()
	suite.inTx(func(uow ports.UnitOfWork) {
		for _, s := range []struct {
			seller kernel.UUID
			item   string
		}{
			{suite.seller.ID(), "Widget"},
			{suite.seller.ID(), "Gadget"},
			{suite.other.ID(), "Widget"},
		} {
			entry, err := stock.NewStock(suite.admin, kernel.NewUUID(), s.seller, s.item, 10)
			suite.Require().NoError(err)
			suite.Require().NoError(uow.StockRepository().Add(ctx, entry))
		}
	})
	handler := queries.NewGetStockQueryHandler(suite.pg.DB)

	query, err := queries.NewGetStockQuery(suite.seller, nil)
	suite.Require().NoError(err)
	own, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(own, 2)
	suite.Equal("Gadget", own[0].Item)
	suite.Equal("Widget", own[1].Item)
	suite.True(own[0].Approved)

	otherID := suite.other.ID()
	query, err = queries.NewGetStockQuery(suite.admin, &otherID)
	suite.Require().NoError(err)
	theirs, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(theirs, 1)

	query, err = queries.NewGetStockQuery(suite.admin, nil)
	suite.Require().NoError(err)
	all, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(all, 3)

	_, err = queries.NewGetStockQuery(suite.driver, nil)
	suite.Require().ErrorIs(err, errs.ErrPermissionDenied)
}

func (suite *QueriesIntegrationTestSuite) TestGetStockItem_Visibility() {
	ctx := context.Background()
	entry, err := stock.NewStock(suite.admin, kernel.NewUUID(), suite.seller.ID(), "Widget", 10)
	suite.Require().NoError(err)
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.StockRepository().Add(ctx, entry))
	})
	handler := queries.NewGetStockItemQueryHandler(suite.pg.DB)

	testCases := []struct {
		name    string
		actor   user.Actor
		visible bool
	}{
		{"admin", suite.admin, true},
		{"owner", suite.seller, true},
		{"other seller", suite.other, false},
		{"driver", suite.driver, false},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			query, err := queries.NewGetStockItemQuery(tc.actor, entry.ID())
			suite.Require().NoError(err)

			view, err := handler.Handle(ctx, query)

			if !tc.visible {
				suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
				return
			}
			suite.Require().NoError(err)
			suite.Equal(entry.ID(), view.ID)
			suite.Equal(10, view.Quantity)
		})
	}

	query, err := queries.NewGetStockItemQuery(suite.admin, kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetSettlements_Filters() {
	ctx := context.Background()
	stockID := kernel.NewUUID()
	settledOrder := kernel.NewUUID()
	suite.inTx(func(uow ports.UnitOfWork) {
		settled, err := stock.NewSettled(settledOrder, stockID, suite.seller.ID(), "Widget", 2)
		suite.Require().NoError(err)
		skipped, err := stock.NewSkipped(
			kernel.NewUUID(), nil, suite.seller.ID(), "Gizmo", 1, stock.ReasonItemNotFound)
		suite.Require().NoError(err)
		suite.Require().NoError(uow.SettlementRepository().Add(ctx, settled))
		suite.Require().NoError(uow.SettlementRepository().Add(ctx, skipped))
	})
	handler := queries.NewGetSettlementsQueryHandler(suite.pg.DB)

	query, err := queries.NewGetSettlementsQuery(suite.admin, nil, "")
	suite.Require().NoError(err)
	all, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	query, err = queries.NewGetSettlementsQuery(suite.admin, nil, stock.Skipped)
	suite.Require().NoError(err)
	skipped, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(skipped, 1)
	suite.Equal(stock.ReasonItemNotFound, skipped[0].Reason)
	suite.Nil(skipped[0].StockID)

	query, err = queries.NewGetSettlementsQuery(suite.admin, &settledOrder, "")
	suite.Require().NoError(err)
	forOrder, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(forOrder, 1)
	suite.Equal(stock.Settled, forOrder[0].Outcome)
	suite.Equal(2, forOrder[0].Quantity)

	_, err = queries.NewGetSettlementsQuery(suite.seller, nil, "")
	suite.Require().ErrorIs(err, errs.ErrPermissionDenied)
}

func (suite *QueriesIntegrationTestSuite) TestGetUsers_FiltersPending() {
	ctx := context.Background()
	suite.inTx(func(uow ports.UnitOfWork) {
		admin, err := user.NewAdmin(kernel.NewUUID(), "root", "root@example.com")
		suite.Require().NoError(err)
		driver, err := user.NewUser(kernel.NewUUID(), "dave", "dave@example.com", user.Driver, "+15550101", "Springfield")
		suite.Require().NoError(err)
		suite.Require().NoError(uow.UserRepository().Add(ctx, admin))
		suite.Require().NoError(uow.UserRepository().Add(ctx, driver))
	})
	handler := queries.NewGetUsersQueryHandler(suite.pg.DB)

	query, err := queries.NewGetUsersQuery(suite.admin, user.UnknownRole, true)
	suite.Require().NoError(err)
	pending, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("dave", pending[0].Username)
	suite.Equal(user.Driver, pending[0].Role)

	query, err = queries.NewGetUsersQuery(suite.admin, user.Admin, false)
	suite.Require().NoError(err)
	admins, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(admins, 1)
	suite.True(admins[0].Approved)

	_, err = queries.NewGetUsersQuery(suite.seller, user.UnknownRole, false)
	suite.Require().ErrorIs(err, errs.ErrPermissionDenied)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
