package cmd

import (
	"context"
	"log/slog"

	httpin "deliveryno/internal/adapters/in/http"
	"deliveryno/internal/adapters/out/postgres"
	"deliveryno/internal/adapters/out/postgres/userrepo"
	"deliveryno/internal/core/application/usecases/commands"
	"deliveryno/internal/core/application/usecases/queries"
	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/services"
	"deliveryno/internal/core/ports"
	"deliveryno/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locker     ports.KeyLocker
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCompositionRoot wires the application. A nil locker limits write
// serialization to database row locks, which is enough for one instance.
func NewCompositionRoot(
	cfg Config, gormDB *gorm.DB, locker ports.KeyLocker, notifier ports.Notifier, logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     locker,
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) stockUoWFactory() commands.StockUoWFactory {
	return FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) serializer() commands.Serializer {
	return commands.NewSerializer(c.locker)
}

func (c *CompositionRoot) ledger() commands.InventoryLedger {
	return commands.NewInventoryLedger(c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.ledger())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(
		c.orderUoWFactory(), services.NewTransitionValidator(), c.ledger(), c.serializer())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoWFactory(), services.NewTransitionValidator(), c.serializer())
}

func (c *CompositionRoot) CreateEditOrderCommandHandler() commands.EditOrderCommandHandler {
	return commands.NewEditOrderCommandHandler(c.orderUoWFactory(), c.serializer())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.serializer())
}

func (c *CompositionRoot) CreateCreateStockCommandHandler() commands.CreateStockCommandHandler {
	return commands.NewCreateStockCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateUpdateStockCommandHandler() commands.UpdateStockCommandHandler {
	return commands.NewUpdateStockCommandHandler(c.stockUoWFactory(), c.serializer())
}

func (c *CompositionRoot) CreateDeleteStockCommandHandler() commands.DeleteStockCommandHandler {
	return commands.NewDeleteStockCommandHandler(c.stockUoWFactory(), c.serializer())
}

func (c *CompositionRoot) CreateApproveStockCommandHandler() commands.ApproveStockCommandHandler {
	return commands.NewApproveStockCommandHandler(c.stockUoWFactory(), c.serializer())
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateApproveUserCommandHandler() commands.ApproveUserCommandHandler {
	return commands.NewApproveUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateBootstrapAdminCommandHandler() commands.BootstrapAdminCommandHandler {
	return commands.NewBootstrapAdminCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		RegisterUser:      c.CreateRegisterUserCommandHandler(),
		ApproveUser:       c.CreateApproveUserCommandHandler(),
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		EditOrder:         c.CreateEditOrderCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		AssignDriver:      c.CreateAssignDriverCommandHandler(),
		ChangeOrderStatus: c.CreateChangeOrderStatusCommandHandler(),
		CreateStock:       c.CreateCreateStockCommandHandler(),
		UpdateStock:       c.CreateUpdateStockCommandHandler(),
		ApproveStock:      c.CreateApproveStockCommandHandler(),
		DeleteStock:       c.CreateDeleteStockCommandHandler(),

		GetOrders:      queries.NewGetOrdersQueryHandler(c.gormDB),
		GetOrder:       queries.NewGetOrderQueryHandler(c.gormDB),
		GetStock:       queries.NewGetStockQueryHandler(c.gormDB),
		GetStockItem:   queries.NewGetStockItemQueryHandler(c.gormDB),
		GetSettlements: queries.NewGetSettlementsQueryHandler(c.gormDB),
		GetUsers:       queries.NewGetUsersQueryHandler(c.gormDB),
	}
}

// CreateUserLookup resolves request actors outside of any transaction.
func (c *CompositionRoot) CreateUserLookup() httpin.UserLookup {
	return userrepo.NewGormUserRepository(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := jobs.NewOutboxRelayJob(c.CreateRelayOutboxCommandHandler(), c.cfg.RelayBatchSize, c.logger)
	return jobs.NewJobManager(c.logger, relay)
}

// BootstrapAdmin creates the configured admin when it is missing. It does
// nothing when no admin id is configured.
func (c *CompositionRoot) BootstrapAdmin(ctx context.Context) error {
	if c.cfg.AdminID == "" {
		return nil
	}
	id, err := kernel.UUIDFromString(c.cfg.AdminID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewBootstrapAdminCommand(id, c.cfg.AdminUsername, c.cfg.AdminEmail)
	if err != nil {
		return err
	}

	created, err := c.CreateBootstrapAdminCommandHandler().Handle(ctx, cmd)
	if err != nil {
		return err
	}
	if created {
		c.logger.InfoContext(ctx, "admin created", "id", id.String(), "username", c.cfg.AdminUsername)
	}
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
