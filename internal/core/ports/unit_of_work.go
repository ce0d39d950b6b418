package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it
// after Begin share the transaction; events recorded by aggregates they store
// are written to the outbox on Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	StockRepository() StockRepository
	SettlementRepository() SettlementRepository
	UserRepository() UserRepository
	OutboxRepository() OutboxRepository
}
