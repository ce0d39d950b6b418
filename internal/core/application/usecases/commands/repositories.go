// Package commands contains the write use cases of the delivery backend.
// Every command is a validated value object; every handler opens its own unit
// of work, defers Rollback and commits only on success.
package commands

import (
	"context"

	"deliveryno/internal/core/ports"
)

// Unit of work views used by the command handlers. Each handler depends on
// the narrowest view it needs.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	SettlementRepoFactory interface {
		SettlementRepository() ports.SettlementRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW spans orders together with the stock, ledger and directory they
	// reference. Used by every order command.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
		SettlementRepoFactory
		UserRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StockUoW is used by stock maintenance commands.
	StockUoW interface {
		TxManager
		StockRepoFactory
		UserRepoFactory
	}

	StockUoWFactory interface {
		Create() StockUoW
	}

	// UserUoW is used by directory commands.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// OutboxUoW is used by the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
