package postgres

import (
	"database/sql"
	"fmt"

	"deliveryno/internal/adapters/out/postgres/orderrepo"
	"deliveryno/internal/adapters/out/postgres/outboxrepo"
	"deliveryno/internal/adapters/out/postgres/settlementrepo"
	"deliveryno/internal/adapters/out/postgres/stockrepo"
	"deliveryno/internal/adapters/out/postgres/userrepo"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Models lists every table owned by the application.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&stockrepo.StockDTO{},
		&orderrepo.OrderDTO{},
		&settlementrepo.SettlementDTO{},
		&outboxrepo.MessageDTO{},
	}
}

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// MakeConnectionString builds a key/value DSN.
func MakeConnectionString(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		host, port, user, password, dbName, sslMode)
}

// EnsureDatabase connects to the server's postgres database and creates dbName
// when it does not exist yet.
func EnsureDatabase(host, port, user, password, dbName, sslMode string) error {
	db, err := sql.Open("postgres", MakeConnectionString(host, port, user, password, "postgres", sslMode))
	if err != nil {
		return fmt.Errorf("open admin connection: %w", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database %s: %w", dbName, err)
	}
	if exists {
		return nil
	}

	if _, err = db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("create database %s: %w", dbName, err)
	}
	return nil
}
