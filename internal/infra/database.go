package infra

import (
	"fmt"

	"barpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (the ticket number sequence).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against
// throwaway containers.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() requires pgcrypto on PostgreSQL < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Event{},
		&model.Bar{},
		&model.User{},
		&model.Product{},
		&model.StockAssignment{},
		&model.StockMovement{},
		&model.Ticket{},
		&model.TicketItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// Ticket numbering is a DB sequence so it stays monotonic across server
	// instances; AutoMigrate cannot create standalone sequences.
	if err := db.Exec(`CREATE SEQUENCE IF NOT EXISTS tickets_number_seq START 1`).Error; err != nil {
		return fmt.Errorf("tickets_number_seq: %w", err)
	}
	return nil
}
