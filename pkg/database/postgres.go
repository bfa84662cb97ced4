package database

import (
	"log"

	"github.com/academic-forum/forum-tickets/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Unique violations surface as gorm.ErrDuplicatedKey so order
		// creation can retry with a fresh order number.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.TicketType{},
		&models.Order{},
		&models.Admin{},
		&models.Sponsor{},
		&models.Conference{},
		&models.Setting{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	db.Exec(`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`)
	db.Exec(`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at)`)

	return db
}
