//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/academic-forum/forum-tickets/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "forum_tickets_test"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	testDB.Exec("DROP TABLE IF EXISTS orders")
	testDB.Exec("DROP TABLE IF EXISTS ticket_types")

	if err := testDB.AutoMigrate(&models.TicketType{}, &models.Order{}); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	code := m.Run()

	testDB.Exec("DROP TABLE IF EXISTS orders")
	testDB.Exec("DROP TABLE IF EXISTS ticket_types")

	os.Exit(code)
}

func cleanTables() {
	testDB.Exec("DELETE FROM orders")
	testDB.Exec("DELETE FROM ticket_types")
	testDB.Exec("ALTER SEQUENCE IF EXISTS ticket_types_id_seq RESTART WITH 1")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
