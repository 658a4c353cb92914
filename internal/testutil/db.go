// Package testutil provides helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cotizaplus/cotiza-api/internal/auth"
	"github.com/cotizaplus/cotiza-api/internal/database"
	"github.com/cotizaplus/cotiza-api/internal/domain"
)

// SetupTestDB opens an isolated in-memory sqlite database with the full
// schema migrated. Each call gets its own database, so tests never see
// each other's data.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	// A single connection keeps the in-memory database alive for the
	// whole test.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// UserContext returns a context carrying a fresh authenticated user.
func UserContext(t *testing.T) (context.Context, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID: userID,
		Email:  "test@example.com",
	})
	return ctx, userID
}

// CreateTestCustomer inserts a customer owned by the given user.
func CreateTestCustomer(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *domain.Customer {
	t.Helper()

	customer := &domain.Customer{
		UserID:  userID,
		Name:    name,
		Company: "Empresa de Prueba",
		Email:   "cliente@example.com",
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// CreateTestCompany inserts a company profile owned by the given user.
func CreateTestCompany(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *domain.Company {
	t.Helper()

	company := &domain.Company{
		UserID:       userID,
		Name:         name,
		NIT:          "900123456-7",
		PrimaryColor: "#2563eb",
	}
	require.NoError(t, db.Create(company).Error)
	return company
}
