// Package testenv builds throwaway dependencies for the registration tests.
package testenv

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/trustbasket/pkg/session"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/models"
)

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func NewWizardStore(t *testing.T) (*session.Store[domain.Wizard], *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewStore[domain.Wizard](client, "registration", time.Hour), mr
}

// FillSupplier returns the fields that pass every step for a supplier draft.
func FillSupplier() map[string]string {
	return map[string]string{
		domain.KeyName:         "Ravi Kumar",
		domain.KeyPhone:        "9876543210",
		domain.KeyEmail:        "ravi@example.com",
		domain.KeyPassword:     "secret12",
		domain.KeyAddress:      "Plot 9, APMC Yard",
		domain.KeyCity:         "Nashik",
		domain.KeySupplierType: "farmer",
		domain.KeyBusinessName: "Ravi Farms",
	}
}
