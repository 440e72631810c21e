// Package testenv builds throwaway dependencies for the cart service tests:
// an in-memory sqlite gorm DB, an in-process redis and a seeded catalog.
package testenv

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
)

var (
	GreenFarmID = uuid.MustParse("5c3f0c1e-7a51-4d1c-9d61-0d1f1e0a0001")
	SpiceHubID  = uuid.MustParse("5c3f0c1e-7a51-4d1c-9d61-0d1f1e0a0002")
)

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every new connection would open a fresh in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func NewRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// Seed inserts two suppliers and four items:
// 1 Red Onion 30/kg (Green Farm, vegetables), 2 Tomato 45/kg (Green Farm, vegetables),
// 3 Turmeric 120/kg (Spice Hub, spices), 4 Saffron 400/g (Spice Hub, spices).
func Seed(t *testing.T, db *gorm.DB) []models.CatalogItem {
	t.Helper()

	suppliers := []models.Supplier{
		{ID: GreenFarmID, Name: "Green Farm", Phone: "9876543210", Location: "Pune", Rating: 4.5},
		{ID: SpiceHubID, Name: "Spice Hub", Phone: "9123456780", Location: "Kochi", Rating: 4.8},
	}
	require.NoError(t, db.Create(&suppliers).Error)

	items := []models.CatalogItem{
		{Name: "Red Onion", Price: 30, Unit: "kg", AvailableQuantity: 500, Category: "vegetables", Tags: models.Tags{"fresh"}, SupplierID: GreenFarmID},
		{Name: "Tomato", Price: 45, Unit: "kg", AvailableQuantity: 300, Category: "vegetables", SupplierID: GreenFarmID},
		{Name: "Turmeric", Price: 120, Unit: "kg", AvailableQuantity: 50, Category: "spices", SupplierID: SpiceHubID},
		{Name: "Saffron", Price: 400, Unit: "g", AvailableQuantity: 10, Category: "spices", Tags: models.Tags{"premium", "imported"}, SupplierID: SpiceHubID},
	}
	require.NoError(t, db.Omit("Supplier").Create(&items).Error)

	byID := map[uuid.UUID]models.Supplier{GreenFarmID: suppliers[0], SpiceHubID: suppliers[1]}
	for i := range items {
		items[i].Supplier = byID[items[i].SupplierID]
	}
	return items
}
