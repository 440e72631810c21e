package models_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/testenv"
)

func TestSchemasParse(t *testing.T) {
	for _, m := range models.All() {
		s, err := schema.Parse(m, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)

		if s.Table == "catalog_items" {
			f := s.LookUpField("Tags")
			require.NotNil(t, f)
			assert.Equal(t, schema.DataType("text"), f.DataType)
		}
	}
}

func TestTagsRoundTrip(t *testing.T) {
	db := testenv.NewDB(t)
	ctx := context.Background()

	sup := models.Supplier{Name: "Spice Hub"}
	require.NoError(t, db.WithContext(ctx).Create(&sup).Error)

	item := models.CatalogItem{Name: "Cardamom", Price: 90, Unit: "kg", Category: "spices", Tags: models.Tags{"green", "whole"}, SupplierID: sup.ID}
	require.NoError(t, db.WithContext(ctx).Omit("Supplier").Create(&item).Error)

	var got models.CatalogItem
	require.NoError(t, db.WithContext(ctx).First(&got, item.ID).Error)
	assert.Equal(t, models.Tags{"green", "whole"}, got.Tags)
}
