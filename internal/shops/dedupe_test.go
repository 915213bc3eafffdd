package shops

import (
	"testing"

	"field-sales-ops-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyNormalization(t *testing.T) {
	base := Key("Sharma General Store", "R. Sharma", "12 Market Road")

	assert.Equal(t, base, Key("  sharma   general store ", "r. sharma", "12  MARKET road"))
	assert.NotEqual(t, base, Key("Sharma General Store", "R. Sharma", "14 Market Road"))
	assert.NotEqual(t, base, Key("Sharma General", "R. Sharma", "12 Market Road"))
}

func TestMergeCanonicalWins(t *testing.T) {
	canonical := []models.Shop{
		{Name: "City Mart", OwnerName: "A. Khan", Address: "Main Bazaar", ShopType: models.ShopTypeRetail},
	}
	retail := []models.LegacyShop{
		// Same shop, sloppier spelling; must be dropped.
		{Name: " city  mart", OwnerName: "a. khan", Address: "main bazaar"},
		{Name: "Corner Stores", OwnerName: "B. Das", Address: "Station Road"},
	}
	wholesale := []models.LegacyShop{
		{Name: "Bulk Traders", OwnerName: "C. Roy", Address: "Warehouse Lane"},
	}

	merged := Merge(canonical, retail, wholesale)
	require.Len(t, merged, 3)

	assert.Equal(t, "City Mart", merged[0].Name)
	assert.False(t, merged[0].IsLegacy)

	assert.Equal(t, "Corner Stores", merged[1].Name)
	assert.True(t, merged[1].IsLegacy)
	assert.Equal(t, models.ShopTypeRetail, merged[1].ShopType)

	assert.Equal(t, "Bulk Traders", merged[2].Name)
	assert.True(t, merged[2].IsLegacy)
	assert.Equal(t, models.ShopTypeWholesale, merged[2].ShopType)
}

func TestMergeDuplicateLegacyEntries(t *testing.T) {
	retail := []models.LegacyShop{
		{Name: "Corner Stores", OwnerName: "B. Das", Address: "Station Road"},
		{Name: "corner stores", OwnerName: "b. das", Address: "station  road"},
	}

	merged := Merge(nil, retail, nil)
	assert.Len(t, merged, 1)
}

func TestMergeEmptyInputs(t *testing.T) {
	assert.Empty(t, Merge(nil, nil, nil))
}
