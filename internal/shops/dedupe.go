// Package shops merges a distributor's canonical shop records with the
// legacy shops still embedded in the distributor document. The two sources
// can describe the same physical shop; de-duplication compares normalized
// (name, ownerName, address) triples.
package shops

import (
	"strings"

	"field-sales-ops-api-server/internal/models"
)

// Key returns the normalized identity triple used for de-duplication.
// Whitespace is trimmed and collapsed, comparison is case-insensitive.
func Key(name, ownerName, address string) string {
	return normalize(name) + "|" + normalize(ownerName) + "|" + normalize(address)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Merge combines approved canonical shops with a distributor's legacy
// embedded arrays. Canonical shops win; a legacy entry whose identity
// triple matches a canonical shop is dropped.
func Merge(canonical []models.Shop, retail, wholesale []models.LegacyShop) []models.MergedShop {
	merged := make([]models.MergedShop, 0, len(canonical)+len(retail)+len(wholesale))
	seen := make(map[string]bool, len(canonical))

	for _, s := range canonical {
		seen[Key(s.Name, s.OwnerName, s.Address)] = true
		merged = append(merged, models.MergedShop{
			ID:        s.ID.Hex(),
			Name:      s.Name,
			OwnerName: s.OwnerName,
			Address:   s.Address,
			Phone:     s.Phone,
			ShopType:  s.ShopType,
			IsLegacy:  false,
		})
	}

	appendLegacy := func(legacy []models.LegacyShop, shopType string) {
		for _, l := range legacy {
			k := Key(l.Name, l.OwnerName, l.Address)
			if seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, models.MergedShop{
				Name:      l.Name,
				OwnerName: l.OwnerName,
				Address:   l.Address,
				Phone:     l.Phone,
				ShopType:  shopType,
				IsLegacy:  true,
			})
		}
	}
	appendLegacy(retail, models.ShopTypeRetail)
	appendLegacy(wholesale, models.ShopTypeWholesale)

	return merged
}
