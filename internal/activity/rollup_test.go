package activity

import (
	"testing"
	"time"

	"field-sales-ops-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"exact hour", start.Add(time.Hour), 60},
		{"rounds down below half minute", start.Add(89 * time.Second), 1},
		{"rounds up at half minute", start.Add(90 * time.Second), 2},
		{"just past two minutes", start.Add(125 * time.Second), 2},
		{"sub-minute visit", start.Add(20 * time.Second), 0},
		{"zero duration", start, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DurationMinutes(start, tc.end))
		})
	}
}

func TestRollup(t *testing.T) {
	visits := []models.RetailerShopActivity{
		{
			ShopName: "Sharma General Store",
			SalesOrders: []models.VisitSalesOrder{
				{Quantity: 10, Rate: 25},
				{Quantity: 4, Rate: 112.5},
			},
		},
		{
			ShopName: "City Mart",
			SalesOrders: []models.VisitSalesOrder{
				{Quantity: 2, Rate: 300},
			},
		},
		{ShopName: "No Sale Corner"},
	}

	totals := Rollup(visits)
	assert.Equal(t, 3, totals.ShopsVisited)
	assert.Equal(t, 3, totals.SalesOrderCount)
	assert.InDelta(t, 10*25+4*112.5+2*300, totals.TotalSalesValue, 0.001)
}

func TestRollupEmpty(t *testing.T) {
	totals := Rollup(nil)
	assert.Equal(t, 0, totals.ShopsVisited)
	assert.Equal(t, 0, totals.SalesOrderCount)
	assert.Zero(t, totals.TotalSalesValue)
}
