// Package activity holds the pure computations behind punch-in/punch-out
// tracking: visit durations and the punch-out rollup over a trip's shop
// activities.
package activity

import (
	"math"
	"time"

	"field-sales-ops-api-server/internal/models"
)

// DurationMinutes returns the whole-minute duration between start and end,
// rounded to nearest: round((end-start)/60000ms).
func DurationMinutes(start, end time.Time) int {
	return int(math.Round(float64(end.Sub(start).Milliseconds()) / 60000.0))
}

// Rollup aggregates a trip's shop activities into the denormalized totals
// stored on the parent activity at punch-out: shops visited, sales-order
// count and total sales value (sum of quantity*rate).
func Rollup(visits []models.RetailerShopActivity) models.ActivityTotals {
	totals := models.ActivityTotals{ShopsVisited: len(visits)}
	for _, v := range visits {
		totals.SalesOrderCount += len(v.SalesOrders)
		for _, o := range v.SalesOrders {
			totals.TotalSalesValue += o.Quantity * o.Rate
		}
	}
	return totals
}
