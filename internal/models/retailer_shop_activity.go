package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VisitSalesOrder is one sales order captured during a shop visit.
type VisitSalesOrder struct {
	BrandID  primitive.ObjectID `bson:"brandId" json:"brandId"`
	Variant  string             `bson:"variant" json:"variant"`
	Size     string             `bson:"size" json:"size"`
	Quantity float64            `bson:"quantity" json:"quantity"`
	Rate     float64            `bson:"rate" json:"rate"`
}

// CompetitorInfo is competitor intel noted at the shop.
type CompetitorInfo struct {
	BrandName string  `bson:"brandName" json:"brandName"`
	Product   string  `bson:"product,omitempty" json:"product,omitempty"`
	Rate      float64 `bson:"rate,omitempty" json:"rate,omitempty"`
	Notes     string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// RetailerShopActivity is one per-shop visit detail nested under an open
// marketing staff activity. Keyed by (staff, distributor, shop, activity);
// a second submission for the same key overwrites the first.
type RetailerShopActivity struct {
	ID                   primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	StaffID              primitive.ObjectID  `bson:"staffId" json:"staffId"`
	DistributorID        primitive.ObjectID  `bson:"distributorId" json:"distributorId"`
	ActivityID           primitive.ObjectID  `bson:"activityId" json:"activityId"`
	ShopID               *primitive.ObjectID `bson:"shopId,omitempty" json:"shopId,omitempty"`
	ShopName             string              `bson:"shopName" json:"shopName"`
	IsLegacyShop         bool                `bson:"isLegacyShop" json:"isLegacyShop"`
	VisitStartTime       time.Time           `bson:"visitStartTime" json:"visitStartTime"`
	VisitEndTime         time.Time           `bson:"visitEndTime" json:"visitEndTime"`
	VisitDurationMinutes int                 `bson:"visitDurationMinutes" json:"visitDurationMinutes"`
	SalesOrders          []VisitSalesOrder   `bson:"salesOrders" json:"salesOrders"`
	Competitors          []CompetitorInfo    `bson:"competitors,omitempty" json:"competitors,omitempty"`
	Notes                string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt            time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time           `bson:"updatedAt" json:"updatedAt"`
}
