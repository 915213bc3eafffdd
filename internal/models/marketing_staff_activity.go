package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActivityPunchedIn  = "Punched In"
	ActivityPunchedOut = "Punched Out"
)

// PlannedShop is a shop stub listed at punch-in time. TempID is assigned by
// the server so shop activities recorded during the trip can reference a
// planned stop before a canonical shop exists.
type PlannedShop struct {
	TempID    string `bson:"tempId" json:"tempId"`
	Name      string `bson:"name" json:"name"`
	OwnerName string `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	Address   string `bson:"address,omitempty" json:"address,omitempty"`
}

// ActivityTotals is the denormalized rollup computed once at punch-out from
// the trip's retailer shop activities. It goes stale if a shop activity is
// edited afterwards.
type ActivityTotals struct {
	ShopsVisited    int     `bson:"shopsVisited" json:"shopsVisited"`
	SalesOrderCount int     `bson:"salesOrderCount" json:"salesOrderCount"`
	TotalSalesValue float64 `bson:"totalSalesValue" json:"totalSalesValue"`
}

// MarketingStaffActivity is one continuous trip to a distributor, from
// punch-in to punch-out. At most one activity per staff may be open.
type MarketingStaffActivity struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StaffID         primitive.ObjectID `bson:"staffId" json:"staffId"`
	DistributorID   primitive.ObjectID `bson:"distributorId" json:"distributorId"`
	Area            string             `bson:"area,omitempty" json:"area,omitempty"`
	Transport       string             `bson:"transport,omitempty" json:"transport,omitempty"`
	Companion       string             `bson:"companion,omitempty" json:"companion,omitempty"`
	PlannedShops    []PlannedShop      `bson:"plannedShops" json:"plannedShops"`
	SupplySnapshot  []EstimateBrand    `bson:"supplySnapshot,omitempty" json:"supplySnapshot,omitempty"`
	Status          string             `bson:"status" json:"status"`
	PunchInTime     time.Time          `bson:"punchInTime" json:"punchInTime"`
	PunchOutTime    *time.Time         `bson:"punchOutTime,omitempty" json:"punchOutTime,omitempty"`
	DurationMinutes int                `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Totals          *ActivityTotals    `bson:"totals,omitempty" json:"totals,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
