package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit activity types. One StaffActivity row is written per significant
// mutation, best-effort, for manager-facing reports.
const (
	ActivityTypeOrder          = "order"
	ActivityTypeDamageClaim    = "damageClaim"
	ActivityTypeSalesInquiry   = "salesInquiry"
	ActivityTypeSupplyEstimate = "supplyEstimate"
	ActivityTypeTask           = "task"
	ActivityTypeShop           = "shop"
	ActivityTypePunch          = "punch"
	ActivityTypeAssignment     = "assignment"
)

// Collection discriminators for RelatedID.
const (
	OnModelOrder          = "Order"
	OnModelDamageClaim    = "DamageClaim"
	OnModelSalesInquiry   = "SalesInquiry"
	OnModelSupplyEstimate = "SupplyEstimate"
	OnModelTask           = "Task"
	OnModelShop           = "Shop"
	OnModelActivity       = "MarketingStaffActivity"
	OnModelAssignment     = "StaffDistributorAssignment"
)

type StaffActivity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StaffID      primitive.ObjectID `bson:"staffId" json:"staffId"`
	ActivityType string             `bson:"activityType" json:"activityType"`
	Action       string             `bson:"action" json:"action"`
	RelatedID    primitive.ObjectID `bson:"relatedId" json:"relatedId"`
	OnModel      string             `bson:"onModel" json:"onModel"`
	Details      map[string]string  `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
