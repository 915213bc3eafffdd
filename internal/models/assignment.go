package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffDistributorAssignment is the current distributor set a marketing
// staff member may operate against. At most one active assignment per
// staff; re-assignment replaces the list wholesale.
type StaffDistributorAssignment struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	StaffID        primitive.ObjectID   `bson:"staffId" json:"staffId"`
	DistributorIDs []primitive.ObjectID `bson:"distributorIds" json:"distributorIds"`
	IsActive       bool                 `bson:"isActive" json:"isActive"`
	AssignedBy     primitive.ObjectID   `bson:"assignedBy" json:"assignedBy"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}
