package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusRequested  = "Requested"
	OrderStatusApproved   = "Approved"
	OrderStatusRejected   = "Rejected"
	OrderStatusDispatched = "Dispatched"
)

type OrderItem struct {
	Name     string  `bson:"name" json:"name"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	Unit     string  `bson:"unit" json:"unit"`
}

type Order struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	DistributorID primitive.ObjectID  `bson:"distributorId" json:"distributorId"`
	Items         []OrderItem         `bson:"items" json:"items"`
	Status        string              `bson:"status" json:"status"`
	Comment       string              `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedBy     primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	ApprovedBy    *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	DispatchedBy  *primitive.ObjectID `bson:"dispatchedBy,omitempty" json:"dispatchedBy,omitempty"`
	ApprovedAt    *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	DispatchedAt  *time.Time          `bson:"dispatchedAt,omitempty" json:"dispatchedAt,omitempty"`
	IsActive      bool                `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}
