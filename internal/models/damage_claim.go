package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ClaimStatusPending           = "Pending"
	ClaimStatusCommented         = "Commented"
	ClaimStatusApproved          = "Approved"
	ClaimStatusPartiallyApproved = "Partially Approved"
	ClaimStatusRejected          = "Rejected"
	ClaimStatusCompleted         = "Completed"
)

// ReplacementDetails records the physical replacement shipment registered
// against an approved claim's tracking id.
type ReplacementDetails struct {
	Method       string    `bson:"method" json:"method"`
	DispatchedOn time.Time `bson:"dispatchedOn" json:"dispatchedOn"`
	Notes        string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

type DamageClaim struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	DistributorID      primitive.ObjectID  `bson:"distributorId" json:"distributorId"`
	BrandID            primitive.ObjectID  `bson:"brandId" json:"brandId"`
	Variant            string              `bson:"variant" json:"variant"`
	Size               string              `bson:"size" json:"size"`
	Pieces             int                 `bson:"pieces" json:"pieces"`
	Reason             string              `bson:"reason,omitempty" json:"reason,omitempty"`
	Images             []string            `bson:"images" json:"images"`
	Status             string              `bson:"status" json:"status"`
	Comment            string              `bson:"comment,omitempty" json:"comment,omitempty"`
	ApprovedPieces     int                 `bson:"approvedPieces,omitempty" json:"approvedPieces,omitempty"`
	TrackingID         string              `bson:"trackingId,omitempty" json:"trackingId,omitempty"`
	ReplacementDetails *ReplacementDetails `bson:"replacementDetails,omitempty" json:"replacementDetails,omitempty"`
	CreatedBy          primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	ApprovedBy         *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}
