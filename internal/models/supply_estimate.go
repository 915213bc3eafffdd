package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EstimateStatusPending  = "Pending"
	EstimateStatusApproved = "Approved"
	EstimateStatusRejected = "Rejected"
)

type EstimateSize struct {
	Label        string  `bson:"label" json:"label"`
	OpeningStock float64 `bson:"openingStock" json:"openingStock"`
	Rate         float64 `bson:"rate" json:"rate"`
}

type EstimateVariant struct {
	Name  string         `bson:"name" json:"name"`
	Sizes []EstimateSize `bson:"sizes" json:"sizes"`
}

type EstimateBrand struct {
	BrandID  primitive.ObjectID `bson:"brandId" json:"brandId"`
	Name     string             `bson:"name" json:"name"`
	Variants []EstimateVariant  `bson:"variants" json:"variants"`
}

type EstimateRevision struct {
	RevisedBy primitive.ObjectID `bson:"revisedBy" json:"revisedBy"`
	RevisedAt time.Time          `bson:"revisedAt" json:"revisedAt"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
}

type SupplyEstimate struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	DistributorID   primitive.ObjectID  `bson:"distributorId" json:"distributorId"`
	Brands          []EstimateBrand     `bson:"brands" json:"brands"`
	Status          string              `bson:"status" json:"status"`
	Comment         string              `bson:"comment,omitempty" json:"comment,omitempty"`
	RevisionHistory []EstimateRevision  `bson:"revisionHistory" json:"revisionHistory"`
	CreatedBy       primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	ApprovedBy      *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
