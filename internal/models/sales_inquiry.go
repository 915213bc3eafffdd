package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	InquiryStatusPending    = "Pending"
	InquiryStatusCommented  = "Commented"
	InquiryStatusProcessing = "Processing"
	InquiryStatusCompleted  = "Completed"
	InquiryStatusRejected   = "Rejected"
	InquiryStatusDispatched = "Dispatched"
)

type InquiryProduct struct {
	BrandID  primitive.ObjectID `bson:"brandId" json:"brandId"`
	Variant  string             `bson:"variant" json:"variant"`
	Size     string             `bson:"size" json:"size"`
	Quantity float64            `bson:"quantity" json:"quantity"`
}

type SalesInquiry struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	DistributorID  primitive.ObjectID  `bson:"distributorId" json:"distributorId"`
	Products       []InquiryProduct    `bson:"products" json:"products"`
	Status         string              `bson:"status" json:"status"`
	ManagerComment string              `bson:"managerComment,omitempty" json:"managerComment,omitempty"`
	CreatedBy      primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	ProcessedBy    *primitive.ObjectID `bson:"processedBy,omitempty" json:"processedBy,omitempty"`
	ProcessedAt    *time.Time          `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}
