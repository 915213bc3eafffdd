package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ShopTypeRetail    = "Retail"
	ShopTypeWholesale = "Wholesale"
)

const (
	ShopApprovalPending  = "Pending"
	ShopApprovalApproved = "Approved"
	ShopApprovalRejected = "Rejected"
)

// Shop is the canonical shop record. Shops created by non-manager roles
// stay Pending until an admin or manager approves them; only approved
// shops are merged into distributor rollups.
type Shop struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	DistributorID   primitive.ObjectID  `bson:"distributorId" json:"distributorId"`
	Name            string              `bson:"name" json:"name"`
	OwnerName       string              `bson:"ownerName" json:"ownerName"`
	Address         string              `bson:"address" json:"address"`
	Phone           string              `bson:"phone,omitempty" json:"phone,omitempty"`
	ShopType        string              `bson:"shopType" json:"shopType"`
	ApprovalStatus  string              `bson:"approvalStatus" json:"approvalStatus"`
	RejectionReason string              `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	ApprovedBy      *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	CreatedBy       primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// MergedShop is one entry of a distributor's combined shop listing:
// canonical approved shops plus legacy embedded ones.
type MergedShop struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	OwnerName string `json:"ownerName"`
	Address   string `json:"address"`
	Phone     string `json:"phone,omitempty"`
	ShopType  string `json:"shopType"`
	IsLegacy  bool   `json:"isLegacy"`
}
