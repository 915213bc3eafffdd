package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LegacyShop is a shop embedded directly in a Distributor document,
// predating the standalone shops collection. Kept for backward
// compatibility; merged listings de-duplicate against it.
type LegacyShop struct {
	Name      string `bson:"name" json:"name"`
	OwnerName string `bson:"ownerName" json:"ownerName"`
	Address   string `bson:"address" json:"address"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// DistributorRef is the populated shape of a distributor reference in
// responses.
type DistributorRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
	Area string             `bson:"area" json:"area"`
}

type Distributor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Area           string             `bson:"area" json:"area"`
	ContactPerson  string             `bson:"contactPerson" json:"contactPerson"`
	Phone          string             `bson:"phone" json:"phone"`
	Address        string             `bson:"address" json:"address"`
	RetailShops    []LegacyShop       `bson:"retailShops" json:"retailShops"`
	WholesaleShops []LegacyShop       `bson:"wholesaleShops" json:"wholesaleShops"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedBy      primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
