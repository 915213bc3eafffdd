package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BrandSize is one sellable pack size of a variant, e.g. "500ml".
type BrandSize struct {
	Label string  `bson:"label" json:"label"`
	Rate  float64 `bson:"rate,omitempty" json:"rate,omitempty"`
}

type BrandVariant struct {
	Name  string      `bson:"name" json:"name"`
	Sizes []BrandSize `bson:"sizes" json:"sizes"`
}

type Brand struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Variants  []BrandVariant     `bson:"variants" json:"variants"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Product is a concrete brand/variant/size combination with its sales unit.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BrandID   primitive.ObjectID `bson:"brandId" json:"brandId"`
	Variant   string             `bson:"variant" json:"variant"`
	Size      string             `bson:"size" json:"size"`
	Unit      string             `bson:"unit" json:"unit"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
