package handlers

import (
	"context"
	"net/http"
	"time"

	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/pkg/pagination"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DistributorHandler struct {
	DB *mongo.Database
}

type CreateDistributorRequest struct {
	Name          string `json:"name" binding:"required"`
	Area          string `json:"area" binding:"required"`
	ContactPerson string `json:"contactPerson" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Address       string `json:"address"`
}

func (h *DistributorHandler) CreateDistributor(c *gin.Context) {
	var req CreateDistributorRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, _ := currentUser(c)
	now := time.Now()
	distributor := models.Distributor{
		Name:           req.Name,
		Area:           req.Area,
		ContactPerson:  req.ContactPerson,
		Phone:          req.Phone,
		Address:        req.Address,
		RetailShops:    []models.LegacyShop{},
		WholesaleShops: []models.LegacyShop{},
		IsActive:       true,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	result, err := h.DB.Collection("distributors").InsertOne(context.Background(), distributor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to create distributor"))
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		distributor.ID = oid
	}

	c.JSON(http.StatusCreated, response.Success(distributor))
}

func (h *DistributorHandler) GetAllDistributors(c *gin.Context) {
	collection := h.DB.Collection("distributors")
	page := pagination.Parse(c)

	filter := bson.M{"isActive": true}
	if area := c.Query("area"); area != "" {
		filter["area"] = area
	}

	total, err := collection.CountDocuments(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to count distributors"))
		return
	}

	opts := options.Find().SetSkip(page.Skip).SetLimit(int64(page.Limit)).SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := collection.Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query distributors"))
		return
	}
	defer cursor.Close(context.Background())

	var distributors []models.Distributor
	if err = cursor.All(context.Background(), &distributors); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode distributors"))
		return
	}
	if distributors == nil {
		distributors = []models.Distributor{}
	}

	c.JSON(http.StatusOK, response.List(distributors, total, page.Page, page.Limit))
}

func (h *DistributorHandler) GetDistributorByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var distributor models.Distributor
	err := h.DB.Collection("distributors").FindOne(context.Background(), bson.M{"_id": id, "isActive": true}).Decode(&distributor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Distributor not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve distributor"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(distributor))
}

func (h *DistributorHandler) UpdateDistributor(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateDistributorRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.DB.Collection("distributors").UpdateOne(context.Background(), bson.M{"_id": id, "isActive": true}, bson.M{"$set": bson.M{
		"name":          req.Name,
		"area":          req.Area,
		"contactPerson": req.ContactPerson,
		"phone":         req.Phone,
		"address":       req.Address,
		"updatedAt":     time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to update distributor"))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("Distributor not found"))
		return
	}

	var distributor models.Distributor
	h.DB.Collection("distributors").FindOne(context.Background(), bson.M{"_id": id}).Decode(&distributor)
	c.JSON(http.StatusOK, response.Success(distributor))
}

// DeleteDistributor soft-deletes: the document stays for history but drops
// out of every listing, which always filters on isActive.
func (h *DistributorHandler) DeleteDistributor(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.DB.Collection("distributors").UpdateOne(
		context.Background(),
		bson.M{"_id": id, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to delete distributor"))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("Distributor not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Distributor deleted"}))
}
