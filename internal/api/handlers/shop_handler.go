package handlers

import (
	"context"
	"net/http"
	"time"

	"field-sales-ops-api-server/internal/audit"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/internal/shops"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ShopHandler struct {
	DB       *mongo.Database
	Recorder *audit.Recorder
}

type CreateShopRequest struct {
	DistributorID string `json:"distributorId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	OwnerName     string `json:"ownerName" binding:"required"`
	Address       string `json:"address" binding:"required"`
	Phone         string `json:"phone"`
	ShopType      string `json:"shopType" binding:"required,oneof=Retail Wholesale"`
}

type RejectShopRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateShop registers a canonical shop under a distributor. Admin and
// manager roles get immediate approval plus the legacy-array mirror; any
// other role leaves the shop Pending and outside distributor rollups.
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req CreateShopRequest
	if !bindJSON(c, &req) {
		return
	}

	distributorID, err := primitive.ObjectIDFromHex(req.DistributorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid distributor id"))
		return
	}

	var distributor models.Distributor
	err = h.DB.Collection("distributors").FindOne(context.Background(), bson.M{"_id": distributorID, "isActive": true}).Decode(&distributor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Distributor not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve distributor"))
		}
		return
	}

	userID, role := currentUser(c)
	now := time.Now()

	shop := models.Shop{
		DistributorID:  distributorID,
		Name:           req.Name,
		OwnerName:      req.OwnerName,
		Address:        req.Address,
		Phone:          req.Phone,
		ShopType:       req.ShopType,
		ApprovalStatus: models.ShopApprovalPending,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	isManager := role == models.RoleAdmin || role == models.RoleSubAdmin || role == models.RoleMidLevelManager
	if isManager {
		shop.ApprovalStatus = models.ShopApprovalApproved
		shop.ApprovedBy = &userID
	}

	result, err := h.DB.Collection("shops").InsertOne(context.Background(), shop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to create shop"))
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		shop.ID = oid
	}

	if isManager {
		h.mirrorIntoDistributor(distributor, shop)
	}

	h.Recorder.Record(userID, models.ActivityTypeShop, "created shop "+shop.Name, shop.ID, models.OnModelShop, nil)

	c.JSON(http.StatusCreated, response.Success(shop))
}

// mirrorIntoDistributor pushes an approved shop into the distributor's
// legacy embedded array unless an entry with the same identity triple is
// already there. Second write of a non-atomic pair; best-effort.
func (h *ShopHandler) mirrorIntoDistributor(distributor models.Distributor, shop models.Shop) {
	legacy := distributor.RetailShops
	field := "retailShops"
	if shop.ShopType == models.ShopTypeWholesale {
		legacy = distributor.WholesaleShops
		field = "wholesaleShops"
	}

	key := shops.Key(shop.Name, shop.OwnerName, shop.Address)
	for _, l := range legacy {
		if shops.Key(l.Name, l.OwnerName, l.Address) == key {
			return
		}
	}

	h.DB.Collection("distributors").UpdateOne(
		context.Background(),
		bson.M{"_id": distributor.ID},
		bson.M{"$push": bson.M{field: models.LegacyShop{
			Name:      shop.Name,
			OwnerName: shop.OwnerName,
			Address:   shop.Address,
			Phone:     shop.Phone,
		}}},
	)
}

// ApproveShop moves a pending shop to Approved and mirrors it into the
// distributor's legacy array.
func (h *ShopHandler) ApproveShop(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var shop models.Shop
	err := h.DB.Collection("shops").FindOne(context.Background(), bson.M{"_id": id}).Decode(&shop)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Shop not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve shop"))
		}
		return
	}

	if shop.ApprovalStatus != models.ShopApprovalPending {
		c.JSON(http.StatusBadRequest, response.Error("Shop is already "+shop.ApprovalStatus))
		return
	}

	userID, _ := currentUser(c)
	_, err = h.DB.Collection("shops").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": bson.M{
		"approvalStatus": models.ShopApprovalApproved,
		"approvedBy":     userID,
		"updatedAt":      time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to approve shop"))
		return
	}

	var distributor models.Distributor
	if err := h.DB.Collection("distributors").FindOne(context.Background(), bson.M{"_id": shop.DistributorID}).Decode(&distributor); err == nil {
		h.mirrorIntoDistributor(distributor, shop)
	}

	h.Recorder.Record(userID, models.ActivityTypeShop, "approved shop "+shop.Name, shop.ID, models.OnModelShop, nil)

	h.DB.Collection("shops").FindOne(context.Background(), bson.M{"_id": id}).Decode(&shop)
	c.JSON(http.StatusOK, response.Success(shop))
}

// RejectShop rejects a pending shop; a reason is mandatory.
func (h *ShopHandler) RejectShop(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req RejectShopRequest
	if !bindJSON(c, &req) {
		return
	}

	var shop models.Shop
	err := h.DB.Collection("shops").FindOne(context.Background(), bson.M{"_id": id}).Decode(&shop)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Shop not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve shop"))
		}
		return
	}

	if shop.ApprovalStatus != models.ShopApprovalPending {
		c.JSON(http.StatusBadRequest, response.Error("Shop is already "+shop.ApprovalStatus))
		return
	}

	userID, _ := currentUser(c)
	_, err = h.DB.Collection("shops").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": bson.M{
		"approvalStatus":  models.ShopApprovalRejected,
		"rejectionReason": req.Reason,
		"approvedBy":      userID,
		"updatedAt":       time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to reject shop"))
		return
	}

	h.Recorder.Record(userID, models.ActivityTypeShop, "rejected shop "+shop.Name, shop.ID, models.OnModelShop, nil)

	h.DB.Collection("shops").FindOne(context.Background(), bson.M{"_id": id}).Decode(&shop)
	c.JSON(http.StatusOK, response.Success(shop))
}

// GetShopsByDistributor returns the merged shop list for a distributor:
// approved canonical shops first, then legacy embedded entries that do not
// duplicate them.
func (h *ShopHandler) GetShopsByDistributor(c *gin.Context) {
	distributorID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var distributor models.Distributor
	err := h.DB.Collection("distributors").FindOne(context.Background(), bson.M{"_id": distributorID, "isActive": true}).Decode(&distributor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Distributor not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve distributor"))
		}
		return
	}

	cursor, err := h.DB.Collection("shops").Find(context.Background(), bson.M{
		"distributorId":  distributorID,
		"approvalStatus": models.ShopApprovalApproved,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query shops"))
		return
	}
	defer cursor.Close(context.Background())

	var canonical []models.Shop
	if err = cursor.All(context.Background(), &canonical); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode shops"))
		return
	}

	merged := shops.Merge(canonical, distributor.RetailShops, distributor.WholesaleShops)
	count := int64(len(merged))
	c.JSON(http.StatusOK, response.Envelope{Success: true, Data: merged, Count: &count})
}

// GetPendingShops lists shops awaiting approval.
func (h *ShopHandler) GetPendingShops(c *gin.Context) {
	cursor, err := h.DB.Collection("shops").Find(context.Background(), bson.M{"approvalStatus": models.ShopApprovalPending})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query shops"))
		return
	}
	defer cursor.Close(context.Background())

	var pending []models.Shop
	if err = cursor.All(context.Background(), &pending); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode shops"))
		return
	}
	if pending == nil {
		pending = []models.Shop{}
	}

	c.JSON(http.StatusOK, response.Success(pending))
}
