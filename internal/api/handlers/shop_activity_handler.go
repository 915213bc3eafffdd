package handlers

import (
	"context"
	"net/http"
	"time"

	"field-sales-ops-api-server/internal/activity"
	"field-sales-ops-api-server/internal/audit"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShopActivityHandler struct {
	DB       *mongo.Database
	Recorder *audit.Recorder
}

type VisitSalesOrderRequest struct {
	BrandID  string  `json:"brandId" binding:"required"`
	Variant  string  `json:"variant" binding:"required"`
	Size     string  `json:"size" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Rate     float64 `json:"rate" binding:"gte=0"`
}

type CompetitorInfoRequest struct {
	BrandName string  `json:"brandName" binding:"required"`
	Product   string  `json:"product"`
	Rate      float64 `json:"rate"`
	Notes     string  `json:"notes"`
}

type RecordShopActivityRequest struct {
	ShopID         string                   `json:"shopId"`
	ShopName       string                   `json:"shopName" binding:"required"`
	VisitStartTime time.Time                `json:"visitStartTime" binding:"required"`
	VisitEndTime   time.Time                `json:"visitEndTime" binding:"required"`
	SalesOrders    []VisitSalesOrderRequest `json:"salesOrders" binding:"omitempty,dive"`
	Competitors    []CompetitorInfoRequest  `json:"competitors" binding:"omitempty,dive"`
	Notes          string                   `json:"notes"`
}

// RecordVisit captures the per-shop detail of a visit under the caller's
// open activity. Resubmitting for the same shop replaces the earlier
// record; the last write wins.
func (h *ShopActivityHandler) RecordVisit(c *gin.Context) {
	var req RecordShopActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	if !req.VisitEndTime.After(req.VisitStartTime) {
		c.JSON(http.StatusBadRequest, response.Error("visitEndTime must be after visitStartTime"))
		return
	}

	userID, _ := currentUser(c)

	var act models.MarketingStaffActivity
	err := h.DB.Collection("marketing_staff_activities").FindOne(context.Background(), bson.M{
		"staffId":      userID,
		"status":       models.ActivityPunchedIn,
		"punchOutTime": nil,
	}).Decode(&act)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, response.Error("No open activity; punch in first"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve open activity"))
		}
		return
	}

	// Resolve the visited shop against the canonical collection first, then
	// fall back to the distributor's embedded legacy lists.
	var shopID *primitive.ObjectID
	isLegacy := false
	if req.ShopID != "" {
		id, err := primitive.ObjectIDFromHex(req.ShopID)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Invalid shop id"))
			return
		}
		count, err := h.DB.Collection("shops").CountDocuments(context.Background(), bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error("Database error checking for shop"))
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, response.Error("Shop not found"))
			return
		}
		shopID = &id
	} else {
		var shop models.Shop
		err := h.DB.Collection("shops").FindOne(context.Background(), bson.M{
			"distributorId": act.DistributorID,
			"name":          req.ShopName,
		}).Decode(&shop)
		switch {
		case err == nil:
			shopID = &shop.ID
		case err == mongo.ErrNoDocuments:
			legacy, lerr := h.DB.Collection("distributors").CountDocuments(context.Background(), bson.M{
				"_id": act.DistributorID,
				"$or": []bson.M{
					{"retailShops.name": req.ShopName},
					{"wholesaleShops.name": req.ShopName},
				},
			})
			if lerr != nil {
				c.JSON(http.StatusInternalServerError, response.Error("Database error checking for shop"))
				return
			}
			isLegacy = legacy > 0
		default:
			c.JSON(http.StatusInternalServerError, response.Error("Database error checking for shop"))
			return
		}
	}

	orders := make([]models.VisitSalesOrder, 0, len(req.SalesOrders))
	for _, o := range req.SalesOrders {
		brandID, err := primitive.ObjectIDFromHex(o.BrandID)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Invalid brand id in sales orders"))
			return
		}
		orders = append(orders, models.VisitSalesOrder{
			BrandID:  brandID,
			Variant:  o.Variant,
			Size:     o.Size,
			Quantity: o.Quantity,
			Rate:     o.Rate,
		})
	}

	competitors := make([]models.CompetitorInfo, 0, len(req.Competitors))
	for _, comp := range req.Competitors {
		competitors = append(competitors, models.CompetitorInfo{
			BrandName: comp.BrandName,
			Product:   comp.Product,
			Rate:      comp.Rate,
			Notes:     comp.Notes,
		})
	}

	now := time.Now()
	key := bson.M{
		"staffId":       userID,
		"distributorId": act.DistributorID,
		"activityId":    act.ID,
		"shopName":      req.ShopName,
	}
	set := bson.M{
		"shopId":               shopID,
		"isLegacyShop":         isLegacy,
		"visitStartTime":       req.VisitStartTime,
		"visitEndTime":         req.VisitEndTime,
		"visitDurationMinutes": activity.DurationMinutes(req.VisitStartTime, req.VisitEndTime),
		"salesOrders":          orders,
		"competitors":          competitors,
		"notes":                req.Notes,
		"updatedAt":            now,
	}

	result, err := h.DB.Collection("retailer_shop_activities").UpdateOne(context.Background(), key, bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": now},
	}, options.Update().SetUpsert(true))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to record shop activity"))
		return
	}

	action := "updated shop visit"
	status := http.StatusOK
	if result.UpsertedCount > 0 {
		action = "recorded shop visit"
		status = http.StatusCreated
	}

	var visit models.RetailerShopActivity
	if err := h.DB.Collection("retailer_shop_activities").FindOne(context.Background(), key).Decode(&visit); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve shop activity"))
		return
	}

	h.Recorder.Record(userID, models.ActivityTypeShop, action, visit.ID, models.OnModelActivity, map[string]string{"shopName": req.ShopName})

	c.JSON(status, response.Success(visit))
}

// GetVisitsByActivity lists the shop visits recorded under one trip.
func (h *ShopActivityHandler) GetVisitsByActivity(c *gin.Context) {
	activityID, ok := objectIDParam(c, "activityId")
	if !ok {
		return
	}

	cursor, err := h.DB.Collection("retailer_shop_activities").Find(context.Background(), bson.M{"activityId": activityID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query shop activities"))
		return
	}
	defer cursor.Close(context.Background())

	var visits []models.RetailerShopActivity
	if err = cursor.All(context.Background(), &visits); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode shop activities"))
		return
	}
	if visits == nil {
		visits = []models.RetailerShopActivity{}
	}

	c.JSON(http.StatusOK, response.Success(visits))
}
