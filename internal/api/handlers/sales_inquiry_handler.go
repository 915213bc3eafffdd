package handlers

import (
	"context"
	"net/http"
	"time"

	"field-sales-ops-api-server/internal/audit"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/internal/socket"
	"field-sales-ops-api-server/internal/workflow"
	"field-sales-ops-api-server/pkg/pagination"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SalesInquiryHandler struct {
	DB       *mongo.Database
	Recorder *audit.Recorder
	Hub      *socket.Hub
}

type InquiryProductRequest struct {
	BrandID  string  `json:"brandId" binding:"required"`
	Variant  string  `json:"variant" binding:"required"`
	Size     string  `json:"size" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

type CreateInquiryRequest struct {
	DistributorID string                  `json:"distributorId" binding:"required"`
	Products      []InquiryProductRequest `json:"products" binding:"required,min=1,dive"`
}

type InquiryTransitionRequest struct {
	Comment string `json:"comment"`
}

func (h *SalesInquiryHandler) CreateInquiry(c *gin.Context) {
	var req CreateInquiryRequest
	if !bindJSON(c, &req) {
		return
	}

	distributorID, err := primitive.ObjectIDFromHex(req.DistributorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid distributor id"))
		return
	}

	count, err := h.DB.Collection("distributors").CountDocuments(context.Background(), bson.M{"_id": distributorID, "isActive": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Database error checking for distributor"))
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, response.Error("Distributor not found"))
		return
	}

	products := make([]models.InquiryProduct, 0, len(req.Products))
	for _, p := range req.Products {
		brandID, err := primitive.ObjectIDFromHex(p.BrandID)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Invalid brand id"))
			return
		}
		products = append(products, models.InquiryProduct{
			BrandID:  brandID,
			Variant:  p.Variant,
			Size:     p.Size,
			Quantity: p.Quantity,
		})
	}

	userID, _ := currentUser(c)
	now := time.Now()
	inquiry := models.SalesInquiry{
		DistributorID: distributorID,
		Products:      products,
		Status:        models.InquiryStatusPending,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := h.DB.Collection("sales_inquiries").InsertOne(context.Background(), inquiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to create sales inquiry"))
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		inquiry.ID = oid
	}

	h.Recorder.Record(userID, models.ActivityTypeSalesInquiry, "created sales inquiry", inquiry.ID, models.OnModelSalesInquiry, nil)

	c.JSON(http.StatusCreated, response.Success(inquiry))
}

// Transition moves an inquiry to the requested status; the comment (if
// any) lands in managerComment.
func (h *SalesInquiryHandler) Transition(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		var req InquiryTransitionRequest
		if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
			return
		}

		var inquiry models.SalesInquiry
		err := h.DB.Collection("sales_inquiries").FindOne(context.Background(), bson.M{"_id": id}).Decode(&inquiry)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, response.Error("Sales inquiry not found"))
			} else {
				c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve sales inquiry"))
			}
			return
		}

		userID, role := currentUser(c)
		if err := workflow.InquiryRules.Check(inquiry.Status, target, role); err != nil {
			writeTransitionError(c, err)
			return
		}

		now := time.Now()
		set := bson.M{
			"status":      target,
			"processedBy": userID,
			"processedAt": now,
			"updatedAt":   now,
		}
		if req.Comment != "" {
			set["managerComment"] = req.Comment
		}

		if _, err := h.DB.Collection("sales_inquiries").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to update sales inquiry"))
			return
		}

		h.Recorder.Record(userID, models.ActivityTypeSalesInquiry, workflow.Verb(target)+" sales inquiry", id, models.OnModelSalesInquiry, nil)
		h.Hub.Notify(inquiry.CreatedBy.Hex(), socket.Event{Type: "salesInquiry", EntityID: id.Hex(), Status: target})

		h.respondPopulated(c, id)
	}
}

func (h *SalesInquiryHandler) respondPopulated(c *gin.Context, id primitive.ObjectID) {
	var inquiry models.SalesInquiry
	if err := h.DB.Collection("sales_inquiries").FindOne(context.Background(), bson.M{"_id": id}).Decode(&inquiry); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve sales inquiry"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"inquiry":     inquiry,
		"distributor": lookupDistributorRef(h.DB, inquiry.DistributorID),
		"createdBy":   lookupUserRef(h.DB, &inquiry.CreatedBy),
		"processedBy": lookupUserRef(h.DB, inquiry.ProcessedBy),
	}))
}

func (h *SalesInquiryHandler) GetInquiry(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	count, err := h.DB.Collection("sales_inquiries").CountDocuments(context.Background(), bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve sales inquiry"))
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, response.Error("Sales inquiry not found"))
		return
	}

	h.respondPopulated(c, id)
}

func (h *SalesInquiryHandler) GetAllInquiries(c *gin.Context) {
	page := pagination.Parse(c)
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	userID, role := currentUser(c)
	if role == models.RoleMarketingStaff {
		filter["createdBy"] = userID
	}

	collection := h.DB.Collection("sales_inquiries")
	total, err := collection.CountDocuments(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to count sales inquiries"))
		return
	}

	opts := options.Find().SetSkip(page.Skip).SetLimit(int64(page.Limit)).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query sales inquiries"))
		return
	}
	defer cursor.Close(context.Background())

	var inquiries []models.SalesInquiry
	if err = cursor.All(context.Background(), &inquiries); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode sales inquiries"))
		return
	}
	if inquiries == nil {
		inquiries = []models.SalesInquiry{}
	}

	c.JSON(http.StatusOK, response.List(inquiries, total, page.Page, page.Limit))
}

// DeleteInquiry removes an inquiry permanently. Admin only.
func (h *SalesInquiryHandler) DeleteInquiry(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.DB.Collection("sales_inquiries").DeleteOne(context.Background(), bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to delete sales inquiry"))
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("Sales inquiry not found"))
		return
	}

	userID, _ := currentUser(c)
	h.Recorder.Record(userID, models.ActivityTypeSalesInquiry, "deleted sales inquiry", id, models.OnModelSalesInquiry, nil)

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Sales inquiry deleted"}))
}
