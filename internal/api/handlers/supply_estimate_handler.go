package handlers

import (
	"context"
	"net/http"
	"time"

	"field-sales-ops-api-server/internal/audit"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/internal/socket"
	"field-sales-ops-api-server/internal/workflow"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SupplyEstimateHandler struct {
	DB       *mongo.Database
	Recorder *audit.Recorder
	Hub      *socket.Hub
}

type EstimateSizeRequest struct {
	Label        string  `json:"label" binding:"required"`
	OpeningStock float64 `json:"openingStock"`
	Rate         float64 `json:"rate"`
}

type EstimateVariantRequest struct {
	Name  string                `json:"name" binding:"required"`
	Sizes []EstimateSizeRequest `json:"sizes" binding:"required,dive"`
}

type EstimateBrandRequest struct {
	BrandID  string                   `json:"brandId" binding:"required"`
	Name     string                   `json:"name" binding:"required"`
	Variants []EstimateVariantRequest `json:"variants" binding:"required,dive"`
}

type CreateEstimateRequest struct {
	DistributorID string                 `json:"distributorId" binding:"required"`
	Brands        []EstimateBrandRequest `json:"brands" binding:"required,min=1,dive"`
}

type UpdateEstimateRequest struct {
	Brands []EstimateBrandRequest `json:"brands" binding:"required,min=1,dive"`
	Note   string                 `json:"note"`
}

type EstimateDecisionRequest struct {
	Comment string `json:"comment"`
}

func estimateBrandsFromRequest(reqs []EstimateBrandRequest) ([]models.EstimateBrand, error) {
	brands := make([]models.EstimateBrand, 0, len(reqs))
	for _, b := range reqs {
		brandID, err := primitive.ObjectIDFromHex(b.BrandID)
		if err != nil {
			return nil, err
		}
		variants := make([]models.EstimateVariant, 0, len(b.Variants))
		for _, v := range b.Variants {
			sizes := make([]models.EstimateSize, 0, len(v.Sizes))
			for _, s := range v.Sizes {
				sizes = append(sizes, models.EstimateSize{
					Label:        s.Label,
					OpeningStock: s.OpeningStock,
					Rate:         s.Rate,
				})
			}
			variants = append(variants, models.EstimateVariant{Name: v.Name, Sizes: sizes})
		}
		brands = append(brands, models.EstimateBrand{BrandID: brandID, Name: b.Name, Variants: variants})
	}
	return brands, nil
}

func (h *SupplyEstimateHandler) CreateEstimate(c *gin.Context) {
	var req CreateEstimateRequest
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

	brands, err := estimateBrandsFromRequest(req.Brands)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid brand id"))
		return
	}

	userID, _ := currentUser(c)
	now := time.Now()
	estimate := models.SupplyEstimate{
		DistributorID:   distributorID,
		Brands:          brands,
		Status:          models.EstimateStatusPending,
		RevisionHistory: []models.EstimateRevision{},
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	result, err := h.DB.Collection("supply_estimates").InsertOne(context.Background(), estimate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to create supply estimate"))
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		estimate.ID = oid
	}

	h.Recorder.Record(userID, models.ActivityTypeSupplyEstimate, "created supply estimate", estimate.ID, models.OnModelSupplyEstimate, nil)

	c.JSON(http.StatusCreated, response.Success(estimate))
}

// UpdateEstimate replaces the brand tree of a pending estimate and appends
// a revision entry.
func (h *SupplyEstimateHandler) UpdateEstimate(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateEstimateRequest
	if !bindJSON(c, &req) {
		return
	}

	var estimate models.SupplyEstimate
	if err := h.DB.Collection("supply_estimates").FindOne(context.Background(), bson.M{"_id": id}).Decode(&estimate); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Supply estimate not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve supply estimate"))
		}
		return
	}

	if estimate.Status != models.EstimateStatusPending {
		c.JSON(http.StatusBadRequest, response.Error("Only a pending estimate can be revised"))
		return
	}

	brands, err := estimateBrandsFromRequest(req.Brands)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid brand id"))
		return
	}

	userID, _ := currentUser(c)
	now := time.Now()
	revision := models.EstimateRevision{RevisedBy: userID, RevisedAt: now, Note: req.Note}

	_, err = h.DB.Collection("supply_estimates").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{
		"$set":  bson.M{"brands": brands, "updatedAt": now},
		"$push": bson.M{"revisionHistory": revision},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to update supply estimate"))
		return
	}

	h.Recorder.Record(userID, models.ActivityTypeSupplyEstimate, "revised supply estimate", id, models.OnModelSupplyEstimate, nil)

	h.DB.Collection("supply_estimates").FindOne(context.Background(), bson.M{"_id": id}).Decode(&estimate)
	c.JSON(http.StatusOK, response.Success(estimate))
}

// Decide approves or rejects a pending estimate.
func (h *SupplyEstimateHandler) Decide(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		var req EstimateDecisionRequest
		if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
			return
		}

		var estimate models.SupplyEstimate
		if err := h.DB.Collection("supply_estimates").FindOne(context.Background(), bson.M{"_id": id}).Decode(&estimate); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, response.Error("Supply estimate not found"))
			} else {
				c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve supply estimate"))
			}
			return
		}

		userID, role := currentUser(c)
		if err := workflow.EstimateRules.Check(estimate.Status, target, role); err != nil {
			writeTransitionError(c, err)
			return
		}

		now := time.Now()
		set := bson.M{
			"status":     target,
			"approvedBy": userID,
			"approvedAt": now,
			"updatedAt":  now,
		}
		if req.Comment != "" {
			set["comment"] = req.Comment
		}

		if _, err := h.DB.Collection("supply_estimates").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to update supply estimate"))
			return
		}

		h.Recorder.Record(userID, models.ActivityTypeSupplyEstimate, workflow.Verb(target)+" supply estimate", id, models.OnModelSupplyEstimate, nil)
		h.Hub.Notify(estimate.CreatedBy.Hex(), socket.Event{Type: "supplyEstimate", EntityID: id.Hex(), Status: target})

		h.DB.Collection("supply_estimates").FindOne(context.Background(), bson.M{"_id": id}).Decode(&estimate)
		c.JSON(http.StatusOK, response.Success(gin.H{
			"estimate":    estimate,
			"distributor": lookupDistributorRef(h.DB, estimate.DistributorID),
			"createdBy":   lookupUserRef(h.DB, &estimate.CreatedBy),
			"approvedBy":  lookupUserRef(h.DB, estimate.ApprovedBy),
		}))
	}
}

func (h *SupplyEstimateHandler) GetAllEstimates(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if dist := c.Query("distributorId"); dist != "" {
		if distID, err := primitive.ObjectIDFromHex(dist); err == nil {
			filter["distributorId"] = distID
		}
	}

	cursor, err := h.DB.Collection("supply_estimates").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query supply estimates"))
		return
	}
	defer cursor.Close(context.Background())

	var estimates []models.SupplyEstimate
	if err = cursor.All(context.Background(), &estimates); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode supply estimates"))
		return
	}
	if estimates == nil {
		estimates = []models.SupplyEstimate{}
	}

	c.JSON(http.StatusOK, response.Success(estimates))
}

func (h *SupplyEstimateHandler) GetEstimate(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var estimate models.SupplyEstimate
	err := h.DB.Collection("supply_estimates").FindOne(context.Background(), bson.M{"_id": id}).Decode(&estimate)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Supply estimate not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve supply estimate"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(estimate))
}
