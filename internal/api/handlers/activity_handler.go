package handlers

import (
	"context"
	"net/http"
	"time"

	"field-sales-ops-api-server/internal/activity"
	"field-sales-ops-api-server/internal/audit"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/pkg/pagination"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActivityHandler struct {
	DB       *mongo.Database
	Recorder *audit.Recorder
}

type PlannedShopRequest struct {
	Name      string `json:"name" binding:"required"`
	OwnerName string `json:"ownerName"`
	Address   string `json:"address"`
}

type PunchInRequest struct {
	DistributorID string                 `json:"distributorId" binding:"required"`
	Area          string                 `json:"area"`
	Transport     string                 `json:"transport"`
	Companion     string                 `json:"companion"`
	PlannedShops  []PlannedShopRequest   `json:"plannedShops" binding:"omitempty,dive"`
	SupplyBrands  []EstimateBrandRequest `json:"supplyEstimate" binding:"omitempty,dive"`
}

// PunchIn opens a trip to a distributor. A staff member may hold at most
// one open activity; the query guard plus the partial unique index on
// (staffId, status=Punched In) keep concurrent punch-ins from slipping
// through.
func (h *ActivityHandler) PunchIn(c *gin.Context) {
	var req PunchInRequest
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

	userID, _ := currentUser(c)
	collection := h.DB.Collection("marketing_staff_activities")

	open, err := collection.CountDocuments(context.Background(), bson.M{
		"staffId":      userID,
		"status":       models.ActivityPunchedIn,
		"punchOutTime": nil,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Database error checking for open activity"))
		return
	}
	if open > 0 {
		c.JSON(http.StatusBadRequest, response.Error("Already punched in"))
		return
	}

	planned := make([]models.PlannedShop, 0, len(req.PlannedShops))
	for _, p := range req.PlannedShops {
		planned = append(planned, models.PlannedShop{
			TempID:    uuid.New().String(),
			Name:      p.Name,
			OwnerName: p.OwnerName,
			Address:   p.Address,
		})
	}

	snapshot, err := estimateBrandsFromRequest(req.SupplyBrands)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid brand id in supply estimate"))
		return
	}

	now := time.Now()
	act := models.MarketingStaffActivity{
		StaffID:        userID,
		DistributorID:  distributorID,
		Area:           req.Area,
		Transport:      req.Transport,
		Companion:      req.Companion,
		PlannedShops:   planned,
		SupplySnapshot: snapshot,
		Status:         models.ActivityPunchedIn,
		PunchInTime:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	result, err := collection.InsertOne(context.Background(), act)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the race against a concurrent punch-in.
			c.JSON(http.StatusBadRequest, response.Error("Already punched in"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error("Failed to punch in"))
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		act.ID = oid
	}

	h.Recorder.Record(userID, models.ActivityTypePunch, "punched in", act.ID, models.OnModelActivity, nil)

	c.JSON(http.StatusCreated, response.Success(act))
}

// PunchOut closes the staff member's open trip, computes its duration and
// rolls up the shop activities recorded under it.
func (h *ActivityHandler) PunchOut(c *gin.Context) {
	userID, _ := currentUser(c)
	collection := h.DB.Collection("marketing_staff_activities")

	var act models.MarketingStaffActivity
	err := collection.FindOne(context.Background(), bson.M{
		"staffId":      userID,
		"status":       models.ActivityPunchedIn,
		"punchOutTime": nil,
	}).Decode(&act)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("No open activity to punch out from"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve open activity"))
		}
		return
	}

	cursor, err := h.DB.Collection("retailer_shop_activities").Find(context.Background(), bson.M{"activityId": act.ID})
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

	now := time.Now()
	totals := activity.Rollup(visits)

	_, err = collection.UpdateOne(context.Background(), bson.M{"_id": act.ID}, bson.M{"$set": bson.M{
		"status":          models.ActivityPunchedOut,
		"punchOutTime":    now,
		"durationMinutes": activity.DurationMinutes(act.PunchInTime, now),
		"totals":          totals,
		"updatedAt":       now,
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to punch out"))
		return
	}

	h.Recorder.Record(userID, models.ActivityTypePunch, "punched out", act.ID, models.OnModelActivity, nil)

	collection.FindOne(context.Background(), bson.M{"_id": act.ID}).Decode(&act)
	c.JSON(http.StatusOK, response.Success(act))
}

// GetOpenActivity returns the caller's currently open trip, if any.
func (h *ActivityHandler) GetOpenActivity(c *gin.Context) {
	userID, _ := currentUser(c)

	var act models.MarketingStaffActivity
	err := h.DB.Collection("marketing_staff_activities").FindOne(context.Background(), bson.M{
		"staffId":      userID,
		"status":       models.ActivityPunchedIn,
		"punchOutTime": nil,
	}).Decode(&act)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("No open activity"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve activity"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(act))
}

// GetActivities lists trips, filterable by staff, distributor and day.
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	page := pagination.Parse(c)
	filter := bson.M{}

	userID, role := currentUser(c)
	if role == models.RoleMarketingStaff {
		filter["staffId"] = userID
	} else if staff := c.Query("staffId"); staff != "" {
		if staffID, err := primitive.ObjectIDFromHex(staff); err == nil {
			filter["staffId"] = staffID
		}
	}
	if dist := c.Query("distributorId"); dist != "" {
		if distID, err := primitive.ObjectIDFromHex(dist); err == nil {
			filter["distributorId"] = distID
		}
	}
	if day := c.Query("date"); day != "" {
		if t, err := time.Parse("2006-01-02", day); err == nil {
			filter["punchInTime"] = bson.M{"$gte": t, "$lt": t.Add(24 * time.Hour)}
		}
	}

	collection := h.DB.Collection("marketing_staff_activities")
	total, err := collection.CountDocuments(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to count activities"))
		return
	}

	opts := options.Find().SetSkip(page.Skip).SetLimit(int64(page.Limit)).SetSort(bson.D{{Key: "punchInTime", Value: -1}})
	cursor, err := collection.Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query activities"))
		return
	}
	defer cursor.Close(context.Background())

	var activities []models.MarketingStaffActivity
	if err = cursor.All(context.Background(), &activities); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode activities"))
		return
	}
	if activities == nil {
		activities = []models.MarketingStaffActivity{}
	}

	c.JSON(http.StatusOK, response.List(activities, total, page.Page, page.Limit))
}
