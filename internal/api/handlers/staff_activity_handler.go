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

// StaffActivityHandler serves the audit trail written by audit.Recorder.
type StaffActivityHandler struct {
	DB *mongo.Database
}

// GetActivities lists audit entries newest first, filterable by staff,
// activity type and date range.
func (h *StaffActivityHandler) GetActivities(c *gin.Context) {
	page := pagination.Parse(c)
	filter := bson.M{}

	if staff := c.Query("staffId"); staff != "" {
		staffID, err := primitive.ObjectIDFromHex(staff)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Invalid staff id"))
			return
		}
		filter["staffId"] = staffID
	}
	if activityType := c.Query("activityType"); activityType != "" {
		filter["activityType"] = activityType
	}

	createdAt := bson.M{}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Invalid from date, expected YYYY-MM-DD"))
			return
		}
		createdAt["$gte"] = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Invalid to date, expected YYYY-MM-DD"))
			return
		}
		createdAt["$lt"] = t.Add(24 * time.Hour)
	}
	if len(createdAt) > 0 {
		filter["createdAt"] = createdAt
	}

	collection := h.DB.Collection("staff_activities")
	total, err := collection.CountDocuments(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to count activities"))
		return
	}

	opts := options.Find().SetSkip(page.Skip).SetLimit(int64(page.Limit)).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query activities"))
		return
	}
	defer cursor.Close(context.Background())

	var activities []models.StaffActivity
	if err = cursor.All(context.Background(), &activities); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode activities"))
		return
	}
	if activities == nil {
		activities = []models.StaffActivity{}
	}

	c.JSON(http.StatusOK, response.List(activities, total, page.Page, page.Limit))
}

// GetStaffSummary aggregates a staff member's audit entries by activity
// type over an optional date range.
func (h *StaffActivityHandler) GetStaffSummary(c *gin.Context) {
	staffID, ok := objectIDParam(c, "staffId")
	if !ok {
		return
	}

	match := bson.M{"staffId": staffID}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			match["createdAt"] = bson.M{"$gte": t}
		}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$activityType",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := h.DB.Collection("staff_activities").Aggregate(context.Background(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to aggregate activities"))
		return
	}
	defer cursor.Close(context.Background())

	var rows []bson.M
	if err = cursor.All(context.Background(), &rows); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode aggregation"))
		return
	}
	if rows == nil {
		rows = []bson.M{}
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"staffId": staffID.Hex(),
		"summary": rows,
	}))
}
