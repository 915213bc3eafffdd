package handlers

import (
	"context"
	"net/http"
	"time"

	"field-sales-ops-api-server/internal/audit"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssignmentHandler struct {
	DB       *mongo.Database
	Recorder *audit.Recorder
}

type AssignDistributorsRequest struct {
	StaffID        string   `json:"staffId" binding:"required"`
	DistributorIDs []string `json:"distributorIds" binding:"required,min=1"`
}

type RemoveDistributorsRequest struct {
	DistributorIDs []string `json:"distributorIds" binding:"required,min=1"`
}

func (h *AssignmentHandler) resolveDistributorIDs(c *gin.Context, hexIDs []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, hex := range hexIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Invalid distributor id"))
			return nil, false
		}
		ids = append(ids, id)
	}

	count, err := h.DB.Collection("distributors").CountDocuments(context.Background(), bson.M{
		"_id":      bson.M{"$in": ids},
		"isActive": true,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Database error checking distributors"))
		return nil, false
	}
	if int(count) != len(ids) {
		c.JSON(http.StatusNotFound, response.Error("One or more distributors not found"))
		return nil, false
	}
	return ids, true
}

// Assign replaces the staff member's distributor set wholesale. If an
// active assignment exists it is updated in place so the one-active-per
// staff index holds.
func (h *AssignmentHandler) Assign(c *gin.Context) {
	var req AssignDistributorsRequest
	if !bindJSON(c, &req) {
		return
	}

	staffID, err := primitive.ObjectIDFromHex(req.StaffID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid staff id"))
		return
	}

	count, err := h.DB.Collection("users").CountDocuments(context.Background(), bson.M{
		"_id":      staffID,
		"role":     models.RoleMarketingStaff,
		"isActive": true,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Database error checking for staff"))
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, response.Error("Marketing staff user not found"))
		return
	}

	ids, ok := h.resolveDistributorIDs(c, req.DistributorIDs)
	if !ok {
		return
	}

	userID, _ := currentUser(c)
	now := time.Now()
	_, err = h.DB.Collection("staff_distributor_assignments").UpdateOne(context.Background(),
		bson.M{"staffId": staffID, "isActive": true},
		bson.M{
			"$set": bson.M{
				"distributorIds": ids,
				"assignedBy":     userID,
				"updatedAt":      now,
			},
			"$setOnInsert": bson.M{
				"staffId":   staffID,
				"isActive":  true,
				"createdAt": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to save assignment"))
		return
	}

	var assignment models.StaffDistributorAssignment
	if err := h.DB.Collection("staff_distributor_assignments").FindOne(context.Background(), bson.M{"staffId": staffID, "isActive": true}).Decode(&assignment); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve assignment"))
		return
	}

	h.Recorder.Record(userID, models.ActivityTypeAssignment, "assigned distributors", assignment.ID, models.OnModelAssignment, nil)

	c.JSON(http.StatusOK, response.Success(assignment))
}

// RemoveDistributors subtracts the given ids from the staff member's
// active assignment.
func (h *AssignmentHandler) RemoveDistributors(c *gin.Context) {
	staffID, ok := objectIDParam(c, "staffId")
	if !ok {
		return
	}

	var req RemoveDistributorsRequest
	if !bindJSON(c, &req) {
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.DistributorIDs))
	for _, hex := range req.DistributorIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error("Invalid distributor id"))
			return
		}
		ids = append(ids, id)
	}

	result, err := h.DB.Collection("staff_distributor_assignments").UpdateOne(context.Background(),
		bson.M{"staffId": staffID, "isActive": true},
		bson.M{
			"$pull": bson.M{"distributorIds": bson.M{"$in": ids}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to update assignment"))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("No active assignment for staff"))
		return
	}

	var assignment models.StaffDistributorAssignment
	if err := h.DB.Collection("staff_distributor_assignments").FindOne(context.Background(), bson.M{"staffId": staffID, "isActive": true}).Decode(&assignment); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve assignment"))
		return
	}

	userID, _ := currentUser(c)
	h.Recorder.Record(userID, models.ActivityTypeAssignment, "removed distributors", assignment.ID, models.OnModelAssignment, nil)

	c.JSON(http.StatusOK, response.Success(assignment))
}

// Deactivate retires the staff member's active assignment.
func (h *AssignmentHandler) Deactivate(c *gin.Context) {
	staffID, ok := objectIDParam(c, "staffId")
	if !ok {
		return
	}

	result, err := h.DB.Collection("staff_distributor_assignments").UpdateOne(context.Background(),
		bson.M{"staffId": staffID, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to deactivate assignment"))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("No active assignment for staff"))
		return
	}

	userID, _ := currentUser(c)
	h.Recorder.Record(userID, models.ActivityTypeAssignment, "deactivated assignment", staffID, models.OnModelAssignment, nil)

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Assignment deactivated"}))
}

// GetByStaff returns the active assignment with the distributors resolved.
func (h *AssignmentHandler) GetByStaff(c *gin.Context) {
	staffID, ok := objectIDParam(c, "staffId")
	if !ok {
		return
	}

	// Staff may only read their own assignment.
	userID, role := currentUser(c)
	if role == models.RoleMarketingStaff && staffID != userID {
		c.JSON(http.StatusForbidden, response.Error("You can only view your own assignment"))
		return
	}

	var assignment models.StaffDistributorAssignment
	err := h.DB.Collection("staff_distributor_assignments").FindOne(context.Background(), bson.M{"staffId": staffID, "isActive": true}).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("No active assignment for staff"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve assignment"))
		}
		return
	}

	cursor, err := h.DB.Collection("distributors").Find(context.Background(), bson.M{"_id": bson.M{"$in": assignment.DistributorIDs}})
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

	c.JSON(http.StatusOK, response.Success(gin.H{
		"assignment":   assignment,
		"distributors": distributors,
	}))
}
