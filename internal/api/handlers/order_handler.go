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

type OrderHandler struct {
	DB       *mongo.Database
	Recorder *audit.Recorder
	Hub      *socket.Hub
}

type OrderItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit" binding:"required"`
}

type CreateOrderRequest struct {
	DistributorID string             `json:"distributorId" binding:"required"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type TransitionRequest struct {
	Comment string `json:"comment"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.OrderItem{Name: it.Name, Quantity: it.Quantity, Unit: it.Unit})
	}

	now := time.Now()
	order := models.Order{
		DistributorID: distributorID,
		Items:         items,
		Status:        models.OrderStatusRequested,
		CreatedBy:     userID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := h.DB.Collection("orders").InsertOne(context.Background(), order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to create order"))
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}

	h.Recorder.Record(userID, models.ActivityTypeOrder, "created order", order.ID, models.OnModelOrder, nil)

	c.JSON(http.StatusCreated, response.Success(order))
}

// Transition moves an order to the requested status. The workflow table is
// checked before anything is written; a rejected transition leaves the
// order untouched.
func (h *OrderHandler) Transition(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		var req TransitionRequest
		if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
			return
		}

		var order models.Order
		err := h.DB.Collection("orders").FindOne(context.Background(), bson.M{"_id": id, "isActive": true}).Decode(&order)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, response.Error("Order not found"))
			} else {
				c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve order"))
			}
			return
		}

		userID, role := currentUser(c)
		if err := workflow.OrderRules.Check(order.Status, target, role); err != nil {
			writeTransitionError(c, err)
			return
		}

		now := time.Now()
		set := bson.M{"status": target, "updatedAt": now}
		if req.Comment != "" {
			set["comment"] = req.Comment
		}
		switch target {
		case models.OrderStatusApproved, models.OrderStatusRejected:
			set["approvedBy"] = userID
			set["approvedAt"] = now
		case models.OrderStatusDispatched:
			set["dispatchedBy"] = userID
			set["dispatchedAt"] = now
		}

		if _, err := h.DB.Collection("orders").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to update order"))
			return
		}

		h.Recorder.Record(userID, models.ActivityTypeOrder, workflow.Verb(target)+" order", id, models.OnModelOrder, nil)
		h.Hub.Notify(order.CreatedBy.Hex(), socket.Event{Type: "order", EntityID: id.Hex(), Status: target})

		h.respondPopulated(c, id)
	}
}

func (h *OrderHandler) respondPopulated(c *gin.Context, id primitive.ObjectID) {
	var order models.Order
	if err := h.DB.Collection("orders").FindOne(context.Background(), bson.M{"_id": id}).Decode(&order); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve order"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"order":        order,
		"distributor":  lookupDistributorRef(h.DB, order.DistributorID),
		"createdBy":    lookupUserRef(h.DB, &order.CreatedBy),
		"approvedBy":   lookupUserRef(h.DB, order.ApprovedBy),
		"dispatchedBy": lookupUserRef(h.DB, order.DispatchedBy),
	}))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	count, err := h.DB.Collection("orders").CountDocuments(context.Background(), bson.M{"_id": id, "isActive": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve order"))
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, response.Error("Order not found"))
		return
	}

	h.respondPopulated(c, id)
}

func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	page := pagination.Parse(c)
	filter := bson.M{"isActive": true}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if dist := c.Query("distributorId"); dist != "" {
		if distID, err := primitive.ObjectIDFromHex(dist); err == nil {
			filter["distributorId"] = distID
		}
	}

	// Marketing staff see only their own orders.
	userID, role := currentUser(c)
	if role == models.RoleMarketingStaff {
		filter["createdBy"] = userID
	}

	collection := h.DB.Collection("orders")
	total, err := collection.CountDocuments(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to count orders"))
		return
	}

	opts := options.Find().SetSkip(page.Skip).SetLimit(int64(page.Limit)).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query orders"))
		return
	}
	defer cursor.Close(context.Background())

	var orders []models.Order
	if err = cursor.All(context.Background(), &orders); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode orders"))
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, response.List(orders, total, page.Page, page.Limit))
}

// DeleteOrder soft-deletes an order.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.DB.Collection("orders").UpdateOne(
		context.Background(),
		bson.M{"_id": id, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to delete order"))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("Order not found"))
		return
	}

	userID, _ := currentUser(c)
	h.Recorder.Record(userID, models.ActivityTypeOrder, "deleted order", id, models.OnModelOrder, nil)

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Order deleted"}))
}
