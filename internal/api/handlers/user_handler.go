package handlers

import (
	"context"
	"net/http"
	"time"

	"field-sales-ops-api-server/internal/auth"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/pkg/pagination"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserHandler struct {
	DB *mongo.Database
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=Admin SubAdmin MidLevelManager MarketingStaff"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role" binding:"omitempty,oneof=Admin SubAdmin MidLevelManager MarketingStaff"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	collection := h.DB.Collection("users")

	count, err := collection.CountDocuments(context.Background(), bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Database error checking for user"))
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, response.Error("User with this email already exists"))
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to hash password"))
		return
	}

	now := time.Now()
	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hashed,
		Role:      req.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := collection.InsertOne(context.Background(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to create user"))
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	c.JSON(http.StatusCreated, response.Success(user))
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	collection := h.DB.Collection("users")
	page := pagination.Parse(c)

	filter := bson.M{"isActive": true}
	if role := c.Query("role"); role != "" {
		filter["role"] = role
	}

	total, err := collection.CountDocuments(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to count users"))
		return
	}

	opts := options.Find().SetSkip(page.Skip).SetLimit(int64(page.Limit)).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query users"))
		return
	}
	defer cursor.Close(context.Background())

	var users []models.User
	if err = cursor.All(context.Background(), &users); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode users"))
		return
	}
	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, response.List(users, total, page.Page, page.Limit))
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var user models.User
	err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("User not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve user"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(user))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.Role != "" {
		set["role"] = req.Role
	}

	result, err := h.DB.Collection("users").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to update user"))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("User not found"))
		return
	}

	var user models.User
	h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": id}).Decode(&user)
	c.JSON(http.StatusOK, response.Success(user))
}

// DeactivateUser soft-deletes a staff account.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.DB.Collection("users").UpdateOne(
		context.Background(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to deactivate user"))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("User not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "User deactivated"}))
}
