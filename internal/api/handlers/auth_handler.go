package handlers

import (
	"context"
	"net/http"
	"time"

	"field-sales-ops-api-server/internal/auth"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthHandler struct {
	DB *mongo.Database
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates by email and password. The x-admin-panel header
// narrows the lookup to admin-panel roles. Five consecutive failures lock
// the account for 30 minutes; the lock clears lazily on the next attempt
// after the window.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	filter := bson.M{"email": req.Email, "isActive": true}
	if c.GetHeader("x-admin-panel") == "true" {
		filter["role"] = bson.M{"$in": []string{models.RoleAdmin, models.RoleSubAdmin}}
	}

	collection := h.DB.Collection("users")
	var user models.User
	if err := collection.FindOne(context.Background(), filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, response.Error("Invalid credentials"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to look up user"))
		}
		return
	}

	now := time.Now()
	if user.IsLocked(now) {
		c.JSON(http.StatusUnauthorized, response.Error("Account is locked. Try again later."))
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		attempts := user.FailedLoginAttempts + 1
		if user.LockUntil != nil && !now.Before(*user.LockUntil) {
			// Expired lock: this failure starts a fresh count.
			attempts = 1
		}
		update := bson.M{"failedLoginAttempts": attempts}
		if attempts >= models.MaxFailedLogins {
			lockUntil := now.Add(models.LockoutWindow)
			update["lockUntil"] = lockUntil
		}
		collection.UpdateOne(context.Background(), bson.M{"_id": user.ID}, bson.M{"$set": update})
		c.JSON(http.StatusUnauthorized, response.Error("Invalid credentials"))
		return
	}

	collection.UpdateOne(context.Background(), bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"failedLoginAttempts": 0},
		"$unset": bson.M{"lockUntil": ""},
	})

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"token": token,
		"user":  user,
	}))
}

// Me returns the authenticated user's record.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := currentUser(c)

	var user models.User
	err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": userID}).Decode(&user)
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
