package handlers

import (
	"context"
	"errors"
	"net/http"

	"field-sales-ops-api-server/internal/api/middleware"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/internal/workflow"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// currentUser pulls the authenticated user's id and role from the context.
func currentUser(c *gin.Context) (primitive.ObjectID, string) {
	idStr, _ := c.Get(middleware.CtxUserID)
	role, _ := c.Get(middleware.CtxUserRole)
	id, _ := primitive.ObjectIDFromHex(idStr.(string))
	return id, role.(string)
}

// bindJSON binds and validates the request body. On failure it writes the
// 400 validation envelope and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fieldErrs := make([]response.ValidationError, 0, len(verrs))
			for _, fe := range verrs {
				fieldErrs = append(fieldErrs, response.ValidationError{
					Field:   fe.Field(),
					Message: "failed on the '" + fe.Tag() + "' rule",
				})
			}
			c.JSON(http.StatusBadRequest, response.ValidationFailed(fieldErrs))
			return false
		}
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
		return false
	}
	return true
}

// objectIDParam parses the :id path parameter. On failure it writes the 400
// envelope and returns false.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid id"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// lookupUserRef resolves a user reference to its populated name/role shape.
// Best-effort; a dangling reference yields nil.
func lookupUserRef(db *mongo.Database, id *primitive.ObjectID) *models.UserRef {
	if id == nil || id.IsZero() {
		return nil
	}
	var ref models.UserRef
	if err := db.Collection("users").FindOne(context.Background(), bson.M{"_id": *id}).Decode(&ref); err != nil {
		return nil
	}
	return &ref
}

// lookupDistributorRef resolves a distributor reference for populated
// responses.
func lookupDistributorRef(db *mongo.Database, id primitive.ObjectID) *models.DistributorRef {
	var ref models.DistributorRef
	if err := db.Collection("distributors").FindOne(context.Background(), bson.M{"_id": id}).Decode(&ref); err != nil {
		return nil
	}
	return &ref
}

// writeTransitionError maps a workflow check failure to its status code:
// wrong predecessor state is a business-rule violation (400), a role
// outside the allow-list is forbidden (403).
func writeTransitionError(c *gin.Context, err error) {
	var stateErr *workflow.StateError
	var roleErr *workflow.RoleError
	switch {
	case errors.As(err, &roleErr):
		c.JSON(http.StatusForbidden, response.Error(err.Error()))
	case errors.As(err, &stateErr):
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}
}
