package handlers

import (
	"testing"

	"field-sales-ops-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanManageClaimImages(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	claim := models.DamageClaim{CreatedBy: owner}

	assert.True(t, canManageClaimImages(claim, owner, models.RoleMarketingStaff))
	assert.False(t, canManageClaimImages(claim, other, models.RoleMarketingStaff))

	// Managerial roles may always attach.
	assert.True(t, canManageClaimImages(claim, other, models.RoleAdmin))
	assert.True(t, canManageClaimImages(claim, other, models.RoleSubAdmin))
	assert.True(t, canManageClaimImages(claim, other, models.RoleMidLevelManager))
}
