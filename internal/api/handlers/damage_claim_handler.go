package handlers

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"field-sales-ops-api-server/internal/audit"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/internal/socket"
	"field-sales-ops-api-server/internal/storage"
	"field-sales-ops-api-server/internal/tracking"
	"field-sales-ops-api-server/internal/workflow"
	"field-sales-ops-api-server/pkg/pagination"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DamageClaimHandler struct {
	DB       *mongo.Database
	Recorder *audit.Recorder
	Hub      *socket.Hub
	Files    storage.FileStore
}

type CreateClaimRequest struct {
	DistributorID string   `json:"distributorId" binding:"required"`
	BrandID       string   `json:"brandId" binding:"required"`
	Variant       string   `json:"variant" binding:"required"`
	Size          string   `json:"size" binding:"required"`
	Pieces        int      `json:"pieces" binding:"required,gt=0"`
	Reason        string   `json:"reason"`
	Images        []string `json:"images"`
}

type CommentClaimRequest struct {
	Comment string `json:"comment" binding:"required"`
}

type DecideClaimRequest struct {
	Status         string `json:"status" binding:"required,oneof=Approved 'Partially Approved' Rejected"`
	Comment        string `json:"comment"`
	ApprovedPieces int    `json:"approvedPieces"`
}

type ReplacementRequest struct {
	Method       string    `json:"method" binding:"required"`
	DispatchedOn time.Time `json:"dispatchedOn" binding:"required"`
	Notes        string    `json:"notes"`
}

func (h *DamageClaimHandler) CreateClaim(c *gin.Context) {
	var req CreateClaimRequest
	if !bindJSON(c, &req) {
		return
	}

	distributorID, err := primitive.ObjectIDFromHex(req.DistributorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid distributor id"))
		return
	}
	brandID, err := primitive.ObjectIDFromHex(req.BrandID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid brand id"))
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
	now := time.Now()
	images := req.Images
	if images == nil {
		images = []string{}
	}

	claim := models.DamageClaim{
		DistributorID: distributorID,
		BrandID:       brandID,
		Variant:       req.Variant,
		Size:          req.Size,
		Pieces:        req.Pieces,
		Reason:        req.Reason,
		Images:        images,
		Status:        models.ClaimStatusPending,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := h.DB.Collection("damage_claims").InsertOne(context.Background(), claim)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to create damage claim"))
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		claim.ID = oid
	}

	h.Recorder.Record(userID, models.ActivityTypeDamageClaim, "created damage claim", claim.ID, models.OnModelDamageClaim, nil)

	c.JSON(http.StatusCreated, response.Success(claim))
}

// Only the claim's creator or a managerial role may attach images.
func canManageClaimImages(claim models.DamageClaim, userID primitive.ObjectID, role string) bool {
	if role == models.RoleAdmin || role == models.RoleSubAdmin || role == models.RoleMidLevelManager {
		return true
	}
	return claim.CreatedBy == userID
}

// UploadImage stores one claim image and appends its reference.
func (h *DamageClaimHandler) UploadImage(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var claim models.DamageClaim
	if err := h.DB.Collection("damage_claims").FindOne(context.Background(), bson.M{"_id": id}).Decode(&claim); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Damage claim not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve damage claim"))
		}
		return
	}

	userID, role := currentUser(c)
	if !canManageClaimImages(claim, userID, role) {
		c.JSON(http.StatusForbidden, response.Error("You do not have permission to modify this claim"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("image file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to read uploaded file"))
		return
	}
	defer file.Close()

	ref, err := h.Files.Save(c.Request.Context(), "damage-claims", filepath.Ext(fileHeader.Filename), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to store file"))
		return
	}

	_, err = h.DB.Collection("damage_claims").UpdateOne(
		context.Background(),
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"images": ref}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to attach image"))
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	c.JSON(http.StatusOK, response.Success(gin.H{
		"image": storage.PublicURL(scheme, c.Request.Host, ref),
	}))
}

// Comment records a manager comment: Pending -> Commented.
func (h *DamageClaimHandler) Comment(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req CommentClaimRequest
	if !bindJSON(c, &req) {
		return
	}

	var claim models.DamageClaim
	if err := h.DB.Collection("damage_claims").FindOne(context.Background(), bson.M{"_id": id}).Decode(&claim); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Damage claim not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve damage claim"))
		}
		return
	}

	userID, role := currentUser(c)
	if err := workflow.ClaimRules.Check(claim.Status, models.ClaimStatusCommented, role); err != nil {
		writeTransitionError(c, err)
		return
	}

	_, err := h.DB.Collection("damage_claims").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":    models.ClaimStatusCommented,
		"comment":   req.Comment,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to update damage claim"))
		return
	}

	h.Recorder.Record(userID, models.ActivityTypeDamageClaim, "commented on damage claim", id, models.OnModelDamageClaim, nil)
	h.Hub.Notify(claim.CreatedBy.Hex(), socket.Event{Type: "damageClaim", EntityID: id.Hex(), Status: models.ClaimStatusCommented})

	h.respondPopulated(c, id)
}

// Decide settles a claim: Approved, Partially Approved or Rejected. A
// partial approval must satisfy 0 < approvedPieces < pieces. The tracking
// code is generated exactly once, the first time the claim enters an
// approved-like state.
func (h *DamageClaimHandler) Decide(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req DecideClaimRequest
	if !bindJSON(c, &req) {
		return
	}

	var claim models.DamageClaim
	if err := h.DB.Collection("damage_claims").FindOne(context.Background(), bson.M{"_id": id}).Decode(&claim); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("Damage claim not found"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve damage claim"))
		}
		return
	}

	userID, role := currentUser(c)
	if err := workflow.ClaimRules.Check(claim.Status, req.Status, role); err != nil {
		writeTransitionError(c, err)
		return
	}

	if req.Status == models.ClaimStatusPartiallyApproved && !workflow.PartialApprovalValid(req.ApprovedPieces, claim.Pieces) {
		c.JSON(http.StatusBadRequest, response.Error("approvedPieces must be greater than 0 and less than the claimed pieces"))
		return
	}

	now := time.Now()
	set := bson.M{
		"status":     req.Status,
		"approvedBy": userID,
		"approvedAt": now,
		"updatedAt":  now,
	}
	if req.Comment != "" {
		set["comment"] = req.Comment
	}
	if req.Status == models.ClaimStatusPartiallyApproved {
		set["approvedPieces"] = req.ApprovedPieces
	}
	if req.Status == models.ClaimStatusApproved {
		set["approvedPieces"] = claim.Pieces
	}

	// First entry into an approved-like state mints the tracking code. A
	// code set earlier is never regenerated.
	mintCode := workflow.NeedsTrackingCode(req.Status, claim.TrackingID)
	if mintCode {
		set["trackingId"] = tracking.NewCode(now)
	}

	_, err := h.DB.Collection("damage_claims").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil && mintCode && mongo.IsDuplicateKeyError(err) {
		// Random suffix collided with an existing code; retry once.
		set["trackingId"] = tracking.NewCode(now)
		_, err = h.DB.Collection("damage_claims").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": set})
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to update damage claim"))
		return
	}

	h.Recorder.Record(userID, models.ActivityTypeDamageClaim, workflow.Verb(req.Status)+" damage claim", id, models.OnModelDamageClaim, nil)
	h.Hub.Notify(claim.CreatedBy.Hex(), socket.Event{Type: "damageClaim", EntityID: id.Hex(), Status: req.Status})

	h.respondPopulated(c, id)
}

// RegisterReplacement records the physical replacement shipment against an
// approved claim's tracking id and completes the claim.
func (h *DamageClaimHandler) RegisterReplacement(c *gin.Context) {
	trackingID := c.Param("trackingId")
	if !tracking.Valid(trackingID) {
		c.JSON(http.StatusBadRequest, response.Error("Invalid tracking id"))
		return
	}

	var req ReplacementRequest
	if !bindJSON(c, &req) {
		return
	}

	var claim models.DamageClaim
	if err := h.DB.Collection("damage_claims").FindOne(context.Background(), bson.M{"trackingId": trackingID}).Decode(&claim); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, response.Error("No claim found for this tracking id"))
		} else {
			c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve damage claim"))
		}
		return
	}

	userID, role := currentUser(c)
	if err := workflow.ClaimRules.Check(claim.Status, models.ClaimStatusCompleted, role); err != nil {
		writeTransitionError(c, err)
		return
	}

	now := time.Now()
	_, err := h.DB.Collection("damage_claims").UpdateOne(context.Background(), bson.M{"_id": claim.ID}, bson.M{"$set": bson.M{
		"status": models.ClaimStatusCompleted,
		"replacementDetails": models.ReplacementDetails{
			Method:       req.Method,
			DispatchedOn: req.DispatchedOn,
			Notes:        req.Notes,
		},
		"updatedAt": now,
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to update damage claim"))
		return
	}

	h.Recorder.Record(userID, models.ActivityTypeDamageClaim, "completed damage claim", claim.ID, models.OnModelDamageClaim, map[string]string{"trackingId": trackingID})
	h.Hub.Notify(claim.CreatedBy.Hex(), socket.Event{Type: "damageClaim", EntityID: claim.ID.Hex(), Status: models.ClaimStatusCompleted})

	h.respondPopulated(c, claim.ID)
}

func (h *DamageClaimHandler) respondPopulated(c *gin.Context, id primitive.ObjectID) {
	var claim models.DamageClaim
	if err := h.DB.Collection("damage_claims").FindOne(context.Background(), bson.M{"_id": id}).Decode(&claim); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve damage claim"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"claim":       claim,
		"distributor": lookupDistributorRef(h.DB, claim.DistributorID),
		"createdBy":   lookupUserRef(h.DB, &claim.CreatedBy),
		"approvedBy":  lookupUserRef(h.DB, claim.ApprovedBy),
	}))
}

func (h *DamageClaimHandler) GetClaim(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	count, err := h.DB.Collection("damage_claims").CountDocuments(context.Background(), bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve damage claim"))
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, response.Error("Damage claim not found"))
		return
	}

	h.respondPopulated(c, id)
}

func (h *DamageClaimHandler) GetAllClaims(c *gin.Context) {
	page := pagination.Parse(c)
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	userID, role := currentUser(c)
	if role == models.RoleMarketingStaff {
		filter["createdBy"] = userID
	}

	collection := h.DB.Collection("damage_claims")
	total, err := collection.CountDocuments(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to count damage claims"))
		return
	}

	opts := options.Find().SetSkip(page.Skip).SetLimit(int64(page.Limit)).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query damage claims"))
		return
	}
	defer cursor.Close(context.Background())

	var claims []models.DamageClaim
	if err = cursor.All(context.Background(), &claims); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode damage claims"))
		return
	}
	if claims == nil {
		claims = []models.DamageClaim{}
	}

	c.JSON(http.StatusOK, response.List(claims, total, page.Page, page.Limit))
}

// DeleteClaim removes a claim permanently. Admin only.
func (h *DamageClaimHandler) DeleteClaim(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.DB.Collection("damage_claims").DeleteOne(context.Background(), bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to delete damage claim"))
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("Damage claim not found"))
		return
	}

	userID, _ := currentUser(c)
	h.Recorder.Record(userID, models.ActivityTypeDamageClaim, "deleted damage claim", id, models.OnModelDamageClaim, nil)

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Damage claim deleted"}))
}
