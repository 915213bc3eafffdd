package handlers

import (
	"context"
	"net/http"
	"time"

	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductHandler struct {
	DB *mongo.Database
}

type BrandSizeRequest struct {
	Label string  `json:"label" binding:"required"`
	Rate  float64 `json:"rate"`
}

type BrandVariantRequest struct {
	Name  string             `json:"name" binding:"required"`
	Sizes []BrandSizeRequest `json:"sizes" binding:"required,dive"`
}

type CreateBrandRequest struct {
	Name     string                `json:"name" binding:"required"`
	Variants []BrandVariantRequest `json:"variants" binding:"required,dive"`
}

type CreateProductRequest struct {
	BrandID string `json:"brandId" binding:"required"`
	Variant string `json:"variant" binding:"required"`
	Size    string `json:"size" binding:"required"`
	Unit    string `json:"unit" binding:"required"`
}

func brandFromRequest(req CreateBrandRequest) models.Brand {
	variants := make([]models.BrandVariant, 0, len(req.Variants))
	for _, v := range req.Variants {
		sizes := make([]models.BrandSize, 0, len(v.Sizes))
		for _, s := range v.Sizes {
			sizes = append(sizes, models.BrandSize{Label: s.Label, Rate: s.Rate})
		}
		variants = append(variants, models.BrandVariant{Name: v.Name, Sizes: sizes})
	}
	return models.Brand{Name: req.Name, Variants: variants}
}

func (h *ProductHandler) CreateBrand(c *gin.Context) {
	var req CreateBrandRequest
	if !bindJSON(c, &req) {
		return
	}

	collection := h.DB.Collection("brands")
	count, err := collection.CountDocuments(context.Background(), bson.M{"name": req.Name, "isActive": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Database error checking for brand"))
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, response.Error("Brand with this name already exists"))
		return
	}

	now := time.Now()
	brand := brandFromRequest(req)
	brand.IsActive = true
	brand.CreatedAt = now
	brand.UpdatedAt = now

	result, err := collection.InsertOne(context.Background(), brand)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to create brand"))
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		brand.ID = oid
	}

	c.JSON(http.StatusCreated, response.Success(brand))
}

func (h *ProductHandler) GetAllBrands(c *gin.Context) {
	cursor, err := h.DB.Collection("brands").Find(context.Background(), bson.M{"isActive": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query brands"))
		return
	}
	defer cursor.Close(context.Background())

	var brands []models.Brand
	if err = cursor.All(context.Background(), &brands); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode brands"))
		return
	}
	if brands == nil {
		brands = []models.Brand{}
	}

	c.JSON(http.StatusOK, response.Success(brands))
}

func (h *ProductHandler) UpdateBrand(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateBrandRequest
	if !bindJSON(c, &req) {
		return
	}

	brand := brandFromRequest(req)
	result, err := h.DB.Collection("brands").UpdateOne(context.Background(), bson.M{"_id": id, "isActive": true}, bson.M{"$set": bson.M{
		"name":      brand.Name,
		"variants":  brand.Variants,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to update brand"))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("Brand not found"))
		return
	}

	var updated models.Brand
	h.DB.Collection("brands").FindOne(context.Background(), bson.M{"_id": id}).Decode(&updated)
	c.JSON(http.StatusOK, response.Success(updated))
}

func (h *ProductHandler) DeleteBrand(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.DB.Collection("brands").UpdateOne(
		context.Background(),
		bson.M{"_id": id, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to delete brand"))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("Brand not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Brand deleted"}))
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	brandID, err := primitive.ObjectIDFromHex(req.BrandID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid brand id"))
		return
	}

	count, err := h.DB.Collection("brands").CountDocuments(context.Background(), bson.M{"_id": brandID, "isActive": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Database error checking for brand"))
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, response.Error("Brand not found"))
		return
	}

	now := time.Now()
	product := models.Product{
		BrandID:   brandID,
		Variant:   req.Variant,
		Size:      req.Size,
		Unit:      req.Unit,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := h.DB.Collection("products").InsertOne(context.Background(), product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to create product"))
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}

	c.JSON(http.StatusCreated, response.Success(product))
}

func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	filter := bson.M{"isActive": true}
	if brand := c.Query("brandId"); brand != "" {
		if brandID, err := primitive.ObjectIDFromHex(brand); err == nil {
			filter["brandId"] = brandID
		}
	}

	cursor, err := h.DB.Collection("products").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to query products"))
		return
	}
	defer cursor.Close(context.Background())

	var products []models.Product
	if err = cursor.All(context.Background(), &products); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to decode products"))
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, response.Success(products))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.DB.Collection("products").UpdateOne(
		context.Background(),
		bson.M{"_id": id, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to delete product"))
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, response.Error("Product not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Product deleted"}))
}
