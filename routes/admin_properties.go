package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"
	"github.com/MohamedAmineBenGhouizia/real-estate/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
)

type PropertyInput struct {
	Title       string   `json:"title" validate:"required,max=256"`
	Description string   `json:"description"`
	Address     string   `json:"address" validate:"required,max=512"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Type        string   `json:"type" validate:"required,oneof=Apartment House Villa Penthouse Commercial"`
	Status      string   `json:"status" validate:"omitempty,oneof=available sold rented"`
	Images      []string `json:"images"` // base64 payloads or existing URLs
	Bedrooms    int      `json:"bedrooms" validate:"min=0"`
	Bathrooms   int      `json:"bathrooms" validate:"min=0"`
	Area        float64  `json:"area" validate:"min=0"`
	HasGarden   bool     `json:"hasGarden"`
	HasBalcony  bool     `json:"hasBalcony"`
}

// uploadPropertyImages sends base64 images to Cloudinary and returns the
// resulting URLs. Already-hosted URLs pass through untouched.
func uploadPropertyImages(images []string, propertyKey string) []string {
	urls := make([]string, 0, len(images))
	for i, image := range images {
		if strings.Contains(image, "res.cloudinary.com") || strings.HasPrefix(image, "http") {
			urls = append(urls, image)
			continue
		}
		if url := storage.UploadBase64Image(image, fmt.Sprintf("properties/%s/%d", propertyKey, i)); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// POST /api/admin/properties
func AdminCreateProperty(ctx iris.Context) {
	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	status := input.Status
	if status == "" {
		status = "available"
	}

	property := models.Property{
		Title:       input.Title,
		Description: input.Description,
		Address:     input.Address,
		Price:       input.Price,
		Type:        input.Type,
		Status:      status,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		Area:        input.Area,
		HasGarden:   input.HasGarden,
		HasBalcony:  input.HasBalcony,
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	if len(input.Images) > 0 {
		urls := uploadPropertyImages(input.Images, fmt.Sprintf("%d", property.ID))
		if raw, err := json.Marshal(urls); err == nil {
			property.Images = datatypes.JSON(raw)
			storage.DB.Save(&property)
		}
	}

	utils.Audit(ctx, "property.create", "property", property.ID, nil, property)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": property})
}

// PUT /api/admin/properties/:id
func AdminUpdateProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "property not found")
		return
	}

	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := property

	property.Title = input.Title
	property.Description = input.Description
	property.Address = input.Address
	property.Price = input.Price
	property.Type = input.Type
	if input.Status != "" {
		property.Status = input.Status
	}
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.Area = input.Area
	property.HasGarden = input.HasGarden
	property.HasBalcony = input.HasBalcony

	if len(input.Images) > 0 {
		// New uploads are appended to the existing gallery
		existing := []string{}
		if property.Images != nil {
			_ = json.Unmarshal(property.Images, &existing)
		}
		for _, url := range uploadPropertyImages(input.Images, fmt.Sprintf("%d", property.ID)) {
			if !slices.Contains(existing, url) {
				existing = append(existing, url)
			}
		}
		if raw, err := json.Marshal(existing); err == nil {
			property.Images = datatypes.JSON(raw)
		}
	}

	if err := storage.DB.Save(&property).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "property.update", "property", property.ID, before, property)
	ctx.JSON(iris.Map{"data": property})
}

// DELETE /api/admin/properties/:id
func AdminDeleteProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "property not found")
		return
	}

	if err := storage.DB.Delete(&property).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "property.delete", "property", property.ID, property, nil)
	ctx.JSON(iris.Map{"message": "Property removed"})
}
