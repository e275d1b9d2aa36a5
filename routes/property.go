package routes

import (
	"strings"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"
	"github.com/MohamedAmineBenGhouizia/real-estate/utils"

	"github.com/kataras/iris/v12"
)

// GetProperties handles the public catalog listing with AND-combined
// filters. Absent or empty filter fields are left out of the predicate
// entirely; the boolean filters only narrow when set to true.
func GetProperties(ctx iris.Context) {
	q := storage.DB.Model(&models.Property{})

	if pType := strings.TrimSpace(ctx.URLParam("type")); pType != "" {
		q = q.Where("type = ?", pType)
	}
	if status := strings.TrimSpace(ctx.URLParam("status")); status != "" {
		q = q.Where("status = ?", status)
	}
	if minPrice, err := ctx.URLParamFloat64("minPrice"); err == nil && minPrice > 0 {
		q = q.Where("price >= ?", minPrice)
	}
	if maxPrice, err := ctx.URLParamFloat64("maxPrice"); err == nil && maxPrice > 0 {
		q = q.Where("price <= ?", maxPrice)
	}
	if minBedrooms, err := ctx.URLParamInt("minBedrooms"); err == nil && minBedrooms > 0 {
		q = q.Where("bedrooms >= ?", minBedrooms)
	}
	if minBathrooms, err := ctx.URLParamInt("minBathrooms"); err == nil && minBathrooms > 0 {
		q = q.Where("bathrooms >= ?", minBathrooms)
	}
	if minArea, err := ctx.URLParamFloat64("minArea"); err == nil && minArea > 0 {
		q = q.Where("area >= ?", minArea)
	}
	if maxArea, err := ctx.URLParamFloat64("maxArea"); err == nil && maxArea > 0 {
		q = q.Where("area <= ?", maxArea)
	}
	if hasGarden, err := ctx.URLParamBool("hasGarden"); err == nil && hasGarden {
		q = q.Where("has_garden = ?", true)
	}
	if hasBalcony, err := ctx.URLParamBool("hasBalcony"); err == nil && hasBalcony {
		q = q.Where("has_balcony = ?", true)
	}

	var properties []models.Property
	if err := q.Order("created_at DESC").Find(&properties).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	ctx.JSON(properties)
}

func GetProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	ctx.JSON(property)
}
