package routes

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) {
	properties := []models.Property{
		{Title: "Downtown Flat", Price: 90, Type: "Apartment", Status: "available", Bedrooms: 1, Bathrooms: 1, Area: 45},
		{Title: "Garden House", Price: 180, Type: "House", Status: "available", Bedrooms: 3, Bathrooms: 2, Area: 120, HasGarden: true},
		{Title: "Sold Villa", Price: 400, Type: "Villa", Status: "sold", Bedrooms: 5, Bathrooms: 3, Area: 300, HasGarden: true, HasBalcony: true},
		{Title: "Sky Penthouse", Price: 350, Type: "Penthouse", Status: "available", Bedrooms: 4, Bathrooms: 3, Area: 200, HasBalcony: true},
	}
	for i := range properties {
		assert.NoError(t, db.Create(&properties[i]).Error)
	}
}

func TestGetPropertiesNoFilters(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	seedCatalog(t, db)

	resp := doJSON(app, "GET", "/api/properties", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	var got []models.Property
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Len(t, got, 4)
}

func TestGetPropertiesFiltersCompose(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	seedCatalog(t, db)

	resp := doJSON(app, "GET", "/api/properties?type=House", "", nil)
	var got []models.Property
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "Garden House", got[0].Title)

	resp = doJSON(app, "GET", "/api/properties?status=available&minPrice=100&maxPrice=360", "", nil)
	got = nil
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Len(t, got, 2)

	resp = doJSON(app, "GET", "/api/properties?hasGarden=true&status=available", "", nil)
	got = nil
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "Garden House", got[0].Title)

	resp = doJSON(app, "GET", "/api/properties?minBedrooms=4", "", nil)
	got = nil
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Len(t, got, 2)

	// Nothing matches an impossible combination.
	resp = doJSON(app, "GET", "/api/properties?type=Commercial", "", nil)
	got = nil
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Len(t, got, 0)
}

func TestGetProperty(t *testing.T) {
	db := setupTestDB(t)
	app := buildTestApp(t)
	property := createTestProperty(t, db, 100)

	resp := doJSON(app, "GET", "/api/properties/"+uintPath(property.ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	var got models.Property
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, property.Title, got.Title)

	resp = doJSON(app, "GET", "/api/properties/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
