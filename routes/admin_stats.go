package routes

import (
	"net/http"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"
	"github.com/MohamedAmineBenGhouizia/real-estate/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/stats returns the dashboard counters.
func AdminStats(ctx iris.Context) {
	var totalUsers, totalProperties, activeReservations int64
	storage.DB.Model(&models.User{}).Count(&totalUsers)
	storage.DB.Model(&models.Property{}).Count(&totalProperties)
	storage.DB.Model(&models.Reservation{}).Where("status = ?", models.ReservationConfirmed).Count(&activeReservations)

	// Revenue is the sum of paid invoices
	var totalRevenue float64
	if err := storage.DB.Model(&models.Invoice{}).
		Where("status = ?", models.InvoicePaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	var recentActivity []models.Reservation
	storage.DB.Preload("User").Preload("Property").
		Order("created_at DESC").Limit(5).
		Find(&recentActivity)

	ctx.JSON(iris.Map{
		"totalUsers":         totalUsers,
		"totalProperties":    totalProperties,
		"activeReservations": activeReservations,
		"totalRevenue":       totalRevenue,
		"recentActivity":     recentActivity,
	})
}
