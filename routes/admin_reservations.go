package routes

import (
	"errors"
	"net/http"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"
	"github.com/MohamedAmineBenGhouizia/real-estate/services"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"
	"github.com/MohamedAmineBenGhouizia/real-estate/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// GET /api/admin/reservations
func AdminListReservations(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")
	userID := ctx.URLParamDefault("user_id", "")
	propertyID := ctx.URLParamDefault("property_id", "")
	modification := ctx.URLParamDefault("modification_status", "")

	q := storage.DB.Model(&models.Reservation{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if propertyID != "" {
		q = q.Where("property_id = ?", propertyID)
	}
	if modification != "" {
		q = q.Where("modification_status = ?", modification)
	}

	var total int64
	q.Count(&total)

	var items []models.Reservation
	if err := q.Preload("Property").Preload("Invoice").Preload("User").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, items, page, perPage, total)
}

// PATCH /api/admin/reservations/:id/status { status }
// Any status can move to any other; only enum membership is checked.
func AdminUpdateReservationStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.ReadJSON(&body); err != nil || !slices.Contains(models.ReservationStatuses, body.Status) {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "status must be one of pending, confirmed, cancelled")
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Preload("Property").First(&reservation, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "reservation not found")
		return
	}

	before := reservation
	reservation.Status = body.Status
	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.Audit(ctx, "reservation.status_update", "reservation", reservation.ID, before, reservation)

	if reservation.Property != nil {
		notificationService := services.NewNotificationService()
		go notificationService.SendReservationStatusChanged(&reservation, reservation.Property)
	}

	ctx.JSON(iris.Map{"data": reservation})
}

// POST /api/admin/reservations/:id/approve-modification
// Applies the requested dates, confirms the reservation and recalculates
// the invoice from the property's current price. The conditional update
// only succeeds while the request is still pending, so two admins can't
// both process it.
func AdminApproveModification(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Preload("Property").First(&reservation, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "reservation not found")
		return
	}

	if reservation.ModificationStatus != models.ModificationPending ||
		reservation.RequestedStartDate == nil || reservation.RequestedEndDate == nil {
		utils.JSONError(ctx, http.StatusConflict, "invalid_state", "no pending modification request")
		return
	}

	before := reservation
	newStart := *reservation.RequestedStartDate
	newEnd := *reservation.RequestedEndDate

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Reservation{}).
			Where("id = ? AND modification_status = ?", reservation.ID, models.ModificationPending).
			Updates(map[string]interface{}{
				"start_date":                newStart,
				"end_date":                  newEnd,
				"status":                    models.ReservationConfirmed,
				"modification_status":       models.ModificationApproved,
				"requested_start_date":      nil,
				"requested_end_date":        nil,
				"modification_reason":       "",
				"modification_requested_at": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyProcessed
		}

		reservation.StartDate = newStart
		reservation.EndDate = newEnd
		return services.RecalculateInvoice(tx, &reservation, reservation.Property)
	})

	if txErr == errAlreadyProcessed {
		utils.JSONError(ctx, http.StatusConflict, "invalid_state", "modification request already processed")
		return
	}
	if txErr != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", txErr.Error())
		return
	}

	storage.DB.Preload("Property").Preload("Invoice").Preload("User").First(&reservation, reservation.ID)

	utils.Audit(ctx, "reservation.modification_approve", "reservation", reservation.ID, before, reservation)

	notificationService := services.NewNotificationService()
	go notificationService.SendModificationDecided(&reservation, reservation.Property, models.ModificationApproved)

	ctx.JSON(iris.Map{"data": reservation})
}

// POST /api/admin/reservations/:id/reject-modification
// Authoritative dates and the invoice stay untouched.
func AdminRejectModification(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Preload("Property").First(&reservation, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "reservation not found")
		return
	}

	if reservation.ModificationStatus != models.ModificationPending {
		utils.JSONError(ctx, http.StatusConflict, "invalid_state", "no pending modification request")
		return
	}

	before := reservation

	res := storage.DB.Model(&models.Reservation{}).
		Where("id = ? AND modification_status = ?", reservation.ID, models.ModificationPending).
		Updates(map[string]interface{}{
			"modification_status":       models.ModificationRejected,
			"requested_start_date":      nil,
			"requested_end_date":        nil,
			"modification_reason":       "",
			"modification_requested_at": nil,
		})
	if res.Error != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(ctx, http.StatusConflict, "invalid_state", "modification request already processed")
		return
	}

	storage.DB.Preload("Property").Preload("Invoice").Preload("User").First(&reservation, reservation.ID)

	utils.Audit(ctx, "reservation.modification_reject", "reservation", reservation.ID, before, reservation)

	notificationService := services.NewNotificationService()
	go notificationService.SendModificationDecided(&reservation, reservation.Property, models.ModificationRejected)

	ctx.JSON(iris.Map{"data": reservation})
}

// errAlreadyProcessed aborts the approve transaction when another admin
// got there first.
var errAlreadyProcessed = errors.New("modification request already processed")
