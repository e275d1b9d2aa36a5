package routes

import (
	"errors"
	"time"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"
	"github.com/MohamedAmineBenGhouizia/real-estate/services"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"
	"github.com/MohamedAmineBenGhouizia/real-estate/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

type CreateReservationInput struct {
	PropertyID uint      `json:"propertyID" validate:"required"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
}

// countOverlapping returns how many blocking reservations intersect the
// given range for a property. Two ranges overlap when each one starts
// before the other ends.
func countOverlapping(tx *gorm.DB, propertyID uint, start, end time.Time, excludeID uint) (int64, error) {
	var conflicts int64
	q := tx.Model(&models.Reservation{}).
		Where("property_id = ? AND status IN (?) AND start_date < ? AND end_date > ?",
			propertyID, []string{models.ReservationPending, models.ReservationConfirmed}, end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&conflicts).Error
	return conflicts, err
}

func CreateReservation(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startDate := utils.TruncateToDay(input.StartDate)
	endDate := utils.TruncateToDay(input.EndDate)

	// Zero-length stays are rejected outright: endDate must be strictly
	// after startDate.
	if !startDate.Before(endDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "endDate must be after startDate", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, input.PropertyID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	reservation := models.Reservation{
		UserID:             claims.ID,
		PropertyID:         property.ID,
		StartDate:          startDate,
		EndDate:            endDate,
		Status:             models.ReservationPending,
		ModificationStatus: models.ModificationNone,
	}

	// The overlap check, the reservation and its invoice all live in one
	// transaction so two concurrent bookings can't both pass the check,
	// and a reservation can never exist without its invoice.
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		conflicts, err := countOverlapping(tx, property.ID, startDate, endDate, 0)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return errDatesUnavailable
		}

		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}

		_, err = services.CreateInvoiceForReservation(tx, &reservation, &property)
		return err
	})

	if txErr == errDatesUnavailable {
		utils.CreateError(iris.StatusConflict, "Conflict", "Selected dates are not available", ctx)
		return
	}
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Reload with relationships for the response
	storage.DB.Preload("Property").Preload("Invoice").First(&reservation, reservation.ID)

	notificationService := services.NewNotificationService()
	go notificationService.SendReservationCreated(&reservation, &property)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(reservation)
}

func GetMyReservations(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var reservations []models.Reservation
	res := storage.DB.Preload("Property").Preload("Invoice").
		Where("user_id = ?", claims.ID).
		Order("created_at DESC").
		Find(&reservations)

	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(reservations)
}

type RequestModificationInput struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	Reason    string    `json:"reason" validate:"required"`
}

// RequestModification records a client's proposed date change. The
// authoritative dates stay untouched until an admin approves.
func RequestModification(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	var input RequestModificationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	newStart := utils.TruncateToDay(input.StartDate)
	newEnd := utils.TruncateToDay(input.EndDate)
	if !newStart.Before(newEnd) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "endDate must be after startDate", ctx)
		return
	}

	var reservation models.Reservation
	if err := storage.DB.First(&reservation, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Reservation not found", ctx)
		return
	}

	if reservation.UserID != claims.ID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You can only modify your own reservations", ctx)
		return
	}

	if reservation.Status == models.ReservationCancelled {
		utils.CreateError(iris.StatusConflict, "Conflict", "Cancelled reservations cannot be modified", ctx)
		return
	}

	if reservation.ModificationStatus == models.ModificationPending {
		utils.CreateError(iris.StatusConflict, "Conflict", "A modification request is already pending", ctx)
		return
	}

	now := time.Now().UTC()
	reservation.RequestedStartDate = &newStart
	reservation.RequestedEndDate = &newEnd
	reservation.ModificationReason = input.Reason
	reservation.ModificationStatus = models.ModificationPending
	reservation.ModificationRequestedAt = &now

	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reservation)
}

// errDatesUnavailable is the sentinel the create transaction returns to
// roll back on booking overlap.
var errDatesUnavailable = errors.New("selected dates are not available")
