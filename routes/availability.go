package routes

import (
	"time"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"
	"github.com/MohamedAmineBenGhouizia/real-estate/utils"

	"github.com/kataras/iris/v12"
)

// BookedRange is a date span already covered by a non-cancelled
// reservation. Bounds are inclusive for availability purposes: the
// checkout day of one booking blocks a new check-in on that day.
type BookedRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// bookedRangesForProperty projects the reservations that currently block
// dates: status pending or confirmed, not yet fully in the past.
func bookedRangesForProperty(propertyID string, today time.Time) ([]BookedRange, error) {
	var reservations []models.Reservation
	err := storage.DB.
		Where("property_id = ? AND status IN (?) AND end_date >= ?",
			propertyID, []string{models.ReservationPending, models.ReservationConfirmed}, today).
		Order("start_date ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}

	ranges := make([]BookedRange, 0, len(reservations))
	for _, r := range reservations {
		ranges = append(ranges, BookedRange{StartDate: r.StartDate, EndDate: r.EndDate})
	}
	return ranges, nil
}

// IsDateBooked reports whether the date falls inside any booked range,
// inclusive on both ends.
func IsDateBooked(date time.Time, ranges []BookedRange) bool {
	for _, r := range ranges {
		if !date.Before(r.StartDate) && !date.After(r.EndDate) {
			return true
		}
	}
	return false
}

// GET /api/properties/:id/availability
func GetPropertyAvailability(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	ranges, err := bookedRangesForProperty(id, utils.Today())
	if err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	ctx.JSON(ranges)
}

type ValidateStayInput struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

// POST /api/properties/:id/validate-stay
// Pre-submission conflict check; the create endpoint re-checks inside its
// transaction, this only exists so clients can fail fast.
func ValidateStay(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input ValidateStayInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startDate := utils.TruncateToDay(input.StartDate)
	endDate := utils.TruncateToDay(input.EndDate)
	if !startDate.Before(endDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "endDate must be after startDate", ctx)
		return
	}

	var conflicts int64
	storage.DB.Model(&models.Reservation{}).
		Where("property_id = ? AND status IN (?) AND start_date < ? AND end_date > ?",
			id, []string{models.ReservationPending, models.ReservationConfirmed}, endDate, startDate).
		Count(&conflicts)

	if conflicts > 0 {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{
			"ok":        false,
			"conflicts": conflicts,
			"message":   "Selected dates are not available",
		})
		return
	}

	ctx.JSON(iris.Map{"ok": true})
}
