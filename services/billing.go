package services

import (
	"math"
	"time"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"

	"gorm.io/gorm"
)

// Billing derives invoice amounts from reservation dates and property
// prices. Creation and modification-approval recalculation must go
// through the same DeriveAmount so the two can never drift.

// StayNights returns the billable length of a stay in days: the ceiling
// of the absolute calendar-day difference, floored to a minimum of 1.
func StayNights(start, end time.Time) int {
	hours := math.Abs(end.Sub(start).Hours())
	days := int(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// DeriveAmount computes the invoice amount for a stay at the given
// nightly price.
func DeriveAmount(nightlyPrice float64, start, end time.Time) float64 {
	return nightlyPrice * float64(StayNights(start, end))
}

// CreateInvoiceForReservation issues the single invoice a reservation
// owns. Called exactly once, inside the reservation-creation transaction.
func CreateInvoiceForReservation(tx *gorm.DB, reservation *models.Reservation, property *models.Property) (*models.Invoice, error) {
	invoice := models.Invoice{
		ReservationID: reservation.ID,
		Amount:        DeriveAmount(property.Price, reservation.StartDate, reservation.EndDate),
		IssuedDate:    time.Now().UTC(),
		Status:        models.InvoiceUnpaid,
	}
	if err := tx.Create(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// RecalculateInvoice overwrites the amount from the reservation's current
// dates and the property's current price. Status and due date are left
// alone.
func RecalculateInvoice(tx *gorm.DB, reservation *models.Reservation, property *models.Property) error {
	amount := DeriveAmount(property.Price, reservation.StartDate, reservation.EndDate)
	return tx.Model(&models.Invoice{}).
		Where("reservation_id = ?", reservation.ID).
		Update("amount", amount).Error
}
