package services

import (
	"testing"
	"time"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStayNights(t *testing.T) {
	assert.Equal(t, 3, StayNights(day(2026, 6, 1), day(2026, 6, 4)))
	assert.Equal(t, 1, StayNights(day(2026, 6, 1), day(2026, 6, 2)))

	// Reversed ranges bill on the absolute difference.
	assert.Equal(t, 3, StayNights(day(2026, 6, 4), day(2026, 6, 1)))

	// Identical dates still bill a minimum of one night.
	assert.Equal(t, 1, StayNights(day(2026, 6, 1), day(2026, 6, 1)))

	// Partial days round up.
	start := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, StayNights(start, end))
}

func TestDeriveAmount(t *testing.T) {
	assert.Equal(t, 300.0, DeriveAmount(100, day(2026, 6, 1), day(2026, 6, 4)))
	assert.Equal(t, 79.99, DeriveAmount(79.99, day(2026, 6, 1), day(2026, 6, 2)))
	assert.Equal(t, 150.0, DeriveAmount(150, day(2026, 6, 1), day(2026, 6, 1)))
}

func newBillingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Property{}, &models.Reservation{}, &models.Invoice{}))
	return db
}

func TestCreateInvoiceForReservation(t *testing.T) {
	db := newBillingTestDB(t)

	property := models.Property{Title: "Loft", Price: 120, Type: "Apartment", Status: "available"}
	assert.NoError(t, db.Create(&property).Error)

	reservation := models.Reservation{
		UserID:     1,
		PropertyID: property.ID,
		StartDate:  day(2026, 7, 10),
		EndDate:    day(2026, 7, 12),
		Status:     models.ReservationPending,
	}
	assert.NoError(t, db.Create(&reservation).Error)

	invoice, err := CreateInvoiceForReservation(db, &reservation, &property)
	assert.NoError(t, err)
	assert.Equal(t, reservation.ID, invoice.ReservationID)
	assert.Equal(t, 240.0, invoice.Amount)
	assert.Equal(t, models.InvoiceUnpaid, invoice.Status)
}

func TestRecalculateInvoiceKeepsStatus(t *testing.T) {
	db := newBillingTestDB(t)

	property := models.Property{Title: "Loft", Price: 100, Type: "Apartment", Status: "available"}
	assert.NoError(t, db.Create(&property).Error)

	reservation := models.Reservation{
		UserID:     1,
		PropertyID: property.ID,
		StartDate:  day(2026, 7, 10),
		EndDate:    day(2026, 7, 12),
		Status:     models.ReservationConfirmed,
	}
	assert.NoError(t, db.Create(&reservation).Error)

	invoice := models.Invoice{
		ReservationID: reservation.ID,
		Amount:        200,
		IssuedDate:    time.Now().UTC(),
		Status:        models.InvoicePaid,
	}
	assert.NoError(t, db.Create(&invoice).Error)

	reservation.EndDate = day(2026, 7, 15)
	assert.NoError(t, RecalculateInvoice(db, &reservation, &property))

	var got models.Invoice
	assert.NoError(t, db.First(&got, invoice.ID).Error)
	assert.Equal(t, 500.0, got.Amount)
	assert.Equal(t, models.InvoicePaid, got.Status)
}
