package models

import (
	"time"

	"gorm.io/gorm"
)

// Invoice is the billing record a Reservation exclusively owns (1:1).
// Amount always derives from nightly price × stay length; payment status
// moves independently of the reservation status.
type Invoice struct {
	gorm.Model
	ReservationID uint       `json:"reservationID" gorm:"uniqueIndex"`
	Amount        float64    `json:"amount"`
	IssuedDate    time.Time  `json:"issuedDate"`
	DueDate       *time.Time `json:"dueDate"`
	Status        string     `json:"status" gorm:"type:varchar(20);default:'unpaid';index"` // unpaid, pending, paid

	Reservation *Reservation `json:"reservation,omitempty" gorm:"foreignKey:ReservationID"`
}

const (
	InvoiceUnpaid  = "unpaid"
	InvoicePending = "pending"
	InvoicePaid    = "paid"
)

var InvoiceStatuses = []string{InvoiceUnpaid, InvoicePending, InvoicePaid}
