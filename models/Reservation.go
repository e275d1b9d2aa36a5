package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation is a client's request to occupy a Property for a date range.
// StartDate and EndDate are authoritative; the Requested* fields only hold
// a proposed change while a modification request is pending admin review.
type Reservation struct {
	gorm.Model
	UserID     uint      `json:"userID" gorm:"index"`
	PropertyID uint      `json:"propertyID" gorm:"index"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:'pending';index"` // pending, confirmed, cancelled

	RequestedStartDate      *time.Time `json:"requestedStartDate"`
	RequestedEndDate        *time.Time `json:"requestedEndDate"`
	ModificationReason      string     `json:"modificationReason"`
	ModificationStatus      string     `json:"modificationStatus" gorm:"type:varchar(20);default:'none';index"` // none, pending, approved, rejected
	ModificationRequestedAt *time.Time `json:"modificationRequestedAt"`

	// Relationships
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Invoice  *Invoice  `json:"invoice,omitempty" gorm:"foreignKey:ReservationID"`
}

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

const (
	ModificationNone     = "none"
	ModificationPending  = "pending"
	ModificationApproved = "approved"
	ModificationRejected = "rejected"
)

var ReservationStatuses = []string{ReservationPending, ReservationConfirmed, ReservationCancelled}
