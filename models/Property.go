package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing types accepted by the catalog.
var PropertyTypes = []string{"Apartment", "House", "Villa", "Penthouse", "Commercial"}

type Property struct {
	gorm.Model
	Title       string         `json:"title"`
	Description string         `json:"description" gorm:"type:text"`
	Address     string         `json:"address"`
	Price       float64        `json:"price"` // nightly price in currency units
	Type        string         `json:"type" gorm:"type:varchar(20);index"`
	Status      string         `json:"status" gorm:"type:varchar(20);default:'available';index"` // available, sold, rented
	Images      datatypes.JSON `json:"images"`                                                   // JSON array of URLs
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   int            `json:"bathrooms"`
	Area        float64        `json:"area"` // m²
	HasGarden   bool           `json:"hasGarden"`
	HasBalcony  bool           `json:"hasBalcony"`

	Reservations []Reservation `json:"reservations,omitempty"`
}

// Custom JSON marshaling to expose Images as a plain string array. Value
// receiver so both Property values and pointers go through it.
func (p Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := &struct {
		Images []string `json:"images"`
		*Alias
	}{
		Images: []string{},
		Alias:  (*Alias)(&p),
	}

	if p.Images != nil {
		var images []string
		if err := json.Unmarshal(p.Images, &images); err == nil {
			aux.Images = images
		}
	}

	return json.Marshal(aux)
}
