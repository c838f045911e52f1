package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Waste category types.
const (
	CategoryRecyclable    = "recyclable"
	CategoryBiodegradable = "biodegradable"
	CategoryHazardous     = "hazardous"
	CategoryOther         = "other"
)

// WasteCategory is an admin-configured lookup for a waste type.
type WasteCategory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	CategoryType string             `bson:"category_type" json:"category_type"`
	ColorCode    string             `bson:"color_code" json:"color_code"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// WasteTypes lists the 16 waste types selectable on the submission form.
var WasteTypes = []string{
	"Paper",
	"Cardboard",
	"PET Bottles",
	"Other Plastics",
	"Glass",
	"Metals",
	"Textiles",
	"Footwear",
	"E-waste",
	"Hazardous Waste",
	"Sanitary Waste",
	"Coconut Shells",
	"Tender Coconut Shells",
	"Garden Waste",
	"Other Biodegradable Waste",
	"Other Non-recyclables",
}

// IsKnownWasteType reports whether name is one of the configured waste types.
func IsKnownWasteType(name string) bool {
	for _, t := range WasteTypes {
		if t == name {
			return true
		}
	}
	return false
}
