package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ColonyArea represents a residential colony, the unit of waste aggregation.
// Read-mostly reference data searched by free-text match on name/address/ward.
type ColonyArea struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Address        string             `bson:"address" json:"address"`
	WardNumber     string             `bson:"ward_number" json:"ward_number"`
	ZoneNumber     string             `bson:"zone_number" json:"zone_number"`
	ManagerID      string             `bson:"manager_id,omitempty" json:"manager_id,omitempty"`
	TotalBuildings int                `bson:"total_buildings" json:"total_buildings"`
	TotalResidents int                `bson:"total_residents" json:"total_residents"`
	TotalUnits     int                `bson:"total_units" json:"total_units"`
	Active         bool               `bson:"active" json:"active"`
	Latitude       float64            `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude      float64            `bson:"longitude,omitempty" json:"longitude,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// ManagerRef is the subset of a manager profile embedded in join views.
type ManagerRef struct {
	PersonalName  string `bson:"personal_name" json:"personal_name"`
	ContactNumber string `bson:"contact_number" json:"contact_number"`
}

// ColonyAreaWithManager is a colony with its manager profile resolved.
type ColonyAreaWithManager struct {
	ColonyArea `bson:",inline"`
	Manager    *ManagerRef `bson:"manager,omitempty" json:"manager,omitempty"`
}
