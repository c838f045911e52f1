package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle tracking statuses.
const (
	TrackingActive      = "active"
	TrackingInactive    = "inactive"
	TrackingMaintenance = "maintenance"
)

// VehicleTrackingPoint is an append-only GPS sample for a collection vehicle.
// Points may arrive out of order over the network; the current location of a
// vehicle is always the point with the maximum timestamp, never the last
// inserted one.
type VehicleTrackingPoint struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleNumber string             `bson:"vehicle_number" json:"vehicle_number"`
	CollectorID   string             `bson:"collector_id" json:"collector_id"`
	Latitude      float64            `bson:"latitude" json:"latitude"`
	Longitude     float64            `bson:"longitude" json:"longitude"`
	LocationName  string             `bson:"location_name,omitempty" json:"location_name,omitempty"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
	Status        string             `bson:"status" json:"status"`
	Speed         float64            `bson:"speed,omitempty" json:"speed,omitempty"` // in km/h
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// TrackingPointWithCollector is a tracking point with its collector resolved.
type TrackingPointWithCollector struct {
	VehicleTrackingPoint `bson:",inline"`
	Collector            *CollectorRef `bson:"collector,omitempty" json:"collector,omitempty"`
}

// IsValidTrackingStatus checks a tracking status string.
func IsValidTrackingStatus(status string) bool {
	switch status {
	case TrackingActive, TrackingInactive, TrackingMaintenance:
		return true
	default:
		return false
	}
}
