package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission status transitions are one-way: submitted -> verified -> processed.
const (
	StatusSubmitted = "submitted"
	StatusVerified  = "verified"
	StatusProcessed = "processed"
)

// WasteSubmission represents a single waste-collection record created by a collector.
type WasteSubmission struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CollectorID    string             `bson:"collector_id" json:"collector_id"`
	DateTime       time.Time          `bson:"date_time" json:"date_time"`
	WasteType      string             `bson:"waste_type" json:"waste_type"`
	Weight         float64            `bson:"weight" json:"weight"` // in kilograms
	ColonyName     string             `bson:"colony_name" json:"colony_name"`
	BuildingNumber string             `bson:"building_number,omitempty" json:"building_number,omitempty"`
	HouseNumber    string             `bson:"house_number,omitempty" json:"house_number,omitempty"`
	ImageURL       string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// CollectorRef is the subset of a collector profile embedded in join views.
type CollectorRef struct {
	PersonalName  string `bson:"personal_name" json:"personal_name"`
	EmployeeID    string `bson:"employee_id" json:"employee_id"`
	VehicleNumber string `bson:"vehicle_number" json:"vehicle_number"`
}

// WasteSubmissionWithCollector is a submission with its collector profile resolved.
type WasteSubmissionWithCollector struct {
	WasteSubmission `bson:",inline"`
	Collector       *CollectorRef `bson:"collector,omitempty" json:"collector,omitempty"`
}

// WasteFormData carries raw form input for a submission before validation.
type WasteFormData struct {
	DateTime       string `json:"date_time"`
	WasteType      string `json:"waste_type"`
	Weight         string `json:"weight"`
	ColonyName     string `json:"colony_name"`
	BuildingNumber string `json:"building_number,omitempty"`
	HouseNumber    string `json:"house_number,omitempty"`
	Notes          string `json:"notes,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
}

// NextStatus returns the allowed successor of a submission status, or "" if terminal.
func NextStatus(status string) string {
	switch status {
	case StatusSubmitted:
		return StatusVerified
	case StatusVerified:
		return StatusProcessed
	default:
		return ""
	}
}
