package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GarbageCollectorProfile represents a collector's profile record.
// Profiles are created lazily via upsert and may be partially filled.
type GarbageCollectorProfile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"user_id" json:"user_id"`
	PersonalName     string             `bson:"personal_name" json:"personal_name"`
	EmployeeID       string             `bson:"employee_id" json:"employee_id"`
	ContactNumber    string             `bson:"contact_number" json:"contact_number"`
	YearsExperience  int                `bson:"years_of_experience" json:"years_of_experience"`
	CompleteAddress  string             `bson:"complete_address" json:"complete_address"`
	AssignedAreas    []string           `bson:"assigned_areas" json:"assigned_areas"`
	ShiftTiming      string             `bson:"shift_timing" json:"shift_timing"`
	VehicleNumber    string             `bson:"vehicle_number" json:"vehicle_number"`
	SupervisorName   string             `bson:"supervisor_name" json:"supervisor_name"`
	WorkingStatus    string             `bson:"working_status" json:"working_status"` // "Active", "On Leave", "Retired"
	DailyTaskCounter int                `bson:"daily_task_counter" json:"daily_task_counter"`
	ProfilePicture   string             `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// ColonyManagerProfile represents a colony manager's profile record.
type ColonyManagerProfile struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             string             `bson:"user_id" json:"user_id"`
	PersonalName       string             `bson:"personal_name" json:"personal_name"`
	ContactNumber      string             `bson:"contact_number" json:"contact_number"`
	Email              string             `bson:"email" json:"email"`
	ColonyName         string             `bson:"colony_name" json:"colony_name"`
	ColonyAddress      string             `bson:"colony_address" json:"colony_address"`
	WardNumber         string             `bson:"ward_number" json:"ward_number"`
	ZoneNumber         string             `bson:"zone_number" json:"zone_number"`
	PresidentName      string             `bson:"president_name" json:"president_name"`
	PresidentContact   string             `bson:"president_contact" json:"president_contact"`
	PresidentEmail     string             `bson:"president_email" json:"president_email"`
	SecretaryName      string             `bson:"secretary_name" json:"secretary_name"`
	SecretaryContact   string             `bson:"secretary_contact" json:"secretary_contact"`
	SecretaryEmail     string             `bson:"secretary_email" json:"secretary_email"`
	NumberOfBuildings  int                `bson:"number_of_buildings" json:"number_of_buildings"`
	OccupiedUnits      int                `bson:"occupied_residential_units" json:"occupied_residential_units"`
	UnoccupiedUnits    int                `bson:"unoccupied_residential_units" json:"unoccupied_residential_units"`
	Offices            int                `bson:"offices" json:"offices"`
	Shops              int                `bson:"shops" json:"shops"`
	Eateries           int                `bson:"eateries" json:"eateries"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

// GovernmentAuthorityProfile represents a government authority's profile record.
type GovernmentAuthorityProfile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"user_id" json:"user_id"`
	PersonalName  string             `bson:"personal_name" json:"personal_name"`
	ContactNumber string             `bson:"contact_number" json:"contact_number"`
	Email         string             `bson:"email" json:"email"`
	Department    string             `bson:"department" json:"department"`
	Position      string             `bson:"position" json:"position"`
	Jurisdiction  string             `bson:"jurisdiction" json:"jurisdiction"`
	OfficeAddress string             `bson:"office_address" json:"office_address"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// WorkingStatusOptions lists the valid collector working statuses.
var WorkingStatusOptions = []string{"Active", "On Leave", "Retired"}

// ShiftTimings lists the selectable collector shifts.
var ShiftTimings = []string{
	"Morning (6 AM - 2 PM)",
	"Evening (2 PM - 10 PM)",
	"Night (10 PM - 6 AM)",
}
