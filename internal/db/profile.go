package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/swachhdev/waste-collect/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Profile collections share the same access pattern: profiles are created
// lazily via upsert keyed by user_id, and a missing profile reads back as
// (nil, nil) — an empty default, not an error.

// CollectorProfileCollection defines collector profile operations.
type CollectorProfileCollection interface {
	Upsert(ctx context.Context, profile models.GarbageCollectorProfile) error
	FindByUserID(ctx context.Context, userID string) (*models.GarbageCollectorProfile, error)
	FindByUserIDs(ctx context.Context, userIDs []string) ([]models.GarbageCollectorProfile, error)
}

// ManagerProfileCollection defines manager profile operations.
type ManagerProfileCollection interface {
	Upsert(ctx context.Context, profile models.ColonyManagerProfile) error
	FindByUserID(ctx context.Context, userID string) (*models.ColonyManagerProfile, error)
	FindByColonyNames(ctx context.Context, names []string) ([]models.ColonyManagerProfile, error)
}

// AuthorityProfileCollection defines authority profile operations.
type AuthorityProfileCollection interface {
	Upsert(ctx context.Context, profile models.GovernmentAuthorityProfile) error
	FindByUserID(ctx context.Context, userID string) (*models.GovernmentAuthorityProfile, error)
}

func upsertByUserID(ctx context.Context, coll *mongo.Collection, userID string, profile interface{}) error {
	if coll == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	_, err := coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": profile, "$setOnInsert": bson.M{"created_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

// MongoCollectorProfiles implements CollectorProfileCollection for MongoDB.
type MongoCollectorProfiles struct {
	Collection *mongo.Collection
}

// Upsert creates or updates a collector profile keyed by user ID.
func (c *MongoCollectorProfiles) Upsert(ctx context.Context, profile models.GarbageCollectorProfile) error {
	profile.UpdatedAt = time.Now()
	return upsertByUserID(ctx, c.Collection, profile.UserID, bson.M{
		"user_id":             profile.UserID,
		"personal_name":       profile.PersonalName,
		"employee_id":         profile.EmployeeID,
		"contact_number":      profile.ContactNumber,
		"years_of_experience": profile.YearsExperience,
		"complete_address":    profile.CompleteAddress,
		"assigned_areas":      profile.AssignedAreas,
		"shift_timing":        profile.ShiftTiming,
		"vehicle_number":      profile.VehicleNumber,
		"supervisor_name":     profile.SupervisorName,
		"working_status":      profile.WorkingStatus,
		"daily_task_counter":  profile.DailyTaskCounter,
		"profile_picture":     profile.ProfilePicture,
		"updated_at":          profile.UpdatedAt,
	})
}

// FindByUserID returns a collector profile, or (nil, nil) when absent.
func (c *MongoCollectorProfiles) FindByUserID(ctx context.Context, userID string) (*models.GarbageCollectorProfile, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var profile models.GarbageCollectorProfile
	err := c.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindByUserIDs returns the collector profiles for a set of user IDs.
func (c *MongoCollectorProfiles) FindByUserIDs(ctx context.Context, userIDs []string) ([]models.GarbageCollectorProfile, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{"user_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.GarbageCollectorProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// MongoManagerProfiles implements ManagerProfileCollection for MongoDB.
type MongoManagerProfiles struct {
	Collection *mongo.Collection
}

// Upsert creates or updates a manager profile keyed by user ID.
func (c *MongoManagerProfiles) Upsert(ctx context.Context, profile models.ColonyManagerProfile) error {
	profile.UpdatedAt = time.Now()
	return upsertByUserID(ctx, c.Collection, profile.UserID, bson.M{
		"user_id":                      profile.UserID,
		"personal_name":                profile.PersonalName,
		"contact_number":               profile.ContactNumber,
		"email":                        profile.Email,
		"colony_name":                  profile.ColonyName,
		"colony_address":               profile.ColonyAddress,
		"ward_number":                  profile.WardNumber,
		"zone_number":                  profile.ZoneNumber,
		"president_name":               profile.PresidentName,
		"president_contact":            profile.PresidentContact,
		"president_email":              profile.PresidentEmail,
		"secretary_name":               profile.SecretaryName,
		"secretary_contact":            profile.SecretaryContact,
		"secretary_email":              profile.SecretaryEmail,
		"number_of_buildings":          profile.NumberOfBuildings,
		"occupied_residential_units":   profile.OccupiedUnits,
		"unoccupied_residential_units": profile.UnoccupiedUnits,
		"offices":                      profile.Offices,
		"shops":                        profile.Shops,
		"eateries":                     profile.Eateries,
		"updated_at":                   profile.UpdatedAt,
	})
}

// FindByUserID returns a manager profile, or (nil, nil) when absent.
func (c *MongoManagerProfiles) FindByUserID(ctx context.Context, userID string) (*models.ColonyManagerProfile, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var profile models.ColonyManagerProfile
	err := c.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindByColonyNames returns the manager profiles assigned to a set of
// colonies.
func (c *MongoManagerProfiles) FindByColonyNames(ctx context.Context, names []string) ([]models.ColonyManagerProfile, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{"colony_name": bson.M{"$in": names}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.ColonyManagerProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// MongoAuthorityProfiles implements AuthorityProfileCollection for MongoDB.
type MongoAuthorityProfiles struct {
	Collection *mongo.Collection
}

// Upsert creates or updates an authority profile keyed by user ID.
func (c *MongoAuthorityProfiles) Upsert(ctx context.Context, profile models.GovernmentAuthorityProfile) error {
	profile.UpdatedAt = time.Now()
	return upsertByUserID(ctx, c.Collection, profile.UserID, bson.M{
		"user_id":        profile.UserID,
		"personal_name":  profile.PersonalName,
		"contact_number": profile.ContactNumber,
		"email":          profile.Email,
		"department":     profile.Department,
		"position":       profile.Position,
		"jurisdiction":   profile.Jurisdiction,
		"office_address": profile.OfficeAddress,
		"updated_at":     profile.UpdatedAt,
	})
}

// FindByUserID returns an authority profile, or (nil, nil) when absent.
func (c *MongoAuthorityProfiles) FindByUserID(ctx context.Context, userID string) (*models.GovernmentAuthorityProfile, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var profile models.GovernmentAuthorityProfile
	err := c.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
