package db

import (
	"context"
	"fmt"

	"github.com/swachhdev/waste-collect/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// ColonyCollection defines colony area operations.
type ColonyCollection interface {
	ListActive(ctx context.Context) ([]models.ColonyArea, error)
	Search(ctx context.Context, term string) ([]models.ColonyArea, error)
}

// MongoColonyCollection implements ColonyCollection for MongoDB.
type MongoColonyCollection struct {
	Collection *mongo.Collection
}

func (c *MongoColonyCollection) find(ctx context.Context, spec FilterSpec) ([]models.ColonyArea, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, spec.ToBSON(), spec.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var colonies []models.ColonyArea
	if err := cursor.All(ctx, &colonies); err != nil {
		return nil, err
	}
	return colonies, nil
}

// ListActive returns the active colonies ordered by name.
func (c *MongoColonyCollection) ListActive(ctx context.Context) ([]models.ColonyArea, error) {
	return c.find(ctx, FilterSpec{
		Equals:  map[string]interface{}{"active": true},
		OrderBy: "name",
	})
}

// Search matches term case-insensitively against colony name, address, and
// ward number, restricted to active colonies and ordered by name.
func (c *MongoColonyCollection) Search(ctx context.Context, term string) ([]models.ColonyArea, error) {
	return c.find(ctx, FilterSpec{
		Equals:        map[string]interface{}{"active": true},
		Pattern:       term,
		PatternFields: []string{"name", "address", "ward_number"},
		OrderBy:       "name",
	})
}

// ResolveManagers attaches manager profile references to colonies. Colonies
// without an assigned manager keep a nil Manager.
func ResolveManagers(ctx context.Context, colonies []models.ColonyArea, profiles ManagerProfileCollection) ([]models.ColonyAreaWithManager, error) {
	names := make([]string, 0, len(colonies))
	for _, c := range colonies {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}

	byColony := map[string]*models.ManagerRef{}
	if len(names) > 0 {
		found, err := profiles.FindByColonyNames(ctx, names)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			byColony[p.ColonyName] = &models.ManagerRef{
				PersonalName:  p.PersonalName,
				ContactNumber: p.ContactNumber,
			}
		}
	}

	joined := make([]models.ColonyAreaWithManager, 0, len(colonies))
	for _, c := range colonies {
		joined = append(joined, models.ColonyAreaWithManager{
			ColonyArea: c,
			Manager:    byColony[c.Name],
		})
	}
	return joined, nil
}
