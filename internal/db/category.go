package db

import (
	"context"
	"fmt"

	"github.com/swachhdev/waste-collect/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// CategoryCollection defines waste category lookups.
type CategoryCollection interface {
	ListActive(ctx context.Context) ([]models.WasteCategory, error)
}

// MongoCategoryCollection implements CategoryCollection for MongoDB.
type MongoCategoryCollection struct {
	Collection *mongo.Collection
}

// ListActive returns the active waste categories ordered by name.
func (c *MongoCategoryCollection) ListActive(ctx context.Context) ([]models.WasteCategory, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	spec := FilterSpec{
		Equals:  map[string]interface{}{"active": true},
		OrderBy: "name",
	}
	cursor, err := c.Collection.Find(ctx, spec.ToBSON(), spec.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.WasteCategory
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
