package db

import (
	"context"
	"fmt"
	"time"

	"github.com/swachhdev/waste-collect/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// TrackingCollection defines vehicle tracking operations. The collection is
// append-only: points are never updated or deleted, and consumers resolve
// "current location" by max timestamp, not insertion order.
type TrackingCollection interface {
	InsertPoint(ctx context.Context, point models.VehicleTrackingPoint) error
	FindPoints(ctx context.Context, spec FilterSpec) ([]models.VehicleTrackingPoint, error)
}

// MongoTrackingCollection implements TrackingCollection for MongoDB.
type MongoTrackingCollection struct {
	Collection *mongo.Collection
}

// InsertPoint appends a tracking point.
func (c *MongoTrackingCollection) InsertPoint(ctx context.Context, point models.VehicleTrackingPoint) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	point.CreatedAt = time.Now()
	if point.Timestamp.IsZero() {
		point.Timestamp = point.CreatedAt
	}
	_, err := c.Collection.InsertOne(ctx, point)
	return err
}

// FindPoints queries tracking points per the filter spec.
func (c *MongoTrackingCollection) FindPoints(ctx context.Context, spec FilterSpec) ([]models.VehicleTrackingPoint, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, spec.ToBSON(), spec.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var points []models.VehicleTrackingPoint
	if err := cursor.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}
