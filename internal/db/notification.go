package db

import (
	"context"
	"fmt"
	"time"

	"github.com/swachhdev/waste-collect/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationCollection defines notification operations.
type NotificationCollection interface {
	InsertNotification(ctx context.Context, n models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

// MongoNotificationCollection implements NotificationCollection for MongoDB.
type MongoNotificationCollection struct {
	Collection *mongo.Collection
}

// InsertNotification inserts a notification, unread by default.
func (c *MongoNotificationCollection) InsertNotification(ctx context.Context, n models.Notification) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	n.Read = false
	n.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, n)
	return err
}

// ListByUser returns a user's notifications, newest first.
func (c *MongoNotificationCollection) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	spec := FilterSpec{
		Equals:  map[string]interface{}{"user_id": userID},
		OrderBy: "created_at",
		Desc:    true,
	}
	cursor, err := c.Collection.Find(ctx, spec.ToBSON(), spec.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips a notification to read. The transition is one-way; marking
// an already-read notification is a no-op, not an error.
func (c *MongoNotificationCollection) MarkRead(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID: %w", err)
	}
	_, err = c.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

// UnreadCount counts a user's unread notifications.
func (c *MongoNotificationCollection) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if c.Collection == nil {
		return 0, fmt.Errorf("mongo collection is nil")
	}
	return c.Collection.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
}
