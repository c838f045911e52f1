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

// SubmissionCollection defines the interface for waste submission operations.
type SubmissionCollection interface {
	InsertSubmission(ctx context.Context, sub models.WasteSubmission) (string, error)
	FindSubmissions(ctx context.Context, spec FilterSpec) ([]models.WasteSubmission, error)
	CountSubmissions(ctx context.Context, spec FilterSpec) (int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// MongoSubmissionCollection implements SubmissionCollection for MongoDB.
type MongoSubmissionCollection struct {
	Collection *mongo.Collection
}

// InsertSubmission inserts a waste submission and returns its ID.
func (c *MongoSubmissionCollection) InsertSubmission(ctx context.Context, sub models.WasteSubmission) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	if sub.Status == "" {
		sub.Status = models.StatusSubmitted
	}
	res, err := c.Collection.InsertOne(ctx, sub)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

// FindSubmissions queries submissions per the filter spec.
func (c *MongoSubmissionCollection) FindSubmissions(ctx context.Context, spec FilterSpec) ([]models.WasteSubmission, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, spec.ToBSON(), spec.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.WasteSubmission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// CountSubmissions counts submissions matching the filter spec.
func (c *MongoSubmissionCollection) CountSubmissions(ctx context.Context, spec FilterSpec) (int64, error) {
	if c.Collection == nil {
		return 0, fmt.Errorf("mongo collection is nil")
	}
	return c.Collection.CountDocuments(ctx, spec.ToBSON())
}

// UpdateStatus applies a status transition. Transitions are one-way
// (submitted -> verified -> processed): the update matches only when the
// stored status is the expected predecessor, so a replayed or out-of-order
// request cannot move a submission backwards.
func (c *MongoSubmissionCollection) UpdateStatus(ctx context.Context, id, status string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid submission ID: %w", err)
	}

	var expected string
	for _, pred := range []string{models.StatusSubmitted, models.StatusVerified} {
		if models.NextStatus(pred) == status {
			expected = pred
			break
		}
	}
	if expected == "" {
		return fmt.Errorf("invalid status transition to %q", status)
	}

	res, err := c.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "status": expected},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("submission not found or not in %q state", expected)
	}
	return nil
}

// ResolveCollectors attaches collector profile references to submissions,
// producing the joined view used by reports. Submissions whose collector has
// no profile keep a nil Collector; the CSV layer renders placeholders.
func ResolveCollectors(ctx context.Context, subs []models.WasteSubmission, profiles CollectorProfileCollection) ([]models.WasteSubmissionWithCollector, error) {
	ids := make([]string, 0, len(subs))
	seen := map[string]struct{}{}
	for _, s := range subs {
		if s.CollectorID == "" {
			continue
		}
		if _, ok := seen[s.CollectorID]; !ok {
			seen[s.CollectorID] = struct{}{}
			ids = append(ids, s.CollectorID)
		}
	}

	byUser := map[string]*models.CollectorRef{}
	if len(ids) > 0 {
		found, err := profiles.FindByUserIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			byUser[p.UserID] = &models.CollectorRef{
				PersonalName:  p.PersonalName,
				EmployeeID:    p.EmployeeID,
				VehicleNumber: p.VehicleNumber,
			}
		}
	}

	joined := make([]models.WasteSubmissionWithCollector, 0, len(subs))
	for _, s := range subs {
		joined = append(joined, models.WasteSubmissionWithCollector{
			WasteSubmission: s,
			Collector:       byUser[s.CollectorID],
		})
	}
	return joined, nil
}
