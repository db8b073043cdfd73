package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"sessionbooker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListAvailable returns available sessions starting after the given instant,
// soonest first, plus the total matching count before pagination.
func (r *MongoSessionRepo) ListAvailable(ctx context.Context, q ListQuery, afterStart time.Time) ([]models.Session, int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":     models.SessionAvailable,
		"start_time": bson.M{"$gt": afterStart},
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Search != "" {
		regex := primitive.Regex{Pattern: q.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
			bson.M{"tags": regex},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	page, pageSize := normalizePage(q.Page, q.PageSize)
	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, total, nil
}

// ListByCreator returns the creator's sessions, latest start first.
func (r *MongoSessionRepo) ListByCreator(ctx context.Context, creatorID string, page, pageSize int) ([]models.Session, int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"creator_id": creatorID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions for creator %s: %w", creatorID, err)
	}

	page, pageSize = normalizePage(page, pageSize)
	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions for creator %s: %w", creatorID, err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, total, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}
