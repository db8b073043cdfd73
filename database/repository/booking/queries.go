package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sessionbooker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindActive returns the confirmed or completed booking for the (session, user)
// pair, or ErrNotFound. This is the fail-fast check; the partial unique index
// remains the authority under concurrency.
func (r *MongoBookingRepo) FindActive(ctx context.Context, sessionID, userID string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"session_id": sessionID,
		"user_id":    userID,
		"status":     bson.M{"$in": models.ActiveBookingStatuses},
	}

	var booking models.Booking
	err := r.bookingColl.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query active booking: %w", err)
	}
	return &booking, nil
}

// QueryByUser returns the user's bookings sorted by creation time descending,
// plus the total matching count before pagination.
func (r *MongoBookingRepo) QueryByUser(ctx context.Context, userID string, q UserQuery) ([]models.Booking, int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}
	if q.Status != "" {
		filter["status"] = q.Status
	}

	total, err := r.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings for user %s: %w", userID, err)
	}

	page, pageSize := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}
