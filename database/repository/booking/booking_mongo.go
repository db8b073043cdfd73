package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sessionbooker/database"
	"sessionbooker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB. It holds both
// the booking and session collections because the two lifecycle transitions
// update them in one transaction.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	sessionColl *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() *MongoBookingRepo {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		sessionColl: db.Collection("sessions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates the booking indexes. The partial unique index on
// (session_id, user_id) scoped to active statuses is what makes a second
// concurrent insert for the same pair fail deterministically; a user may still
// re-book after a cancellation because cancelled rows fall outside the filter.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": models.ActiveBookingStatuses},
			}),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.bookingColl.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// withTransaction runs fn inside a mongo session transaction, aborting on error.
func (r *MongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateConfirmed inserts the booking and conditionally flips its session from
// available to booked in one transaction. If the flip matches nothing the
// transaction aborts, so no orphan booking survives a lost race.
func (r *MongoBookingRepo) CreateConfirmed(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	booking.Status = models.BookingConfirmed
	booking.CreatedAt = now
	booking.UpdatedAt = now

	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{"id": booking.SessionID, "status": models.SessionAvailable}
		update := bson.M{"$set": bson.M{"status": models.SessionBooked, "updated_at": now}}

		res, err := r.sessionColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("session status flip failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSessionNotAvailable
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrSessionNotAvailable) {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// CancelConfirmed flips the booking from confirmed to cancelled and its session
// from booked back to available in one transaction. The guarded booking update
// sets cancelled_at exactly once: only the confirmed-to-cancelled transition
// can match, and it never matches twice.
func (r *MongoBookingRepo) CancelConfirmed(ctx context.Context, bookingID, reason string, at time.Time) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	var cancelled models.Booking
	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"id": bookingID, "status": models.BookingConfirmed}
		update := bson.M{"$set": bson.M{
			"status":              models.BookingCancelled,
			"cancellation_reason": reason,
			"cancelled_at":        at,
			"updated_at":          at,
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		err := r.bookingColl.FindOneAndUpdate(sc, filter, update, opts).Decode(&cancelled)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotCancellable
			}
			return fmt.Errorf("cancel booking update failed: %w", err)
		}

		sessFilter := bson.M{"id": cancelled.SessionID, "status": models.SessionBooked}
		sessUpdate := bson.M{"$set": bson.M{"status": models.SessionAvailable, "updated_at": at}}

		res, err := r.sessionColl.UpdateOne(sc, sessFilter, sessUpdate)
		if err != nil {
			return fmt.Errorf("session status revert failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotCancellable
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotCancellable) {
			return nil, err
		}
		return nil, fmt.Errorf("cancellation transaction failed: %w", err)
	}
	return &cancelled, nil
}

// GetByID retrieves a booking by its ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// SetReminderSent marks the booking's reminder as delivered.
func (r *MongoBookingRepo) SetReminderSent(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"reminder_sent": true, "updated_at": time.Now()}}

	res, err := r.bookingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent for booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
