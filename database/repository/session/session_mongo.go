package sessionRepo

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

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a new instance of SessionRepository using MongoDB.
func NewMongoSessionRepo() *MongoSessionRepo {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("sessions")
	repo := &MongoSessionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create session indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}, {Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "creator_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new session document.
func (r *MongoSessionRepo) Create(ctx context.Context, session *models.Session) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its unique ID.
func (r *MongoSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}
	return &session, nil
}

// GetManyByIDs retrieves sessions for the given ids, keyed by id. Missing ids
// are simply absent from the result.
func (r *MongoSessionRepo) GetManyByIDs(ctx context.Context, ids []string) (map[string]*models.Session, error) {
	if len(ids) == 0 {
		return map[string]*models.Session{}, nil
	}

	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer cursor.Close(ctx)

	result := make(map[string]*models.Session, len(ids))
	for cursor.Next(ctx) {
		var session models.Session
		if err := cursor.Decode(&session); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		s := session
		result[s.ID] = &s
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("session cursor error: %w", err)
	}
	return result, nil
}

// Update replaces the descriptive fields of an existing session document.
func (r *MongoSessionRepo) Update(ctx context.Context, session *models.Session) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	session.UpdatedAt = time.Now()
	filter := bson.M{"id": session.ID}
	update := bson.M{"$set": session}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", session.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session document by its ID.
func (r *MongoSessionRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CompareAndSetStatus atomically flips the session status from old to new.
// It returns false when the current status does not match old; that is a
// normal outcome the caller inspects, not an error.
func (r *MongoSessionRepo) CompareAndSetStatus(ctx context.Context, id string, old, new models.SessionStatus) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": old}
	update := bson.M{"$set": bson.M{"status": new, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed conditional status update for session %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}
