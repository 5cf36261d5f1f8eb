package requestRepo

import (
	"context"
	"errors"
	"time"

	"concierge/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new service request and returns the stored record.
func (r *mongoRequestRepo) Create(ctx context.Context, req models.ServiceRequest) (*models.ServiceRequest, error) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Status == "" {
		req.Status = models.RequestPending
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ListAll returns every service request, newest first.
func (r *mongoRequestRepo) ListAll(ctx context.Context) ([]models.ServiceRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// RecentBySession returns up to limit requests for the session, newest first.
func (r *mongoRequestRepo) RecentBySession(ctx context.Context, sessionID string, limit int64) ([]models.ServiceRequest, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus overwrites the request's status unconditionally and returns the
// updated record.
func (r *mongoRequestRepo) UpdateStatus(ctx context.Context, id, status string) (*models.ServiceRequest, error) {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.ServiceRequest
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
