package sessionRepo

import (
	"context"
	"errors"
	"time"

	"concierge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetBySessionID returns the session document, or nil when absent.
func (r *mongoSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	err := r.coll.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetHistory returns the session's turns, oldest first.
func (r *mongoSessionRepo) GetHistory(ctx context.Context, sessionID string) ([]models.Turn, error) {
	session, err := r.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return []models.Turn{}, nil
	}
	return session.History, nil
}

// AppendTurns upserts the session and pushes the turns onto its history,
// trimming to the newest MaxHistoryTurns.
func (r *mongoSessionRepo) AppendTurns(ctx context.Context, sessionID string, turns ...models.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	now := time.Now()
	update := bson.M{
		"$push": bson.M{
			"history": bson.M{
				"$each":  turns,
				"$slice": -MaxHistoryTurns,
			},
		},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"session_id": sessionID, "created_at": now},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"session_id": sessionID}, update, opts)
	return err
}
