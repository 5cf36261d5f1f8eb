package sessionRepo

import (
	"context"

	"concierge/database"
	"concierge/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SessionRepository persists per-guest conversation sessions.
type SessionRepository interface {
	// GetBySessionID returns the session for the given ID, or nil when no
	// session exists yet.
	GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error)
	// GetHistory returns the session's turn history, oldest first. A missing
	// session yields an empty history, not an error.
	GetHistory(ctx context.Context, sessionID string) ([]models.Turn, error)
	// AppendTurns appends turns to the session's history, creating the
	// session lazily on first write. History is capped to the most recent
	// MaxHistoryTurns entries.
	AppendTurns(ctx context.Context, sessionID string, turns ...models.Turn) error
}

// MaxHistoryTurns bounds stored history so long-lived sessions cannot grow
// without limit. Older turns are discarded on append.
const MaxHistoryTurns = 200

type mongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo returns a SessionRepository backed by MongoDB.
func NewMongoSessionRepo() SessionRepository {
	return &mongoSessionRepo{
		coll: database.DB().Collection("user_sessions"),
	}
}
