package requestRepo

import (
	"context"
	"errors"

	"concierge/database"
	"concierge/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no service request matches the given ID.
var ErrNotFound = errors.New("service request not found")

// ServiceRequestRepository persists guest service requests.
type ServiceRequestRepository interface {
	Create(ctx context.Context, req models.ServiceRequest) (*models.ServiceRequest, error)
	// ListAll returns every service request, newest first.
	ListAll(ctx context.Context) ([]models.ServiceRequest, error)
	// RecentBySession returns up to limit requests for the session, newest
	// first.
	RecentBySession(ctx context.Context, sessionID string, limit int64) ([]models.ServiceRequest, error)
	// UpdateStatus overwrites the request's status and returns the updated
	// record, or ErrNotFound.
	UpdateStatus(ctx context.Context, id, status string) (*models.ServiceRequest, error)
}

type mongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRequestRepo returns a ServiceRequestRepository backed by MongoDB.
func NewMongoServiceRequestRepo() ServiceRequestRepository {
	return &mongoRequestRepo{
		coll: database.DB().Collection("service_requests"),
	}
}
