package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"concierge/database"
	"concierge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AppointmentRepository reads scheduled guest appointments. Appointments are
// seeded externally; this service never writes them.
type AppointmentRepository interface {
	// UpcomingBySession returns the session's earliest appointment at or
	// after the given time, or nil when there is none.
	UpcomingBySession(ctx context.Context, sessionID string, after time.Time) (*models.Appointment, error)
	// StartingBetween returns appointments starting within [from, to). Used
	// by the reminder scanner.
	StartingBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
}

func (r *mongoAppointmentRepo) UpcomingBySession(ctx context.Context, sessionID string, after time.Time) (*models.Appointment, error) {
	filter := bson.M{
		"session_id":       sessionID,
		"appointment_time": bson.M{"$gte": after},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "appointment_time", Value: 1}})

	var appointment models.Appointment
	err := r.coll.FindOne(ctx, filter, opts).Decode(&appointment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *mongoAppointmentRepo) StartingBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{"appointment_time": bson.M{"$gte": from, "$lt": to}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}
