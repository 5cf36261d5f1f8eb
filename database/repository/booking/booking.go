package bookingRepo

import (
	"context"
	"time"

	"concierge/database"
	"concierge/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists room bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (*models.Booking, error)
	// LatestBySession returns the booking with the greatest createdAt for the
	// session, or nil when the guest has no booking.
	LatestBySession(ctx context.Context, sessionID string) (*models.Booking, error)
	// CheckingOutBetween returns bookings whose check-out date falls within
	// [from, to). Used by the reminder scanner.
	CheckingOutBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
