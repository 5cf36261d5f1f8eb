package bookingRepo

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

// Create inserts a new booking and returns the stored record.
func (r *mongoBookingRepo) Create(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingConfirmed
	}
	booking.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// LatestBySession returns the most recently created booking for the session.
func (r *mongoBookingRepo) LatestBySession(ctx context.Context, sessionID string) (*models.Booking, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"session_id": sessionID}, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CheckingOutBetween returns bookings checking out within [from, to).
func (r *mongoBookingRepo) CheckingOutBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	filter := bson.M{"check_out_date": bson.M{"$gte": from, "$lt": to}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
