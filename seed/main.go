// Seeds the hotel knowledge base and a sample appointment for local testing.
//
// Usage: go run ./seed
package main

import (
	"context"
	"time"

	"concierge/config"
	"concierge/database"
	"concierge/models"
	"concierge/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var faqs = []models.FAQ{
	{
		Question: "What are the pool hours?",
		Answer:   "Our swimming pool is open from 8 AM to 10 PM daily.",
		Keywords: []string{"pool", "swimming", "hours", "open", "close"},
	},
	{
		Question: "Do you offer free Wi-Fi?",
		Answer:   "Yes, we offer complimentary high-speed Wi-Fi for all our guests. You can connect to the 'HotelGuest' network with the password 'welcome123'.",
		Keywords: []string{"wifi", "wi-fi", "internet", "network", "password", "free"},
	},
	{
		Question: "What time is check-out?",
		Answer:   "Check-out time is 11 AM. If you need a late check-out, please contact the front desk.",
		Keywords: []string{"checkout", "check-out", "time", "late"},
	},
	{
		Question: "Is breakfast included?",
		Answer:   "Our breakfast buffet is available from 7 AM to 10 AM. It is included for guests who booked a 'Bed & Breakfast' package. Otherwise, it is available for an additional charge.",
		Keywords: []string{"breakfast", "food", "buffet", "included", "charge"},
	},
	{
		Question: "Do you have a gym or fitness center?",
		Answer:   "Yes, our state-of-the-art fitness center is located on the second floor and is open 24/7 for all guests.",
		Keywords: []string{"gym", "fitness", "center", "workout", "exercise"},
	},
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	faqColl := db.Collection("hotel_faqs")
	if _, err := faqColl.DeleteMany(ctx, bson.M{}); err != nil {
		logger.Sugar().Fatalf("seed: failed to clear FAQs: %v", err)
	}
	docs := make([]interface{}, 0, len(faqs))
	for _, f := range faqs {
		f.ID = uuid.New().String()
		docs = append(docs, f)
	}
	if _, err := faqColl.InsertMany(ctx, docs); err != nil {
		logger.Sugar().Fatalf("seed: failed to insert FAQs: %v", err)
	}

	// A 4 PM spa appointment today, so the upcoming-appointment context and
	// reminder flows have something to find.
	today4pm := time.Now().Truncate(24 * time.Hour).Add(16 * time.Hour)
	appointmentColl := db.Collection("appointments")
	if _, err := appointmentColl.DeleteMany(ctx, bson.M{}); err != nil {
		logger.Sugar().Fatalf("seed: failed to clear appointments: %v", err)
	}
	if _, err := appointmentColl.InsertOne(ctx, models.Appointment{
		ID:              uuid.New().String(),
		SessionID:       "guest_room_101",
		ServiceName:     "Spa Massage",
		AppointmentTime: today4pm,
		Details:         "Deep tissue massage.",
	}); err != nil {
		logger.Sugar().Fatalf("seed: failed to insert appointment: %v", err)
	}

	logger.Sugar().Info("seed: database seeded with FAQs and a sample appointment")
}
