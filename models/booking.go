package models

import "time"

// Booking statuses.
const (
	BookingConfirmed = "Confirmed"
)

// Booking represents a confirmed room booking record.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	UserName        string    `bson:"user_name" json:"userName"`
	SessionID       string    `bson:"session_id" json:"sessionId"`
	RoomNumber      int       `bson:"room_number,omitempty" json:"roomNumber,omitempty"`
	CheckInDate     time.Time `bson:"check_in_date" json:"checkInDate"`
	CheckOutDate    time.Time `bson:"check_out_date" json:"checkOutDate"`
	NumberOfGuests  int       `bson:"number_of_guests,omitempty" json:"numberOfGuests,omitempty"`
	SpecialRequests string    `bson:"special_requests,omitempty" json:"specialRequests,omitempty"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
}
