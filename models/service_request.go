package models

import "time"

// Service request statuses. Staff move a request Pending -> In Progress ->
// Completed from the dashboard.
const (
	RequestPending    = "Pending"
	RequestInProgress = "In Progress"
	RequestCompleted  = "Completed"
)

// ValidRequestStatus reports whether s is a known service request status.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestPending, RequestInProgress, RequestCompleted:
		return true
	}
	return false
}

// ServiceRequest is a guest request for a hotel service such as housekeeping
// or room service.
type ServiceRequest struct {
	ID          string    `bson:"id" json:"id"`
	SessionID   string    `bson:"session_id" json:"sessionId"`
	RoomNumber  int       `bson:"room_number" json:"roomNumber"`
	RequestType string    `bson:"request_type" json:"requestType"`
	Details     string    `bson:"details" json:"details"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
