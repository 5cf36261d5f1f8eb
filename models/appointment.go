package models

import "time"

// Appointment is a scheduled guest service such as a spa treatment or a
// dinner reservation. Appointments are seeded externally and read-only here.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`
	SessionID       string    `bson:"session_id" json:"sessionId"`
	ServiceName     string    `bson:"service_name" json:"serviceName"`
	AppointmentTime time.Time `bson:"appointment_time" json:"appointmentTime"`
	Details         string    `bson:"details,omitempty" json:"details,omitempty"`
}
