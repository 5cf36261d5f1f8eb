package models

// GuestContext is the aggregated snapshot used to personalize replies: the
// guest's latest booking, up to three most recent service requests, and the
// next upcoming appointment, all scoped to the guest's session.
type GuestContext struct {
	LatestBooking       *Booking         `json:"latestBooking"`
	RecentRequests      []ServiceRequest `json:"recentRequests"`
	UpcomingAppointment *Appointment     `json:"upcomingAppointment"`
}
