package concierge

import (
	"context"
	"fmt"
	"time"

	"concierge/models"
)

// GuestContext assembles the guest's latest booking, up to three most recent
// service requests, and the earliest future appointment. All queries are
// scoped to the session.
func (s *DefaultService) GuestContext(ctx context.Context, sessionID string) (*models.GuestContext, error) {
	booking, err := s.Bookings.LatestBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("fetch latest booking: %w", err)
	}

	requests, err := s.Requests.RecentBySession(ctx, sessionID, recentRequestLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent service requests: %w", err)
	}

	appointment, err := s.Appointments.UpcomingBySession(ctx, sessionID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("fetch upcoming appointment: %w", err)
	}

	return &models.GuestContext{
		LatestBooking:       booking,
		RecentRequests:      requests,
		UpcomingAppointment: appointment,
	}, nil
}

// History returns the session's conversation history, oldest first. A missing
// session yields an empty history.
func (s *DefaultService) History(ctx context.Context, sessionID string) ([]models.Turn, error) {
	return s.Sessions.GetHistory(ctx, sessionID)
}
