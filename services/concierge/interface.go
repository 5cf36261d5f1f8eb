package concierge

import (
	"context"
	"errors"

	appointmentRepo "concierge/database/repository/appointment"
	bookingRepo "concierge/database/repository/booking"
	faqRepo "concierge/database/repository/faq"
	requestRepo "concierge/database/repository/servicerequest"
	sessionRepo "concierge/database/repository/session"
	"concierge/models"
	ai "concierge/services/intelligence"
	"concierge/services/realtime"

	"go.uber.org/zap"
)

var (
	// ErrNoFAQMatch is returned when no knowledge base entry shares a keyword
	// with the query.
	ErrNoFAQMatch = errors.New("no relevant FAQ found")
	// ErrSessionNotFound is returned when an operation requires an existing
	// session and none exists.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoReminderContext is returned when the guest has no data relevant to
	// the requested reminder type.
	ErrNoReminderContext = errors.New("no relevant reminder context for this guest")
)

// Service defines the conversational concierge operations.
type Service interface {
	// HandleMessage processes one guest chat turn end to end and returns the
	// assistant's reply.
	HandleMessage(ctx context.Context, sessionID, message string) (string, error)
	// ProactivePing generates an outbound reminder for the session, appends
	// it to the history, and emits it to the session's subscriber group.
	ProactivePing(ctx context.Context, sessionID, promptType string) (*models.Turn, error)
	// GuestContext aggregates the guest's booking, recent service requests,
	// and next appointment.
	GuestContext(ctx context.Context, sessionID string) (*models.GuestContext, error)
	// History returns the session's conversation history, oldest first.
	History(ctx context.Context, sessionID string) ([]models.Turn, error)
	// SearchFAQ returns the best keyword-overlap match for the query, or
	// ErrNoFAQMatch.
	SearchFAQ(ctx context.Context, query string) (*models.FAQ, error)
}

// DefaultService implements Service.
type DefaultService struct {
	Sessions     sessionRepo.SessionRepository
	Bookings     bookingRepo.BookingRepository
	Requests     requestRepo.ServiceRequestRepository
	Appointments appointmentRepo.AppointmentRepository
	FAQs         faqRepo.FAQRepository
	Model        ai.ChatModel
	Notifier     realtime.Notifier
	Logger       *zap.Logger

	locks sessionLocks
}

const (
	// recentRequestLimit bounds the service requests included in a context
	// snapshot.
	recentRequestLimit = 3
	// escalationHistoryTurns bounds the history attached to a human
	// assistance event.
	escalationHistoryTurns = 5
)
