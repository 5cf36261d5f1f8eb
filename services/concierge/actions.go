package concierge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"concierge/models"

	"go.uber.org/zap"
)

// ActionKind identifies one of the four side-effecting operations the
// assistant may invoke per turn.
type ActionKind string

const (
	ActionCreateBooking        ActionKind = "create_booking"
	ActionCreateServiceRequest ActionKind = "create_service_request"
	ActionSearchFAQs           ActionKind = "search_hotel_faqs"
	ActionRequestHuman         ActionKind = "request_human_assistance"
)

// CreateBookingArgs are the arguments of a create_booking action.
type CreateBookingArgs struct {
	UserName       string
	CheckInDate    string
	NumberOfNights int
	NumberOfGuests int
	RoomPreference string
}

// CreateServiceRequestArgs are the arguments of a create_service_request action.
type CreateServiceRequestArgs struct {
	RoomNumber  int
	RequestType string
	Details     string
}

// SearchFAQArgs are the arguments of a search_hotel_faqs action.
type SearchFAQArgs struct {
	Query string
}

// HumanAssistanceArgs are the arguments of a request_human_assistance action.
type HumanAssistanceArgs struct {
	Reason string
}

// Action is the closed set of dispatchable operations. Exactly one payload
// field is set, matching Kind.
type Action struct {
	Kind    ActionKind
	Booking *CreateBookingArgs
	Request *CreateServiceRequestArgs
	Search  *SearchFAQArgs
	Assist  *HumanAssistanceArgs
}

// ParseAction validates a model-selected function call against the closed
// action set, failing fast on an unrecognized name or malformed arguments.
func ParseAction(name string, args map[string]any) (*Action, error) {
	switch ActionKind(name) {
	case ActionCreateBooking:
		userName, err := stringArg(args, "userName")
		if err != nil {
			return nil, fmt.Errorf("create_booking: %w", err)
		}
		checkIn, err := stringArg(args, "checkInDate")
		if err != nil {
			return nil, fmt.Errorf("create_booking: %w", err)
		}
		nights, err := intArg(args, "numberOfNights")
		if err != nil {
			return nil, fmt.Errorf("create_booking: %w", err)
		}
		if nights <= 0 {
			return nil, fmt.Errorf("create_booking: numberOfNights must be positive, got %d", nights)
		}
		return &Action{
			Kind: ActionCreateBooking,
			Booking: &CreateBookingArgs{
				UserName:       userName,
				CheckInDate:    checkIn,
				NumberOfNights: nights,
				NumberOfGuests: optionalIntArg(args, "numberOfGuests"),
				RoomPreference: optionalStringArg(args, "roomPreference"),
			},
		}, nil

	case ActionCreateServiceRequest:
		roomNumber, err := intArg(args, "roomNumber")
		if err != nil {
			return nil, fmt.Errorf("create_service_request: %w", err)
		}
		requestType, err := stringArg(args, "requestType")
		if err != nil {
			return nil, fmt.Errorf("create_service_request: %w", err)
		}
		details, err := stringArg(args, "details")
		if err != nil {
			return nil, fmt.Errorf("create_service_request: %w", err)
		}
		return &Action{
			Kind: ActionCreateServiceRequest,
			Request: &CreateServiceRequestArgs{
				RoomNumber:  roomNumber,
				RequestType: requestType,
				Details:     details,
			},
		}, nil

	case ActionSearchFAQs:
		query, err := stringArg(args, "query")
		if err != nil {
			return nil, fmt.Errorf("search_hotel_faqs: %w", err)
		}
		return &Action{Kind: ActionSearchFAQs, Search: &SearchFAQArgs{Query: query}}, nil

	case ActionRequestHuman:
		reason, err := stringArg(args, "reason")
		if err != nil {
			return nil, fmt.Errorf("request_human_assistance: %w", err)
		}
		return &Action{Kind: ActionRequestHuman, Assist: &HumanAssistanceArgs{Reason: reason}}, nil

	default:
		return nil, fmt.Errorf("unrecognized action %q", name)
	}
}

// executeAction runs the single action selected for this turn and returns the
// function response payload handed back to the model.
func (s *DefaultService) executeAction(ctx context.Context, sessionID string, action *Action) (map[string]any, error) {
	switch action.Kind {
	case ActionCreateBooking:
		return s.actionCreateBooking(ctx, sessionID, action.Booking)
	case ActionCreateServiceRequest:
		return s.actionCreateServiceRequest(ctx, sessionID, action.Request)
	case ActionSearchFAQs:
		return s.actionSearchFAQs(ctx, action.Search)
	case ActionRequestHuman:
		return s.actionRequestHuman(ctx, sessionID, action.Assist)
	}
	return nil, fmt.Errorf("unhandled action kind %q", action.Kind)
}

func (s *DefaultService) actionCreateBooking(ctx context.Context, sessionID string, args *CreateBookingArgs) (map[string]any, error) {
	checkIn, err := time.Parse("2006-01-02", args.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("create_booking: invalid check-in date %q: %w", args.CheckInDate, err)
	}
	checkOut := checkIn.AddDate(0, 0, args.NumberOfNights)

	created, err := s.Bookings.Create(ctx, models.Booking{
		UserName:        args.UserName,
		SessionID:       sessionID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  args.NumberOfGuests,
		SpecialRequests: args.RoomPreference,
		Status:          models.BookingConfirmed,
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.Logger.Info("assistant created booking",
		zap.String("sessionId", sessionID), zap.String("bookingId", created.ID))
	return map[string]any{"success": true, "details": toResultMap(created)}, nil
}

func (s *DefaultService) actionCreateServiceRequest(ctx context.Context, sessionID string, args *CreateServiceRequestArgs) (map[string]any, error) {
	created, err := s.Requests.Create(ctx, models.ServiceRequest{
		SessionID:   sessionID,
		RoomNumber:  args.RoomNumber,
		RequestType: args.RequestType,
		Details:     args.Details,
		Status:      models.RequestPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create service request: %w", err)
	}

	s.Notifier.Broadcast(models.EventNewRequest, created)
	s.Logger.Info("assistant created service request",
		zap.String("sessionId", sessionID), zap.String("requestId", created.ID))
	return map[string]any{"success": true, "details": toResultMap(created)}, nil
}

func (s *DefaultService) actionSearchFAQs(ctx context.Context, args *SearchFAQArgs) (map[string]any, error) {
	faq, err := s.SearchFAQ(ctx, args.Query)
	if err == ErrNoFAQMatch {
		// A miss is a valid tool outcome the model should see, not a failure
		// of the turn.
		return map[string]any{"success": false, "error": "No relevant information found."}, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "answer": faq.Answer}, nil
}

func (s *DefaultService) actionRequestHuman(ctx context.Context, sessionID string, args *HumanAssistanceArgs) (map[string]any, error) {
	history, err := s.Sessions.GetHistory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load history for escalation: %w", err)
	}
	if len(history) > escalationHistoryTurns {
		history = history[len(history)-escalationHistoryTurns:]
	}

	s.Notifier.Broadcast(models.EventHumanAssistance, models.HumanAssistanceEvent{
		SessionID: sessionID,
		Reason:    args.Reason,
		History:   history,
	})
	s.Logger.Info("assistant requested human assistance",
		zap.String("sessionId", sessionID), zap.String("reason", args.Reason))
	return map[string]any{"success": true, "message": "A human agent has been notified."}, nil
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("argument %q must be a non-empty string", key)
	}
	return s, nil
}

// intArg accepts the numeric encodings the model API produces for number
// parameters.
func intArg(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	}
	return 0, fmt.Errorf("argument %q must be a number", key)
}

func optionalStringArg(args map[string]any, key string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return ""
}

func optionalIntArg(args map[string]any, key string) int {
	n, err := intArg(args, key)
	if err != nil {
		return 0
	}
	return n
}

// toResultMap converts a record into the generic map shape the model API
// accepts as a function response payload.
func toResultMap(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}
	return m
}
