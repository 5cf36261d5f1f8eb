package concierge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"concierge/models"

	"go.uber.org/zap"
)

// HandleMessage processes one guest chat turn: aggregate context, load
// history, consult the model, execute at most one selected action, obtain the
// final formatted answer, persist the turn pair, and return the reply.
func (s *DefaultService) HandleMessage(ctx context.Context, sessionID, message string) (string, error) {
	// Serialize turns per session so concurrent messages cannot interleave
	// the read-modify-write of the history.
	unlock := s.locks.acquire(sessionID)
	defer unlock()

	guestCtx, err := s.GuestContext(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("aggregate guest context: %w", err)
	}

	history, err := s.Sessions.GetHistory(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load session history: %w", err)
	}

	chat := s.Model.StartChat(history)
	augmented := fmt.Sprintf("CONTEXT: %s\n\nUSER QUESTION: %s", contextSummary(guestCtx), message)

	reply, err := chat.Send(ctx, augmented)
	if err != nil {
		return "", err
	}

	if reply.Call != nil {
		action, err := ParseAction(reply.Call.Name, reply.Call.Args)
		if err != nil {
			return "", fmt.Errorf("invalid model action: %w", err)
		}
		result, err := s.executeAction(ctx, sessionID, action)
		if err != nil {
			return "", err
		}
		reply, err = chat.SendFunctionResult(ctx, reply.Call.Name, result)
		if err != nil {
			return "", err
		}
	}

	answer, err := parseModelAnswer(reply.Text)
	if err != nil {
		return "", err
	}

	err = s.Sessions.AppendTurns(ctx, sessionID,
		models.NewUserTurn(message),
		models.NewModelTurn(answer.Reply, answer.Sentiment),
	)
	if err != nil {
		return "", fmt.Errorf("persist turns: %w", err)
	}

	s.Logger.Debug("chat turn completed",
		zap.String("sessionId", sessionID), zap.String("sentiment", answer.Sentiment))
	return answer.Reply, nil
}

// ProactivePing generates an outbound reminder for the session, appends the
// model turn to the history, and emits it to the session's subscriber group
// only.
func (s *DefaultService) ProactivePing(ctx context.Context, sessionID, promptType string) (*models.Turn, error) {
	guestCtx, err := s.GuestContext(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("aggregate guest context: %w", err)
	}

	var prompt string
	switch {
	case promptType == models.PromptCheckoutReminder && guestCtx.LatestBooking != nil:
		booking := guestCtx.LatestBooking
		prompt = fmt.Sprintf(
			"You are an AI Hotel Concierge. A user named %s is checking out on %s. "+
				"Generate the exact, single message to send them as a friendly reminder. "+
				"Ask if they need help with luggage or a taxi. Do not offer options or variations.",
			booking.UserName, booking.CheckOutDate.Format("Mon Jan 2 2006"))
	case promptType == models.PromptAppointmentReminder && guestCtx.UpcomingAppointment != nil:
		appointment := guestCtx.UpcomingAppointment
		prompt = fmt.Sprintf(
			"You are an AI Hotel Concierge. A user has an upcoming '%s' appointment at %s. "+
				"Generate the exact, single message to send them as a friendly reminder. "+
				"Do not offer options or variations.",
			appointment.ServiceName, appointment.AppointmentTime.Format("3:04 PM"))
	default:
		return nil, ErrNoReminderContext
	}

	text, err := s.Model.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	session, err := s.Sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	turn := models.NewModelTurn(strings.TrimSpace(text), models.SentimentNeutral)
	if err := s.Sessions.AppendTurns(ctx, sessionID, turn); err != nil {
		return nil, fmt.Errorf("persist reminder turn: %w", err)
	}

	s.Notifier.Emit(sessionID, models.EventProactiveMessage, turn)
	s.Logger.Info("proactive reminder sent",
		zap.String("sessionId", sessionID), zap.String("promptType", promptType))
	return &turn, nil
}

// contextSummary renders the guest context as the human-readable block
// prepended to the model prompt.
func contextSummary(guestCtx *models.GuestContext) string {
	if guestCtx.LatestBooking == nil && len(guestCtx.RecentRequests) == 0 {
		return "No current booking or recent requests found for this user."
	}

	bookingLine := "None."
	if b := guestCtx.LatestBooking; b != nil {
		bookingLine = fmt.Sprintf("User %s is staying until %s.", b.UserName, b.CheckOutDate.Format("Mon Jan 2 2006"))
	}

	requestLine := "None."
	if len(guestCtx.RecentRequests) > 0 {
		details := make([]string, 0, len(guestCtx.RecentRequests))
		for _, r := range guestCtx.RecentRequests {
			details = append(details, r.Details)
		}
		requestLine = strings.Join(details, ", ")
	}

	return fmt.Sprintf("Current Booking: %s\nRecent Service Requests: %s", bookingLine, requestLine)
}

// parseModelAnswer parses the model's final text into the expected
// {reply, sentiment} shape. Code fences the model wraps around the JSON are
// stripped first.
func parseModelAnswer(text string) (*models.ModelAnswer, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var answer models.ModelAnswer
	if err := json.Unmarshal([]byte(cleaned), &answer); err != nil {
		return nil, fmt.Errorf("model answer is not valid JSON: %w", err)
	}
	if answer.Reply == "" {
		return nil, errors.New("model answer is missing a reply")
	}
	switch answer.Sentiment {
	case models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative:
	default:
		answer.Sentiment = models.SentimentNeutral
	}
	return &answer, nil
}
