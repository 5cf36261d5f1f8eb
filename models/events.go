package models

// Realtime event names pushed to dashboard subscribers. All events are
// broadcast except EventProactiveMessage, which is scoped to the originating
// session's subscriber group.
const (
	EventNewRequest       = "new_request"
	EventRequestUpdated   = "request_updated"
	EventHumanAssistance  = "human_assistance_needed"
	EventProactiveMessage = "proactive_message"
)

// HumanAssistanceEvent is the payload of a human_assistance_needed event.
type HumanAssistanceEvent struct {
	SessionID string `json:"sessionId"`
	Reason    string `json:"reason"`
	History   []Turn `json:"history"`
}
