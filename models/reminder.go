package models

// Proactive reminder prompt types.
const (
	PromptCheckoutReminder    = "checkout_reminder"
	PromptAppointmentReminder = "appointment_reminder"
)

// ReminderPayload is the payload of a queued reminder task.
type ReminderPayload struct {
	SessionID  string `json:"sessionId"`
	PromptType string `json:"promptType"`
}
