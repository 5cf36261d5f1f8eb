package models

// ChatRequest is the payload of POST /chat.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId" binding:"required"`
}

// ModelAnswer is the JSON document the model is instructed to produce as its
// final reply on every turn.
type ModelAnswer struct {
	Reply     string `json:"reply"`
	Sentiment string `json:"sentiment"`
}
