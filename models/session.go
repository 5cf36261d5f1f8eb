package models

import "time"

// Turn roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Sentiment values attached to model turns.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// TurnPart is one text fragment of a conversation turn.
type TurnPart struct {
	Text string `bson:"text" json:"text"`
}

// Turn is a single message within a session's history. Turns are append-only
// and never mutated once stored.
type Turn struct {
	Role      string     `bson:"role" json:"role"`
	Parts     []TurnPart `bson:"parts" json:"parts"`
	Sentiment *string    `bson:"sentiment,omitempty" json:"sentiment"`
}

// NewUserTurn builds a guest turn for the given message.
func NewUserTurn(text string) Turn {
	return Turn{Role: RoleUser, Parts: []TurnPart{{Text: text}}}
}

// NewModelTurn builds an assistant turn with the given reply and sentiment.
func NewModelTurn(text, sentiment string) Turn {
	return Turn{Role: RoleModel, Parts: []TurnPart{{Text: text}}, Sentiment: &sentiment}
}

// Session is the persistent record of one guest's conversation.
type Session struct {
	SessionID string    `bson:"session_id" json:"sessionId"`
	History   []Turn    `bson:"history" json:"history"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
