// Package ai wraps the generative language model behind narrow interfaces so
// the conversation orchestrator can be exercised with fakes.
package ai

import (
	"context"

	"concierge/models"
)

// FunctionCall is an action the model selected, with its structured arguments.
type FunctionCall struct {
	Name string
	Args map[string]any
}

// Reply is one model response: free text, or a single selected function call.
// When the model nominally proposes several calls only the first is surfaced.
type Reply struct {
	Text string
	Call *FunctionCall
}

// ChatSession is a stateful conversation with the model.
type ChatSession interface {
	// Send forwards a message and returns the model's reply.
	Send(ctx context.Context, message string) (*Reply, error)
	// SendFunctionResult reports the outcome of an executed function call and
	// returns the model's second-pass reply.
	SendFunctionResult(ctx context.Context, name string, result map[string]any) (*Reply, error)
}

// ChatModel creates chat sessions and serves one-shot generations.
type ChatModel interface {
	// StartChat opens a session primed with the given turn history.
	StartChat(history []models.Turn) ChatSession
	// GenerateText runs a single tool-free generation.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
