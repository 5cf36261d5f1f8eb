package ai

import (
	"context"
	"fmt"
	"strings"

	"concierge/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const systemInstruction = "You are a helpful hotel concierge AI. You have tools for booking, " +
	"service requests, searching FAQs, and requesting a human. Use the user's CONTEXT and HISTORY " +
	"to provide personalized responses. If you cannot help or the user is frustrated, use the " +
	"'request_human_assistance' tool. Always respond with a JSON object containing 'reply' and 'sentiment'."

// conciergeTools declares the four actions the model may invoke per turn.
func conciergeTools() []*genai.Tool {
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name: "create_booking",
				Description: "Creates a hotel room booking. Before calling this function, if the user has " +
					"not provided their name, check-in date, and number of nights, you MUST ask them for the " +
					"missing information. You can also ask clarifying questions about their preferences, such " +
					"as the number of guests or if they want a room with a view.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"userName": {
							Type:        genai.TypeString,
							Description: "The full name of the person booking the room.",
						},
						"checkInDate": {
							Type:        genai.TypeString,
							Description: "The check-in date in YYYY-MM-DD format.",
						},
						"numberOfNights": {
							Type:        genai.TypeNumber,
							Description: "The total number of nights for the stay.",
						},
						"numberOfGuests": {
							Type:        genai.TypeNumber,
							Description: "The number of guests staying in the room.",
						},
						"roomPreference": {
							Type:        genai.TypeString,
							Description: `Any user preference for the room, like "ocean view" or "near the elevator".`,
						},
					},
					Required: []string{"userName", "checkInDate", "numberOfNights"},
				},
			},
			{
				Name: "create_service_request",
				Description: "Creates a request for a hotel service like housekeeping or room service. " +
					"Use this when a user asks for items to be sent to their room.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"roomNumber": {
							Type:        genai.TypeNumber,
							Description: "The room number of the guest making the request.",
						},
						"requestType": {
							Type:        genai.TypeString,
							Description: `The general category of the request, e.g., "Room Service", "Housekeeping", "Maintenance".`,
						},
						"details": {
							Type:        genai.TypeString,
							Description: `A specific description of what the user wants, e.g., "2 extra towels" or "1 club sandwich and a coke".`,
						},
					},
					Required: []string{"roomNumber", "requestType", "details"},
				},
			},
			{
				Name: "search_hotel_faqs",
				Description: "Searches the hotel's knowledge base for answers to general questions like " +
					"'What are the pool hours?' or 'Do you have free Wi-Fi?'. Use this for any question that " +
					"isn't a booking or a service request.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {
							Type:        genai.TypeString,
							Description: "The user's question, rephrased as a search query.",
						},
					},
					Required: []string{"query"},
				},
			},
			{
				Name: "request_human_assistance",
				Description: "Use this function if the user is asking a question you cannot answer with " +
					"your other tools, or if they are expressing significant frustration (e.g., multiple " +
					"negative sentiment messages).",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"reason": {
							Type:        genai.TypeString,
							Description: "A brief summary of why the user needs help.",
						},
					},
					Required: []string{"reason"},
				},
			},
		},
	}}
}

// GeminiModel is the production ChatModel backed by the Gemini API.
type GeminiModel struct {
	chat  *genai.GenerativeModel
	plain *genai.GenerativeModel
}

// NewGeminiModel creates a Gemini client and configures the concierge chat
// model with its tools and system instruction. The plain model serves
// tool-free one-shot generations such as proactive reminders.
func NewGeminiModel(apiKey, modelName string) (*GeminiModel, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	chat := client.GenerativeModel(modelName)
	chat.Tools = conciergeTools()
	chat.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &GeminiModel{
		chat:  chat,
		plain: client.GenerativeModel(modelName),
	}, nil
}

// StartChat opens a Gemini chat session primed with the stored history.
func (g *GeminiModel) StartChat(history []models.Turn) ChatSession {
	cs := g.chat.StartChat()
	cs.History = toGenaiHistory(history)
	return &geminiSession{cs: cs}
}

// GenerateText runs a single tool-free generation.
func (g *GeminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.plain.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	return collectText(resp), nil
}

type geminiSession struct {
	cs *genai.ChatSession
}

func (s *geminiSession) Send(ctx context.Context, message string) (*Reply, error) {
	resp, err := s.cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return nil, fmt.Errorf("gemini send error: %w", err)
	}
	return toReply(resp), nil
}

func (s *geminiSession) SendFunctionResult(ctx context.Context, name string, result map[string]any) (*Reply, error) {
	resp, err := s.cs.SendMessage(ctx, genai.FunctionResponse{
		Name:     name,
		Response: result,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini function response error: %w", err)
	}
	return toReply(resp), nil
}

func toGenaiHistory(history []models.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		parts := make([]genai.Part, 0, len(turn.Parts))
		for _, p := range turn.Parts {
			parts = append(parts, genai.Text(p.Text))
		}
		contents = append(contents, &genai.Content{Role: turn.Role, Parts: parts})
	}
	return contents
}

// toReply extracts the first function call if present, otherwise the
// concatenated text parts.
func toReply(resp *genai.GenerateContentResponse) *Reply {
	reply := &Reply{}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return reply
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if fc, ok := part.(genai.FunctionCall); ok && reply.Call == nil {
			reply.Call = &FunctionCall{Name: fc.Name, Args: fc.Args}
		}
	}
	reply.Text = collectText(resp)
	return reply
}

func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}
