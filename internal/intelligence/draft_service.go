package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/planpush/planpush/internal/importer"
	"github.com/planpush/planpush/internal/llm"
)

// DraftStatus represents the state of a plan drafting conversation.
type DraftStatus string

const (
	DraftStatusGathering DraftStatus = "gathering"
	DraftStatusReady     DraftStatus = "ready"
)

// ConversationTurn records a single exchange in the drafting conversation.
type ConversationTurn struct {
	Role    string // "User" or "Assistant"
	Content string
}

// DraftConversation holds the full state of a multi-turn plan drafting session.
type DraftConversation struct {
	Turns      []ConversationTurn
	Draft      *importer.PlanSchema
	Status     DraftStatus
	LLMMessage string // latest message from the LLM
}

// draftTurnResponse is the JSON structure the LLM outputs at each turn.
type draftTurnResponse struct {
	Message string               `json:"message"`
	Draft   *importer.PlanSchema `json:"draft"`
	Status  string               `json:"status"`
}

// PlanDraftService manages an interactive, multi-turn conversation
// to build a PlanSchema from natural language.
type PlanDraftService interface {
	// Start initiates a new conversation with an initial description.
	Start(ctx context.Context, description string) (*DraftConversation, error)

	// StartWithDraft initiates a conversation pre-seeded with an existing
	// draft (e.g., loaded from a file) so the LLM can refine it.
	StartWithDraft(ctx context.Context, description string, draft *importer.PlanSchema) (*DraftConversation, error)

	// NextTurn sends a user message in an ongoing conversation and returns
	// the updated conversation with the LLM's response.
	NextTurn(ctx context.Context, conv *DraftConversation, userMessage string) (*DraftConversation, error)
}

type planDraftService struct {
	client   llm.LLMClient
	observer llm.Observer
}

// NewPlanDraftService creates a PlanDraftService backed by an LLM client.
func NewPlanDraftService(client llm.LLMClient, observer llm.Observer) PlanDraftService {
	return &planDraftService{client: client, observer: observer}
}

func (s *planDraftService) Start(ctx context.Context, description string) (*DraftConversation, error) {
	conv := &DraftConversation{
		Status: DraftStatusGathering,
	}
	return s.nextTurn(ctx, conv, description)
}

func (s *planDraftService) StartWithDraft(ctx context.Context, description string, draft *importer.PlanSchema) (*DraftConversation, error) {
	// Seed the conversation with a synthetic history so the LLM has context
	// about the loaded draft when the user asks for refinements.
	conv := &DraftConversation{
		Turns: []ConversationTurn{
			{Role: "User", Content: description},
			{Role: "Assistant", Content: `{"message": "Here is your loaded plan draft. What would you like to change?", "draft": null, "status": "gathering"}`},
		},
		Draft:      draft,
		Status:     DraftStatusGathering,
		LLMMessage: "Here is your loaded plan draft. What would you like to change?",
	}
	return conv, nil
}

func (s *planDraftService) NextTurn(ctx context.Context, conv *DraftConversation, userMessage string) (*DraftConversation, error) {
	return s.nextTurn(ctx, conv, userMessage)
}

func (s *planDraftService) nextTurn(ctx context.Context, conv *DraftConversation, userMessage string) (*DraftConversation, error) {
	prompt := s.buildPrompt(conv, userMessage)

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPlanDraft,
		SystemPrompt: planDraftSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("llm plan draft failed: %w", err)
	}

	turnResp, err := llm.ExtractJSON[draftTurnResponse](resp.Text, validateDraftTurnResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to extract draft response: %w", err)
	}

	// Preserve previous draft if LLM returned nil (prevent data loss).
	draft := turnResp.Draft
	if draft == nil {
		draft = conv.Draft
	}

	status := DraftStatusGathering
	if turnResp.Status == "ready" {
		status = DraftStatusReady
	}

	updated := &DraftConversation{
		Turns:      make([]ConversationTurn, len(conv.Turns), len(conv.Turns)+2),
		Draft:      draft,
		Status:     status,
		LLMMessage: turnResp.Message,
	}
	copy(updated.Turns, conv.Turns)
	updated.Turns = append(updated.Turns,
		ConversationTurn{Role: "User", Content: userMessage},
		ConversationTurn{Role: "Assistant", Content: resp.Text},
	)

	return updated, nil
}

func (s *planDraftService) buildPrompt(conv *DraftConversation, currentMessage string) string {
	var b strings.Builder

	for _, turn := range conv.Turns {
		b.WriteString(turn.Role)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n\n")
	}

	b.WriteString("User: ")
	b.WriteString(currentMessage)

	return b.String()
}

func validateDraftTurnResponse(resp draftTurnResponse) error {
	if resp.Message == "" {
		return fmt.Errorf("message field is required")
	}
	if resp.Status != "gathering" && resp.Status != "ready" {
		return fmt.Errorf("status must be \"gathering\" or \"ready\", got %q", resp.Status)
	}
	return nil
}
