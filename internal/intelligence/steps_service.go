package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/planpush/planpush/internal/domain"
	"github.com/planpush/planpush/internal/llm"
)

// StepsDraftService generates action/expected test steps for a case title.
type StepsDraftService interface {
	// Draft produces ordered steps for the given case title. Context is
	// optional free text describing the surrounding suite or feature.
	Draft(ctx context.Context, caseTitle, caseContext string) ([]domain.Step, error)
}

type stepsDraftService struct {
	client   llm.LLMClient
	observer llm.Observer
}

// NewStepsDraftService creates a StepsDraftService backed by an LLM client.
func NewStepsDraftService(client llm.LLMClient, observer llm.Observer) StepsDraftService {
	return &stepsDraftService{client: client, observer: observer}
}

type stepsDraftResponse struct {
	Steps []stepDraft `json:"steps"`
}

type stepDraft struct {
	Action   string `json:"action"`
	Expected string `json:"expected"`
}

func (s *stepsDraftService) Draft(ctx context.Context, caseTitle, caseContext string) ([]domain.Step, error) {
	if strings.TrimSpace(caseTitle) == "" {
		return nil, fmt.Errorf("case title is required")
	}

	var b strings.Builder
	b.WriteString("Test case: ")
	b.WriteString(caseTitle)
	if caseContext != "" {
		b.WriteString("\nContext: ")
		b.WriteString(caseContext)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskStepsDraft,
		SystemPrompt: stepsDraftSystemPrompt,
		UserPrompt:   b.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("llm steps draft failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[stepsDraftResponse](resp.Text, validateStepsDraftResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to extract steps response: %w", err)
	}

	steps := make([]domain.Step, len(parsed.Steps))
	for i, st := range parsed.Steps {
		steps[i] = domain.Step{
			Action:   strings.TrimSpace(st.Action),
			Expected: strings.TrimSpace(st.Expected),
		}
	}
	return steps, nil
}

func validateStepsDraftResponse(resp stepsDraftResponse) error {
	if len(resp.Steps) == 0 {
		return fmt.Errorf("steps field is required and must be non-empty")
	}
	for i, st := range resp.Steps {
		if strings.TrimSpace(st.Action) == "" {
			return fmt.Errorf("step %d has an empty action", i+1)
		}
	}
	return nil
}
