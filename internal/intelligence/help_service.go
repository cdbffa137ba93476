package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/planpush/planpush/internal/llm"
)

// HelpAnswer is the structured response from the help agent.
type HelpAnswer struct {
	Answer       string         `json:"answer"`
	Examples     []ShellExample `json:"examples"`
	NextCommands []string       `json:"next_commands"`
	Source       string         `json:"source"` // "llm" or "deterministic"
}

// ShellExample is a command-line example with a description.
type ShellExample struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// HelpCommandInfo is a simplified command descriptor passed from the CLI
// layer, avoiding an import cycle with the cli package.
type HelpCommandInfo struct {
	FullPath string
	Short    string
}

// HelpService answers user questions about using planpush.
type HelpService interface {
	// Ask handles a one-shot help question. It never fails: if the LLM is
	// unavailable or produces garbage, a deterministic answer is returned.
	Ask(ctx context.Context, question string, commands []HelpCommandInfo) (*HelpAnswer, error)
}

type helpService struct {
	client   llm.LLMClient
	observer llm.Observer
}

// NewHelpService creates a HelpService backed by an LLM client.
func NewHelpService(client llm.LLMClient, observer llm.Observer) HelpService {
	return &helpService{client: client, observer: observer}
}

// helpLLMResponse is the JSON structure expected from the LLM.
type helpLLMResponse struct {
	Answer       string         `json:"answer"`
	Examples     []ShellExample `json:"examples"`
	NextCommands []string       `json:"next_commands"`
}

func (s *helpService) Ask(ctx context.Context, question string, commands []HelpCommandInfo) (*HelpAnswer, error) {
	answer, err := s.generate(ctx, question, commands)
	if err != nil {
		return DeterministicHelp(question, commands), nil
	}

	// Strip examples referencing commands that do not exist.
	valid := make(map[string]bool, len(commands))
	for _, c := range commands {
		valid[c.FullPath] = true
	}
	answer.Examples = filterExamples(answer.Examples, valid)
	answer.NextCommands = filterCommands(answer.NextCommands, valid)

	return answer, nil
}

func (s *helpService) generate(ctx context.Context, question string, commands []HelpCommandInfo) (*HelpAnswer, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskHelp,
		SystemPrompt: helpSystemPrompt,
		UserPrompt:   buildHelpUserPrompt(question, commands),
	})
	if err != nil {
		return nil, fmt.Errorf("llm help generation failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[helpLLMResponse](resp.Text, validateHelpResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to extract help response: %w", err)
	}

	return &HelpAnswer{
		Answer:       parsed.Answer,
		Examples:     parsed.Examples,
		NextCommands: parsed.NextCommands,
		Source:       "llm",
	}, nil
}

func buildHelpUserPrompt(question string, commands []HelpCommandInfo) string {
	var b strings.Builder

	b.WriteString("## Available Commands\n")
	for _, c := range commands {
		b.WriteString(c.FullPath)
		b.WriteString(" - ")
		b.WriteString(c.Short)
		b.WriteString("\n")
	}
	b.WriteString("\n## User Question\n")
	b.WriteString(question)

	return b.String()
}

func validateHelpResponse(resp helpLLMResponse) error {
	if resp.Answer == "" {
		return fmt.Errorf("answer field is required")
	}
	return nil
}

func filterExamples(examples []ShellExample, valid map[string]bool) []ShellExample {
	var kept []ShellExample
	for _, ex := range examples {
		if commandKnown(ex.Command, valid) {
			kept = append(kept, ex)
		}
	}
	return kept
}

func filterCommands(commands []string, valid map[string]bool) []string {
	var kept []string
	for _, c := range commands {
		if commandKnown(c, valid) {
			kept = append(kept, c)
		}
	}
	return kept
}

// commandKnown reports whether the example starts with a known command path.
func commandKnown(command string, valid map[string]bool) bool {
	command = strings.TrimSpace(command)
	for path := range valid {
		if command == path || strings.HasPrefix(command, path+" ") {
			return true
		}
	}
	return false
}

const helpSystemPrompt = `You answer usage questions for planpush, a CLI that publishes test plans and work item trees to Azure DevOps.

You receive the list of available commands and a user question.

Output ONLY a JSON object:
{
  "answer": "2-4 sentence answer",
  "examples": [{"command": "planpush publish plan.json", "description": "what it does"}],
  "next_commands": ["planpush history"]
}

Only reference commands from the provided list. Never invent commands or flags.`
