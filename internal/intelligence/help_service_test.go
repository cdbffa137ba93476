package intelligence

import (
	"context"
	"errors"
	"testing"

	"github.com/planpush/planpush/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCommands = []HelpCommandInfo{
	{FullPath: "planpush publish", Short: "Publish a plan file"},
	{FullPath: "planpush profile add", Short: "Add a connection profile"},
	{FullPath: "planpush history", Short: "Show recent publish runs"},
}

func TestHelpService_Ask_LLMAnswer(t *testing.T) {
	client := &stubLLMClient{responses: []string{
		`{"answer":"Use publish with a plan file.","examples":[{"command":"planpush publish plan.json","description":"Publish"}],"next_commands":["planpush history"]}`,
	}}
	svc := NewHelpService(client, llm.NoopObserver{})

	answer, err := svc.Ask(context.Background(), "how do I publish?", testCommands)
	require.NoError(t, err)

	assert.Equal(t, "llm", answer.Source)
	assert.Equal(t, "Use publish with a plan file.", answer.Answer)
	require.Len(t, answer.Examples, 1)
	assert.Equal(t, []string{"planpush history"}, answer.NextCommands)
}

func TestHelpService_Ask_StripsUnknownCommands(t *testing.T) {
	client := &stubLLMClient{responses: []string{
		`{"answer":"Try these.","examples":[{"command":"planpush publish plan.json","description":"ok"},{"command":"planpush deploy","description":"invented"}],"next_commands":["planpush teleport"]}`,
	}}
	svc := NewHelpService(client, llm.NoopObserver{})

	answer, err := svc.Ask(context.Background(), "what now?", testCommands)
	require.NoError(t, err)

	require.Len(t, answer.Examples, 1)
	assert.Equal(t, "planpush publish plan.json", answer.Examples[0].Command)
	assert.Empty(t, answer.NextCommands)
}

func TestHelpService_Ask_FallsBackOnLLMError(t *testing.T) {
	client := &stubLLMClient{err: errors.New("unavailable")}
	svc := NewHelpService(client, llm.NoopObserver{})

	answer, err := svc.Ask(context.Background(), "how do I publish a plan?", testCommands)
	require.NoError(t, err)

	assert.Equal(t, "deterministic", answer.Source)
	assert.Contains(t, answer.Answer, "publish")
}

func TestHelpService_Ask_FallsBackOnGarbageOutput(t *testing.T) {
	client := &stubLLMClient{responses: []string{"not json at all"}}
	svc := NewHelpService(client, llm.NoopObserver{})

	answer, err := svc.Ask(context.Background(), "profile token setup", testCommands)
	require.NoError(t, err)
	assert.Equal(t, "deterministic", answer.Source)
}

func TestDeterministicHelp_KeywordMatch(t *testing.T) {
	answer := DeterministicHelp("how do mappings work?", testCommands)

	assert.Equal(t, "deterministic", answer.Source)
	assert.Contains(t, answer.Answer, "aliases")
}

func TestDeterministicHelp_UnknownTopic_ListsCommands(t *testing.T) {
	answer := DeterministicHelp("what is the meaning of life?", testCommands)

	assert.Contains(t, answer.Answer, "planpush publish")
	assert.Contains(t, answer.Answer, "planpush history")
}
