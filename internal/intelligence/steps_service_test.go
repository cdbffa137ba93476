package intelligence

import (
	"context"
	"testing"

	"github.com/planpush/planpush/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsDraftService_Draft(t *testing.T) {
	client := &stubLLMClient{responses: []string{
		`{"steps":[{"action":"Open the cart","expected":"Cart page loads"},{"action":"Pay with a valid card","expected":"Confirmation appears"}]}`,
	}}
	svc := NewStepsDraftService(client, llm.NoopObserver{})

	steps, err := svc.Draft(context.Background(), "Pay by card", "checkout suite")
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "Open the cart", steps[0].Action)
	assert.Equal(t, "Confirmation appears", steps[1].Expected)

	require.Len(t, client.requests, 1)
	assert.Equal(t, llm.TaskStepsDraft, client.requests[0].Task)
	assert.Contains(t, client.requests[0].UserPrompt, "Pay by card")
	assert.Contains(t, client.requests[0].UserPrompt, "checkout suite")
}

func TestStepsDraftService_Draft_EmptyTitle(t *testing.T) {
	svc := NewStepsDraftService(&stubLLMClient{}, llm.NoopObserver{})

	_, err := svc.Draft(context.Background(), "  ", "")
	assert.Error(t, err)
}

func TestStepsDraftService_Draft_EmptyAction(t *testing.T) {
	client := &stubLLMClient{responses: []string{
		`{"steps":[{"action":"","expected":"nothing"}]}`,
	}}
	svc := NewStepsDraftService(client, llm.NoopObserver{})

	_, err := svc.Draft(context.Background(), "Pay by card", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestStepsDraftService_Draft_NoSteps(t *testing.T) {
	client := &stubLLMClient{responses: []string{`{"steps":[]}`}}
	svc := NewStepsDraftService(client, llm.NoopObserver{})

	_, err := svc.Draft(context.Background(), "Pay by card", "")
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestStepsDraftService_Draft_TrimsWhitespace(t *testing.T) {
	client := &stubLLMClient{responses: []string{
		`{"steps":[{"action":"  Open the app  ","expected":" Home screen "}]}`,
	}}
	svc := NewStepsDraftService(client, llm.NoopObserver{})

	steps, err := svc.Draft(context.Background(), "Launch", "")
	require.NoError(t, err)
	assert.Equal(t, "Open the app", steps[0].Action)
	assert.Equal(t, "Home screen", steps[0].Expected)
}
