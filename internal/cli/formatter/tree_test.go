package formatter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/planpush/planpush/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences for stripping before comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func specTree() *domain.SpecNode {
	return &domain.SpecNode{
		Kind:  domain.KindPlan,
		Title: "Release 1.0",
		Children: []domain.SpecNode{
			{
				Kind:  domain.KindSuite,
				Title: "Checkout",
				Children: []domain.SpecNode{
					{
						Kind:  domain.KindCase,
						Title: "Pay by card",
						Steps: []domain.Step{
							{Action: "Pay", Expected: "Confirmed"},
							{Action: "Check email", Expected: "Receipt sent"},
						},
					},
					{
						Kind:  domain.KindCase,
						Title: "Pay by invoice",
					},
				},
			},
			{
				Kind:  domain.KindSuite,
				Title: "Returns",
			},
		},
	}
}

func TestRenderSpecTree(t *testing.T) {
	out := stripANSI(RenderSpecTree(specTree()))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Contains(t, lines[0], "Release 1.0")
	assert.Contains(t, lines[1], "├─ ")
	assert.Contains(t, lines[1], "Checkout")
	assert.Contains(t, lines[2], "│  ├─ ")
	assert.Contains(t, lines[2], "Pay by card")
	assert.Contains(t, lines[2], "[2 steps]")
	assert.Contains(t, lines[3], "│  └─ ")
	assert.Contains(t, lines[3], "Pay by invoice")
	assert.NotContains(t, lines[3], "steps")
	assert.Contains(t, lines[4], "└─ ")
	assert.Contains(t, lines[4], "Returns")
}

func TestRenderSpecTree_WorkItemType(t *testing.T) {
	root := &domain.SpecNode{
		Kind:  domain.KindWorkItem,
		Title: "Checkout rewrite",
		Type:  "Epic",
		Children: []domain.SpecNode{
			{Kind: domain.KindWorkItem, Title: "Card payments", Type: "User Story"},
		},
	}

	out := stripANSI(RenderSpecTree(root))
	assert.Contains(t, out, "Checkout rewrite (Epic)")
	assert.Contains(t, out, "Card payments (User Story)")
}

func TestRenderSpecTree_Nil(t *testing.T) {
	assert.Empty(t, RenderSpecTree(nil))
}

func TestRenderResultTree(t *testing.T) {
	root := &domain.ResultNode{
		Kind:     domain.KindPlan,
		RemoteID: 101,
		Name:     "Release 1.0",
		Status:   domain.StatusCreated,
		Children: []domain.ResultNode{
			{
				Kind:     domain.KindSuite,
				RemoteID: 102,
				Name:     "Checkout",
				Status:   domain.StatusCreated,
				Children: []domain.ResultNode{
					{
						Kind:     domain.KindCase,
						RemoteID: 103,
						Name:     "Pay by card",
						Status:   domain.StatusCreatedUnlinked,
					},
				},
			},
		},
	}

	out := stripANSI(RenderResultTree(root))
	assert.Contains(t, out, "Release 1.0 #101")
	assert.Contains(t, out, "Checkout #102")
	assert.Contains(t, out, "Pay by card #103")
	assert.Contains(t, out, "(created but not linked)")

	// Only the unlinked node carries the mark.
	assert.Equal(t, 1, strings.Count(out, "not linked"))
}

func TestRenderResultTree_Nil(t *testing.T) {
	assert.Empty(t, RenderResultTree(nil))
}
