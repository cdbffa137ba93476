package formatter

import (
	"fmt"
	"strings"

	"github.com/planpush/planpush/internal/importer"
	"github.com/planpush/planpush/internal/intelligence"
)

// FormatDraftWelcome renders the banner shown when a drafting session starts.
func FormatDraftWelcome() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Header("plan draft"))
	b.WriteString("\n\n")
	b.WriteString(Dim("  Describe the plan you want; the assistant builds a publishable draft.\n"))
	b.WriteString(Dim("  Type 'cancel' at any prompt to quit.\n\n"))
	return b.String()
}

// FormatDraftTurn renders the assistant's latest message plus draft summary.
func FormatDraftTurn(conv *intelligence.DraftConversation) string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(StylePurple.Render("assistant"))
	b.WriteString(" ")
	b.WriteString(conv.LLMMessage)
	b.WriteString("\n")
	if summary := summarizeDraft(conv.Draft); summary != "" {
		b.WriteString("\n")
		b.WriteString(summary)
	}
	return b.String()
}

// FormatDraftReview renders the full draft tree for final review.
func FormatDraftReview(conv *intelligence.DraftConversation) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Header("draft ready"))
	b.WriteString("\n\n")

	if conv.Draft != nil {
		converted, err := importer.Convert(conv.Draft)
		if err == nil {
			b.WriteString(RenderSpecTree(converted.Root))
		} else {
			b.WriteString(StyleRed.Render("  draft does not convert: " + err.Error()))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func summarizeDraft(draft *importer.PlanSchema) string {
	if draft == nil {
		return ""
	}
	if draft.Plan != nil {
		return Dim(fmt.Sprintf("  Draft: %q, %d suites, %d cases",
			draft.Plan.Title, len(draft.Suites), len(draft.Cases)))
	}
	if len(draft.WorkItems) > 0 {
		return Dim(fmt.Sprintf("  Draft: %d work items, root %q",
			len(draft.WorkItems), draft.WorkItems[0].Title))
	}
	return ""
}
